package models

import "time"

// Message is immutable once persisted; there is no update or delete path.
type Message struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Sender    string    `bson:"sender" json:"sender"`
	Receiver  string    `bson:"receiver" json:"receiver"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// MessageResponse is the public projection of a Message. Internal id and
// timestamp are stripped.
type MessageResponse struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}
