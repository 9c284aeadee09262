package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the identity record. Email is the stable identity key used for
// authorization comparisons; the username is the human-facing handle.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Profile  *Profile           `bson:"profile,omitempty" json:"profile,omitempty"`
}

type Profile struct {
	Name      string   `bson:"name" json:"name"`
	Birthday  string   `bson:"birthday" json:"birthday"`
	Horoscope string   `bson:"horoscope" json:"horoscope"`
	Zodiac    string   `bson:"zodiac" json:"zodiac"`
	Height    int      `bson:"height" json:"height"`
	Weight    int      `bson:"weight" json:"weight"`
	Interests []string `bson:"interests" json:"interests"`
}

type ProfileResponse struct {
	Message string      `json:"message,omitempty"`
	Data    ProfileData `json:"data"`
}

type ProfileData struct {
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Name      string   `json:"name"`
	Birthday  string   `json:"birthday"`
	Horoscope string   `json:"horoscope"`
	Zodiac    string   `json:"zodiac"`
	Height    int      `json:"height"`
	Weight    int      `json:"weight"`
	Interests []string `json:"interests"`
}
