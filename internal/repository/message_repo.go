package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/models"
)

// MessageStore is the durable, append-only message collection. Messages are
// never updated or deleted once inserted.
type MessageStore interface {
	Insert(ctx context.Context, m *models.Message) (*models.Message, error)
	FindConversation(ctx context.Context, partyA, partyB string) ([]*models.Message, error)
}

type mongoMessageStore struct {
	col *mongo.Collection
}

func NewMongoMessageStore(db *mongo.Database, collection string) MessageStore {
	col := db.Collection(collection)
	ix := mongo.IndexModel{
		Keys:    bson.D{{Key: "sender", Value: 1}, {Key: "receiver", Value: 1}, {Key: "timestamp", Value: 1}},
		Options: options.Index().SetName("conversation_idx"),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), ix)
	return &mongoMessageStore{col: col}
}

// Insert assigns the id and, when unset, the persistence timestamp. There is
// no idempotency key; duplicate sends produce duplicate documents.
func (s *mongoMessageStore) Insert(ctx context.Context, m *models.Message) (*models.Message, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	if _, err := s.col.InsertOne(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// FindConversation returns both directions of the pair, ascending by
// timestamp. Ties keep the stored order; no secondary sort key.
func (s *mongoMessageStore) FindConversation(ctx context.Context, partyA, partyB string) ([]*models.Message, error) {
	filter := bson.M{"$or": []bson.M{
		{"sender": partyA, "receiver": partyB},
		{"sender": partyB, "receiver": partyA},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*models.Message{}
	for cur.Next(ctx) {
		var m models.Message
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
