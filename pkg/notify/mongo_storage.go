package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// defaultCollection is the collection MongoStorage reads and writes.
const defaultCollection = "notifications"

// MongoStorage is a Storage implementation backed by MongoDB. Documents use
// a client-generated uuid string as _id so Save can return the identity
// without a round trip.
type MongoStorage struct {
	col *mongo.Collection
}

// NewMongoStorage creates a Storage over the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{col: db.Collection(defaultCollection)}
}

type mongoNotification struct {
	ID        string    `bson:"_id"`
	UserID    *string   `bson:"user_id,omitempty"`
	Payload   []byte    `bson:"payload,omitempty"`
	Seq       int64     `bson:"seq"`
	Delivered bool      `bson:"delivered"`
	CreatedAt time.Time `bson:"created_at"`
}

func toMongo(n Notification) mongoNotification {
	doc := mongoNotification{
		ID:        n.ID,
		Payload:   n.Payload,
		Seq:       n.Seq,
		Delivered: n.Delivered,
		CreatedAt: n.CreatedAt,
	}
	if n.Recipient.Valid {
		doc.UserID = &n.Recipient.UserID
	}
	return doc
}

func fromMongo(doc mongoNotification) Notification {
	n := Notification{
		ID:        doc.ID,
		Payload:   json.RawMessage(doc.Payload),
		Seq:       doc.Seq,
		Delivered: doc.Delivered,
		CreatedAt: doc.CreatedAt,
	}
	if doc.UserID != nil {
		n.Recipient = To(*doc.UserID)
	}
	return n
}

func (s *MongoStorage) Save(ctx context.Context, n Notification) (Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now()
		}

		if _, err := s.col.InsertOne(ctx, toMongo(n)); err != nil {
			return Notification{}, fmt.Errorf("failed to insert notification: %w", err)
		}
		return n, nil
	}

	// Delivered is the only field that may change after creation.
	res, err := s.col.UpdateByID(ctx, n.ID, bson.M{"$set": bson.M{"delivered": n.Delivered}})
	if err != nil {
		return Notification{}, fmt.Errorf("failed to update notification: %w", err)
	}
	if res.MatchedCount == 0 {
		return Notification{}, ErrNotificationNotFound
	}

	return n, nil
}

func (s *MongoStorage) Find(ctx context.Context, id string) (*Notification, error) {
	var doc mongoNotification
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	n := fromMongo(doc)
	return &n, nil
}

func (s *MongoStorage) ListAfterSeq(ctx context.Context, userID string, seq int64) ([]Notification, error) {
	return s.list(ctx, bson.M{
		"user_id": userID,
		"seq":     bson.M{"$gt": seq},
	})
}

func (s *MongoStorage) ListUndelivered(ctx context.Context, userID string) ([]Notification, error) {
	return s.list(ctx, bson.M{
		"user_id":   userID,
		"delivered": false,
	})
}

func (s *MongoStorage) list(ctx context.Context, filter bson.M) ([]Notification, error) {
	cursor, err := s.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoNotification
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	notifications := make([]Notification, len(docs))
	for i, doc := range docs {
		notifications[i] = fromMongo(doc)
	}

	return notifications, nil
}
