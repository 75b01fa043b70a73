package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meridiantrade/catalog-services/internal/contact"
)

// MongoRepo stores messages in the contact_messages collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	idx := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}
	_, _ = col.Indexes().CreateOne(ctx, idx)
	return &MongoRepo{col: col}
}

func (r *MongoRepo) Create(ctx context.Context, m *contact.Message) (string, error) {
	if m.ID == "" {
		m.ID = primitive.NewObjectID().Hex()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return "", err
	}
	return m.ID, nil
}

func (r *MongoRepo) MarkEmailed(ctx context.Context, id string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"emailed": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) List(ctx context.Context, limit int) ([]*contact.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*contact.Message{}
	for cur.Next(ctx) {
		var m contact.Message
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, cur.Err()
}
