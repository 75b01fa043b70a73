package users

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meridiantrade/catalog-services/internal/models"
)

// Repository persists admin accounts keyed by subject.
type Repository interface {
	UpsertBySub(ctx context.Context, a *models.Admin) (*models.Admin, error)
	GetBySub(ctx context.Context, sub string) (*models.Admin, error)
}

// MongoRepository implements Repository on the admin_users collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) UpsertBySub(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	now := time.Now().UTC()
	filter := bson.M{"sub": a.Sub}
	update := bson.M{
		"$set": bson.M{
			"username":    a.Username,
			"email":       a.Email,
			"name":        a.Name,
			"source":      a.Source,
			"lastLoginAt": now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated models.Admin
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *MongoRepository) GetBySub(ctx context.Context, sub string) (*models.Admin, error) {
	var a models.Admin
	if err := r.col.FindOne(ctx, bson.M{"sub": sub}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// MemoryRepository keeps admin accounts in process.
type MemoryRepository struct {
	mu    sync.Mutex
	store map[string]models.Admin
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: map[string]models.Admin{}}
}

func (r *MemoryRepository) UpsertBySub(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	cur, ok := r.store[a.Sub]
	if !ok {
		cur = models.Admin{ID: primitive.NewObjectID().Hex(), Sub: a.Sub, CreatedAt: now}
	}
	cur.Username, cur.Email, cur.Name, cur.Source = a.Username, a.Email, a.Name, a.Source
	cur.LastLoginAt = now
	r.store[a.Sub] = cur
	out := cur
	return &out, nil
}

func (r *MemoryRepository) GetBySub(ctx context.Context, sub string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.store[sub]
	if !ok {
		return nil, nil
	}
	return &a, nil
}
