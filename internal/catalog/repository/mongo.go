package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/pkg/logger"
)

// Records are stored with string _id values (hex ObjectIDs) so that ids
// round-trip through JSON and URLs unchanged.
func newID() string { return primitive.NewObjectID().Hex() }

func ensureIndex(col *mongo.Collection, keys bson.D) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys}); err != nil {
		logger.Warnf("create index on %s: %v", col.Name(), err)
	}
}

func decodeAll[T any](ctx context.Context, cur *mongo.Cursor) ([]*T, error) {
	defer cur.Close(ctx)
	out := []*T{}
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

// MongoFAQRepo implements FAQRepository on the faq collection.
type MongoFAQRepo struct {
	col *mongo.Collection
}

func NewMongoFAQRepo(col *mongo.Collection) *MongoFAQRepo {
	return &MongoFAQRepo{col: col}
}

func (m *MongoFAQRepo) Count(ctx context.Context) (int64, error) {
	return m.col.CountDocuments(ctx, bson.M{})
}

func (m *MongoFAQRepo) Insert(ctx context.Context, f *catalog.FAQ) (string, error) {
	f.ID = newID()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if _, err := m.col.InsertOne(ctx, f); err != nil {
		return "", err
	}
	return f.ID, nil
}

func (m *MongoFAQRepo) InsertMany(ctx context.Context, fs []*catalog.FAQ) error {
	docs := make([]interface{}, 0, len(fs))
	now := time.Now().UTC()
	for _, f := range fs {
		f.ID = newID()
		if f.CreatedAt.IsZero() {
			f.CreatedAt = now
		}
		docs = append(docs, f)
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := m.col.InsertMany(ctx, docs)
	return err
}

func (m *MongoFAQRepo) List(ctx context.Context) ([]*catalog.FAQ, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll[catalog.FAQ](ctx, cur)
}

// MongoProductRepo implements ProductRepository on the products collection.
type MongoProductRepo struct {
	col *mongo.Collection
}

func NewMongoProductRepo(col *mongo.Collection) *MongoProductRepo {
	ensureIndex(col, bson.D{{Key: "category", Value: 1}})
	return &MongoProductRepo{col: col}
}

func (m *MongoProductRepo) List(ctx context.Context) ([]*catalog.Product, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return decodeAll[catalog.Product](ctx, cur)
}

func (m *MongoProductRepo) ListByCategory(ctx context.Context, name string) ([]*catalog.Product, error) {
	cur, err := m.col.Find(ctx, bson.M{"category": name})
	if err != nil {
		return nil, err
	}
	return decodeAll[catalog.Product](ctx, cur)
}

func (m *MongoProductRepo) Get(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoProductRepo) Create(ctx context.Context, p *catalog.Product) (string, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	if _, err := m.col.InsertOne(ctx, p); err != nil {
		return "", fmt.Errorf("insert product: %w", err)
	}
	return p.ID, nil
}

func (m *MongoProductRepo) Update(ctx context.Context, id string, patch catalog.ProductPatch) (*catalog.Product, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	if patch.KeyFeatures != nil {
		set["keyFeatures"] = *patch.KeyFeatures
	}
	if patch.Specifications != nil {
		set["specifications"] = *patch.Specifications
	}
	if patch.Unit != nil {
		set["unit"] = *patch.Unit
	}
	if patch.InStock != nil {
		set["inStock"] = *patch.InStock
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p catalog.Product
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoProductRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoCategoryRepo implements CategoryRepository on the categories collection.
type MongoCategoryRepo struct {
	col *mongo.Collection
}

func NewMongoCategoryRepo(col *mongo.Collection) *MongoCategoryRepo {
	ensureIndex(col, bson.D{{Key: "name", Value: 1}})
	return &MongoCategoryRepo{col: col}
}

func (m *MongoCategoryRepo) List(ctx context.Context) ([]*catalog.Category, error) {
	cur, err := m.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll[catalog.Category](ctx, cur)
}

func (m *MongoCategoryRepo) FindByName(ctx context.Context, name string) ([]*catalog.Category, error) {
	cur, err := m.col.Find(ctx, bson.M{"name": name})
	if err != nil {
		return nil, err
	}
	return decodeAll[catalog.Category](ctx, cur)
}

func (m *MongoCategoryRepo) Get(ctx context.Context, id string) (*catalog.Category, error) {
	var c catalog.Category
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (m *MongoCategoryRepo) Create(ctx context.Context, c *catalog.Category) (string, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	if _, err := m.col.InsertOne(ctx, c); err != nil {
		return "", fmt.Errorf("insert category: %w", err)
	}
	return c.ID, nil
}

func (m *MongoCategoryRepo) Update(ctx context.Context, id string, patch catalog.CategoryPatch) (*catalog.Category, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	if patch.ProductCount != nil {
		set["productCount"] = *patch.ProductCount
	}
	if len(set) == 0 {
		return m.Get(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c catalog.Category
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (m *MongoCategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
