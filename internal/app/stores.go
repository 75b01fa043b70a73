// Package app assembles the repositories and services shared by the HTTP
// server and the operator CLI.
package app

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/meridiantrade/catalog-services/internal/catalog/repository"
	"github.com/meridiantrade/catalog-services/internal/catalog/service"
	"github.com/meridiantrade/catalog-services/internal/config"
	contactrepo "github.com/meridiantrade/catalog-services/internal/contact/repository"
	"github.com/meridiantrade/catalog-services/internal/database"
	"github.com/meridiantrade/catalog-services/internal/faq"
	"github.com/meridiantrade/catalog-services/internal/sessions"
	"github.com/meridiantrade/catalog-services/internal/users"
	"github.com/meridiantrade/catalog-services/pkg/logger"
)

const mongoAttempts = 5

// Stores holds the document-store backed services. Mongo is nil when the
// process runs on in-memory collections.
type Stores struct {
	Mongo    *mongo.Client
	Catalog  *service.Service
	FAQs     *faq.Service
	Contacts contactrepo.Repository
	Sessions sessions.Repository
	Admins   users.Repository
}

// OpenStores connects to MongoDB when MONGODB_URI is set and falls back to
// in-memory collections otherwise, or when the connection cannot be made.
func OpenStores(ctx context.Context, cfg *config.Config) *Stores {
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoAttempts)
		if err == nil {
			logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)
			return mongoStores(client, cfg.MongoDB.Database)
		}
		logger.Warnf("%v; falling back to in-memory collections", err)
	}
	return MemoryStores()
}

func mongoStores(client *mongo.Client, dbName string) *Stores {
	db := client.Database(dbName)
	return &Stores{
		Mongo: client,
		Catalog: service.NewService(
			repository.NewMongoProductRepo(db.Collection(database.ProductCollection)),
			repository.NewMongoCategoryRepo(db.Collection(database.CategoryCollection)),
		),
		FAQs:     faq.NewService(repository.NewMongoFAQRepo(db.Collection(database.FAQCollection))),
		Contacts: contactrepo.NewMongoRepo(db.Collection(database.ContactCollection)),
		Sessions: sessions.NewMongoRepository(db.Collection(database.SessionCollection)),
		Admins:   users.NewMongoRepository(db.Collection(database.AdminCollection)),
	}
}

// MemoryStores returns stores backed by process memory.
func MemoryStores() *Stores {
	return &Stores{
		Catalog:  service.NewMemoryService(),
		FAQs:     faq.NewMemoryService(),
		Contacts: contactrepo.NewMemoryRepo(),
		Sessions: sessions.NewMemoryRepository(),
		Admins:   users.NewMemoryRepository(),
	}
}

// Ping reports whether the document store is reachable. In-memory stores
// are always reachable.
func (s *Stores) Ping(ctx context.Context) error {
	if s.Mongo == nil {
		return nil
	}
	return s.Mongo.Ping(ctx, nil)
}

// Close disconnects from MongoDB.
func (s *Stores) Close(ctx context.Context) {
	if s.Mongo != nil {
		_ = s.Mongo.Disconnect(ctx)
	}
}
