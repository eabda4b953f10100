package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/config"
	"github.com/gottatrackem/backend/models"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

// DB wraps the MongoDB client for the document store. A nil *DB means the
// store was never configured; a non-nil DB whose Ping fails means it is
// configured but unreachable. Handlers report the two states distinctly.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to the configured MongoDB deployment. The connection is
// verified with a bounded ping, retried a few times to ride out slow
// container starts; on persistent failure the client is still returned so
// the diagnostic endpoint can keep probing.
func New(ctx context.Context, cfg config.DBConfig) (*DB, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(defaultConnTimeout).
		SetServerSelectionTimeout(defaultConnTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	db := &DB{
		client: client,
		db:     client.Database(cfg.Database),
	}

	for i := 0; i < defaultMaxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
		err = client.Ping(pingCtx, readpref.Primary())
		cancel()
		if err == nil {
			slog.Info("Document store connected",
				slog.String("type", "db"),
				slog.String("database", cfg.Database))
			return db, nil
		}
		time.Sleep(defaultRetryInterval)
	}

	slog.Warn("Document store configured but unreachable, continuing without it",
		slog.String("type", "db"),
		slog.String("database", cfg.Database),
		slog.String("error", err.Error()))
	return db, nil
}

// Collection returns a handle on one of the entity collections.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping verifies the store is reachable right now.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.client.Ping(ctx, readpref.Primary()); err != nil {
		return &apperrors.StorageUnavailable{Reason: "ping failed", Err: err}
	}
	return nil
}

// ListCollectionNames returns the store's collection names, capped for the
// diagnostic endpoint.
func (d *DB) ListCollectionNames(ctx context.Context, limit int) ([]string, error) {
	names, err := d.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, &apperrors.StorageUnavailable{Reason: "failed to list collections", Err: err}
	}
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// compound index on the merge key backs the upsert invariant: at most one
// usercard per (userId, cardId, finish, language).
func (d *DB) EnsureIndexes(ctx context.Context) error {
	userCards := d.Collection(models.CollectionUserCard)
	_, err := userCards.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "cardId", Value: 1},
				{Key: "finish", Value: 1},
				{Key: "language", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create usercard indexes: %w", err)
	}

	activity := d.Collection(models.CollectionActivity)
	_, err = activity.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create activity index: %w", err)
	}

	share := d.Collection(models.CollectionShare)
	_, err = share.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create share index: %w", err)
	}

	return nil
}

// Close disconnects the client.
func (d *DB) Close(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}
	if err := d.client.Disconnect(ctx); err != nil {
		slog.Error("Failed to disconnect document store",
			slog.String("type", "db"),
			slog.String("error", err.Error()))
	}
}
