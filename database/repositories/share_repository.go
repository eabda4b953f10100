package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/database"
	"github.com/gottatrackem/backend/models"
)

// ErrNotFound reports a missing document on lookups that require one.
var ErrNotFound = errors.New("not found")

// ShareRepository persists issued share tokens. This backend only writes
// and reads them back; redemption is out of scope.
type ShareRepository interface {
	Create(ctx context.Context, share *models.ShareToken) error
	GetByToken(ctx context.Context, token string) (*models.ShareToken, error)
}

type shareRepository struct {
	db *database.DB
}

func NewShareRepository(db *database.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, share *models.ShareToken) error {
	if share.ID == "" {
		share.ID = uuid.NewString()
	}
	if share.CreatedAt.IsZero() {
		share.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Collection(models.CollectionShare).InsertOne(ctx, share)
	if err != nil {
		return &apperrors.StorageUnavailable{Reason: "failed to store share token", Err: err}
	}
	return nil
}

func (r *shareRepository) GetByToken(ctx context.Context, token string) (*models.ShareToken, error) {
	var share models.ShareToken
	err := r.db.Collection(models.CollectionShare).
		FindOne(ctx, bson.M{"token": token}).
		Decode(&share)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &apperrors.StorageUnavailable{Reason: "failed to load share token", Err: err}
	}
	return &share, nil
}
