package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/database"
	"github.com/gottatrackem/backend/models"
)

// ActivityRepository is an append-only event log. Records are never
// updated or deleted.
type ActivityRepository interface {
	Append(ctx context.Context, activity *models.Activity) error
	GetRecentByUserID(ctx context.Context, userID string, limit int64) ([]models.Activity, error)
}

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Collection(models.CollectionActivity).InsertOne(ctx, activity)
	if err != nil {
		return &apperrors.StorageUnavailable{Reason: "failed to append activity", Err: err}
	}
	return nil
}

func (r *activityRepository) GetRecentByUserID(ctx context.Context, userID string, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.db.Collection(models.CollectionActivity).
		Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, &apperrors.StorageUnavailable{Reason: "failed to query activity", Err: err}
	}
	defer cursor.Close(ctx)

	entries := make([]models.Activity, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, &apperrors.StorageUnavailable{Reason: "failed to decode activity", Err: err}
	}
	return entries, nil
}
