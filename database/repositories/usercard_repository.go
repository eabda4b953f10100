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

// UserCardRepository persists owned card variants. Adds for the same
// (userId, cardId, finish, language) merge into one record by incrementing
// quantity; everything else inserts.
type UserCardRepository interface {
	AddOrIncrement(ctx context.Context, card *models.UserCard) (id string, merged bool, err error)
	GetAllByUserID(ctx context.Context, userID string) ([]models.UserCard, error)
}

type userCardRepository struct {
	db *database.DB
}

func NewUserCardRepository(db *database.DB) UserCardRepository {
	return &userCardRepository{db: db}
}

// AddOrIncrement performs the merge as a single upsert so two concurrent
// adds for the same variant cannot race into duplicate records. The
// candidate _id is only applied on insert; when the returned document
// carries a different _id an existing record absorbed the quantity.
func (r *userCardRepository) AddOrIncrement(ctx context.Context, card *models.UserCard) (string, bool, error) {
	now := time.Now().UTC()
	candidateID := uuid.NewString()

	filter := bson.M{
		"userId":   card.UserID,
		"cardId":   card.CardID,
		"finish":   card.Finish,
		"language": card.Language,
	}
	update := bson.M{
		"$inc": bson.M{"quantity": card.Quantity},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"_id":       candidateID,
			"userId":    card.UserID,
			"cardId":    card.CardID,
			"finish":    card.Finish,
			"language":  card.Language,
			"condition": card.Condition,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result models.UserCard
	err := r.db.Collection(models.CollectionUserCard).
		FindOneAndUpdate(ctx, filter, update, opts).
		Decode(&result)
	if err != nil {
		return "", false, &apperrors.StorageUnavailable{Reason: "failed to upsert user card", Err: err}
	}

	return result.ID, result.ID != candidateID, nil
}

func (r *userCardRepository) GetAllByUserID(ctx context.Context, userID string) ([]models.UserCard, error) {
	cursor, err := r.db.Collection(models.CollectionUserCard).
		Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, &apperrors.StorageUnavailable{Reason: "failed to query user cards", Err: err}
	}
	defer cursor.Close(ctx)

	cards := make([]models.UserCard, 0)
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, &apperrors.StorageUnavailable{Reason: "failed to decode user cards", Err: err}
	}
	return cards, nil
}
