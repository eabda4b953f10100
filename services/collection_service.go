package services

import (
	"context"
	"log/slog"

	"github.com/gottatrackem/backend/database/repositories"
	"github.com/gottatrackem/backend/models"
)

// CollectionService applies collection mutations and records them. Every
// successful add writes exactly one activity entry, merge and create alike.
type CollectionService struct {
	cards    repositories.UserCardRepository
	activity repositories.ActivityRepository
}

func NewCollectionService(cards repositories.UserCardRepository, activity repositories.ActivityRepository) *CollectionService {
	return &CollectionService{cards: cards, activity: activity}
}

// AddCard validates the request, merges it into the user's collection and
// appends the activity record. The delta in the payload is the requested
// quantity, not the resulting total.
func (s *CollectionService) AddCard(ctx context.Context, userID string, req *models.AddUserCardRequest) (*models.AddToCollectionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	card := &models.UserCard{
		UserID:    userID,
		CardID:    req.CardID,
		Finish:    req.Finish,
		Language:  req.Language,
		Condition: req.Condition,
		Quantity:  *req.Quantity,
	}

	id, merged, err := s.cards.AddOrIncrement(ctx, card)
	if err != nil {
		return nil, err
	}

	// The activity record is part of the operation, not optional logging.
	// Every successful add appends exactly one.
	err = s.activity.Append(ctx, &models.Activity{
		UserID: userID,
		Type:   models.EventCollectionUpdated,
		Payload: map[string]any{
			"cardId": req.CardID,
			"delta":  *req.Quantity,
		},
	})
	if err != nil {
		slog.Error("Card stored but activity append failed",
			slog.String("type", "db"),
			slog.String("userId", userID),
			slog.String("cardId", req.CardID),
			slog.String("error", err.Error()))
		return nil, err
	}

	return &models.AddToCollectionResult{ID: id, Merged: merged}, nil
}

// ListCards returns everything the user owns, in store-native order.
func (s *CollectionService) ListCards(ctx context.Context, userID string) ([]models.UserCard, error) {
	return s.cards.GetAllByUserID(ctx, userID)
}

// RecentActivity returns the user's latest activity entries, newest first.
func (s *CollectionService) RecentActivity(ctx context.Context, userID string, limit int64) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.activity.GetRecentByUserID(ctx, userID, limit)
}
