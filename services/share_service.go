package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/gottatrackem/backend/database/repositories"
	"github.com/gottatrackem/backend/models"
)

// shareTokenBytes sizes the random token. 24 bytes of entropy encode to a
// 32 character URL-safe string.
const shareTokenBytes = 24

// ShareService issues opaque share tokens. Tokens are write-only here;
// redemption lives in a different surface.
type ShareService struct {
	shares repositories.ShareRepository
}

func NewShareService(shares repositories.ShareRepository) *ShareService {
	return &ShareService{shares: shares}
}

// Create mints a token, persists the binding and returns it. ExpiresAt is
// stored as the caller supplied it; this backend never interprets it.
func (s *ShareService) Create(ctx context.Context, req *models.ShareCreateRequest) (*models.ShareToken, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	share := &models.ShareToken{
		UserID:    req.UserID,
		Token:     token,
		Scope:     req.Scope,
		ExpiresAt: req.ExpiresAt,
	}
	if err := s.shares.Create(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

func generateToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
