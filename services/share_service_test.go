package services

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/database/repositories"
	"github.com/gottatrackem/backend/models"
)

type fakeShareRepo struct {
	byToken map[string]*models.ShareToken
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{byToken: make(map[string]*models.ShareToken)}
}

func (r *fakeShareRepo) Create(_ context.Context, share *models.ShareToken) error {
	stored := *share
	r.byToken[share.Token] = &stored
	return nil
}

func (r *fakeShareRepo) GetByToken(_ context.Context, token string) (*models.ShareToken, error) {
	if share, ok := r.byToken[token]; ok {
		return share, nil
	}
	return nil, repositories.ErrNotFound
}

func TestCreateShare_TokenIsRandomAndURLSafe(t *testing.T) {
	repo := newFakeShareRepo()
	svc := NewShareService(repo)
	ctx := context.Background()

	share, err := svc.Create(ctx, &models.ShareCreateRequest{UserID: "u1"})
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(share.Token)
	require.NoError(t, err, "token must be URL-safe base64")
	assert.GreaterOrEqual(t, len(raw), 24, "token must carry at least 24 bytes of entropy")

	other, err := svc.Create(ctx, &models.ShareCreateRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.NotEqual(t, share.Token, other.Token)
}

func TestCreateShare_PersistsBinding(t *testing.T) {
	repo := newFakeShareRepo()
	svc := NewShareService(repo)

	scope := map[string]any{"view": "collection"}
	share, err := svc.Create(context.Background(), &models.ShareCreateRequest{
		UserID:    "u1",
		Scope:     scope,
		ExpiresAt: "2026-12-31T00:00:00Z",
	})
	require.NoError(t, err)

	stored, err := repo.GetByToken(context.Background(), share.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, scope, stored.Scope)
	assert.Equal(t, "2026-12-31T00:00:00Z", stored.ExpiresAt)
}

func TestCreateShare_RequiresUserID(t *testing.T) {
	svc := NewShareService(newFakeShareRepo())

	_, err := svc.Create(context.Background(), &models.ShareCreateRequest{})
	assert.True(t, apperrors.IsValidation(err))
}
