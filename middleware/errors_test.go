package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/models"
)

func TestErrorHandler_MapsTaxonomyToStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation error",
			err:        apperrors.NewValidation("cardId", "cardId is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "gateway error",
			err:        &apperrors.GatewayError{Provider: "pokemontcg", Status: 500, Detail: "boom"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "UPSTREAM_ERROR",
		},
		{
			name:       "authentication error",
			err:        &apperrors.AuthenticationError{Provider: "tcgplayer", Detail: "bad creds"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "UPSTREAM_AUTH_ERROR",
		},
		{
			name:       "storage unavailable",
			err:        &apperrors.StorageUnavailable{Reason: "not configured"},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "STORE_UNAVAILABLE",
		},
		{
			name:       "fiber error",
			err:        fiber.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "unknown error",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/boom", func(c *fiber.Ctx) error {
				return tt.err
			})

			req := httptest.NewRequest(http.MethodGet, "/boom", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body models.APIResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestErrorHandler_GatewayErrorCarriesUpstreamStatus(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return &apperrors.GatewayError{Provider: "pokemontcg", Status: 429, Detail: "rate limited"}
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body models.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "429", body.Error.Details["upstream_status"])
	assert.Equal(t, "pokemontcg", body.Error.Details["provider"])
}
