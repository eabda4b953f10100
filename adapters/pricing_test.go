package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/models"
)

func newTestPricingAdapter(tokenURL, baseURL string, now func() time.Time) *tcgPlayerAdapter {
	return &tcgPlayerAdapter{
		tokenURL:   tokenURL,
		baseURL:    baseURL,
		publicKey:  "pub",
		privateKey: "priv",
		client:     &http.Client{Timeout: time.Second},
		now:        now,
	}
}

func TestPricing_TokenReusedWithinExpiry(t *testing.T) {
	exchanges := 0
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanges++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, "pub", r.Form.Get("client_id"))
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-1", "expires_in": 3600})
	}))
	defer tokenSrv.Close()

	priceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]models.PricePoint{
			"42": {Market: 10, Low: 5, Mid: 8, High: 20, Source: "TCGplayer"},
		})
	}))
	defer priceSrv.Close()

	adapter := newTestPricingAdapter(tokenSrv.URL, priceSrv.URL, time.Now)

	for i := 0; i < 3; i++ {
		prices, err := adapter.GetPricesForProducts(context.Background(), []int64{42})
		require.NoError(t, err)
		assert.Contains(t, prices, "42")
	}

	assert.Equal(t, 1, exchanges, "token must be exchanged exactly once within its lifetime")
}

func TestPricing_TokenRefreshedAfterExpiry(t *testing.T) {
	exchanges := 0
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanges++
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": fmt.Sprintf("tok-%d", exchanges),
			"expires_in":   120,
		})
	}))
	defer tokenSrv.Close()

	priceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]models.PricePoint{})
	}))
	defer priceSrv.Close()

	current := time.Now()
	adapter := newTestPricingAdapter(tokenSrv.URL, priceSrv.URL, func() time.Time { return current })

	_, err := adapter.GetPricesForProducts(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.Equal(t, 1, exchanges)

	// Still inside expires_in minus the safety margin: no new exchange.
	current = current.Add(30 * time.Second)
	_, err = adapter.GetPricesForProducts(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.Equal(t, 1, exchanges)

	// Past the margin boundary: one refresh.
	current = current.Add(40 * time.Second)
	_, err = adapter.GetPricesForProducts(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.Equal(t, 2, exchanges)
}

func TestPricing_ExchangeFailureIsAuthenticationError(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer tokenSrv.Close()

	adapter := newTestPricingAdapter(tokenSrv.URL, "http://unused.invalid", time.Now)

	_, err := adapter.GetPricesForProducts(context.Background(), []int64{1})
	var authErr *apperrors.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "tcgplayer", authErr.Provider)
}

func TestPricing_UpstreamErrorCarriesStatus(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	}))
	defer tokenSrv.Close()

	priceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer priceSrv.Close()

	adapter := newTestPricingAdapter(tokenSrv.URL, priceSrv.URL, time.Now)

	_, err := adapter.GetPricesForProducts(context.Background(), []int64{1})
	var gwErr *apperrors.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusTooManyRequests, gwErr.Status)
}

func TestMockPricing_QuotesEveryProduct(t *testing.T) {
	adapter := NewMockPricingAdapter()

	prices, err := adapter.GetPricesForProducts(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, prices, 3)

	for _, id := range []string{"1", "2", "3"} {
		point, ok := prices[id]
		require.True(t, ok)
		assert.Equal(t, "TCGplayer", point.Source)
		assert.GreaterOrEqual(t, point.Market, 1.0)
		assert.LessOrEqual(t, point.Market, 500.0)
		assert.NotZero(t, point.Timestamp)
	}
}
