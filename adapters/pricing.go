package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/config"
	"github.com/gottatrackem/backend/models"
)

// tokenExpiryMargin is subtracted from the provider's expires_in so a
// token is refreshed before it actually lapses mid-request.
const tokenExpiryMargin = 60 * time.Second

// PricingAdapter exposes the price provider. Quotes are ephemeral and
// never persisted by this backend.
type PricingAdapter interface {
	GetPricesForProducts(ctx context.Context, productIDs []int64) (map[string]models.PricePoint, error)
}

// NewPricingAdapter picks the mock or the live client from configuration.
func NewPricingAdapter(cfg config.AdaptersConfig) PricingAdapter {
	if cfg.UseMocks {
		return NewMockPricingAdapter()
	}
	return &tcgPlayerAdapter{
		tokenURL:   cfg.TCGPlayer.TokenURL,
		baseURL:    cfg.TCGPlayer.BaseURL,
		publicKey:  cfg.TCGPlayer.PublicKey,
		privateKey: cfg.TCGPlayer.PrivateKey,
		client:     &http.Client{Timeout: providerTimeout},
		now:        time.Now,
	}
}

type tcgPlayerAdapter struct {
	tokenURL   string
	baseURL    string
	publicKey  string
	privateKey string
	client     *http.Client
	now        func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
	refresh     singleflight.Group
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// token returns a valid bearer token, exchanging credentials when the
// cached one is missing or expired. Concurrent callers share one exchange
// through singleflight instead of stampeding the token endpoint.
func (a *tcgPlayerAdapter) token(ctx context.Context) (string, error) {
	a.mu.Lock()
	if a.accessToken != "" && a.now().Before(a.expiresAt) {
		tok := a.accessToken
		a.mu.Unlock()
		return tok, nil
	}
	a.mu.Unlock()

	v, err, _ := a.refresh.Do("token", func() (any, error) {
		a.mu.Lock()
		if a.accessToken != "" && a.now().Before(a.expiresAt) {
			tok := a.accessToken
			a.mu.Unlock()
			return tok, nil
		}
		a.mu.Unlock()
		return a.exchange(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (a *tcgPlayerAdapter) exchange(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", a.publicKey)
	form.Set("client_secret", a.privateKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &apperrors.AuthenticationError{Provider: "tcgplayer", Detail: "failed to build token request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &apperrors.AuthenticationError{Provider: "tcgplayer", Detail: "token request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &apperrors.AuthenticationError{
			Provider: "tcgplayer",
			Detail:   fmt.Sprintf("token endpoint returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", &apperrors.AuthenticationError{Provider: "tcgplayer", Detail: "failed to decode token response", Err: err}
	}
	if tok.AccessToken == "" {
		return "", &apperrors.AuthenticationError{Provider: "tcgplayer", Detail: "token response missing access_token"}
	}
	if tok.ExpiresIn == 0 {
		tok.ExpiresIn = 3600
	}

	a.mu.Lock()
	a.accessToken = tok.AccessToken
	a.expiresAt = a.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryMargin)
	a.mu.Unlock()

	return tok.AccessToken, nil
}

func (a *tcgPlayerAdapter) GetPricesForProducts(ctx context.Context, productIDs []int64) (map[string]models.PricePoint, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(productIDs))
	for i, id := range productIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/product/"+strings.Join(ids, ","), nil)
	if err != nil {
		return nil, &apperrors.GatewayError{Provider: "tcgplayer", Detail: "failed to build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &apperrors.GatewayError{Provider: "tcgplayer", Detail: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &apperrors.GatewayError{
			Provider: "tcgplayer",
			Status:   resp.StatusCode,
			Detail:   fmt.Sprintf("upstream error: %s", string(body)),
		}
	}

	prices := make(map[string]models.PricePoint)
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return nil, &apperrors.GatewayError{Provider: "tcgplayer", Status: resp.StatusCode, Detail: "failed to decode response", Err: err}
	}
	return prices, nil
}
