// Package adapters wraps the external providers behind small interfaces.
// Each provider has a live client and a mock; the choice is made once at
// construction time from configuration, never per request.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/config"
	"github.com/gottatrackem/backend/models"
)

const providerTimeout = 20 * time.Second

// CatalogAdapter exposes the card catalog provider. Responses are relayed
// as the provider shapes them; this backend adds nothing.
type CatalogAdapter interface {
	ListSets(ctx context.Context, page, pageSize int) (*models.SetListResponse, error)
	SearchCards(ctx context.Context, query string, page, pageSize int) (*models.CatalogResponse, error)
}

// NewCatalogAdapter picks the mock or the live client from configuration.
func NewCatalogAdapter(cfg config.AdaptersConfig) CatalogAdapter {
	if cfg.UseMocks {
		return NewMockCatalogAdapter()
	}
	return &pokemonTCGAdapter{
		baseURL: cfg.PokemonTCG.BaseURL,
		apiKey:  cfg.PokemonTCG.APIKey,
		client:  &http.Client{Timeout: providerTimeout},
	}
}

type pokemonTCGAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func (a *pokemonTCGAdapter) ListSets(ctx context.Context, page, pageSize int) (*models.SetListResponse, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	var out models.SetListResponse
	if err := a.get(ctx, "/sets", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *pokemonTCGAdapter) SearchCards(ctx context.Context, query string, page, pageSize int) (*models.CatalogResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	var out models.CatalogResponse
	if err := a.get(ctx, "/cards", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *pokemonTCGAdapter) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return &apperrors.GatewayError{Provider: "pokemontcg", Detail: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if a.apiKey != "" {
		req.Header.Set("X-Api-Key", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return &apperrors.GatewayError{Provider: "pokemontcg", Detail: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &apperrors.GatewayError{
			Provider: "pokemontcg",
			Status:   resp.StatusCode,
			Detail:   fmt.Sprintf("upstream error: %s", string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperrors.GatewayError{Provider: "pokemontcg", Status: resp.StatusCode, Detail: "failed to decode response", Err: err}
	}
	return nil
}
