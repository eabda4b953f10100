package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gottatrackem/backend/apperrors"
	"github.com/gottatrackem/backend/models"
)

func TestMockCatalog_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	catalog := NewMockCatalogAdapter()
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"char", []string{"base1-4"}},
		{"CHAR", []string{"base1-4"}},
		{"sprig", []string{"sv1-12"}},
		{"base1", []string{"base1-4"}},
		{"sv1", []string{"sv1-12"}},
		{"a", []string{"base1-4", "sv1-12"}},
		{"no-such-card", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := catalog.SearchCards(ctx, tt.query, 1, 50)
			require.NoError(t, err)

			got := make([]string, 0, len(resp.Data))
			for _, card := range resp.Data {
				got = append(got, card.ID)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestMockCatalog_ListSets(t *testing.T) {
	catalog := NewMockCatalogAdapter()

	resp, err := catalog.ListSets(context.Background(), 1, 250)
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "base1", resp.Data[0].ID)
	assert.Equal(t, "sv1", resp.Data[1].ID)
}

func TestLiveCatalog_ForwardsQueryAndAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards", r.URL.Path)
		assert.Equal(t, "name:charizard", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "secret-key", r.Header.Get("X-Api-Key"))
		json.NewEncoder(w).Encode(models.CatalogResponse{
			Data: []models.CardMaster{{ID: "base1-4", Name: "Charizard"}},
		})
	}))
	defer srv.Close()

	adapter := &pokemonTCGAdapter{
		baseURL: srv.URL,
		apiKey:  "secret-key",
		client:  srv.Client(),
	}

	resp, err := adapter.SearchCards(context.Background(), "name:charizard", 2, 25)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Charizard", resp.Data[0].Name)
}

func TestLiveCatalog_UpstreamFailureIsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	adapter := &pokemonTCGAdapter{
		baseURL: srv.URL,
		client:  srv.Client(),
	}

	_, err := adapter.ListSets(context.Background(), 1, 250)
	var gwErr *apperrors.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "pokemontcg", gwErr.Provider)
	assert.Equal(t, http.StatusBadGateway, gwErr.Status)
}

func TestLiveCatalog_TransportFailureIsGatewayError(t *testing.T) {
	adapter := &pokemonTCGAdapter{
		baseURL: "http://127.0.0.1:1",
		client:  &http.Client{},
	}

	_, err := adapter.ListSets(context.Background(), 1, 250)
	var gwErr *apperrors.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Zero(t, gwErr.Status, "no upstream status on transport failure")
}
