package adapters

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/gottatrackem/backend/models"
)

// mockCatalogAdapter serves a fixed two-set sample so the catalog surface
// works without credentials. A card matches when the query is a
// case-insensitive substring of its name or its set id; fuzzy scoring only
// orders the matches, it never decides membership.
type mockCatalogAdapter struct {
	sets  []models.Set
	cards []models.CardMaster
}

func NewMockCatalogAdapter() CatalogAdapter {
	return &mockCatalogAdapter{
		sets: []models.Set{
			{
				ID: "base1", Name: "Base Set", Series: "Base",
				Total: 102, PrintedTotal: 102, ReleaseDate: "1999/01/09",
				Legalities: map[string]any{"standard": "not_legal", "expanded": "not_legal"},
			},
			{
				ID: "sv1", Name: "Scarlet & Violet", Series: "Scarlet & Violet",
				Total: 258, PrintedTotal: 258, ReleaseDate: "2023/03/31",
				Legalities: map[string]any{"standard": "legal", "expanded": "legal"},
			},
		},
		cards: []models.CardMaster{
			{
				ID: "base1-4", Name: "Charizard",
				Set:    &models.SetRef{ID: "base1", Name: "Base Set"},
				Number: "4", Rarity: "Rare Holo",
				Images: &models.CardImages{
					Small: "https://images.pokemontcg.io/base1/4.png",
					Large: "https://images.pokemontcg.io/base1/4_hires.png",
				},
				Variants: &models.CardVariants{Normal: false, Holo: true},
			},
			{
				ID: "sv1-12", Name: "Sprigatito",
				Set:    &models.SetRef{ID: "sv1", Name: "Scarlet & Violet"},
				Number: "12", Rarity: "Common",
				Images: &models.CardImages{
					Small: "https://images.pokemontcg.io/sv1/12.png",
					Large: "https://images.pokemontcg.io/sv1/12_hires.png",
				},
				Variants: &models.CardVariants{Normal: true, Reverse: true},
			},
		},
	}
}

func (a *mockCatalogAdapter) ListSets(_ context.Context, _, _ int) (*models.SetListResponse, error) {
	return &models.SetListResponse{Data: a.sets}, nil
}

func (a *mockCatalogAdapter) SearchCards(_ context.Context, query string, _, _ int) (*models.CatalogResponse, error) {
	q := strings.ToLower(query)

	matched := make([]models.CardMaster, 0, len(a.cards))
	for _, card := range a.cards {
		setID := ""
		if card.Set != nil {
			setID = card.Set.ID
		}
		if strings.Contains(strings.ToLower(card.Name), q) ||
			strings.Contains(strings.ToLower(setID), q) {
			matched = append(matched, card)
		}
	}

	return &models.CatalogResponse{Data: rankByName(query, matched)}, nil
}

// rankByName orders matched cards by fuzzy closeness of the query to the
// card name. Cards the scorer cannot rank keep their catalog order at the
// tail.
func rankByName(query string, cards []models.CardMaster) []models.CardMaster {
	if len(cards) < 2 {
		return cards
	}

	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name
	}

	ranked := fuzzy.Find(query, names)
	if len(ranked) == 0 {
		return cards
	}

	seen := make(map[int]bool, len(ranked))
	out := make([]models.CardMaster, 0, len(cards))
	for _, m := range ranked {
		out = append(out, cards[m.Index])
		seen[m.Index] = true
	}
	for i, c := range cards {
		if !seen[i] {
			out = append(out, c)
		}
	}
	return out
}
