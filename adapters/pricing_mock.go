package adapters

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/gottatrackem/backend/models"
)

// mockPricingAdapter invents plausible quotes without credentials or a
// token exchange. Every requested product gets a quote.
type mockPricingAdapter struct {
	rng *rand.Rand
}

func NewMockPricingAdapter() PricingAdapter {
	return &mockPricingAdapter{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (a *mockPricingAdapter) GetPricesForProducts(_ context.Context, productIDs []int64) (map[string]models.PricePoint, error) {
	now := time.Now().Unix()
	out := make(map[string]models.PricePoint, len(productIDs))
	for _, pid := range productIDs {
		out[strconv.FormatInt(pid, 10)] = models.PricePoint{
			Market:    a.amount(1, 500),
			Low:       a.amount(1, 400),
			Mid:       a.amount(1, 450),
			High:      a.amount(1, 600),
			Timestamp: now,
			Source:    "TCGplayer",
		}
	}
	return out, nil
}

func (a *mockPricingAdapter) amount(lo, hi float64) float64 {
	v := lo + a.rng.Float64()*(hi-lo)
	return math.Round(v*100) / 100
}
