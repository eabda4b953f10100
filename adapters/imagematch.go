package adapters

import (
	"context"
	"hash/fnv"

	lru "github.com/hashicorp/golang-lru"

	"github.com/gottatrackem/backend/models"
)

const matchCacheSize = 256

// ImageMatchAdapter returns visually similar catalog cards for an image.
// Candidates are unranked beyond the provider's own scores.
type ImageMatchAdapter interface {
	Similar(ctx context.Context, image []byte, topK int) ([]models.MatchCandidate, error)
}

// NewImageMatchAdapter returns the stub matcher. Like OCR, there is no
// live similarity backend yet.
func NewImageMatchAdapter() ImageMatchAdapter {
	cache, _ := lru.New(matchCacheSize)
	return &mockImageMatchAdapter{cache: cache}
}

// mockImageMatchAdapter serves placeholder candidates. Results are cached
// by a hash of the image bytes so rescanning the same photo returns the
// same candidates.
type mockImageMatchAdapter struct {
	cache *lru.Cache
}

func (a *mockImageMatchAdapter) Similar(_ context.Context, image []byte, topK int) ([]models.MatchCandidate, error) {
	key := imageKey(image)
	if cached, ok := a.cache.Get(key); ok {
		return clip(cached.([]models.MatchCandidate), topK), nil
	}

	candidates := []models.MatchCandidate{
		{CardID: "base1-4", Score: 0.88},
		{CardID: "base1-3", Score: 0.76},
	}
	a.cache.Add(key, candidates)
	return clip(candidates, topK), nil
}

func imageKey(image []byte) uint64 {
	h := fnv.New64a()
	h.Write(image)
	return h.Sum64()
}

func clip(candidates []models.MatchCandidate, topK int) []models.MatchCandidate {
	if topK > 0 && len(candidates) > topK {
		return candidates[:topK]
	}
	return candidates
}
