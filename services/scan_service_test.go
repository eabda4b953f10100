package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gottatrackem/backend/adapters"
)

func TestIdentify_MergesBothOutputsVerbatim(t *testing.T) {
	svc := NewScanService(adapters.NewOCRAdapter(), adapters.NewImageMatchAdapter(), nil)

	result, err := svc.Identify(context.Background(), []byte("fake-image"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "4", result.OCR.Number)
	assert.Equal(t, "base1", result.OCR.SetHint)
	assert.InDelta(t, 0.62, result.OCR.Confidence, 0.0001)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "base1-4", result.Candidates[0].CardID)
	assert.InDelta(t, 0.88, result.Candidates[0].Score, 0.0001)
	assert.Equal(t, "base1-3", result.Candidates[1].CardID)

	assert.Empty(t, result.ArchiveKey, "no archive configured")
}

func TestIdentify_SameImageYieldsSameCandidates(t *testing.T) {
	svc := NewScanService(adapters.NewOCRAdapter(), adapters.NewImageMatchAdapter(), nil)
	ctx := context.Background()

	first, err := svc.Identify(ctx, []byte("same-photo"), "image/jpeg")
	require.NoError(t, err)
	second, err := svc.Identify(ctx, []byte("same-photo"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, first.Candidates, second.Candidates)
}
