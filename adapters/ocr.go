package adapters

import (
	"context"

	"github.com/gottatrackem/backend/models"
)

// OCRAdapter extracts printed card attributes from an image. Output is
// relayed verbatim; no fusion with the image matcher happens here or
// downstream.
type OCRAdapter interface {
	Extract(ctx context.Context, image []byte) (models.OCRResult, error)
}

// NewOCRAdapter returns the stub extractor. No live OCR backend exists
// yet, so the mock flag has no live counterpart to select.
func NewOCRAdapter() OCRAdapter {
	return &mockOCRAdapter{}
}

type mockOCRAdapter struct{}

func (a *mockOCRAdapter) Extract(_ context.Context, _ []byte) (models.OCRResult, error) {
	return models.OCRResult{Number: "4", SetHint: "base1", Confidence: 0.62}, nil
}
