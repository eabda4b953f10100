package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/gottatrackem/backend/adapters"
	"github.com/gottatrackem/backend/models"
)

// ScanService runs the identification pipeline for one card photo. OCR and
// image matching run concurrently and their outputs are merged verbatim,
// without fusing them into a single answer.
type ScanService struct {
	ocr     adapters.OCRAdapter
	matcher adapters.ImageMatchAdapter
	archive *SpacesService
	topK    int
}

// NewScanService wires the pipeline. archive may be nil when no bucket is
// configured; archiving is then skipped.
func NewScanService(ocr adapters.OCRAdapter, matcher adapters.ImageMatchAdapter, archive *SpacesService) *ScanService {
	return &ScanService{
		ocr:     ocr,
		matcher: matcher,
		archive: archive,
		topK:    5,
	}
}

// Identify extracts attributes and similar-card candidates from the image.
// Archiving the original image is best effort and never fails the scan.
func (s *ScanService) Identify(ctx context.Context, image []byte, contentType string) (*models.ScanResult, error) {
	var (
		ocrResult  models.OCRResult
		candidates []models.MatchCandidate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ocrResult, err = s.ocr.Extract(gctx, image)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = s.matcher.Similar(gctx, image, s.topK)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &models.ScanResult{
		OCR:        ocrResult,
		Candidates: candidates,
	}

	if s.archive != nil {
		key, err := s.archive.ArchiveScan(ctx, image, contentType)
		if err != nil {
			slog.Warn("Failed to archive scan image",
				slog.String("type", "gateway"),
				slog.String("error", err.Error()))
		} else {
			result.ArchiveKey = key
		}
	}

	return result, nil
}
