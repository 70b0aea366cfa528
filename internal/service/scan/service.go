// Package scan drives a meal scan from capture to a usable result:
// submit the photo or text, then poll the backend until the job lands
// in a terminal state or the attempt budget runs out.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/plateful/mealscan/internal/config"
	"github.com/plateful/mealscan/internal/domain"
	"github.com/plateful/mealscan/internal/service/resultcache"
)

// scanAPI is the slice of the backend client the scan flow needs.
type scanAPI interface {
	InitPhotoScan(ctx context.Context) (domain.UploadTarget, error)
	UploadImage(ctx context.Context, target domain.UploadTarget, data []byte) error
	QueuePhotoScan(ctx context.Context, scanID, dateISO string) (domain.Submission, error)
	QueueTextScan(ctx context.Context, description, dateISO string) (domain.Submission, error)
	GetScanStatus(ctx context.Context, scanID string) (domain.ScanSnapshot, error)
}

// resultCache receives completed results for immediate reads elsewhere.
type resultCache interface {
	Set(ctx context.Context, key string, result domain.ScanResult)
}

// imageKeeper retains the captured photo locally so the result can show
// it before any server copy exists.
type imageKeeper interface {
	Keep(scanID string, data []byte) (string, error)
	PathFor(scanID string) (string, bool)
}

// Service submits scans and awaits their completion.
type Service struct {
	api    scanAPI
	cache  resultCache
	images imageKeeper
	clock  clockwork.Clock

	maxAttempts  int
	pollInterval time.Duration

	log *slog.Logger
}

// New builds the scan service. images may be nil for clients without
// local photo retention.
func New(api scanAPI, cache resultCache, images imageKeeper, cfg config.ScanConfig, clock clockwork.Clock, logger *slog.Logger) *Service {
	return &Service{
		api:          api,
		cache:        cache,
		images:       images,
		clock:        clock,
		maxAttempts:  cfg.MaxAttempts,
		pollInterval: cfg.PollInterval,
		log:          logger.With("service", "scan"),
	}
}

// SubmitInput describes one scan to queue. Photo is required for camera
// scans, Description for text scans.
type SubmitInput struct {
	Source      domain.ScanSource
	Photo       []byte
	Description string
	DateISO     string
}

// Submit queues a scan and returns the backend's acknowledgement. For
// photo scans it first obtains an upload target, pushes the bytes, and
// keeps a local copy so the finished result can render the photo
// immediately. Local retention is best effort and never fails the scan.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (domain.Submission, error) {
	switch in.Source {
	case domain.ScanSourceText:
		if in.Description == "" {
			return domain.Submission{}, fmt.Errorf("submit scan: %w: empty description", domain.ErrValidation)
		}
		return s.api.QueueTextScan(ctx, in.Description, in.DateISO)

	case domain.ScanSourceCamera:
		if len(in.Photo) == 0 {
			return domain.Submission{}, fmt.Errorf("submit scan: %w: empty photo", domain.ErrValidation)
		}
		return s.submitPhoto(ctx, in)

	default:
		return domain.Submission{}, fmt.Errorf("submit scan: %w: unknown source %q", domain.ErrValidation, in.Source)
	}
}

func (s *Service) submitPhoto(ctx context.Context, in SubmitInput) (domain.Submission, error) {
	target, err := s.api.InitPhotoScan(ctx)
	if err != nil {
		return domain.Submission{}, err
	}

	if err := s.api.UploadImage(ctx, target, in.Photo); err != nil {
		return domain.Submission{}, err
	}

	if s.images != nil {
		if _, err := s.images.Keep(target.ScanID, in.Photo); err != nil {
			s.log.Warn("local photo retention failed",
				slog.String("scan_id", target.ScanID),
				slog.String("error", err.Error()))
		}
	}

	return s.api.QueuePhotoScan(ctx, target.ScanID, in.DateISO)
}

// AwaitCompletion polls the scan at a fixed interval until it reaches a
// terminal state. Transport failures consume attempts like any other
// non-terminal observation. When the budget is exhausted the scan is
// abandoned with ErrScanTimeout; the server may still finish it later.
func (s *Service) AwaitCompletion(ctx context.Context, scanID string) (domain.ScanResult, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		snap, err := s.api.GetScanStatus(ctx, scanID)
		switch {
		case err != nil:
			s.log.Warn("scan status check failed",
				slog.String("scan_id", scanID),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))

		case snap.Status == domain.ScanStatusDone && snap.Result != nil:
			return s.complete(ctx, scanID, *snap.Result), nil

		case snap.Status == domain.ScanStatusFailed, snap.Status == domain.ScanStatusCancelled:
			reason := ""
			if snap.Error != nil {
				reason = *snap.Error
			}
			return domain.ScanResult{}, domain.NewScanFailedError(scanID, reason)

		case snap.Status == domain.ScanStatusDone:
			// Terminal without a payload; give the backend another poll
			// to attach it.
			s.log.Warn("scan done without result", slog.String("scan_id", scanID), slog.Int("attempt", attempt))
		}

		if attempt < s.maxAttempts {
			select {
			case <-s.clock.After(s.pollInterval):
			case <-ctx.Done():
				return domain.ScanResult{}, ctx.Err()
			}
		}
	}

	return domain.ScanResult{}, fmt.Errorf("scan %s: %w", scanID, domain.ErrScanTimeout)
}

// complete stamps the locally kept photo onto the result and caches it.
func (s *Service) complete(ctx context.Context, scanID string, res domain.ScanResult) domain.ScanResult {
	if res.ImageURI == nil && s.images != nil {
		if path, ok := s.images.PathFor(scanID); ok {
			res.ImageURI = &path
		}
	}

	if s.cache != nil {
		s.cache.Set(ctx, resultcache.LatestKey, res)
	}

	return res
}
