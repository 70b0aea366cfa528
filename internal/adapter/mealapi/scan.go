package mealapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/plateful/mealscan/internal/domain"
)

// InitPhotoScan obtains a signed upload target for a photo scan.
func (c *Client) InitPhotoScan(ctx context.Context) (domain.UploadTarget, error) {
	uid, err := uidFromCtx(ctx)
	if err != nil {
		return domain.UploadTarget{}, err
	}

	var resp uploadTargetResponse
	body := map[string]string{"uid": uid}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/scan/init", nil, body, &resp, false); err != nil {
		return domain.UploadTarget{}, fmt.Errorf("init photo scan: %w: %w", domain.ErrSubmission, err)
	}

	return resp.toDomain(), nil
}

// QueuePhotoScan queues analysis of a previously uploaded photo.
func (c *Client) QueuePhotoScan(ctx context.Context, scanID, dateISO string) (domain.Submission, error) {
	return c.queueScan(ctx, queueScanRequest{
		ScanID:  scanID,
		DateISO: dateISO,
		Source:  string(domain.ScanSourceCamera),
	})
}

// QueueTextScan queues analysis of a free-text meal description.
func (c *Client) QueueTextScan(ctx context.Context, description, dateISO string) (domain.Submission, error) {
	return c.queueScan(ctx, queueScanRequest{
		TextDescription: description,
		DateISO:         dateISO,
		Source:          string(domain.ScanSourceText),
	})
}

func (c *Client) queueScan(ctx context.Context, req queueScanRequest) (domain.Submission, error) {
	uid, err := uidFromCtx(ctx)
	if err != nil {
		return domain.Submission{}, err
	}
	req.UID = uid

	var resp submissionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/scan", nil, req, &resp, false); err != nil {
		return domain.Submission{}, fmt.Errorf("queue %s scan: %w: %w", req.Source, domain.ErrSubmission, err)
	}

	return resp.toDomain(), nil
}

// GetScanStatus observes a scan job's current state. It never retries:
// the polling state machine owns the cadence.
func (c *Client) GetScanStatus(ctx context.Context, scanID string) (domain.ScanSnapshot, error) {
	var resp scanStatusResponse
	path := "/v1/scan/" + url.PathEscape(scanID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &resp, false); err != nil {
		return domain.ScanSnapshot{}, fmt.Errorf("scan status %s: %w: %w", scanID, domain.ErrFetch, err)
	}

	return resp.toDomain(), nil
}
