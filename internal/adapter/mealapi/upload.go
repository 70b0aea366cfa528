package mealapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/plateful/mealscan/internal/domain"
)

// UploadImage hands photo bytes to a signed upload target. The method
// and headers come from the target descriptor; the client sequences the
// upload without interpreting them.
func (c *Client) UploadImage(ctx context.Context, target domain.UploadTarget, data []byte) error {
	method := target.UploadMethod
	if method == "" {
		method = http.MethodPut
	}

	req, err := http.NewRequestWithContext(ctx, method, target.UploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("upload image: %w: %w", domain.ErrUpload, err)
	}
	for k, v := range target.UploadHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.uploadClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload image: %w: %w", domain.ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload image: %w: unexpected status %d", domain.ErrUpload, resp.StatusCode)
	}

	return nil
}
