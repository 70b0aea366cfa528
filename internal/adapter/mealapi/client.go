// Package mealapi is the typed HTTP boundary to the remote meal/scan
// backend. It normalizes transport failures into the domain error
// taxonomy and carries no business logic beyond shape normalization.
package mealapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plateful/mealscan/internal/auth"
	"github.com/plateful/mealscan/internal/config"
	"github.com/plateful/mealscan/pkg/ctxutil"
)

// Client calls the remote meal/scan API.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	uploadClient *http.Client
	tokens       auth.TokenSource
	log          *slog.Logger
}

// NewClient creates a Client from configuration. tokens may be nil, in
// which case requests carry no Authorization header.
func NewClient(cfg config.APIConfig, tokens auth.TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		uploadClient: &http.Client{Timeout: cfg.UploadTimeout},
		tokens:       tokens,
		log:          logger.With("adapter", "mealapi"),
	}
}

// NewClientWithURL creates an unauthenticated Client with a custom base
// URL (for testing).
func NewClientWithURL(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		uploadClient: &http.Client{Timeout: 10 * time.Second},
		log:          logger.With("adapter", "mealapi"),
	}
}

// statusError is a non-2xx response before domain mapping.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// uidFromCtx returns the signed-in user's uid, required in every
// request body or query per the backend contract.
func uidFromCtx(ctx context.Context) (string, error) {
	uid, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", fmt.Errorf("mealapi: no uid in context")
	}
	return uid, nil
}

// doJSON executes one JSON request against the API. Mutating calls set
// Content-Type; retry enables a single retry on 5xx or network errors
// and is used for idempotent reads only, never for mutations or status
// polls. out, when non-nil, receives the decoded 2xx body.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any, retry bool) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mealapi: encode body: %w", err)
		}
	}

	c.log.DebugContext(ctx, "api request", slog.String("method", method), slog.String("path", path))

	req, err := c.newRequest(ctx, method, reqURL, payload)
	if err != nil {
		return err
	}

	var resp *http.Response
	if retry {
		resp, err = c.doWithRetry(ctx, req, payload)
	} else {
		resp, err = c.httpClient.Do(req)
	}
	if err != nil {
		c.log.WarnContext(ctx, "api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("mealapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mealapi: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("mealapi: decode json: %w", err)
		}
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, reqURL string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("mealapi: create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := ctxutil.RequestIDFromCtx(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("mealapi: token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The request body is rebuilt from payload before the retry.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, payload []byte) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "api retry", slog.String("url", req.URL.Path), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	retryReq := req.Clone(ctx)
	if payload != nil {
		retryReq.Body = io.NopCloser(bytes.NewReader(payload))
	}

	return c.httpClient.Do(retryReq)
}
