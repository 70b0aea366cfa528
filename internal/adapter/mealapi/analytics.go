package mealapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/plateful/mealscan/internal/domain"
)

// Analytics payloads are opaque to the core: they are decoded by the
// presentation layer, so the client passes raw JSON through.

// GetTrends fetches nutrition trend data for an inclusive date range.
func (c *Client) GetTrends(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	query := url.Values{"startDate": {startDate}, "endDate": {endDate}}
	return c.getAnalytics(ctx, "trends", query)
}

// GetStreaks fetches the user's logging streak data.
func (c *Client) GetStreaks(ctx context.Context) (json.RawMessage, error) {
	return c.getAnalytics(ctx, "streaks", nil)
}

// GetMonthlySummary fetches the aggregate for one month ("YYYY-MM").
func (c *Client) GetMonthlySummary(ctx context.Context, month string) (json.RawMessage, error) {
	return c.getAnalytics(ctx, "monthly", url.Values{"month": {month}})
}

func (c *Client) getAnalytics(ctx context.Context, kind string, query url.Values) (json.RawMessage, error) {
	uid, err := uidFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("uid", uid)

	var payload json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/v1/analytics/"+kind, query, nil, &payload, true); err != nil {
		return nil, fmt.Errorf("get %s: %w: %w", kind, domain.ErrFetch, err)
	}

	return payload, nil
}
