package mealapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/plateful/mealscan/internal/domain"
)

// User-facing messages for failed meal updates, keyed by HTTP status.
// The UI shows these verbatim; treat the table as a contract.
const (
	updateMsgNotFound  = "Meal not found. It may have been deleted."
	updateMsgForbidden = "You don't have permission to change this meal."
	updateMsgInvalid   = "Those changes look invalid. Please review and try again."
	updateMsgServer    = "Server error. Please try again."
)

// updateMealMessage maps an HTTP status to its user-facing string.
// 401 deliberately falls into the generic bucket pending product input.
func updateMealMessage(status int) string {
	switch {
	case status == http.StatusNotFound:
		return updateMsgNotFound
	case status == http.StatusForbidden:
		return updateMsgForbidden
	case status == http.StatusBadRequest:
		return updateMsgInvalid
	case status >= 500:
		return updateMsgServer
	default:
		return fmt.Sprintf("Failed to update meal (Error %d).", status)
	}
}

// SaveMeal persists a new meal log and returns the created record.
func (c *Client) SaveMeal(ctx context.Context, meal domain.MealLog) (domain.MealLog, error) {
	uid, err := uidFromCtx(ctx)
	if err != nil {
		return domain.MealLog{}, err
	}

	var resp mealLogPayload
	req := saveMealRequestFromDomain(uid, meal)
	if err := c.doJSON(ctx, http.MethodPost, "/v1/meals", nil, req, &resp, false); err != nil {
		return domain.MealLog{}, fmt.Errorf("save meal: %w: %w", domain.ErrPersistence, err)
	}

	return resp.toDomain(), nil
}

// UpdateMeal applies a partial update. Non-2xx responses map to the
// status-keyed message table via UpdateMealError.
func (c *Client) UpdateMeal(ctx context.Context, mealID string, patch domain.MealPatch) (domain.MealLog, error) {
	uid, err := uidFromCtx(ctx)
	if err != nil {
		return domain.MealLog{}, err
	}

	req := updateMealRequest{
		UID:               uid,
		MealID:            mealID,
		DishTitle:         patch.DishTitle,
		PortionMultiplier: patch.PortionMultiplier,
		ImageURL:          patch.ImageURL,
	}
	if patch.MealType != nil {
		mt := string(*patch.MealType)
		req.MealType = &mt
	}

	var resp mealLogPayload
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/meals", nil, req, &resp, false); err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return domain.MealLog{}, &domain.UpdateMealError{
				StatusCode: se.Status,
				Message:    updateMealMessage(se.Status),
			}
		}
		return domain.MealLog{}, fmt.Errorf("update meal %s: %w: %w", mealID, domain.ErrPersistence, err)
	}

	return resp.toDomain(), nil
}

// DeleteMeal removes a meal log.
func (c *Client) DeleteMeal(ctx context.Context, mealID string) error {
	uid, err := uidFromCtx(ctx)
	if err != nil {
		return err
	}

	req := deleteMealRequest{UID: uid, MealID: mealID}
	if err := c.doJSON(ctx, http.MethodDelete, "/v1/meals", nil, req, nil, false); err != nil {
		return fmt.Errorf("delete meal %s: %w: %w", mealID, domain.ErrPersistence, err)
	}

	return nil
}

// GetMeals fetches one day's feed. dateISO may be empty for "today" as
// decided server-side.
func (c *Client) GetMeals(ctx context.Context, dateISO string) (domain.DailyFeed, error) {
	uid, err := uidFromCtx(ctx)
	if err != nil {
		return domain.DailyFeed{}, err
	}

	query := url.Values{"uid": {uid}}
	if dateISO != "" {
		query.Set("dateISO", dateISO)
	}

	var resp feedResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/meals", query, nil, &resp, true); err != nil {
		return domain.DailyFeed{}, fmt.Errorf("get meals: %w: %w", domain.ErrFetch, err)
	}

	return resp.toDomain(dateISO), nil
}

// GetMealHistory fetches per-day aggregates for an inclusive date range.
func (c *Client) GetMealHistory(ctx context.Context, startDate, endDate string) ([]domain.HistoryDay, error) {
	uid, err := uidFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"uid":       {uid},
		"startDate": {startDate},
		"endDate":   {endDate},
	}

	var resp historyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/meals/history", query, nil, &resp, true); err != nil {
		return nil, fmt.Errorf("get meal history: %w: %w", domain.ErrFetch, err)
	}

	return resp.toDomain(), nil
}
