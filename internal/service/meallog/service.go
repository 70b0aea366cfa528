// Package meallog turns a confirmed scan result into a persisted meal
// log: portion scaling, the save call, and the best-effort image
// attachment that follows it.
package meallog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plateful/mealscan/internal/domain"
)

// mealAPI is the slice of the backend client used for meal mutations.
type mealAPI interface {
	SaveMeal(ctx context.Context, meal domain.MealLog) (domain.MealLog, error)
	UpdateMeal(ctx context.Context, mealID string, patch domain.MealPatch) (domain.MealLog, error)
	DeleteMeal(ctx context.Context, mealID string) error
}

// ImageUploader pushes a kept photo to remote storage keyed by meal id
// and returns its public URL. The transport is a collaborator concern;
// the service only sequences it.
type ImageUploader interface {
	Upload(ctx context.Context, mealID string, data []byte) (string, error)
}

// imageStore reads locally kept photos by path.
type imageStore interface {
	Read(path string) ([]byte, error)
}

// Service reconciles confirmed scan results into meal logs.
type Service struct {
	api      mealAPI
	uploader ImageUploader
	images   imageStore
	log      *slog.Logger
}

// New builds the service. uploader and images may be nil; photo
// attachment is then skipped and meals persist without a remote image.
func New(api mealAPI, uploader ImageUploader, images imageStore, logger *slog.Logger) *Service {
	return &Service{
		api:      api,
		uploader: uploader,
		images:   images,
		log:      logger.With("service", "meallog"),
	}
}

// ConfirmInput is a displayed scan result plus the user's choices.
type ConfirmInput struct {
	Result            domain.ScanResult
	ScanID            string
	MealType          domain.MealType
	PortionMultiplier float64
}

// AddOutcome distinguishes the two persistence results explicitly: the
// meal record always exists on success, the image may not.
type AddOutcome struct {
	Meal           domain.MealLog
	ImagePersisted bool
}

// ConfirmAdd persists a confirmed result as a ready meal log. The save
// must succeed before any image work happens, so a failed save never
// leaves an orphaned image. For photo scans the locally kept image is
// then uploaded and attached; any failure there is logged and absorbed,
// reported only through AddOutcome.ImagePersisted.
func (s *Service) ConfirmAdd(ctx context.Context, in ConfirmInput) (AddOutcome, error) {
	if in.PortionMultiplier <= 0 {
		return AddOutcome{}, fmt.Errorf("confirm add: portion multiplier %v: %w", in.PortionMultiplier, domain.ErrValidation)
	}
	if _, err := domain.ParseMealType(string(in.MealType)); err != nil {
		return AddOutcome{}, fmt.Errorf("confirm add: %w", err)
	}

	scaled := scaleResult(in.Result, in.PortionMultiplier)

	meal := domain.MealLog{
		DishTitle:         scaled.DishTitle,
		Status:            domain.MealStatusReady,
		Ingredients:       scaled.Ingredients,
		TotalCalories:     scaled.Totals.Calories,
		Macros:            scaled.Totals.Macros,
		MealType:          in.MealType,
		PortionMultiplier: in.PortionMultiplier,
	}
	if in.ScanID != "" {
		scanID := in.ScanID
		meal.ScanID = &scanID
	}

	saved, err := s.api.SaveMeal(ctx, meal)
	if err != nil {
		return AddOutcome{}, fmt.Errorf("confirm add: %w", err)
	}

	out := AddOutcome{Meal: saved}
	if in.Result.ImageURI != nil && saved.ID != "" {
		if withImage, ok := s.attachImage(ctx, saved.ID, *in.Result.ImageURI); ok {
			out.Meal = withImage
			out.ImagePersisted = true
		}
	}

	return out, nil
}

// Update applies a partial edit to a meal.
func (s *Service) Update(ctx context.Context, mealID string, patch domain.MealPatch) (domain.MealLog, error) {
	if patch.IsEmpty() {
		return domain.MealLog{}, fmt.Errorf("update meal %s: empty patch: %w", mealID, domain.ErrValidation)
	}
	if patch.PortionMultiplier != nil && *patch.PortionMultiplier <= 0 {
		return domain.MealLog{}, fmt.Errorf("update meal %s: portion multiplier %v: %w", mealID, *patch.PortionMultiplier, domain.ErrValidation)
	}
	return s.api.UpdateMeal(ctx, mealID, patch)
}

// Delete removes a meal.
func (s *Service) Delete(ctx context.Context, mealID string) error {
	return s.api.DeleteMeal(ctx, mealID)
}

// attachImage runs the absorbed-failure image path: read the kept
// photo, upload it under the meal id, attach the returned URL.
func (s *Service) attachImage(ctx context.Context, mealID, localPath string) (domain.MealLog, bool) {
	if s.uploader == nil || s.images == nil {
		s.log.Debug("image attachment skipped, no uploader configured", slog.String("meal_id", mealID))
		return domain.MealLog{}, false
	}

	data, err := s.images.Read(localPath)
	if err != nil {
		s.log.Warn("meal image read failed", slog.String("meal_id", mealID), slog.String("error", err.Error()))
		return domain.MealLog{}, false
	}

	url, err := s.uploader.Upload(ctx, mealID, data)
	if err != nil {
		s.log.Warn("meal image upload failed", slog.String("meal_id", mealID), slog.String("error", err.Error()))
		return domain.MealLog{}, false
	}

	updated, err := s.api.UpdateMeal(ctx, mealID, domain.MealPatch{ImageURL: &url})
	if err != nil {
		s.log.Warn("meal image attach failed", slog.String("meal_id", mealID), slog.String("error", err.Error()))
		return domain.MealLog{}, false
	}

	return updated, true
}

// scaleResult multiplies every per-ingredient quantity and the totals
// by factor. Confidence and identity fields are untouched.
func scaleResult(res domain.ScanResult, factor float64) domain.ScanResult {
	scaled := res
	scaled.Ingredients = make([]domain.Ingredient, len(res.Ingredients))
	for i, ing := range res.Ingredients {
		ing.EstimatedWeightGrams *= factor
		ing.Calories *= factor
		ing.Macros = ing.Macros.Scale(factor)
		scaled.Ingredients[i] = ing
	}
	scaled.Totals = domain.NutritionTotals{
		Calories: res.Totals.Calories * factor,
		Macros:   res.Totals.Macros.Scale(factor),
	}
	return scaled
}
