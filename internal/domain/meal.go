package domain

import (
	"fmt"
	"sort"
	"time"
)

// MealType slots a meal into the user's day.
type MealType string

const (
	MealTypeBreakfast   MealType = "breakfast"
	MealTypeBrunch      MealType = "brunch"
	MealTypeLunch       MealType = "lunch"
	MealTypeSnack       MealType = "snack"
	MealTypeDinner      MealType = "dinner"
	MealTypePreWorkout  MealType = "pre_workout"
	MealTypePostWorkout MealType = "post_workout"
)

// MealTypes lists all valid meal types in display order.
func MealTypes() []MealType {
	return []MealType{
		MealTypeBreakfast,
		MealTypeBrunch,
		MealTypeLunch,
		MealTypeSnack,
		MealTypeDinner,
		MealTypePreWorkout,
		MealTypePostWorkout,
	}
}

// ParseMealType validates a raw meal type string.
func ParseMealType(raw string) (MealType, error) {
	for _, mt := range MealTypes() {
		if string(mt) == raw {
			return mt, nil
		}
	}
	return "", fmt.Errorf("meal type %q: %w", raw, ErrValidation)
}

// MealStatus is the persisted lifecycle state of a meal log.
type MealStatus string

const (
	MealStatusPendingScan MealStatus = "pending_scan"
	MealStatusReady       MealStatus = "ready"
	MealStatusCancelled   MealStatus = "cancelled"
)

// MealLog is the persisted record of a meal added to a user's day.
// The backend owns it; the client holds a read/write-through view.
type MealLog struct {
	ID                string
	DishTitle         string
	Status            MealStatus
	ScanID            *string // back-reference for lookup only, never ownership
	Ingredients       []Ingredient
	TotalCalories     float64
	Macros            Macros
	CreatedAt         *time.Time
	ImageURL          *string
	MealType          MealType
	PortionMultiplier float64
}

// HasGeneratingIngredient reports whether any ingredient thumbnail is
// still being generated server-side.
func (m MealLog) HasGeneratingIngredient() bool {
	for _, ing := range m.Ingredients {
		if ing.IsGenerating() {
			return true
		}
	}
	return false
}

// DailyFeed is one calendar day's meal logs plus aggregate totals.
// It is recomputed on every fetch and never persisted client-side.
type DailyFeed struct {
	DateISO string
	Logs    []MealLog
	Totals  NutritionTotals
}

// HistoryDay is one day's aggregate in a meal history range.
type HistoryDay struct {
	DateISO   string
	Totals    NutritionTotals
	MealCount int
}

// SortLogs orders meal logs for display: pending_scan entries first,
// then newest first within each status group. Logs without a created
// time sort as the epoch (oldest).
func SortLogs(logs []MealLog) {
	createdAt := func(m MealLog) time.Time {
		if m.CreatedAt == nil {
			return time.Unix(0, 0)
		}
		return *m.CreatedAt
	}
	sort.SliceStable(logs, func(i, j int) bool {
		iPending := logs[i].Status == MealStatusPendingScan
		jPending := logs[j].Status == MealStatusPendingScan
		if iPending != jPending {
			return iPending
		}
		return createdAt(logs[i]).After(createdAt(logs[j]))
	})
}

// MealPatch is a partial meal update. Nil fields are left unchanged.
type MealPatch struct {
	DishTitle         *string
	MealType          *MealType
	PortionMultiplier *float64
	ImageURL          *string
}

// IsEmpty reports whether the patch changes nothing.
func (p MealPatch) IsEmpty() bool {
	return p.DishTitle == nil && p.MealType == nil && p.PortionMultiplier == nil && p.ImageURL == nil
}
