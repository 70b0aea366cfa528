package meallog

import (
	"context"
	"sync"

	"github.com/plateful/mealscan/internal/domain"
)

var _ mealAPI = &mealAPIMock{}

type mealAPIMock struct {
	SaveMealFunc   func(ctx context.Context, meal domain.MealLog) (domain.MealLog, error)
	UpdateMealFunc func(ctx context.Context, mealID string, patch domain.MealPatch) (domain.MealLog, error)
	DeleteMealFunc func(ctx context.Context, mealID string) error

	calls struct {
		SaveMeal []struct {
			Meal domain.MealLog
		}
		UpdateMeal []struct {
			MealID string
			Patch  domain.MealPatch
		}
		DeleteMeal []struct {
			MealID string
		}
	}
	lockSaveMeal   sync.RWMutex
	lockUpdateMeal sync.RWMutex
	lockDeleteMeal sync.RWMutex
}

func (mock *mealAPIMock) SaveMeal(ctx context.Context, meal domain.MealLog) (domain.MealLog, error) {
	if mock.SaveMealFunc == nil {
		panic("mealAPIMock.SaveMealFunc: method is nil but mealAPI.SaveMeal was just called")
	}
	mock.lockSaveMeal.Lock()
	mock.calls.SaveMeal = append(mock.calls.SaveMeal, struct{ Meal domain.MealLog }{Meal: meal})
	mock.lockSaveMeal.Unlock()
	return mock.SaveMealFunc(ctx, meal)
}

func (mock *mealAPIMock) SaveMealCalls() []struct{ Meal domain.MealLog } {
	mock.lockSaveMeal.RLock()
	calls := mock.calls.SaveMeal
	mock.lockSaveMeal.RUnlock()
	return calls
}

func (mock *mealAPIMock) UpdateMeal(ctx context.Context, mealID string, patch domain.MealPatch) (domain.MealLog, error) {
	if mock.UpdateMealFunc == nil {
		panic("mealAPIMock.UpdateMealFunc: method is nil but mealAPI.UpdateMeal was just called")
	}
	callInfo := struct {
		MealID string
		Patch  domain.MealPatch
	}{MealID: mealID, Patch: patch}
	mock.lockUpdateMeal.Lock()
	mock.calls.UpdateMeal = append(mock.calls.UpdateMeal, callInfo)
	mock.lockUpdateMeal.Unlock()
	return mock.UpdateMealFunc(ctx, mealID, patch)
}

func (mock *mealAPIMock) UpdateMealCalls() []struct {
	MealID string
	Patch  domain.MealPatch
} {
	mock.lockUpdateMeal.RLock()
	calls := mock.calls.UpdateMeal
	mock.lockUpdateMeal.RUnlock()
	return calls
}

func (mock *mealAPIMock) DeleteMeal(ctx context.Context, mealID string) error {
	if mock.DeleteMealFunc == nil {
		panic("mealAPIMock.DeleteMealFunc: method is nil but mealAPI.DeleteMeal was just called")
	}
	mock.lockDeleteMeal.Lock()
	mock.calls.DeleteMeal = append(mock.calls.DeleteMeal, struct{ MealID string }{MealID: mealID})
	mock.lockDeleteMeal.Unlock()
	return mock.DeleteMealFunc(ctx, mealID)
}

func (mock *mealAPIMock) DeleteMealCalls() []struct{ MealID string } {
	mock.lockDeleteMeal.RLock()
	calls := mock.calls.DeleteMeal
	mock.lockDeleteMeal.RUnlock()
	return calls
}
