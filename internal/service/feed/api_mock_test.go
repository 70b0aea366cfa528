package feed

import (
	"context"
	"sync"

	"github.com/plateful/mealscan/internal/domain"
)

var _ feedAPI = &feedAPIMock{}

type feedAPIMock struct {
	GetMealsFunc func(ctx context.Context, dateISO string) (domain.DailyFeed, error)

	calls struct {
		GetMeals []struct {
			DateISO string
		}
	}
	lockGetMeals sync.RWMutex
}

func (mock *feedAPIMock) GetMeals(ctx context.Context, dateISO string) (domain.DailyFeed, error) {
	if mock.GetMealsFunc == nil {
		panic("feedAPIMock.GetMealsFunc: method is nil but feedAPI.GetMeals was just called")
	}
	mock.lockGetMeals.Lock()
	mock.calls.GetMeals = append(mock.calls.GetMeals, struct{ DateISO string }{DateISO: dateISO})
	mock.lockGetMeals.Unlock()
	return mock.GetMealsFunc(ctx, dateISO)
}

func (mock *feedAPIMock) GetMealsCalls() []struct{ DateISO string } {
	mock.lockGetMeals.RLock()
	calls := mock.calls.GetMeals
	mock.lockGetMeals.RUnlock()
	return calls
}
