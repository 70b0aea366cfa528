package domain

import (
	"errors"
	"testing"
	"time"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestParseMealType(t *testing.T) {
	t.Parallel()

	for _, mt := range MealTypes() {
		got, err := ParseMealType(string(mt))
		if err != nil {
			t.Errorf("ParseMealType(%q): %v", mt, err)
		}
		if got != mt {
			t.Errorf("ParseMealType(%q) = %q", mt, got)
		}
	}

	if _, err := ParseMealType("elevenses"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown meal type: got %v, want ErrValidation", err)
	}
}

func TestSortLogs_PendingScanFirst(t *testing.T) {
	t.Parallel()

	now := time.Now()
	logs := []MealLog{
		{ID: "ready-newer", Status: MealStatusReady, CreatedAt: timePtr(now.Add(-5 * time.Second))},
		{ID: "pending-older", Status: MealStatusPendingScan, CreatedAt: timePtr(now.Add(-10 * time.Second))},
	}

	SortLogs(logs)

	// pending_scan sorts first even though it is older.
	if logs[0].ID != "pending-older" {
		t.Errorf("logs[0] = %s, want pending-older", logs[0].ID)
	}
	if logs[1].ID != "ready-newer" {
		t.Errorf("logs[1] = %s, want ready-newer", logs[1].ID)
	}
}

func TestSortLogs_NewestFirstWithinGroup(t *testing.T) {
	t.Parallel()

	now := time.Now()
	logs := []MealLog{
		{ID: "a", Status: MealStatusReady, CreatedAt: timePtr(now.Add(-time.Hour))},
		{ID: "b", Status: MealStatusReady, CreatedAt: timePtr(now)},
		{ID: "c", Status: MealStatusReady, CreatedAt: timePtr(now.Add(-time.Minute))},
	}

	SortLogs(logs)

	want := []string{"b", "c", "a"}
	for i, id := range want {
		if logs[i].ID != id {
			t.Errorf("logs[%d] = %s, want %s", i, logs[i].ID, id)
		}
	}
}

func TestSortLogs_MissingCreatedAtSortsOldest(t *testing.T) {
	t.Parallel()

	now := time.Now()
	logs := []MealLog{
		{ID: "no-time", Status: MealStatusReady},
		{ID: "timed", Status: MealStatusReady, CreatedAt: timePtr(now)},
	}

	SortLogs(logs)

	if logs[0].ID != "timed" {
		t.Errorf("logs[0] = %s, want timed (missing created_at sorts as epoch)", logs[0].ID)
	}
}

func TestMealLog_HasGeneratingIngredient(t *testing.T) {
	t.Parallel()

	m := MealLog{Ingredients: []Ingredient{
		{Name: "rice", ID: strPtr("i1"), ImageURL: strPtr("https://cdn.example/i1.jpg")},
		{Name: "beans", ID: strPtr("i2")},
	}}
	if !m.HasGeneratingIngredient() {
		t.Error("want generating: one ingredient has id without image")
	}

	m.Ingredients[1].ImageURL = strPtr("https://cdn.example/i2.jpg")
	if m.HasGeneratingIngredient() {
		t.Error("want not generating: all images present")
	}

	if (MealLog{}).HasGeneratingIngredient() {
		t.Error("empty meal should not be generating")
	}
}

func TestMealPatch_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(MealPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	mt := MealTypeLunch
	if (MealPatch{MealType: &mt}).IsEmpty() {
		t.Error("patch with meal type should not be empty")
	}
}
