package domain

import "time"

// ScanSource identifies how a scan was captured.
type ScanSource string

const (
	ScanSourceCamera ScanSource = "camera"
	ScanSourceText   ScanSource = "text"
)

// ScanStatus is the server-owned lifecycle state of a scan job.
// The client only observes status; it never writes it.
type ScanStatus string

const (
	ScanStatusQueued     ScanStatus = "queued"
	ScanStatusProcessing ScanStatus = "processing"
	ScanStatusDone       ScanStatus = "done"
	ScanStatusFailed     ScanStatus = "failed"
	ScanStatusCancelled  ScanStatus = "cancelled"
)

// IsTerminal reports whether no further server-side transition can occur.
func (s ScanStatus) IsTerminal() bool {
	switch s {
	case ScanStatusDone, ScanStatusFailed, ScanStatusCancelled:
		return true
	}
	return false
}

// ScanJob is one in-flight analysis request as the client observes it.
type ScanJob struct {
	ScanID      string
	Source      ScanSource
	StoragePath *string
	Status      ScanStatus
	Error       *string
}

// UploadTarget is the signed upload descriptor returned by scan init.
// The client sequences the upload; it does not interpret the target.
type UploadTarget struct {
	ScanID        string
	StoragePath   string
	UploadURL     string
	UploadMethod  string
	UploadHeaders map[string]string
	ExpiresAt     time.Time
}

// Submission is the acknowledgement returned when a scan is queued.
type Submission struct {
	ScanID  string
	MealID  string
	Status  ScanStatus
	DateISO string
}

// ScanSnapshot is one observation of a scan job's state.
// Result is non-nil only when the backend attached a completed meal payload.
type ScanSnapshot struct {
	ScanID string
	Status ScanStatus
	Error  *string
	MealID *string
	Result *ScanResult
}

// Macros is a protein/carbs/fat breakdown in grams.
type Macros struct {
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// Scale returns the macros multiplied by factor.
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		ProteinG: m.ProteinG * factor,
		CarbsG:   m.CarbsG * factor,
		FatG:     m.FatG * factor,
	}
}

// Add returns the element-wise sum of two macro breakdowns.
func (m Macros) Add(other Macros) Macros {
	return Macros{
		ProteinG: m.ProteinG + other.ProteinG,
		CarbsG:   m.CarbsG + other.CarbsG,
		FatG:     m.FatG + other.FatG,
	}
}

// NutritionTotals aggregates calories with a macro breakdown.
type NutritionTotals struct {
	Calories float64
	Macros
}

// Ingredient is one detected food item within a scan result.
type Ingredient struct {
	ID                   *string
	Name                 string
	EstimatedWeightGrams float64
	PortionText          string
	Notes                string
	Calories             float64
	Macros               Macros
	ImageURL             *string
}

// IsGenerating reports whether the ingredient's thumbnail is still being
// generated server-side. Derived from the (ID, ImageURL) pair on every
// read; never stored.
func (i Ingredient) IsGenerating() bool {
	if i.ID == nil || *i.ID == "" {
		return false
	}
	return i.ImageURL == nil || *i.ImageURL == ""
}

// ScanResult is the nutrition estimate derived from a completed scan.
// Ingredients keep detection order. ImageURI is the locally kept photo
// path; it is absent for text scans, and that absence is meaningful.
type ScanResult struct {
	DishTitle   string
	Ingredients []Ingredient
	Totals      NutritionTotals
	Confidence  float64
	Source      ScanSource
	ImageURI    *string
}

// Text scans below this confidence are treated as "nothing recognized".
// The boundary is inclusive on the detected side: exactly 0.2 is food.
const minTextConfidence = 0.2

// NoFoodDetected decides whether the result should be shown as a
// no-food fallback instead of a normal result. Photo scans are best
// effort: low confidence alone never rejects them.
func (r ScanResult) NoFoodDetected() bool {
	if len(r.Ingredients) == 0 {
		return true
	}
	if r.Source == ScanSourceText && r.Confidence < minTextConfidence {
		return true
	}
	return r.Totals.Calories == 0
}
