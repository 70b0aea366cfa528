package mealapi

import (
	"time"

	"github.com/plateful/mealscan/internal/domain"
)

// Wire shapes for the /v1 contract. Two generations of the meal shape
// exist in the wild: the current one (per-ingredient macro breakdown,
// server-computed totals) and a legacy one (flat item list, client-side
// totalCalories). Both are upgraded to the domain shape here, once, at
// ingress; nothing past this file branches on shape.

type uploadTargetResponse struct {
	ScanID        string            `json:"scanId"`
	StoragePath   string            `json:"storagePath"`
	UploadURL     string            `json:"uploadUrl"`
	UploadMethod  string            `json:"uploadMethod"`
	UploadHeaders map[string]string `json:"uploadHeaders"`
	ExpiresAt     time.Time         `json:"expiresAt"`
}

func (r uploadTargetResponse) toDomain() domain.UploadTarget {
	return domain.UploadTarget{
		ScanID:        r.ScanID,
		StoragePath:   r.StoragePath,
		UploadURL:     r.UploadURL,
		UploadMethod:  r.UploadMethod,
		UploadHeaders: r.UploadHeaders,
		ExpiresAt:     r.ExpiresAt,
	}
}

type queueScanRequest struct {
	UID             string `json:"uid"`
	ScanID          string `json:"scanId,omitempty"`
	DateISO         string `json:"dateISO,omitempty"`
	TextDescription string `json:"textDescription,omitempty"`
	Source          string `json:"source"`
}

type submissionResponse struct {
	ScanID  string `json:"scanId"`
	MealID  string `json:"mealId"`
	Status  string `json:"status"`
	DateISO string `json:"dateISO"`
}

func (r submissionResponse) toDomain() domain.Submission {
	return domain.Submission{
		ScanID:  r.ScanID,
		MealID:  r.MealID,
		Status:  domain.ScanStatus(r.Status),
		DateISO: r.DateISO,
	}
}

type scanStatusResponse struct {
	ScanID string       `json:"scanId"`
	Status string       `json:"status"`
	Error  *string      `json:"error,omitempty"`
	MealID *string      `json:"mealId,omitempty"`
	Meal   *mealPayload `json:"meal,omitempty"`
}

type macrosPayload struct {
	ProteinG float64 `json:"p"`
	CarbsG   float64 `json:"c"`
	FatG     float64 `json:"f"`
}

func (m macrosPayload) toDomain() domain.Macros {
	return domain.Macros{ProteinG: m.ProteinG, CarbsG: m.CarbsG, FatG: m.FatG}
}

func macrosFromDomain(m domain.Macros) macrosPayload {
	return macrosPayload{ProteinG: m.ProteinG, CarbsG: m.CarbsG, FatG: m.FatG}
}

type totalsPayload struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type ingredientPayload struct {
	ID          *string        `json:"id,omitempty"`
	Name        string         `json:"name"`
	WeightGrams float64        `json:"estimatedWeightGrams"`
	PortionText string         `json:"portionText,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Calories    float64        `json:"calories"`
	Macros      *macrosPayload `json:"macros,omitempty"`
	ImageURL    *string        `json:"imageUrl,omitempty"`
}

func (p ingredientPayload) toDomain() domain.Ingredient {
	ing := domain.Ingredient{
		ID:                   p.ID,
		Name:                 p.Name,
		EstimatedWeightGrams: p.WeightGrams,
		PortionText:          p.PortionText,
		Notes:                p.Notes,
		Calories:             p.Calories,
		ImageURL:             p.ImageURL,
	}
	if p.Macros != nil {
		ing.Macros = p.Macros.toDomain()
	}
	return ing
}

func ingredientFromDomain(ing domain.Ingredient) ingredientPayload {
	m := macrosFromDomain(ing.Macros)
	return ingredientPayload{
		ID:          ing.ID,
		Name:        ing.Name,
		WeightGrams: ing.EstimatedWeightGrams,
		PortionText: ing.PortionText,
		Notes:       ing.Notes,
		Calories:    ing.Calories,
		Macros:      &m,
		ImageURL:    ing.ImageURL,
	}
}

// legacyItemPayload is the pre-macro-breakdown shape: a flat item list
// with no per-ingredient macros. Macros default to zero on upgrade.
type legacyItemPayload struct {
	Name        string  `json:"name"`
	WeightGrams float64 `json:"weightGrams"`
	Portion     string  `json:"portion,omitempty"`
	Calories    float64 `json:"calories"`
}

func upgradeLegacyItems(items []legacyItemPayload) []domain.Ingredient {
	ings := make([]domain.Ingredient, len(items))
	for i, it := range items {
		ings[i] = domain.Ingredient{
			Name:                 it.Name,
			EstimatedWeightGrams: it.WeightGrams,
			PortionText:          it.Portion,
			Calories:             it.Calories,
		}
	}
	return ings
}

// normalizeIngredients prefers the current shape; a payload carrying
// only the legacy item list is upgraded.
func normalizeIngredients(ingredients []ingredientPayload, items []legacyItemPayload) []domain.Ingredient {
	if len(ingredients) > 0 {
		out := make([]domain.Ingredient, len(ingredients))
		for i, p := range ingredients {
			out[i] = p.toDomain()
		}
		return out
	}
	if len(items) > 0 {
		return upgradeLegacyItems(items)
	}
	return nil
}

// normalizeTotals resolves the two totals generations, defaulting each
// absent field to zero.
func normalizeTotals(totals *totalsPayload, legacyCalories *float64, legacyMacros *macrosPayload) domain.NutritionTotals {
	var out domain.NutritionTotals
	if totals != nil {
		out.Calories = totals.Calories
		out.Macros = domain.Macros{ProteinG: totals.Protein, CarbsG: totals.Carbs, FatG: totals.Fat}
		return out
	}
	if legacyCalories != nil {
		out.Calories = *legacyCalories
	}
	if legacyMacros != nil {
		out.Macros = legacyMacros.toDomain()
	}
	return out
}

type mealPayload struct {
	DishTitle     string              `json:"dishTitle"`
	Source        string              `json:"source,omitempty"`
	Ingredients   []ingredientPayload `json:"ingredients,omitempty"`
	Items         []legacyItemPayload `json:"items,omitempty"`
	Totals        *totalsPayload      `json:"totals,omitempty"`
	TotalCalories *float64            `json:"totalCalories,omitempty"`
	Macros        *macrosPayload      `json:"macros,omitempty"`
	Confidence    float64             `json:"confidence"`
	ImageURL      *string             `json:"imageUrl,omitempty"`
}

// toScanResult upgrades a completed scan payload. When the payload does
// not name its source, presence of an image means camera.
func (p mealPayload) toScanResult() domain.ScanResult {
	source := domain.ScanSource(p.Source)
	if source == "" {
		if p.ImageURL != nil && *p.ImageURL != "" {
			source = domain.ScanSourceCamera
		} else {
			source = domain.ScanSourceText
		}
	}
	return domain.ScanResult{
		DishTitle:   p.DishTitle,
		Ingredients: normalizeIngredients(p.Ingredients, p.Items),
		Totals:      normalizeTotals(p.Totals, p.TotalCalories, p.Macros),
		Confidence:  p.Confidence,
		Source:      source,
		ImageURI:    p.ImageURL,
	}
}

func (r scanStatusResponse) toDomain() domain.ScanSnapshot {
	snap := domain.ScanSnapshot{
		ScanID: r.ScanID,
		Status: domain.ScanStatus(r.Status),
		Error:  r.Error,
		MealID: r.MealID,
	}
	if r.Meal != nil {
		res := r.Meal.toScanResult()
		snap.Result = &res
	}
	return snap
}

type mealLogPayload struct {
	ID            string              `json:"id,omitempty"`
	LogID         string              `json:"logId,omitempty"`
	DishTitle     string              `json:"dishTitle"`
	Status        string              `json:"status"`
	ScanID        *string             `json:"scanId,omitempty"`
	Ingredients   []ingredientPayload `json:"ingredients,omitempty"`
	Items         []legacyItemPayload `json:"items,omitempty"`
	Totals        *totalsPayload      `json:"totals,omitempty"`
	TotalCalories *float64            `json:"totalCalories,omitempty"`
	Macros        *macrosPayload      `json:"macros,omitempty"`
	CreatedAt     *time.Time          `json:"createdAt,omitempty"`
	ImageURL      *string             `json:"imageUrl,omitempty"`
	ImageURI      *string             `json:"imageUri,omitempty"`
	MealType      string              `json:"mealType,omitempty"`
	PortionMult   *float64            `json:"portionMultiplier,omitempty"`
}

func (p mealLogPayload) toDomain() domain.MealLog {
	id := p.ID
	if id == "" {
		id = p.LogID
	}
	imageURL := p.ImageURL
	if imageURL == nil {
		imageURL = p.ImageURI
	}
	portion := 1.0
	if p.PortionMult != nil {
		portion = *p.PortionMult
	}
	totals := normalizeTotals(p.Totals, p.TotalCalories, p.Macros)
	return domain.MealLog{
		ID:                id,
		DishTitle:         p.DishTitle,
		Status:            domain.MealStatus(p.Status),
		ScanID:            p.ScanID,
		Ingredients:       normalizeIngredients(p.Ingredients, p.Items),
		TotalCalories:     totals.Calories,
		Macros:            totals.Macros,
		CreatedAt:         p.CreatedAt,
		ImageURL:          imageURL,
		MealType:          domain.MealType(p.MealType),
		PortionMultiplier: portion,
	}
}

type saveMealRequest struct {
	UID               string              `json:"uid"`
	DishTitle         string              `json:"dishTitle"`
	Status            string              `json:"status"`
	ScanID            *string             `json:"scanId,omitempty"`
	Ingredients       []ingredientPayload `json:"ingredients"`
	TotalCalories     float64             `json:"totalCalories"`
	Macros            macrosPayload       `json:"macros"`
	MealType          string              `json:"mealType"`
	PortionMultiplier float64             `json:"portionMultiplier"`
	ImageURL          *string             `json:"imageUrl,omitempty"`
}

func saveMealRequestFromDomain(uid string, m domain.MealLog) saveMealRequest {
	ings := make([]ingredientPayload, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ings[i] = ingredientFromDomain(ing)
	}
	portion := m.PortionMultiplier
	if portion == 0 {
		portion = 1.0
	}
	return saveMealRequest{
		UID:               uid,
		DishTitle:         m.DishTitle,
		Status:            string(m.Status),
		ScanID:            m.ScanID,
		Ingredients:       ings,
		TotalCalories:     m.TotalCalories,
		Macros:            macrosFromDomain(m.Macros),
		MealType:          string(m.MealType),
		PortionMultiplier: portion,
		ImageURL:          m.ImageURL,
	}
}

type updateMealRequest struct {
	UID               string   `json:"uid"`
	MealID            string   `json:"mealId"`
	DishTitle         *string  `json:"dishTitle,omitempty"`
	MealType          *string  `json:"mealType,omitempty"`
	PortionMultiplier *float64 `json:"portionMultiplier,omitempty"`
	ImageURL          *string  `json:"imageUrl,omitempty"`
}

type deleteMealRequest struct {
	UID    string `json:"uid"`
	MealID string `json:"mealId"`
}

type feedResponse struct {
	Logs    []mealLogPayload `json:"logs"`
	Totals  *totalsPayload   `json:"totals"`
	DateISO string           `json:"dateISO,omitempty"`
}

func (r feedResponse) toDomain(requestedDate string) domain.DailyFeed {
	logs := make([]domain.MealLog, len(r.Logs))
	for i, p := range r.Logs {
		logs[i] = p.toDomain()
	}
	dateISO := r.DateISO
	if dateISO == "" {
		dateISO = requestedDate
	}
	return domain.DailyFeed{
		DateISO: dateISO,
		Logs:    logs,
		Totals:  normalizeTotals(r.Totals, nil, nil),
	}
}

type historyDayPayload struct {
	DateISO   string         `json:"dateISO"`
	Totals    *totalsPayload `json:"totals"`
	MealCount int            `json:"mealCount"`
}

type historyResponse struct {
	Days []historyDayPayload `json:"days"`
}

func (r historyResponse) toDomain() []domain.HistoryDay {
	days := make([]domain.HistoryDay, len(r.Days))
	for i, d := range r.Days {
		days[i] = domain.HistoryDay{
			DateISO:   d.DateISO,
			Totals:    normalizeTotals(d.Totals, nil, nil),
			MealCount: d.MealCount,
		}
	}
	return days
}
