package resultcache

import "github.com/plateful/mealscan/internal/domain"

// Durable payload shapes. Older app versions persisted a flat item list
// without per-ingredient macros; that legacy shape is upgraded once on
// read, so nothing downstream branches on it.

type storedMacros struct {
	ProteinG float64 `json:"p"`
	CarbsG   float64 `json:"c"`
	FatG     float64 `json:"f"`
}

type storedIngredient struct {
	ID          *string       `json:"id,omitempty"`
	Name        string        `json:"name"`
	WeightGrams float64       `json:"estimatedWeightGrams"`
	PortionText string        `json:"portionText,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Calories    float64       `json:"calories"`
	Macros      *storedMacros `json:"macros,omitempty"`
	ImageURL    *string       `json:"imageUrl,omitempty"`
}

// storedLegacyItem is the pre-macro-breakdown persisted shape.
type storedLegacyItem struct {
	Name        string  `json:"name"`
	WeightGrams float64 `json:"weightGrams"`
	Calories    float64 `json:"calories"`
}

type storedTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type storedResult struct {
	DishTitle   string             `json:"dishTitle"`
	Ingredients []storedIngredient `json:"ingredients,omitempty"`
	Items       []storedLegacyItem `json:"items,omitempty"`
	Totals      storedTotals       `json:"totals"`
	Confidence  float64            `json:"confidence"`
	Source      string             `json:"source"`
	ImageURI    *string            `json:"imageUri,omitempty"`
}

func storedResultFromDomain(r domain.ScanResult) storedResult {
	ings := make([]storedIngredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		m := storedMacros{ProteinG: ing.Macros.ProteinG, CarbsG: ing.Macros.CarbsG, FatG: ing.Macros.FatG}
		ings[i] = storedIngredient{
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
	return storedResult{
		DishTitle:   r.DishTitle,
		Ingredients: ings,
		Totals: storedTotals{
			Calories: r.Totals.Calories,
			Protein:  r.Totals.ProteinG,
			Carbs:    r.Totals.CarbsG,
			Fat:      r.Totals.FatG,
		},
		Confidence: r.Confidence,
		Source:     string(r.Source),
		ImageURI:   r.ImageURI,
	}
}

func (s storedResult) toDomain() domain.ScanResult {
	var ings []domain.Ingredient
	switch {
	case len(s.Ingredients) > 0:
		ings = make([]domain.Ingredient, len(s.Ingredients))
		for i, ing := range s.Ingredients {
			out := domain.Ingredient{
				ID:                   ing.ID,
				Name:                 ing.Name,
				EstimatedWeightGrams: ing.WeightGrams,
				PortionText:          ing.PortionText,
				Notes:                ing.Notes,
				Calories:             ing.Calories,
				ImageURL:             ing.ImageURL,
			}
			if ing.Macros != nil {
				out.Macros = domain.Macros{ProteinG: ing.Macros.ProteinG, CarbsG: ing.Macros.CarbsG, FatG: ing.Macros.FatG}
			}
			ings[i] = out
		}
	case len(s.Items) > 0:
		// Legacy upgrade: macros default to zero.
		ings = make([]domain.Ingredient, len(s.Items))
		for i, it := range s.Items {
			ings[i] = domain.Ingredient{
				Name:                 it.Name,
				EstimatedWeightGrams: it.WeightGrams,
				Calories:             it.Calories,
			}
		}
	}

	return domain.ScanResult{
		DishTitle:   s.DishTitle,
		Ingredients: ings,
		Totals: domain.NutritionTotals{
			Calories: s.Totals.Calories,
			Macros:   domain.Macros{ProteinG: s.Totals.Protein, CarbsG: s.Totals.Carbs, FatG: s.Totals.Fat},
		},
		Confidence: s.Confidence,
		Source:     domain.ScanSource(s.Source),
		ImageURI:   s.ImageURI,
	}
}
