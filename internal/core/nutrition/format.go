package nutrition

// DisplayValue 單一營養素顯示資料
type DisplayValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	DV    float64 `json:"dv"`
}

// MatchedIngredient 外部查詢命中的食材
type MatchedIngredient struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UnmatchedIngredient 使用估算值的食材
type UnmatchedIngredient struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Estimated bool   `json:"estimated"`
}

// Display 分組後的營養摘要
type Display struct {
	Macros               map[Nutrient]DisplayValue `json:"macros"`
	Minerals             map[Nutrient]DisplayValue `json:"minerals"`
	Vitamins             map[Nutrient]DisplayValue `json:"vitamins"`
	Servings             int                       `json:"servings"`
	Accuracy             Accuracy                  `json:"accuracy"`
	IngredientsFound     int                       `json:"ingredients_found"`
	IngredientsAnalyzed  int                       `json:"ingredients_analyzed"`
	MatchedIngredients   []MatchedIngredient       `json:"matched_ingredients"`
	UnmatchedIngredients []UnmatchedIngredient     `json:"unmatched_ingredients"`
}

var (
	macroNutrients   = []Nutrient{Calories, Protein, TotalFat, Carbohydrates, Fiber, Sugar}
	mineralNutrients = []Nutrient{Sodium, Potassium, Calcium, Iron}
	vitaminNutrients = []Nutrient{VitaminA, VitaminC, VitaminD, VitaminB12}
)

// Format 將摘要整理為 macros / minerals / vitamins 分組
func Format(s *Summary) *Display {
	d := &Display{
		Macros:               group(s, macroNutrients),
		Minerals:             group(s, mineralNutrients),
		Vitamins:             group(s, vitaminNutrients),
		Servings:             s.Servings,
		Accuracy:             s.Accuracy,
		IngredientsFound:     s.IngredientsFound,
		IngredientsAnalyzed:  s.IngredientsAnalyzed,
		MatchedIngredients:   []MatchedIngredient{},
		UnmatchedIngredients: []UnmatchedIngredient{},
	}

	for _, f := range s.IngredientDetails {
		if f.Found {
			desc := f.Description
			if desc == "" {
				desc = f.Ingredient
			}
			d.MatchedIngredients = append(d.MatchedIngredients, MatchedIngredient{Name: f.Ingredient, Description: desc})
			continue
		}
		category := "General"
		if f.Category != "" && f.Category != "default" {
			category = titleWords(f.Category)
		}
		d.UnmatchedIngredients = append(d.UnmatchedIngredients, UnmatchedIngredient{
			Name:      f.Ingredient,
			Category:  category,
			Estimated: true,
		})
	}
	return d
}

func group(s *Summary, nutrients []Nutrient) map[Nutrient]DisplayValue {
	out := make(map[Nutrient]DisplayValue, len(nutrients))
	for _, n := range nutrients {
		out[n] = DisplayValue{Value: s.PerServing[n], Unit: n.Unit(), DV: s.DailyPercentages[n]}
	}
	return out
}
