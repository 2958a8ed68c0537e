package profile

import (
	"fmt"
	"strings"

	"health-recipe-modifier/internal/core/condition"
	"health-recipe-modifier/internal/pkg/common"
)

// WarningType 警示類型
type WarningType string

const (
	TypeDietConflict    WarningType = "diet_conflict"
	TypeAllergyAlert    WarningType = "allergy_alert"
	TypeGoalConflict    WarningType = "goal_conflict"
	TypeGoalSuggestion  WarningType = "goal_suggestion"
	TypeCalorieReminder WarningType = "calorie_reminder"
)

// Severity 警示等級
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Warning 依使用者設定產生的警示
type Warning struct {
	Type        WarningType `json:"type"`
	Severity    Severity    `json:"severity"`
	Title       string      `json:"title"`
	Message     string      `json:"message"`
	Ingredients []string    `json:"ingredients"`
}

// Check 比對食材與使用者設定，依飲食、過敏、目標、熱量順序產生警示。永不失敗。
func Check(ingredients []string, p *Profile) []Warning {
	warnings := []Warning{}
	items := cleanIngredients(ingredients)
	if p.Empty() || len(items) == 0 {
		return warnings
	}

	warnings = append(warnings, dietWarnings(items, p.DietType)...)
	if w, ok := allergyWarning(items, p.Allergies); ok {
		warnings = append(warnings, w)
	}
	if w, ok := goalWarning(items, p.FitnessGoal); ok {
		warnings = append(warnings, w)
	}
	if p.DailyCalorieTarget > 0 {
		warnings = append(warnings, Warning{
			Type:        TypeCalorieReminder,
			Severity:    SeverityInfo,
			Title:       "Daily Calorie Target",
			Message:     fmt.Sprintf("Your daily calorie target is %d kcal. Check the per-serving calories to keep this meal within your plan.", p.DailyCalorieTarget),
			Ingredients: []string{},
		})
	}
	return warnings
}

func dietWarnings(items []string, dietType string) []Warning {
	diet := common.NormalizeName(dietType)
	if diet == "" {
		return nil
	}

	var out []Warning
	if containsAny(diet, "veg", "vegetarian", "lacto", "ovo") {
		if found := matches(items, nonVegetarianTerms); len(found) > 0 {
			out = append(out, Warning{
				Type:        TypeDietConflict,
				Severity:    SeverityWarning,
				Title:       "Not Vegetarian",
				Message:     fmt.Sprintf("Contains non-vegetarian ingredients: %s", strings.Join(found, ", ")),
				Ingredients: found,
			})
		}
	}
	if strings.Contains(diet, "vegan") {
		animal := make([]string, 0, len(nonVegetarianTerms)+len(eggTerms)+len(dairyTerms))
		animal = append(animal, nonVegetarianTerms...)
		animal = append(animal, eggTerms...)
		animal = append(animal, dairyTerms...)
		if found := matches(items, animal); len(found) > 0 {
			out = append(out, Warning{
				Type:        TypeDietConflict,
				Severity:    SeverityDanger,
				Title:       "Not Vegan",
				Message:     fmt.Sprintf("Contains animal-derived ingredients: %s", strings.Join(found, ", ")),
				Ingredients: found,
			})
		}
	}
	if strings.Contains(diet, "keto") {
		if found := matches(items, highCarbTerms); len(found) > 0 {
			out = append(out, Warning{
				Type:        TypeDietConflict,
				Severity:    SeverityWarning,
				Title:       "High Carb for Keto",
				Message:     fmt.Sprintf("These ingredients are high in carbohydrates: %s", strings.Join(found, ", ")),
				Ingredients: found,
			})
		}
	}
	return out
}

func allergyWarning(items []string, allergies string) (Warning, bool) {
	declared := common.SplitList(strings.ToLower(allergies))
	if len(declared) == 0 {
		return Warning{}, false
	}

	var terms []string
	for _, allergy := range declared {
		terms = append(terms, allergy)
		for _, cat := range allergenCategories {
			if related(allergy, cat.name) {
				terms = append(terms, cat.terms...)
			}
		}
	}

	found := matches(items, terms)
	if len(found) == 0 {
		return Warning{}, false
	}
	return Warning{
		Type:        TypeAllergyAlert,
		Severity:    SeverityDanger,
		Title:       "Allergy Alert",
		Message:     fmt.Sprintf("This recipe contains ingredients matching your allergies (%s): %s", strings.Join(declared, ", "), strings.Join(found, ", ")),
		Ingredients: found,
	}, true
}

func goalWarning(items []string, goal string) (Warning, bool) {
	switch condition.ParseFitnessGoal(goal) {
	case condition.GoalWeightLoss:
		if found := matches(items, highCalorieTerms); len(found) > 0 {
			return Warning{
				Type:        TypeGoalConflict,
				Severity:    SeverityInfo,
				Title:       "Weight Loss Goal",
				Message:     fmt.Sprintf("These ingredients are calorie-dense, consider smaller portions: %s", strings.Join(found, ", ")),
				Ingredients: found,
			}, true
		}
	case condition.GoalMuscleGain:
		if len(matches(items, proteinTerms)) == 0 {
			return Warning{
				Type:        TypeGoalSuggestion,
				Severity:    SeverityInfo,
				Title:       "Muscle Gain Goal",
				Message:     "No protein source found. Consider adding eggs, legumes, tofu, dairy or lean meat.",
				Ingredients: []string{},
			}, true
		}
	}
	return Warning{}, false
}

// related 雙向子字串比對
func related(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// matches 回傳與任一詞彙相關的食材，保留輸入順序且不重複
func matches(items, terms []string) []string {
	found := []string{}
	for _, item := range items {
		for _, term := range terms {
			if related(item, term) {
				found = append(found, item)
				break
			}
		}
	}
	return found
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func cleanIngredients(ingredients []string) []string {
	seen := make(map[string]struct{}, len(ingredients))
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		n := common.NormalizeName(ing)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
