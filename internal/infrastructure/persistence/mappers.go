package persistence

import (
	"health-recipe-modifier/internal/core/history"
	"health-recipe-modifier/internal/core/profile"
	"health-recipe-modifier/internal/core/recipe"
	"health-recipe-modifier/internal/core/rules"
)

func ruleToModel(r rules.Rule) *RuleModel {
	return &RuleModel{
		Ingredient:  r.Ingredient,
		HarmfulFor:  StringSlice(r.HarmfulFor),
		Alternative: r.Alternative,
		Category:    r.Category,
	}
}

func ruleFromModel(m *RuleModel) rules.Rule {
	return rules.Rule{
		Ingredient:  m.Ingredient,
		HarmfulFor:  []string(m.HarmfulFor),
		Alternative: m.Alternative,
		Category:    m.Category,
	}
}

func rulesFromModels(models []RuleModel) []rules.Rule {
	out := make([]rules.Rule, 0, len(models))
	for i := range models {
		out = append(out, ruleFromModel(&models[i]))
	}
	return out
}

func entryToModel(e *history.FoodEntry) *FoodEntryModel {
	return &FoodEntryModel{
		ID:               e.ID,
		UserID:           e.UserID,
		Condition:        e.Condition,
		RecipeName:       e.RecipeName,
		InputIngredients: StringSlice(e.InputIngredients),
		Harmful:          StringSlice(e.Harmful),
		Safe:             StringSlice(e.Safe),
		Recipe:           e.Recipe,
		Favorite:         e.Favorite,
		Category:         e.Category,
		Nutrition:        NutritionField{Summary: e.Nutrition},
		CreatedAt:        e.CreatedAt,
	}
}

func entryFromModel(m *FoodEntryModel) history.FoodEntry {
	return history.FoodEntry{
		ID:               m.ID,
		UserID:           m.UserID,
		Condition:        m.Condition,
		RecipeName:       m.RecipeName,
		InputIngredients: []string(m.InputIngredients),
		Harmful:          []string(m.Harmful),
		Safe:             []string(m.Safe),
		Recipe:           m.Recipe,
		CreatedAt:        m.CreatedAt,
		Favorite:         m.Favorite,
		Category:         m.Category,
		Nutrition:        m.Nutrition.Summary,
	}
}

func profileToModel(p *profile.Profile) *ProfileModel {
	return &ProfileModel{
		UserID:             p.UserID,
		MedicalCondition:   p.MedicalCondition,
		DietType:           p.DietType,
		Allergies:          p.Allergies,
		FitnessGoal:        p.FitnessGoal,
		DailyCalorieTarget: p.DailyCalorieTarget,
	}
}

func profileFromModel(m *ProfileModel) *profile.Profile {
	return &profile.Profile{
		UserID:             m.UserID,
		MedicalCondition:   m.MedicalCondition,
		DietType:           m.DietType,
		Allergies:          m.Allergies,
		FitnessGoal:        m.FitnessGoal,
		DailyCalorieTarget: m.DailyCalorieTarget,
		UpdatedAt:          m.UpdatedAt,
	}
}

func sampleToModel(r recipe.SampleRecipe) *SampleRecipeModel {
	return &SampleRecipeModel{
		Name:        r.Name,
		Ingredients: StringSlice(r.Ingredients),
		Tags:        StringSlice(r.Tags),
	}
}

func sampleFromModel(m *SampleRecipeModel) *recipe.SampleRecipe {
	return &recipe.SampleRecipe{
		Name:        m.Name,
		Ingredients: []string(m.Ingredients),
		Tags:        []string(m.Tags),
	}
}
