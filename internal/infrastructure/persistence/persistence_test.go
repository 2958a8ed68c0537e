package persistence

import (
	"context"
	"testing"
	"time"

	"health-recipe-modifier/internal/core/ai/cache"
	"health-recipe-modifier/internal/core/condition"
	"health-recipe-modifier/internal/core/history"
	"health-recipe-modifier/internal/core/nutrition"
	"health-recipe-modifier/internal/core/profile"
	"health-recipe-modifier/internal/core/recipe"
	"health-recipe-modifier/internal/core/rules"
	"health-recipe-modifier/internal/infrastructure/config"
	"health-recipe-modifier/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type PersistenceSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB
}

func TestPersistenceSuite(t *testing.T) {
	suite.Run(t, new(PersistenceSuite))
}

func (s *PersistenceSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	s.Require().NoError(err)
	s.db = db
}

func (s *PersistenceSuite) TearDownTest() {
	s.NoError(Close(s.db))
}

func (s *PersistenceSuite) TestSeedDatabase_OnlyWhenEmpty() {
	s.Require().NoError(SeedDatabase(s.ctx, s.db))
	s.Require().NoError(SeedDatabase(s.ctx, s.db))

	repo := NewRuleRepository(s.db)
	count, err := repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(len(rules.Baseline())), count)

	var recipes int64
	s.Require().NoError(s.db.Model(&SampleRecipeModel{}).Count(&recipes).Error)
	s.Equal(int64(len(recipe.SampleRecipes())), recipes)
}

func (s *PersistenceSuite) TestRuleRepository() {
	repo := NewRuleRepository(s.db)
	s.Require().NoError(SeedDatabase(s.ctx, s.db))

	rule, err := repo.FindRule(s.ctx, "  Sugar ")
	s.Require().NoError(err)
	s.Require().NotNil(rule)
	s.Equal("stevia", rule.Alternative)
	s.ElementsMatch([]string{"diabetes", "obesity"}, rule.HarmfulFor)

	missing, err := repo.FindRule(s.ctx, "dragonfruit")
	s.NoError(err)
	s.Nil(missing)

	found, err := repo.FindRules(s.ctx, []string{"SALT", "corn", "unknown", "salt"})
	s.Require().NoError(err)
	s.Len(found, 2)

	all, err := repo.All(s.ctx)
	s.Require().NoError(err)
	s.Len(all, len(rules.Baseline()))
	s.Equal("butter", all[0].Ingredient)
}

func (s *PersistenceSuite) TestRuleRepository_UpsertIfAbsentKeepsExisting() {
	repo := NewRuleRepository(s.db)

	s.Require().NoError(repo.UpsertIfAbsent(s.ctx, rules.Rule{Ingredient: "Honey", HarmfulFor: []string{"diabetes"}, Alternative: "monk fruit"}))
	s.Require().NoError(repo.UpsertIfAbsent(s.ctx, rules.Rule{Ingredient: "honey", HarmfulFor: []string{"obesity"}, Alternative: "dates"}))

	rule, err := repo.FindRule(s.ctx, "honey")
	s.Require().NoError(err)
	s.Require().NotNil(rule)
	s.Equal("monk fruit", rule.Alternative)

	s.True(common.IsValidationError(repo.UpsertIfAbsent(s.ctx, rules.Rule{Ingredient: "  "})))
}

func (s *PersistenceSuite) TestEnsureCoreRules() {
	repo := NewRuleRepository(s.db)
	s.Require().NoError(repo.UpsertIfAbsent(s.ctx, rules.Rule{Ingredient: "sugar", HarmfulFor: []string{"diabetes"}, Alternative: "erythritol"}))

	s.Require().NoError(EnsureCoreRules(s.ctx, repo))

	count, err := repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(len(rules.Baseline())), count)

	sugar, err := repo.FindRule(s.ctx, "sugar")
	s.Require().NoError(err)
	s.Equal("erythritol", sugar.Alternative)
}

func (s *PersistenceSuite) TestRuleRepository_WithMatcher() {
	s.Require().NoError(SeedDatabase(s.ctx, s.db))
	matcher := rules.NewMatcher(rules.NewCache(NewRuleRepository(s.db), rules.DefaultTTL, nil))

	set, err := matcher.ResolveText(s.ctx, "sugar, flour, butter, banana", condition.Diabetes)
	s.Require().NoError(err)
	s.Equal([]string{"sugar", "flour"}, set.Harmful)
	s.Equal([]string{"stevia", "almond flour", "butter", "banana"}, set.Substituted)

	set, err = matcher.ResolveText(s.ctx, "Eggs, peanut", condition.EggAllergy)
	s.Require().NoError(err)
	s.Equal([]string{"Eggs"}, set.Harmful)
	s.Equal([]string{"flaxseed meal", "peanut"}, set.Substituted)
}

func (s *PersistenceSuite) TestRecipeCacheRepository() {
	repo := NewRecipeCacheRepository(s.db)
	key := cache.Key([]string{"stevia", "banana"})

	_, err := repo.Find(s.ctx, "diabetes", key)
	s.ErrorIs(err, cache.ErrMiss)

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Require().NoError(repo.Upsert(s.ctx, "diabetes", key, "v1", first))
	s.Require().NoError(repo.Upsert(s.ctx, "diabetes", key, "v2", first.Add(time.Hour)))

	text, err := repo.Find(s.ctx, "diabetes", key)
	s.Require().NoError(err)
	s.Equal("v2", text)

	_, err = repo.Find(s.ctx, "obesity", key)
	s.ErrorIs(err, cache.ErrMiss)

	var rows int64
	s.Require().NoError(s.db.Model(&RecipeCacheModel{}).Count(&rows).Error)
	s.Equal(int64(1), rows)
}

func (s *PersistenceSuite) TestHistoryRepository() {
	repo := NewHistoryRepository(s.db)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, cond := range []string{"diabetes", "hypertension", "diabetes"} {
		_, err := repo.Insert(s.ctx, &history.FoodEntry{
			UserID:           "alice",
			Condition:        cond,
			InputIngredients: []string{"sugar"},
			Harmful:          []string{"sugar"},
			Safe:             []string{"stevia"},
			Recipe:           "recipe",
			CreatedAt:        base.Add(time.Duration(i) * time.Hour),
		})
		s.Require().NoError(err)
	}
	otherID, err := repo.Insert(s.ctx, &history.FoodEntry{UserID: "bob", Condition: "diabetes", CreatedAt: base})
	s.Require().NoError(err)

	entries, err := repo.FindByOwner(s.ctx, "alice", history.Filter{})
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.True(entries[0].CreatedAt.After(entries[1].CreatedAt))
	s.Equal([]string{"stevia"}, entries[0].Safe)
	s.Nil(entries[0].Nutrition)

	diabetes, err := repo.FindByOwner(s.ctx, "alice", history.Filter{Condition: "diabetes", Limit: 1})
	s.Require().NoError(err)
	s.Len(diabetes, 1)
	s.Equal("diabetes", diabetes[0].Condition)

	id := entries[0].ID
	fav, err := repo.ToggleFavorite(s.ctx, id, "alice")
	s.Require().NoError(err)
	s.True(fav)

	favorite := true
	favs, err := repo.FindByOwner(s.ctx, "alice", history.Filter{Favorite: &favorite})
	s.Require().NoError(err)
	s.Len(favs, 1)

	category := "dessert"
	s.Require().NoError(repo.UpdateFields(s.ctx, id, "alice", history.Fields{Category: &category}))
	tagged, err := repo.FindByOwner(s.ctx, "alice", history.Filter{Category: "dessert"})
	s.Require().NoError(err)
	s.Require().Len(tagged, 1)
	s.True(tagged[0].Favorite)

	_, err = repo.ToggleFavorite(s.ctx, otherID, "alice")
	s.ErrorIs(err, common.ErrRecordNotFound)
	s.ErrorIs(repo.UpdateFields(s.ctx, otherID, "alice", history.Fields{Category: &category}), common.ErrRecordNotFound)
	s.ErrorIs(repo.UpdateFields(s.ctx, "missing", "alice", history.Fields{}), common.ErrRecordNotFound)
}

func (s *PersistenceSuite) TestHistoryRepository_AttachNutrition() {
	repo := NewHistoryRepository(s.db)
	id, err := repo.Insert(s.ctx, &history.FoodEntry{UserID: "alice", Condition: "diabetes", CreatedAt: time.Now()})
	s.Require().NoError(err)

	summary := nutrition.NewAggregator(nil, nutrition.Options{}).Calculate(s.ctx, []string{"chicken", "rice"}, 2)
	s.Require().NoError(repo.UpdateFields(s.ctx, id, "alice", history.Fields{Nutrition: summary}))

	entries, err := repo.FindByOwner(s.ctx, "alice", history.Filter{})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Require().NotNil(entries[0].Nutrition)
	s.Equal(summary.PerServing, entries[0].Nutrition.PerServing)
	s.Equal(2, entries[0].Nutrition.IngredientsAnalyzed)
}

func (s *PersistenceSuite) TestProfileRepository() {
	repo := NewProfileRepository(s.db)

	missing, err := repo.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Nil(missing)

	s.Require().NoError(repo.Save(s.ctx, &profile.Profile{UserID: "alice", MedicalCondition: "diabetes", DietType: "vegan"}))
	s.Require().NoError(repo.Save(s.ctx, &profile.Profile{UserID: "alice", MedicalCondition: "hypertension", Allergies: "peanut", DailyCalorieTarget: 1800}))

	got, err := repo.Get(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("hypertension", got.MedicalCondition)
	s.Equal("", got.DietType)
	s.Equal("peanut", got.Allergies)
	s.Equal(1800, got.DailyCalorieTarget)
}

func (s *PersistenceSuite) TestCatalogRepository() {
	s.Require().NoError(SeedDatabase(s.ctx, s.db))
	catalog := recipe.NewCatalog(NewCatalogRepository(s.db))

	got, err := catalog.Ingredients(s.ctx, "Puran Poli")
	s.Require().NoError(err)
	s.Contains(got, "jaggery")

	got, err = catalog.Ingredients(s.ctx, "bread")
	s.Require().NoError(err)
	s.Equal([]string{"flour", "water", "yeast", "salt"}, got)

	got, err = catalog.Ingredients(s.ctx, "PANCAKE")
	s.Require().NoError(err)
	s.Contains(got, "milk")

	got, err = catalog.Ingredients(s.ctx, "%")
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *PersistenceSuite) TestCatalogRepository_Names() {
	s.Require().NoError(SeedDatabase(s.ctx, s.db))

	names, err := NewCatalogRepository(s.db).Names(s.ctx)
	s.Require().NoError(err)
	s.Len(names, len(recipe.SampleRecipes()))
	s.Equal("banana bread", names[0])

	suggestion, err := recipe.NewCatalog(NewCatalogRepository(s.db)).Suggest(s.ctx, "puran po")
	s.Require().NoError(err)
	s.False(suggestion.IsCorrect)
	s.Equal([]string{"puran poli"}, suggestion.Suggestions)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestStringSlice_Scan(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, StringSlice{}, s)

	require.NoError(t, s.Scan(`["a","b"]`))
	assert.Equal(t, StringSlice{"a", "b"}, s)

	assert.Error(t, s.Scan(42))

	v, err := StringSlice(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestNutritionField_Scan(t *testing.T) {
	var n NutritionField
	require.NoError(t, n.Scan([]byte("null")))
	assert.Nil(t, n.Summary)

	v, err := NutritionField{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
