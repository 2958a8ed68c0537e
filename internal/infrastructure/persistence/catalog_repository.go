package persistence

import (
	"context"
	"errors"
	"strings"

	"health-recipe-modifier/internal/core/recipe"

	"gorm.io/gorm"
)

// CatalogRepository 以 GORM 實作 recipe.CatalogStore
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 創建範例食譜存取
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindByName 名稱完全相符（不分大小寫）
func (r *CatalogRepository) FindByName(ctx context.Context, name string) (*recipe.SampleRecipe, error) {
	return r.first(ctx, "LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
}

// FindByNameContaining 名稱包含片段（不分大小寫）
func (r *CatalogRepository) FindByNameContaining(ctx context.Context, fragment string) (*recipe.SampleRecipe, error) {
	fragment = escapeLike(strings.ToLower(strings.TrimSpace(fragment)))
	if fragment == "" {
		return nil, nil
	}
	return r.first(ctx, "LOWER(name) LIKE ?", "%"+fragment+"%")
}

// Names 所有範例食譜名稱，依寫入順序
func (r *CatalogRepository) Names(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&SampleRecipeModel{}).Order("id").Pluck("name", &names).Error; err != nil {
		return nil, unavailable("list sample recipe names", err)
	}
	return names, nil
}

func (r *CatalogRepository) first(ctx context.Context, query string, arg string) (*recipe.SampleRecipe, error) {
	var model SampleRecipeModel
	result := r.db.WithContext(ctx).Order("id").First(&model, query, arg)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, unavailable("find sample recipe", result.Error)
	}
	return sampleFromModel(&model), nil
}

// escapeLike 移除 LIKE 萬用字元
func escapeLike(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}
