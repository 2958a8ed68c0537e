package persistence

import (
	"context"
	"errors"
	"time"

	"health-recipe-modifier/internal/core/ai/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeCacheRepository 以資料表實作 cache.Store，條目不會過期
type RecipeCacheRepository struct {
	db *gorm.DB
}

// NewRecipeCacheRepository 創建資料庫食譜快取
func NewRecipeCacheRepository(db *gorm.DB) *RecipeCacheRepository {
	return &RecipeCacheRepository{db: db}
}

// Find 查詢快取，未命中回傳 cache.ErrMiss
func (r *RecipeCacheRepository) Find(ctx context.Context, condition, key string) (string, error) {
	var model RecipeCacheModel
	result := r.db.WithContext(ctx).
		Select("recipe").
		First(&model, "condition = ? AND ingredients_key = ?", condition, key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", cache.ErrMiss
		}
		return "", unavailable("find cached recipe", result.Error)
	}
	if model.Recipe == "" {
		return "", cache.ErrMiss
	}
	return model.Recipe, nil
}

// Upsert 寫入或覆蓋 (condition, key) 的食譜
func (r *RecipeCacheRepository) Upsert(ctx context.Context, condition, key, recipe string, updatedAt time.Time) error {
	model := &RecipeCacheModel{
		Condition:      condition,
		IngredientsKey: key,
		Recipe:         recipe,
		UpdatedAt:      updatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "condition"}, {Name: "ingredients_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"recipe", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return unavailable("upsert cached recipe", err)
	}
	return nil
}
