package persistence

import (
	"context"
	"errors"

	"health-recipe-modifier/internal/core/history"
	"health-recipe-modifier/internal/pkg/common"

	"gorm.io/gorm"
)

// HistoryRepository 以 GORM 實作 history.Store
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository 創建紀錄存取
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Insert 新增紀錄，未指定 ID 時自動產生
func (r *HistoryRepository) Insert(ctx context.Context, entry *history.FoodEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = common.GenerateUUID()
	}
	if err := r.db.WithContext(ctx).Create(entryToModel(entry)).Error; err != nil {
		return "", unavailable("insert food entry", err)
	}
	return entry.ID, nil
}

// UpdateFields 就地更新收藏、分類或營養資料
func (r *HistoryRepository) UpdateFields(ctx context.Context, id, ownerID string, fields history.Fields) error {
	updates := map[string]interface{}{}
	if fields.Favorite != nil {
		updates["favorite"] = *fields.Favorite
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Nutrition != nil {
		updates["nutrition"] = NutritionField{Summary: fields.Nutrition}
	}
	if len(updates) == 0 {
		return r.ensureOwned(ctx, id, ownerID)
	}

	result := r.db.WithContext(ctx).
		Model(&FoodEntryModel{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates)
	if result.Error != nil {
		return unavailable("update food entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrRecordNotFound
	}
	return nil
}

// ToggleFavorite 反轉收藏狀態並回傳新值
func (r *HistoryRepository) ToggleFavorite(ctx context.Context, id, ownerID string) (bool, error) {
	var favorite bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model FoodEntryModel
		result := tx.Select("id", "favorite").First(&model, "id = ? AND user_id = ?", id, ownerID)
		if result.Error != nil {
			return result.Error
		}
		favorite = !model.Favorite
		return tx.Model(&FoodEntryModel{}).
			Where("id = ? AND user_id = ?", id, ownerID).
			Update("favorite", favorite).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, common.ErrRecordNotFound
	case err != nil:
		return false, unavailable("toggle favorite", err)
	}
	return favorite, nil
}

// FindByOwner 依擁有者與條件查詢，新到舊排序
func (r *HistoryRepository) FindByOwner(ctx context.Context, ownerID string, filter history.Filter) ([]history.FoodEntry, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.Favorite != nil {
		query = query.Where("favorite = ?", *filter.Favorite)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var models []FoodEntryModel
	if err := query.Order("created_at DESC").Limit(filter.Limit).Find(&models).Error; err != nil {
		return nil, unavailable("list food entries", err)
	}

	entries := make([]history.FoodEntry, 0, len(models))
	for i := range models {
		entries = append(entries, entryFromModel(&models[i]))
	}
	return entries, nil
}

func (r *HistoryRepository) ensureOwned(ctx context.Context, id, ownerID string) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&FoodEntryModel{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Count(&count).Error
	if err != nil {
		return unavailable("find food entry", err)
	}
	if count == 0 {
		return common.ErrRecordNotFound
	}
	return nil
}
