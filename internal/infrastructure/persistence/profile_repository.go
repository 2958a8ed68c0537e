package persistence

import (
	"context"
	"errors"

	"health-recipe-modifier/internal/core/profile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository 以 GORM 實作 profile.Store
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 創建使用者設定存取
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get 查詢使用者設定，查無時回傳 (nil, nil)
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	var model ProfileModel
	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, unavailable("find profile", result.Error)
	}
	return profileFromModel(&model), nil
}

// Save 建立或更新使用者設定
func (r *ProfileRepository) Save(ctx context.Context, p *profile.Profile) error {
	model := profileToModel(p)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"medical_condition", "diet_type", "allergies", "fitness_goal", "daily_calorie_target", "updated_at",
		}),
	}).Create(model).Error
	if err != nil {
		return unavailable("save profile", err)
	}
	p.UpdatedAt = model.UpdatedAt
	return nil
}
