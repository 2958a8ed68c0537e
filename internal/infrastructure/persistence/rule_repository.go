package persistence

import (
	"context"
	"errors"
	"fmt"

	"health-recipe-modifier/internal/core/rules"
	"health-recipe-modifier/internal/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RuleRepository 以 GORM 實作 rules.Store
type RuleRepository struct {
	db *gorm.DB
}

// NewRuleRepository 創建規則存取
func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// FindRule 依正規化名稱查詢規則，查無時回傳 (nil, nil)
func (r *RuleRepository) FindRule(ctx context.Context, name string) (*rules.Rule, error) {
	var model RuleModel
	result := r.db.WithContext(ctx).First(&model, "ingredient = ?", common.NormalizeName(name))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, unavailable("find rule", result.Error)
	}
	rule := ruleFromModel(&model)
	return &rule, nil
}

// FindRules 批次查詢
func (r *RuleRepository) FindRules(ctx context.Context, names []string) ([]rules.Rule, error) {
	keys := common.SortedUnique(names)
	if len(keys) == 0 {
		return []rules.Rule{}, nil
	}

	var models []RuleModel
	if err := r.db.WithContext(ctx).Where("ingredient IN ?", keys).Find(&models).Error; err != nil {
		return nil, unavailable("find rules", err)
	}
	return rulesFromModels(models), nil
}

// UpsertIfAbsent 規則不存在時寫入，已存在時保持原值
func (r *RuleRepository) UpsertIfAbsent(ctx context.Context, rule rules.Rule) error {
	model := ruleToModel(rule.Normalized())
	if model.Ingredient == "" {
		return common.NewValidationError("rule ingredient is required")
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "ingredient"}}, DoNothing: true}).
		Create(model).Error
	if err != nil {
		return unavailable("upsert rule", err)
	}
	return nil
}

// All 取得全部規則，依名稱排序
func (r *RuleRepository) All(ctx context.Context) ([]rules.Rule, error) {
	var models []RuleModel
	if err := r.db.WithContext(ctx).Order("ingredient").Find(&models).Error; err != nil {
		return nil, unavailable("list rules", err)
	}
	return rulesFromModels(models), nil
}

// Count 規則數
func (r *RuleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RuleModel{}).Count(&count).Error; err != nil {
		return 0, unavailable("count rules", err)
	}
	return count, nil
}

// unavailable 將資料庫錯誤包裝為協作者不可用
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, common.ErrLookupUnavailable)
}
