package rules

import (
	"context"

	"health-recipe-modifier/internal/core/condition"
	"health-recipe-modifier/internal/pkg/common"
)

// Rule 食材規則：對哪些狀況有害、建議替代品與分類
type Rule struct {
	Ingredient  string   `json:"ingredient"`
	HarmfulFor  []string `json:"harmful_for"`
	Alternative string   `json:"alternative"`
	Category    string   `json:"category"`
}

// IsHarmfulFor 判斷規則是否適用於指定狀況
func (r Rule) IsHarmfulFor(c condition.Condition) bool {
	if c.IsZero() {
		return false
	}
	for _, tag := range r.HarmfulFor {
		if condition.Parse(tag) == c {
			return true
		}
	}
	return false
}

// Normalized 回傳名稱正規化後的副本
func (r Rule) Normalized() Rule {
	r.Ingredient = common.NormalizeName(r.Ingredient)
	return r
}

// Store 規則庫存取介面。
// 無法連線時回傳包裝 common.ErrLookupUnavailable 的錯誤；
// 查無資料時 FindRule 回傳 (nil, nil)。
type Store interface {
	FindRule(ctx context.Context, name string) (*Rule, error)
	FindRules(ctx context.Context, names []string) ([]Rule, error)
	UpsertIfAbsent(ctx context.Context, rule Rule) error
	All(ctx context.Context) ([]Rule, error)
}
