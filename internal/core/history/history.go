// Package history 保存使用者的食材檢查紀錄
package history

import (
	"context"
	"time"

	"health-recipe-modifier/internal/core/nutrition"
)

// AnonymousOwner 未登入使用者的擁有者 ID
const AnonymousOwner = "1"

// DefaultLimit 與 MaxLimit 限制單次查詢筆數
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// FoodEntry 一次食材檢查的紀錄。建立後僅 Favorite、Category、Nutrition 可更新。
type FoodEntry struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id"`
	Condition        string             `json:"condition"`
	RecipeName       string             `json:"recipe_name,omitempty"`
	InputIngredients []string           `json:"input_ingredients"`
	Harmful          []string           `json:"harmful"`
	Safe             []string           `json:"safe"`
	Recipe           string             `json:"recipe"`
	CreatedAt        time.Time          `json:"created_at"`
	Favorite         bool               `json:"favorite"`
	Category         string             `json:"category,omitempty"`
	Nutrition        *nutrition.Summary `json:"nutrition,omitempty"`
}

// Filter 查詢條件，零值欄位不參與過濾
type Filter struct {
	Condition string
	Favorite  *bool
	Category  string
	Limit     int
}

// Normalize 套用預設與上限
func (f Filter) Normalize() Filter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultLimit
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}
	return f
}

// Fields 可就地更新的欄位，nil 表示不更新
type Fields struct {
	Favorite  *bool
	Category  *string
	Nutrition *nutrition.Summary
}

// Store 紀錄存取介面。所有更新皆以擁有者限定範圍，
// 找不到或不屬於該使用者時回傳 common.ErrRecordNotFound。紀錄永不刪除。
type Store interface {
	Insert(ctx context.Context, entry *FoodEntry) (string, error)
	UpdateFields(ctx context.Context, id, ownerID string, fields Fields) error
	ToggleFavorite(ctx context.Context, id, ownerID string) (bool, error)
	FindByOwner(ctx context.Context, ownerID string, filter Filter) ([]FoodEntry, error)
}

// Owner 回傳擁有者 ID，空值視為匿名使用者
func Owner(userID string) string {
	if userID == "" {
		return AnonymousOwner
	}
	return userID
}
