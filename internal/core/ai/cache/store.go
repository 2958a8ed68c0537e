// Package cache stores generated recipe text keyed by condition and the
// canonical substituted ingredient set.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"health-recipe-modifier/internal/pkg/common"
)

// KeyDelimiter 食材鍵的分隔符號
const KeyDelimiter = ","

// ErrMiss 快取未命中
var ErrMiss = errors.New("recipe cache miss")

// Entry 食譜快取條目
type Entry struct {
	Condition      string    `json:"condition"`
	IngredientsKey string    `json:"ingredients_key"`
	Recipe         string    `json:"recipe"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Store 食譜快取存取介面。
// Find 未命中時回傳 ErrMiss；後端無法連線時回傳包裝 common.ErrLookupUnavailable 的錯誤。
// Upsert 對相同 (condition, key) 後寫者覆蓋。
type Store interface {
	Find(ctx context.Context, condition, key string) (string, error)
	Upsert(ctx context.Context, condition, key, recipe string, updatedAt time.Time) error
}

// Key 產生食材集合的標準鍵：小寫、去空白、去重、排序後以逗號連接
func Key(ingredients []string) string {
	return strings.Join(common.SortedUnique(ingredients), KeyDelimiter)
}
