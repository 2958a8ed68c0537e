package rules

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"health-recipe-modifier/internal/core/condition"
	"health-recipe-modifier/internal/pkg/common"
)

// MaxInputLength 食材輸入字串的最大長度
const MaxInputLength = 2000

// CheckInputLength 以字元數（非位元組）檢查輸入是否超過上限
func CheckInputLength(raw string) error {
	if utf8.RuneCountInString(raw) > MaxInputLength {
		return common.NewValidationError(fmt.Sprintf("ingredient list exceeds %d characters", MaxInputLength))
	}
	return nil
}

// ResolvedIngredientSet 單次請求的比對結果
type ResolvedIngredientSet struct {
	Original     []string          `json:"original"`
	Normalized   []string          `json:"normalized"`
	Harmful      []string          `json:"harmful"`
	Substituted  []string          `json:"substituted"`
	Replacements map[string]string `json:"replacements"` // 以 Harmful 中的原始寫法為鍵
}

// Empty 輸入是否為空
func (s *ResolvedIngredientSet) Empty() bool {
	return len(s.Original) == 0
}

// Matcher 將自由輸入的食材對應到規則並判斷是否有害
type Matcher struct {
	cache *Cache
}

// NewMatcher 創建比對器
func NewMatcher(cache *Cache) *Matcher {
	return &Matcher{cache: cache}
}

// ResolveText 解析逗號分隔的食材字串
func (m *Matcher) ResolveText(ctx context.Context, raw string, c condition.Condition) (*ResolvedIngredientSet, error) {
	if err := CheckInputLength(raw); err != nil {
		return nil, err
	}
	return m.Resolve(ctx, common.SplitList(raw), c)
}

// Resolve 比對已切分的食材清單。空清單回傳空結果，由呼叫端決定是否視為驗證錯誤。
func (m *Matcher) Resolve(ctx context.Context, ingredients []string, c condition.Condition) (*ResolvedIngredientSet, error) {
	set := &ResolvedIngredientSet{
		Original:     []string{},
		Normalized:   []string{},
		Harmful:      []string{},
		Substituted:  []string{},
		Replacements: map[string]string{},
	}
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			set.Original = append(set.Original, ing)
		}
	}
	if set.Empty() {
		return set, nil
	}

	snapshot := m.cache.Snapshot(ctx)
	for _, ing := range set.Original {
		norm := common.NormalizeName(ing)
		set.Normalized = append(set.Normalized, norm)

		rule, ok := lookup(snapshot, norm)
		if !ok || !rule.IsHarmfulFor(c) {
			set.Substituted = append(set.Substituted, ing)
			continue
		}
		set.Harmful = append(set.Harmful, ing)
		set.Substituted = append(set.Substituted, rule.Alternative)
		set.Replacements[ing] = rule.Alternative
	}
	return set, nil
}

// lookup 先比對完整名稱，若以 s 結尾且單數形式存在則使用單數
func lookup(snapshot map[string]Rule, key string) (Rule, bool) {
	if r, ok := snapshot[key]; ok {
		return r, true
	}
	if singular, found := strings.CutSuffix(key, "s"); found && singular != "" {
		if r, ok := snapshot[singular]; ok {
			return r, true
		}
	}
	return Rule{}, false
}
