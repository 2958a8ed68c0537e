package recipe

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	// SuggestCutoff 建議名稱的最低相似度
	SuggestCutoff = 0.6
	// SuggestLimit 最多回傳的建議數
	SuggestLimit = 3
	// closeEnough 最接近的建議高於此相似度時視為拼寫正確
	closeEnough = 0.9
)

// SampleRecipe 內建範例食譜
type SampleRecipe struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Tags        []string `json:"tags"`
}

// CatalogStore 範例食譜存取介面，查無資料時回傳 (nil, nil)
type CatalogStore interface {
	FindByName(ctx context.Context, name string) (*SampleRecipe, error)
	FindByNameContaining(ctx context.Context, fragment string) (*SampleRecipe, error)
	Names(ctx context.Context) ([]string, error)
}

// NameSuggestion 食譜名稱的拼寫建議
type NameSuggestion struct {
	IsCorrect   bool     `json:"is_correct"`
	Suggestions []string `json:"suggestions"`
}

// SampleRecipes 啟動時寫入的範例食譜
func SampleRecipes() []SampleRecipe {
	return []SampleRecipe{
		{Name: "banana bread", Ingredients: []string{"flour", "banana", "sugar", "butter", "eggs"}, Tags: []string{"dessert", "bread"}},
		{Name: "pancakes", Ingredients: []string{"flour", "milk", "eggs", "butter", "salt", "sugar"}, Tags: []string{"breakfast"}},
		{Name: "peanut stir fry", Ingredients: []string{"soy", "peanuts", "salt", "corn", "butter"}, Tags: []string{"dinner"}},
		{Name: "bread", Ingredients: []string{"flour", "water", "yeast", "salt"}, Tags: []string{"bread", "basic"}},
		{Name: "puran poli", Ingredients: []string{"wheat flour", "chana dal", "jaggery", "ghee", "cardamom", "turmeric", "salt"}, Tags: []string{"indian", "sweet", "festive"}},
	}
}

// Catalog 依名稱查詢範例食譜的食材
type Catalog struct {
	store CatalogStore
}

// NewCatalog 創建範例食譜查詢
func NewCatalog(store CatalogStore) *Catalog {
	return &Catalog{store: store}
}

// Ingredients 先以名稱完全相符（不分大小寫）查詢，再以部分相符查詢；都找不到時回傳空清單
func (c *Catalog) Ingredients(ctx context.Context, name string) ([]string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return []string{}, nil
	}

	r, err := c.store.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if r == nil {
		if r, err = c.store.FindByNameContaining(ctx, name); err != nil {
			return nil, err
		}
	}
	if r == nil || r.Ingredients == nil {
		return []string{}, nil
	}
	return r.Ingredients, nil
}

// Suggest 以編輯距離比對範例食譜名稱，完全相符或沒有相近名稱時視為正確
func (c *Catalog) Suggest(ctx context.Context, name string) (*NameSuggestion, error) {
	out := &NameSuggestion{IsCorrect: true, Suggestions: []string{}}
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return out, nil
	}

	names, err := c.store.Names(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		name  string
		ratio float64
	}
	var matches []scored
	for _, n := range names {
		lower := strings.ToLower(n)
		if lower == query {
			return out, nil
		}
		if r := similarity(query, lower); r >= SuggestCutoff {
			matches = append(matches, scored{name: n, ratio: r})
		}
	}
	if len(matches) == 0 {
		return out, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].ratio != matches[j].ratio {
			return matches[i].ratio > matches[j].ratio
		}
		return matches[i].name < matches[j].name
	})
	if len(matches) > SuggestLimit {
		matches = matches[:SuggestLimit]
	}
	for _, m := range matches {
		out.Suggestions = append(out.Suggestions, m.name)
	}
	out.IsCorrect = matches[0].ratio > closeEnough
	return out, nil
}

// similarity 1 減去以較長字串字元數正規化的編輯距離
func similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
