package nutrition

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"health-recipe-modifier/internal/pkg/common"
)

// Accuracy 營養計算準確度
type Accuracy string

const (
	AccuracyCalculated Accuracy = "calculated"
	AccuracyEstimated  Accuracy = "estimated"
)

// DefaultServings 預設份數
const DefaultServings = 4

// Summary 食譜營養摘要
type Summary struct {
	Totals              Values   `json:"totals"`
	PerServing          Values   `json:"per_serving"`
	DailyPercentages    Values   `json:"daily_percentages"`
	Servings            int      `json:"servings"`
	IngredientsAnalyzed int      `json:"ingredients_analyzed"`
	IngredientsFound    int      `json:"ingredients_found"`
	IngredientDetails   []Fact   `json:"ingredient_details"`
	Accuracy            Accuracy `json:"accuracy"`
}

// Metrics 營養查詢指標（可為 nil）
type Metrics interface {
	NutritionLookup(source string)
	ObserveNutritionLookup(duration time.Duration)
}

// Options 聚合器設定
type Options struct {
	Workers int
	Timeout time.Duration
	Metrics Metrics
}

// Aggregator 解析食材營養資料並彙總為每份數值
type Aggregator struct {
	lookup  Lookup
	workers int
	timeout time.Duration
	metrics Metrics

	mu    sync.RWMutex
	memo  map[string]Fact
	group singleflight.Group
}

// NewAggregator 創建聚合器，lookup 為 nil 時一律使用分類估算
func NewAggregator(lookup Lookup, opts Options) *Aggregator {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	return &Aggregator{
		lookup:  lookup,
		workers: opts.Workers,
		timeout: opts.Timeout,
		metrics: opts.Metrics,
		memo:    make(map[string]Fact),
	}
}

// Calculate 併發解析所有不重複食材並彙總。servings <= 0 視為 1。
func (a *Aggregator) Calculate(ctx context.Context, ingredients []string, servings int) *Summary {
	if servings <= 0 {
		servings = 1
	}

	names := distinct(ingredients)
	if len(names) == 0 {
		return emptySummary(servings)
	}

	facts := make([]Fact, len(names))
	var g errgroup.Group
	g.SetLimit(a.workers)
	for i, name := range names {
		g.Go(func() error {
			facts[i] = a.Resolve(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	return summarize(facts, servings)
}

// Resolve 取得單一食材營養資料：memo → 外部查詢 → 分類估算
func (a *Aggregator) Resolve(ctx context.Context, ingredient string) Fact {
	key := common.NormalizeName(ingredient)

	if fact, ok := a.cached(key); ok {
		a.count("memo")
		return withName(fact, ingredient)
	}

	v, _, _ := a.group.Do(key, func() (interface{}, error) {
		if fact, ok := a.cached(key); ok {
			return fact, nil
		}
		fact := a.fetch(ctx, key)

		a.mu.Lock()
		a.memo[key] = fact
		a.mu.Unlock()
		return fact, nil
	})
	return withName(v.(Fact), ingredient)
}

func (a *Aggregator) cached(key string) (Fact, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	fact, ok := a.memo[key]
	return fact, ok
}

func (a *Aggregator) fetch(ctx context.Context, key string) Fact {
	if a.lookup == nil {
		a.count("estimate")
		return Estimate(key)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	fact, err := a.lookup.Lookup(lookupCtx, key)
	if a.metrics != nil {
		a.metrics.ObserveNutritionLookup(time.Since(start))
	}

	switch {
	case err != nil:
		common.LogWarn("營養查詢失敗，使用分類估算", zap.String("ingredient", key), zap.Error(err))
	case fact == nil:
		common.LogDebug("查無營養資料，使用分類估算", zap.String("ingredient", key))
	default:
		a.count("usda")
		return fact.clone()
	}
	a.count("estimate")
	return Estimate(key)
}

func (a *Aggregator) count(source string) {
	if a.metrics != nil {
		a.metrics.NutritionLookup(source)
	}
}

// MemoSize memo 中的食材數
func (a *Aggregator) MemoSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.memo)
}

func withName(f Fact, ingredient string) Fact {
	f = f.clone()
	f.Ingredient = ingredient
	return f
}

// distinct 去除空白項目並以小寫去重，保留第一次出現的原始寫法與順序
func distinct(ingredients []string) []string {
	seen := make(map[string]struct{}, len(ingredients))
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		key := common.NormalizeName(ing)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(ing))
	}
	return out
}

func summarize(facts []Fact, servings int) *Summary {
	s := &Summary{
		Totals:              NewValues(),
		PerServing:          NewValues(),
		DailyPercentages:    NewValues(),
		Servings:            servings,
		IngredientsAnalyzed: len(facts),
		IngredientDetails:   facts,
	}

	for _, f := range facts {
		if f.Found {
			s.IngredientsFound++
		}
		for _, n := range AllNutrients {
			s.Totals[n] += f.Nutrients[n]
		}
	}

	for _, n := range AllNutrients {
		s.Totals[n] = round(s.Totals[n], 2)
		s.PerServing[n] = round(s.Totals[n]/float64(servings), 1)
		if dv := DailyValues[n]; dv > 0 {
			s.DailyPercentages[n] = round(s.PerServing[n]/dv*100, 1)
		}
	}

	s.Accuracy = AccuracyEstimated
	if float64(s.IngredientsFound) >= float64(s.IngredientsAnalyzed)/2 {
		s.Accuracy = AccuracyCalculated
	}
	return s
}

func emptySummary(servings int) *Summary {
	return &Summary{
		Totals:            NewValues(),
		PerServing:        NewValues(),
		DailyPercentages:  NewValues(),
		Servings:          servings,
		IngredientDetails: []Fact{},
		Accuracy:          AccuracyEstimated,
	}
}
