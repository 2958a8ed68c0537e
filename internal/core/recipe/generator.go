package recipe

import (
	"context"
	"errors"
	"time"

	"health-recipe-modifier/internal/core/ai/cache"
	"health-recipe-modifier/internal/core/condition"
	"health-recipe-modifier/internal/pkg/common"

	"go.uber.org/zap"
)

// Source 食譜文字的來源
type Source string

const (
	SourceCache     Source = "cache"
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// TextGenerator 外部文字生成服務
type TextGenerator interface {
	Available() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeneratorMetrics 食譜來源與快取指標（可為 nil）
type GeneratorMetrics interface {
	RecipeSource(source string)
	CacheHit(cache string)
	CacheMiss(cache string)
}

// GenerateRequest 食譜生成輸入
type GenerateRequest struct {
	Original    []string
	Substituted []string
	Harmful     []string
	Condition   condition.Condition
	RecipeName  string
}

// Generator 依序嘗試快取、文字生成、固定模板
type Generator struct {
	cache   cache.Store
	ai      TextGenerator
	metrics GeneratorMetrics
	now     func() time.Time
}

// NewGenerator 創建食譜生成器，cache 與 ai 皆可為 nil
func NewGenerator(store cache.Store, ai TextGenerator, metrics GeneratorMetrics) *Generator {
	return &Generator{
		cache:   store,
		ai:      ai,
		metrics: metrics,
		now:     time.Now,
	}
}

// Generate 回傳食譜文字與來源，永不失敗
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (string, Source) {
	key := cache.Key(req.Substituted)
	tag := req.Condition.Tag()

	if text, ok := g.fromCache(ctx, tag, key); ok {
		g.observe(SourceCache)
		return text, SourceCache
	}

	if g.ai == nil || !g.ai.Available() {
		g.observe(SourceFallback)
		return FallbackRecipe(req.Substituted), SourceFallback
	}

	text, err := g.ai.Complete(ctx, buildRecipePrompt(req))
	if err != nil {
		common.LogWarn("文字生成失敗，使用預設食譜",
			zap.String("condition", tag),
			zap.Error(err),
		)
		g.observe(SourceFallback)
		return FallbackRecipe(req.Substituted), SourceFallback
	}

	g.store(ctx, tag, key, text)
	g.observe(SourceGenerated)
	return text, SourceGenerated
}

func (g *Generator) fromCache(ctx context.Context, tag, key string) (string, bool) {
	if g.cache == nil {
		return "", false
	}
	text, err := g.cache.Find(ctx, tag, key)
	switch {
	case err == nil && text != "":
		common.LogCacheHit("recipe", key)
		if g.metrics != nil {
			g.metrics.CacheHit("recipe")
		}
		return text, true
	case err != nil && !errors.Is(err, cache.ErrMiss):
		common.LogWarn("食譜快取讀取失敗", zap.String("key", key), zap.Error(err))
	}
	common.LogCacheMiss("recipe", key)
	if g.metrics != nil {
		g.metrics.CacheMiss("recipe")
	}
	return "", false
}

// store 寫入快取，失敗只記錄
func (g *Generator) store(ctx context.Context, tag, key, text string) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Upsert(ctx, tag, key, text, g.now()); err != nil {
		common.LogWarn("食譜快取寫入失敗",
			zap.String("condition", tag),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (g *Generator) observe(source Source) {
	if g.metrics != nil {
		g.metrics.RecipeSource(string(source))
	}
}
