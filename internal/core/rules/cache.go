package rules

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"health-recipe-modifier/internal/pkg/common"
)

// DefaultTTL 規則快照的有效時間
const DefaultTTL = 5 * time.Minute

// CacheMetrics 快取命中統計（可為 nil）
type CacheMetrics interface {
	CacheHit(cache string)
	CacheMiss(cache string)
}

// Cache 規則庫的時間限制快照。
// 過期或首次使用時同步重建；重建失敗時沿用舊快照，沒有舊快照則使用空表。
type Cache struct {
	store   Store
	ttl     time.Duration
	now     func() time.Time
	metrics CacheMetrics

	mu         sync.RWMutex
	snapshot   map[string]Rule
	capturedAt time.Time
}

// NewCache 創建規則快取
func NewCache(store Store, ttl time.Duration, metrics CacheMetrics) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:   store,
		ttl:     ttl,
		now:     time.Now,
		metrics: metrics,
	}
}

// Snapshot 取得目前有效的規則表，呼叫端不可修改回傳的 map
func (c *Cache) Snapshot(ctx context.Context) map[string]Rule {
	now := c.now()

	c.mu.RLock()
	snap, captured := c.snapshot, c.capturedAt
	c.mu.RUnlock()

	if snap != nil && now.Sub(captured) < c.ttl {
		if c.metrics != nil {
			c.metrics.CacheHit("rules")
		}
		return snap
	}
	if c.metrics != nil {
		c.metrics.CacheMiss("rules")
	}

	fresh, err := c.rebuild(ctx)
	if err != nil {
		common.LogWarn("重建規則快取失敗，沿用既有快照", zap.Error(err), zap.Bool("has_previous", snap != nil))
		if snap != nil {
			return snap
		}
		return map[string]Rule{}
	}

	c.mu.Lock()
	c.snapshot = fresh
	c.capturedAt = now
	c.mu.Unlock()

	return fresh
}

// Invalidate 清除快照，下次使用時重建
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.capturedAt = time.Time{}
	c.mu.Unlock()
}

func (c *Cache) rebuild(ctx context.Context) (map[string]Rule, error) {
	all, err := c.store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Rule, len(all))
	for _, r := range all {
		r = r.Normalized()
		if r.Ingredient == "" {
			continue
		}
		out[r.Ingredient] = r
	}
	common.LogDebug("規則快取已重建", zap.Int("rules", len(out)))
	return out, nil
}
