package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"health-recipe-modifier/internal/pkg/common"
)

// MemoryStore 行程內食譜快取，容量滿時以最少使用次數、最久未存取者淘汰
type MemoryStore struct {
	maxSize int
	mu      sync.RWMutex
	store   map[string]memoryEntry
	stats   cacheStats
}

type memoryEntry struct {
	Entry
	lastAccess  time.Time
	accessCount int
}

type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewMemoryStore 創建行程內食譜快取
func NewMemoryStore(maxSize int) *MemoryStore {
	if maxSize <= 0 {
		maxSize = 1000
	}
	common.LogInfo("食譜快取(記憶體)已初始化", zap.Int("最大容量", maxSize))
	return &MemoryStore{
		maxSize: maxSize,
		store:   make(map[string]memoryEntry),
	}
}

func memoryKey(condition, key string) string {
	return condition + "|" + key
}

// Find 查詢快取
func (m *MemoryStore) Find(ctx context.Context, condition, key string) (string, error) {
	k := memoryKey(condition, key)

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.store[k]
	if !ok {
		m.stats.misses++
		return "", ErrMiss
	}
	entry.lastAccess = time.Now()
	entry.accessCount++
	m.store[k] = entry
	m.stats.hits++
	return entry.Recipe, nil
}

// Upsert 寫入或覆蓋快取
func (m *MemoryStore) Upsert(ctx context.Context, condition, key, recipe string, updatedAt time.Time) error {
	k := memoryKey(condition, key)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[k]; !exists && len(m.store) >= m.maxSize {
		m.evictLRU()
	}
	m.store[k] = memoryEntry{
		Entry: Entry{
			Condition:      condition,
			IngredientsKey: key,
			Recipe:         recipe,
			UpdatedAt:      updatedAt,
		},
		lastAccess: time.Now(),
	}
	return nil
}

// evictLRU 淘汰最少訪問的項目
func (m *MemoryStore) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// GetStats 獲取快取統計信息
func (m *MemoryStore) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ratio := 0.0
	if total := m.stats.hits + m.stats.misses; total > 0 {
		ratio = float64(m.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.maxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"hit_ratio": ratio,
	}
}

// Close 清空快取
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]memoryEntry)
	common.LogInfo("食譜快取(記憶體)已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
