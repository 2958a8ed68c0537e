package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"health-recipe-modifier/internal/pkg/common"
)

// ErrQueueFull 隊列已滿
var ErrQueueFull = errors.New("queue is full")

// ErrQueueClosed 隊列已關閉
var ErrQueueClosed = errors.New("queue manager is closed")

// Job 背景工作
type Job struct {
	Name    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Metrics 背景工作指標（可為 nil）
type Metrics interface {
	JobDone(err error)
}

// Status 隊列狀態
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	FailedCount    int64 `json:"failed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Manager 隊列管理器，固定數量的 worker 依序處理背景工作
type Manager struct {
	workers   int
	maxSize   int
	queue     chan *Job
	metrics   Metrics
	processed int64
	failed    int64
	wg        sync.WaitGroup
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewManager 創建新的隊列管理器並啟動 worker
func NewManager(workers, maxSize int, metrics Metrics) *Manager {
	if workers <= 0 {
		workers = 1
	}
	if maxSize <= 0 {
		maxSize = 100
	}
	m := &Manager{
		workers: workers,
		maxSize: maxSize,
		queue:   make(chan *Job, maxSize),
		metrics: metrics,
	}
	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}
	common.LogInfo("背景隊列已啟動", zap.Int("workers", workers), zap.Int("max_queue_size", maxSize))
	return m
}

// Enqueue 將工作加入隊列，不阻塞
func (m *Manager) Enqueue(job *Job) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrQueueClosed
	}

	select {
	case m.queue <- job:
		common.LogDebug("Job enqueued",
			zap.String("job", job.Name),
			zap.Int("queue_length", len(m.queue)),
		)
		return nil
	default:
		return ErrQueueFull
	}
}

func (m *Manager) worker(id int) {
	defer m.wg.Done()
	for job := range m.queue {
		err := m.run(job)
		if err != nil {
			atomic.AddInt64(&m.failed, 1)
			common.LogWarn("背景工作失敗", zap.Int("worker", id), zap.String("job", job.Name), zap.Error(err))
		}
		atomic.AddInt64(&m.processed, 1)
		if m.metrics != nil {
			m.metrics.JobDone(err)
		}
	}
}

func (m *Manager) run(job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panic: %v", r)
		}
	}()

	ctx := context.Background()
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}
	return job.Run(ctx)
}

// GetQueueStatus 獲取隊列狀態
func (m *Manager) GetQueueStatus() *Status {
	return &Status{
		QueueLength:    len(m.queue),
		ProcessedCount: atomic.LoadInt64(&m.processed),
		FailedCount:    atomic.LoadInt64(&m.failed),
		MaxQueueSize:   m.maxSize,
		Workers:        m.workers,
	}
}

// Close 停止接收新工作並等待已排入的工作完成
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		close(m.queue)
		m.mu.Unlock()
	})
	m.wg.Wait()
}
