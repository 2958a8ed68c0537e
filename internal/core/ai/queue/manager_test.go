package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RunsJobs(t *testing.T) {
	m := NewManager(2, 10, nil)

	var count int64
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Enqueue(&Job{Name: "inc", Run: func(ctx context.Context) error {
			atomic.AddInt64(&count, 1)
			return nil
		}}))
	}
	require.NoError(t, m.Enqueue(&Job{Name: "fail", Run: func(ctx context.Context) error {
		return errors.New("boom")
	}}))
	require.NoError(t, m.Enqueue(&Job{Name: "panic", Run: func(ctx context.Context) error {
		panic("unexpected")
	}}))

	m.Close()

	assert.EqualValues(t, 5, atomic.LoadInt64(&count))
	status := m.GetQueueStatus()
	assert.EqualValues(t, 7, status.ProcessedCount)
	assert.EqualValues(t, 2, status.FailedCount)
	assert.ErrorIs(t, m.Enqueue(&Job{Name: "late"}), ErrQueueClosed)
}

func TestManager_FullQueue(t *testing.T) {
	m := NewManager(1, 1, nil)
	block := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, m.Enqueue(&Job{Name: "block", Run: func(ctx context.Context) error {
		close(started)
		<-block
		return nil
	}}))
	<-started
	require.NoError(t, m.Enqueue(&Job{Name: "waiting", Run: func(ctx context.Context) error { return nil }}))
	assert.ErrorIs(t, m.Enqueue(&Job{Name: "overflow"}), ErrQueueFull)

	close(block)
	m.Close()
}

func TestManager_JobTimeout(t *testing.T) {
	m := NewManager(1, 1, nil)
	var gotErr atomic.Value

	require.NoError(t, m.Enqueue(&Job{Name: "slow", Timeout: 10 * time.Millisecond, Run: func(ctx context.Context) error {
		<-ctx.Done()
		gotErr.Store(ctx.Err())
		return ctx.Err()
	}}))
	m.Close()

	assert.ErrorIs(t, gotErr.Load().(error), context.DeadlineExceeded)
}
