package runtime

import (
	"chat-hub/domain"
	"chat-hub/errors"
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// UploadQueue holds pending transfers in a bounded channel. Workers take a
// permit from a separate pool before each item, so the backlog size and the
// number of transfers in flight are tuned independently.
type UploadQueue struct {
	items          chan domain.Transfer
	permits        *semaphore.Weighted
	concurrency    int
	enqueueTimeout time.Duration

	// gate is held shared by producers for the duration of an Enqueue and
	// exclusively by Shutdown, so no send is in flight once Shutdown returns.
	gate      sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once

	mu        sync.Mutex
	active    int
	completed int
	failed    int
}

func NewUploadQueue(capacity, concurrency int, enqueueTimeout time.Duration) *UploadQueue {
	return &UploadQueue{
		items:          make(chan domain.Transfer, capacity),
		permits:        semaphore.NewWeighted(int64(concurrency)),
		concurrency:    concurrency,
		enqueueTimeout: enqueueTimeout,
		done:           make(chan struct{}),
	}
}

// Enqueue blocks while the queue is full. It fails with ErrShuttingDown once
// shutdown began and with ErrQueueFull when the enqueue timeout elapses.
func (q *UploadQueue) Enqueue(ctx context.Context, t domain.Transfer) error {
	q.gate.RLock()
	defer q.gate.RUnlock()

	if q.ShuttingDown() {
		return errors.ErrShuttingDown
	}

	var timeout <-chan time.Time
	if q.enqueueTimeout > 0 {
		timer := time.NewTimer(q.enqueueTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case q.items <- t:
		return nil
	case <-q.done:
		return errors.ErrShuttingDown
	case <-ctx.Done():
		return errors.ErrShuttingDown
	case <-timeout:
		return errors.ErrQueueFull
	}
}

// Acquire takes a transfer permit.
func (q *UploadQueue) Acquire(ctx context.Context) error {
	return q.permits.Acquire(ctx, 1)
}

func (q *UploadQueue) Release() {
	q.permits.Release(1)
}

// Next waits for a pending transfer. It returns false on shutdown.
func (q *UploadQueue) Next(ctx context.Context) (domain.Transfer, bool) {
	if q.ShuttingDown() {
		return domain.Transfer{}, false
	}
	select {
	case t := <-q.items:
		return t, true
	case <-q.done:
		return domain.Transfer{}, false
	case <-ctx.Done():
		return domain.Transfer{}, false
	}
}

func (q *UploadQueue) ShuttingDown() bool {
	select {
	case <-q.done:
		return true
	default:
		return false
	}
}

// Started counts a transfer entering Processing.
func (q *UploadQueue) Started() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.active++
}

// Finish counts a terminal transfer.
func (q *UploadQueue) Finish(t domain.Transfer) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t.Started() {
		q.active--
	}
	switch t.Status.(type) {
	case domain.Completed:
		q.completed++
	case domain.Failed:
		q.failed++
	}
}

// Shutdown rejects new and blocked producers and wakes idle workers.
func (q *UploadQueue) Shutdown() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
	q.gate.Lock()
	defer q.gate.Unlock()
}

// Drain removes every transfer still pending. Call it after Shutdown.
func (q *UploadQueue) Drain() []domain.Transfer {
	var pending []domain.Transfer
	for {
		select {
		case t := <-q.items:
			pending = append(pending, t)
		default:
			return pending
		}
	}
}

func (q *UploadQueue) Concurrency() int {
	return q.concurrency
}

func (q *UploadQueue) Stats() domain.TransferStats {
	q.mu.Lock()
	defer q.mu.Unlock()

	return domain.TransferStats{
		Active:    q.active,
		Queued:    len(q.items),
		Capacity:  cap(q.items),
		Completed: q.completed,
		Failed:    q.failed,
	}
}
