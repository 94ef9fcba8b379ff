package storefront

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"goflare.io/storefront/event"
	"goflare.io/storefront/models"
)

const taskQueueSize = 1000

var _ event.Sink = (*WorkerPool)(nil)

type EventProcessor interface {
	ProcessEvent(ctx context.Context, event *models.CartEvent) error
}

// WorkerPool runs event processing on a fixed number of goroutines fed by a
// bounded queue.
type WorkerPool struct {
	tasks     chan func()
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	logger    *zap.Logger
	processor EventProcessor
}

func NewWorkerPool(size int, processor EventProcessor, logger *zap.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}
	wp := &WorkerPool{
		tasks:     make(chan func(), taskQueueSize),
		logger:    logger,
		processor: processor,
	}

	wp.wg.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}

	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		wp.run(task)
	}
}

func (wp *WorkerPool) run(task func()) {
	defer func() {
		if p := recover(); p != nil {
			wp.logger.Error("panic in event task", zap.Any("panic", p))
		}
	}()
	task()
}

// Submit queues e for processing. Processing outlives the caller's context;
// if the queue stays full until ctx is done, the event is dropped.
func (wp *WorkerPool) Submit(ctx context.Context, e *models.CartEvent) {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closed {
		wp.logger.Warn("Worker pool closed, dropping event", zap.String("event_id", e.ID))
		return
	}

	taskCtx := context.WithoutCancel(ctx)
	task := func() {
		if err := wp.processor.ProcessEvent(taskCtx, e); err != nil {
			wp.logger.Error("Failed to process event",
				zap.Error(err),
				zap.String("event_type", string(e.Type)),
				zap.String("event_id", e.ID))
		}
	}

	select {
	case wp.tasks <- task:
	case <-ctx.Done():
		wp.logger.Warn("Worker pool queue full, dropping event",
			zap.String("event_id", e.ID),
			zap.Error(ctx.Err()))
	}
}

// Shutdown stops accepting events and waits for queued ones to finish.
func (wp *WorkerPool) Shutdown() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.tasks)
	wp.mu.Unlock()

	wp.wg.Wait()
}
