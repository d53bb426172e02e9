package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/servicelink/admin-service/internal/config"
	"github.com/servicelink/admin-service/internal/events"
	"github.com/servicelink/admin-service/internal/observability"
)

var (
	// ErrQueueFull is returned by Publish when the event was dropped.
	ErrQueueFull = errors.New("notification queue full")
	// ErrStopped is returned by Publish after Stop.
	ErrStopped = errors.New("notification worker stopped")
)

const handlerTimeout = 30 * time.Second

// NotificationWorker runs event handlers off the request path. It satisfies
// events.Dispatcher: Publish only enqueues, and a fixed pool of goroutines
// delivers queued events to the handlers registered on the inner dispatcher.
type NotificationWorker struct {
	inner   events.Dispatcher
	queue   chan events.Event
	workers int
	logger  *zap.Logger
	metrics *observability.Metrics

	mu      sync.RWMutex
	stopped bool
	group   *errgroup.Group
}

// NewNotificationWorker wraps inner with a bounded queue.
func NewNotificationWorker(inner events.Dispatcher, cfg config.NotificationConfig, logger *zap.Logger, metrics *observability.Metrics) *NotificationWorker {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	size := cfg.QueueSize
	if size <= 0 {
		size = 1
	}
	return &NotificationWorker{
		inner:   inner,
		queue:   make(chan events.Event, size),
		workers: workers,
		logger:  logger,
		metrics: metrics,
	}
}

// Subscribe registers handler on the inner dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, handler)
}

// Publish enqueues event without blocking.
func (w *NotificationWorker) Publish(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrStopped
	}
	select {
	case w.queue <- event:
		return nil
	default:
		w.metrics.RecordDroppedEvent()
		return ErrQueueFull
	}
}

// Start launches the worker goroutines. Handlers run with a context derived
// from ctx, so cancelling it aborts in-flight deliveries.
func (w *NotificationWorker) Start(ctx context.Context) {
	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < w.workers; i++ {
		group.Go(func() error {
			for event := range w.queue {
				w.deliver(gctx, event)
			}
			return nil
		})
	}
	w.group = group
	w.logger.Info("notification worker started", zap.Int("workers", w.workers))
}

// Stop refuses new events, drains the queue and waits for the workers.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.queue)
	w.mu.Unlock()

	if w.group != nil {
		_ = w.group.Wait()
	}
	w.logger.Info("notification worker stopped")
}

func (w *NotificationWorker) deliver(ctx context.Context, event events.Event) {
	ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()
	if err := w.inner.Publish(ctx, event); err != nil {
		w.logger.Warn("event delivered with failures",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}
