package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/teacher-directory/internal/events"
	"github.com/spec-kit/teacher-directory/internal/service"
)

var (
	// ErrQueueFull is returned when an event is published faster than handlers drain it.
	ErrQueueFull = errors.New("notification queue full")
	// ErrStopped is returned for events published after Stop.
	ErrStopped = errors.New("notification worker stopped")
)

// NotificationWorker moves event delivery off the request path. It satisfies
// events.Dispatcher, so services publish to it directly; Publish only enqueues.
type NotificationWorker struct {
	next   events.Dispatcher
	queue  chan events.Event
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewNotificationWorker buffers up to size events in front of next.
func NewNotificationWorker(next events.Dispatcher, size int, logger *zap.Logger) *NotificationWorker {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		next:   next,
		queue:  make(chan events.Event, size),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Subscribe registers handler on the underlying dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.next.Subscribe(eventType, handler)
}

// Publish enqueues event without blocking.
func (w *NotificationWorker) Publish(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrStopped
	}
	select {
	case w.queue <- event:
		return nil
	default:
		w.logger.Warn("dropping event; notification queue full",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID))
		return ErrQueueFull
	}
}

// Run delivers queued events until Stop is called and the queue is drained.
func (w *NotificationWorker) Run(ctx context.Context) {
	defer close(w.done)
	for event := range w.queue {
		if err := w.next.Publish(ctx, event); err != nil {
			w.logger.Warn("event delivery failed",
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID),
				zap.Error(err))
		}
	}
}

// Stop refuses new events and waits for Run to drain the queue or ctx to end.
func (w *NotificationWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartNotificationWorker subscribes the notification handlers and starts delivery.
func StartNotificationWorker(ctx context.Context, w *NotificationWorker, notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		logger.Warn("notification service not configured; registration notifications disabled")
	} else {
		notificationService.RegisterHandlers()
	}
	go w.Run(ctx)
	logger.Info("notification worker started", zap.Int("queue_size", cap(w.queue)))
}
