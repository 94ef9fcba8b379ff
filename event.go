package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"goflare.io/storefront/event"
	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
)

var _ EventProcessor = (*EventManager)(nil)

type EventHandler func(context.Context, *models.CartEvent) error

// EventManager routes cart events to the handlers registered for their type.
type EventManager struct {
	mu       sync.RWMutex
	handlers map[enum.CartEventType][]EventHandler
	logger   *zap.Logger
}

// NewEventManager returns a manager with the activity log handler registered
// for every event type.
func NewEventManager(logger *zap.Logger) *EventManager {
	em := &EventManager{
		handlers: make(map[enum.CartEventType][]EventHandler),
		logger:   logger,
	}
	em.registerEventHandlers()
	return em
}

func (em *EventManager) registerEventHandlers() {
	for _, eventType := range enum.CartEventTypes {
		em.RegisterHandler(eventType, em.logActivity)
	}
}

func (em *EventManager) RegisterHandler(eventType enum.CartEventType, handler EventHandler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.handlers[eventType] = append(em.handlers[eventType], handler)
}

func (em *EventManager) GetHandlers(eventType enum.CartEventType) []EventHandler {
	em.mu.RLock()
	defer em.mu.RUnlock()
	out := make([]EventHandler, len(em.handlers[eventType]))
	copy(out, em.handlers[eventType])
	return out
}

// ProcessEvent runs every handler for e.Type and joins their errors.
func (em *EventManager) ProcessEvent(ctx context.Context, e *models.CartEvent) error {
	handlers := em.GetHandlers(e.Type)
	if len(handlers) == 0 {
		em.logger.Debug("No handler for event", zap.String("event_type", string(e.Type)))
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SubscribeToEvents feeds every cart event published on NATS into wp.
func (em *EventManager) SubscribeToEvents(conn *nats.Conn, wp *WorkerPool) (*nats.Subscription, error) {
	sub, err := conn.Subscribe(event.SubjectWildcard, func(msg *nats.Msg) {
		e, err := event.Decode(msg.Data)
		if err != nil {
			em.logger.Error("Failed to unmarshal event", zap.String("subject", msg.Subject), zap.Error(err))
			return
		}

		wp.Submit(context.Background(), e)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", event.SubjectWildcard, err)
	}

	return sub, nil
}

func (em *EventManager) logActivity(_ context.Context, e *models.CartEvent) error {
	em.logger.Info("Cart activity",
		zap.String("event_id", e.ID),
		zap.String("event_type", string(e.Type)),
		zap.String("session_id", e.SessionID),
		zap.Uint64("dessert_id", e.DessertID),
		zap.Uint64("quantity", e.Quantity),
		zap.Time("occurred_at", e.OccurredAt))
	return nil
}
