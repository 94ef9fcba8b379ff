package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"goflare.io/storefront/cart"
	"goflare.io/storefront/catalog"
	"goflare.io/storefront/event"
	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
)

const tracerName = "goflare.io/storefront"

var (
	ErrSessionRequired = errors.New("session id is required")
	ErrDessertNotFound = errors.New("dessert not found")
)

type Service interface {
	Catalog() []models.Dessert
	Currency() stripe.Currency
	GetCart(ctx context.Context, sessionID string) (*models.CartSummary, error)
	AddToCart(ctx context.Context, sessionID string, dessertID uint64) (*models.CartSummary, error)
	IncreaseQuantity(ctx context.Context, sessionID string, dessertID uint64) (*models.CartSummary, error)
	DecreaseQuantity(ctx context.Context, sessionID string, dessertID uint64) (*models.CartSummary, error)
	RemoveFromCart(ctx context.Context, sessionID string, dessertID uint64) (*models.CartSummary, error)
	EndSession(ctx context.Context, sessionID string) error
}

type service struct {
	catalog   *catalog.Catalog
	carts     cart.Repository
	publisher event.Publisher
	currency  stripe.Currency

	tracer trace.Tracer
	now    func() time.Time
	logger *zap.Logger
}

func NewService(
	cat *catalog.Catalog, carts cart.Repository, publisher event.Publisher,
	currency stripe.Currency,
	logger *zap.Logger) Service {
	return &service{
		catalog:   cat,
		carts:     carts,
		publisher: publisher,
		currency:  currency,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *service) Catalog() []models.Dessert {
	return s.catalog.Desserts()
}

func (s *service) Currency() stripe.Currency {
	return s.currency
}

func (s *service) GetCart(ctx context.Context, sessionID string) (*models.CartSummary, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetCart", trace.WithAttributes(
		attribute.String("session.id", sessionID)))
	defer span.End()

	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return cart.Summarize(s.catalog, c, s.currency), nil
}

// AddToCart adds one unit of dessertID, appending a new line when the dessert
// is not in the cart yet.
func (s *service) AddToCart(ctx context.Context, sessionID string, dessertID uint64) (*models.CartSummary, error) {
	return s.apply(ctx, "Service.AddToCart", sessionID, dessertID, enum.CartEventTypeItemAdded, cart.Add, s.requireDessert)
}

func (s *service) requireDessert(dessertID uint64) error {
	if _, ok := s.catalog.Lookup(dessertID); !ok {
		return fmt.Errorf("%w: %d", ErrDessertNotFound, dessertID)
	}
	return nil
}

func (s *service) IncreaseQuantity(ctx context.Context, sessionID string, dessertID uint64) (*models.CartSummary, error) {
	return s.apply(ctx, "Service.IncreaseQuantity", sessionID, dessertID, enum.CartEventTypeQuantityIncreased, cart.Increase, nil)
}

func (s *service) DecreaseQuantity(ctx context.Context, sessionID string, dessertID uint64) (*models.CartSummary, error) {
	return s.apply(ctx, "Service.DecreaseQuantity", sessionID, dessertID, enum.CartEventTypeQuantityDecreased, cart.Decrease, nil)
}

func (s *service) RemoveFromCart(ctx context.Context, sessionID string, dessertID uint64) (*models.CartSummary, error) {
	return s.apply(ctx, "Service.RemoveFromCart", sessionID, dessertID, enum.CartEventTypeLineRemoved, cart.Remove, nil)
}

// EndSession drops the session's cart.
func (s *service) EndSession(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "Service.EndSession", trace.WithAttributes(
		attribute.String("session.id", sessionID)))
	defer span.End()

	if sessionID == "" {
		return ErrSessionRequired
	}

	removed, err := s.carts.Delete(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if !removed.IsEmpty() {
		s.publish(ctx, &models.CartEvent{
			Type:      enum.CartEventTypeCartCleared,
			SessionID: sessionID,
		})
	}
	return nil
}

func (s *service) apply(
	ctx context.Context, spanName, sessionID string, dessertID uint64,
	eventType enum.CartEventType, op func(models.Cart, uint64) models.Cart,
	check func(dessertID uint64) error,
) (*models.CartSummary, error) {
	ctx, span := s.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.Int64("dessert.id", int64(dessertID))))
	defer span.End()

	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	if check != nil {
		if err := check(dessertID); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	changed := false
	updated, err := s.carts.Update(ctx, sessionID, func(current models.Cart) (models.Cart, error) {
		next := op(current, dessertID)
		changed = !cart.Equal(current, next)
		return next, nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("Failed to update cart",
			zap.String("session_id", sessionID),
			zap.Uint64("dessert_id", dessertID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}

	span.SetAttributes(attribute.Bool("cart.changed", changed))
	if changed {
		s.publish(ctx, &models.CartEvent{
			Type:      eventType,
			SessionID: sessionID,
			DessertID: dessertID,
			Quantity:  cart.Quantity(updated, dessertID),
		})
	}

	return cart.Summarize(s.catalog, updated, s.currency), nil
}

// publish never fails the request; a lost event is only logged.
func (s *service) publish(ctx context.Context, e *models.CartEvent) {
	e.ID = uuid.NewString()
	e.OccurredAt = s.now().UTC()

	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn("Failed to publish cart event",
			zap.String("event_type", string(e.Type)),
			zap.String("session_id", e.SessionID),
			zap.Error(err))
	}
}
