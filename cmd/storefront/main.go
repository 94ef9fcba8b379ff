package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"goflare.io/storefront"
	"goflare.io/storefront/cart"
	"goflare.io/storefront/catalog"
	"goflare.io/storefront/config"
	"goflare.io/storefront/driver"
	"goflare.io/storefront/event"
	"goflare.io/storefront/telemetry"
	"goflare.io/storefront/web"
)

const shutdownTimeout = 10 * time.Second

// @title Dessert Storefront API
// @version 1.0
// @description Catalog and session cart API for the dessert storefront
// @host localhost:8080
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, shutdownTracing, err := telemetry.InitTracing(ctx, telemetry.Config{
		ServiceName: "storefront",
		Host:        cfg.OTELHost,
		Probability: 1.0,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Failed to shut down tracing", zap.Error(err))
		}
	}()

	cat, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("Catalog loaded", zap.Int("desserts", cat.Len()))

	carts, closeCarts, err := newCartRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCarts()

	em := storefront.NewEventManager(logger)
	wp := storefront.NewWorkerPool(cfg.Workers, em, logger)
	defer wp.Shutdown()

	publisher, closeEvents, err := newPublisher(cfg, em, wp, logger)
	if err != nil {
		return err
	}
	defer closeEvents()

	svc := storefront.NewService(cat, carts, publisher, cfg.Currency, logger)
	handler := web.NewHandler(svc, cfg.SessionTTL, logger)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	if cfg.DatabaseURL == "" {
		return catalog.NewEmbeddedSource().Load(ctx)
	}

	db, err := driver.ConnectSQL(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	// the catalog is read once, so the pool is not kept around
	defer db.Pool.Close()

	tm := driver.NewTransactionManager(db.Pool, logger)
	return catalog.NewPostgresSource(tm, logger).Load(ctx)
}

func newCartRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cart.Repository, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("Session carts kept in memory")
		return cart.NewMemoryRepository(cfg.SessionTTL), func() {}, nil
	}

	client, err := driver.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Session carts kept in Redis", zap.String("addr", cfg.RedisAddr))

	return cart.NewRedisRepository(client, cfg.SessionTTL, logger), func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}, nil
}

func newPublisher(cfg *config.Config, em *storefront.EventManager, wp *storefront.WorkerPool, logger *zap.Logger) (event.Publisher, func(), error) {
	if cfg.NATSURL == "" {
		return event.NewLocalPublisher(wp), func() {}, nil
	}

	conn, err := driver.ConnectNATS(cfg.NATSURL, logger)
	if err != nil {
		return nil, nil, err
	}

	sub, err := em.SubscribeToEvents(conn, wp)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	return event.NewNATSPublisher(conn, logger), func() {
		drain(sub, conn, logger)
	}, nil
}

func drain(sub *nats.Subscription, conn *nats.Conn, logger *zap.Logger) {
	if err := sub.Unsubscribe(); err != nil {
		logger.Warn("Failed to unsubscribe", zap.Error(err))
	}
	if err := conn.Drain(); err != nil {
		logger.Warn("Failed to drain NATS connection", zap.Error(err))
	}
}
