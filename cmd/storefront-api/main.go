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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/revocation"
	"github.com/nikolayk812/storefront/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config.NewLogger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	if err := migrations.Apply(ctx, pool); err != nil {
		return fmt.Errorf("migrations.Apply: %w", err)
	}

	store, closeStore, err := newStore(ctx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("auth.NewIssuer: %w", err)
	}

	users := service.NewUserService(
		repository.NewUser(pool),
		store,
		store,
		issuer,
		service.LogCodeSender{Logger: logger},
		logger,
	)

	h := httpapi.NewHandler(httpapi.Deps{
		Carts:    repository.NewCart(pool),
		Products: repository.NewProduct(pool),
		Orders:   repository.NewOrder(pool),
		Payments: repository.NewPayment(pool),
		Users:    users,
		Issuer:   issuer,
		Revoker:  store,
		Currency: cfg.Currency,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("currency", cfg.Currency.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	logger.Info("server exited properly")

	return nil
}

type tokenStore interface {
	port.TokenRevoker
	port.AttemptLimiter
}

// newStore keeps revoked tokens and failed attempts in Redis when REDIS_URL is set, in memory otherwise.
func newStore(ctx context.Context, redisURL string, logger *zap.Logger) (tokenStore, func(), error) {
	if redisURL == "" {
		logger.Warn("REDIS_URL is empty, revoked tokens and failed attempts are kept in memory")
		return revocation.NewMemoryStore(), func() {}, nil
	}

	store, err := revocation.NewRedisStore(ctx, redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("revocation.NewRedisStore: %w", err)
	}

	return store, func() {
		if err := store.Close(); err != nil {
			logger.Error("redis close", zap.Error(err))
		}
	}, nil
}
