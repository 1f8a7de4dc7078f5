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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/avalosmendoza/wedding-backend/api/routes"
	"github.com/avalosmendoza/wedding-backend/internal/comments"
	"github.com/avalosmendoza/wedding-backend/internal/gifts"
	"github.com/avalosmendoza/wedding-backend/internal/payments"
	stripewebhooks "github.com/avalosmendoza/wedding-backend/internal/webhooks/stripe"
	"github.com/avalosmendoza/wedding-backend/pkg/config"
	"github.com/avalosmendoza/wedding-backend/pkg/db"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
	"github.com/avalosmendoza/wedding-backend/pkg/metrics"
	"github.com/avalosmendoza/wedding-backend/pkg/redis"
	pkgstripe "github.com/avalosmendoza/wedding-backend/pkg/stripe"
)

const shutdownGrace = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logg := logger.New(logger.Options{
		ServiceName: "wedding-backend",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}

	var cache comments.Cache
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		cache = redisClient
	} else {
		logg.Info(ctx, "redis not configured, comments cache disabled")
	}

	stripeClient := pkgstripe.NewClient(ctx, cfg.Stripe, logg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	catalog := gifts.NewCatalog()

	commentsSvc, err := comments.NewService(comments.ServiceParams{
		Repo:     comments.NewRepository(dbClient.DB()),
		Cache:    cache,
		CacheTTL: cfg.Redis.CommentCacheTTL,
	})
	if err != nil {
		return err
	}

	paymentsRepo := payments.NewRepository(dbClient.DB())
	paymentsSvc, err := payments.NewService(payments.ServiceParams{
		Repo:    paymentsRepo,
		Catalog: catalog,
		Stripe:  stripeClient,
	})
	if err != nil {
		return err
	}

	webhooksSvc, err := stripewebhooks.NewService(paymentsRepo, logg)
	if err != nil {
		return err
	}

	handler := routes.New(routes.Deps{
		Logger:      logg,
		Comments:    commentsSvc,
		Payments:    paymentsSvc,
		Webhooks:    webhooksSvc,
		Catalog:     catalog,
		Stripe:      stripeClient,
		HTTPMetrics: httpMetrics,
		Registry:    registry,
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, fmt.Sprintf("listening on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	return closeErr
}
