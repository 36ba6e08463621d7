package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/adapters/events"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/adapters/events/kafka"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/adapters/storage/sqlite"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/usecase"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/infra/httpx"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/pkg/cache"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/pkg/metrics"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/pkg/telemetry"
)

func main() {
	serviceName := getEnv("SERVICE_NAME", "orders-api")
	telemetry.InitLogger(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, serviceName)
	if err != nil {
		slog.Error("tracer setup failed", "error", err)
		os.Exit(1)
	}
	defer shutdownTracer(context.Background())

	store, err := sqlite.Open(getEnv("SQLITE_PATH", "./data/orders.db"))
	if err != nil {
		slog.Error("storage open failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var menuCache cache.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		menuCache = cache.NewRedisCache(addr, serviceName)
	}

	var publisher ports.EventPublisher = events.NoopPublisher{}
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		kafkaPublisher := kafka.NewPublisher(broker)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	customerStore := sqlite.NewCustomerStore(store)
	productStore := sqlite.NewProductStore(store)
	orderStore := sqlite.NewOrderStore(store)

	customerService := usecase.NewCustomerService(customerStore)
	productService := usecase.NewProductService(productStore, menuCache)
	orderService := usecase.NewOrderService(orderStore, productStore, publisher)

	router := httpx.NewRouter(
		httpx.NewCustomerHandler(customerService),
		httpx.NewProductHandler(productService),
		httpx.NewOrderHandler(orderService),
		metrics.NewServerMetrics("orders"),
	)

	server := &http.Server{
		Addr:              getEnv("HTTP_ADDR", ":8080"),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
