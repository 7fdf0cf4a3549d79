package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/smarttrade/smarttrade/internal/cache"
	"github.com/smarttrade/smarttrade/internal/config"
	"github.com/smarttrade/smarttrade/internal/events"
	"github.com/smarttrade/smarttrade/internal/handler"
	"github.com/smarttrade/smarttrade/internal/marketdata"
	"github.com/smarttrade/smarttrade/internal/service"
	"github.com/smarttrade/smarttrade/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Order store: Postgres when configured, in-memory otherwise.
	var orderStore service.OrderStore
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresOrderStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			logger.Error("failed to migrate database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		orderStore = pg
		logger.Info("using postgres order store")
	} else {
		orderStore = store.NewMemoryOrderStore()
		logger.Info("using in-memory order store")
	}

	// Optional quote cache.
	var quoteCache service.QuoteCache
	if cfg.RedisAddr != "" {
		qc := cache.NewQuoteCache(cfg.RedisAddr, cfg.QuoteCacheTTL, logger)
		defer qc.Close()
		quoteCache = qc
		logger.Info("quote cache enabled", slog.String("addr", cfg.RedisAddr))
	}

	// Optional order-event publisher.
	var publisher service.EventPublisher
	if cfg.KafkaBroker != "" {
		p := events.NewPublisher(cfg.KafkaBroker, logger)
		defer p.Close()
		publisher = p
		logger.Info("order events enabled", slog.String("broker", cfg.KafkaBroker))
	}

	// Market-data client and services.
	finnhub := marketdata.NewClient(cfg.FinnhubBaseURL, cfg.FinnhubToken, cfg.FinnhubTimeout)
	orderSvc := service.NewOrderService(orderStore, publisher, logger)
	stockSvc := service.NewStockService(finnhub, quoteCache, cfg.DefaultStockSymbol, cfg.PopularStocks, logger)

	// Router.
	router := handler.NewRouter(orderSvc, stockSvc, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}
