package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scanexplorer/internal/config"
	dbOpenSearch "github.com/kailas-cloud/scanexplorer/internal/db/opensearch"
	dbPostgres "github.com/kailas-cloud/scanexplorer/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/scanexplorer/internal/db/redis"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/compose"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/field"
	logpkg "github.com/kailas-cloud/scanexplorer/internal/logger"
	"github.com/kailas-cloud/scanexplorer/internal/metrics"
	catalogrepo "github.com/kailas-cloud/scanexplorer/internal/repository/catalog"
	ratelimitrepo "github.com/kailas-cloud/scanexplorer/internal/repository/ratelimit"
	searchrepo "github.com/kailas-cloud/scanexplorer/internal/repository/search"
	chiTransport "github.com/kailas-cloud/scanexplorer/internal/transport/chi"
	healthuc "github.com/kailas-cloud/scanexplorer/internal/usecase/health"
	searchuc "github.com/kailas-cloud/scanexplorer/internal/usecase/search"
	"github.com/kailas-cloud/scanexplorer/internal/version"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API (config/<ENV>.yaml)",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting scanexplorer API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("opensearch_addrs", cfg.OpenSearch.Addresses),
		zap.String("index", cfg.OpenSearch.Index),
		zap.Bool("catalog", cfg.Database.Enabled()),
		zap.Bool("rate_limit", cfg.Redis.Enabled()),
	)

	engineStore, err := dbOpenSearch.NewStore(dbOpenSearch.Config{
		Addresses:          cfg.OpenSearch.Addresses,
		Index:              cfg.OpenSearch.Index,
		Username:           cfg.OpenSearch.Username,
		Password:           cfg.OpenSearch.Password,
		InsecureSkipVerify: cfg.OpenSearch.InsecureSkipVerify,
	})
	if err != nil {
		return fmt.Errorf("failed to create search engine client: %w", err)
	}
	defer engineStore.Close()

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	engine := searchuc.NewInstrumentedEngine(searchrepo.New(engineStore))
	healthSvc := healthuc.New(engineStore)

	// Pass a nil interface (not a typed nil pointer) when no catalog is configured.
	var catalog searchuc.Catalog
	if cfg.Database.Enabled() {
		pg, err := dbPostgres.NewStore(ctx, cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("failed to create database pool: %w", err)
		}
		defer pg.Close()
		if err := pg.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			return fmt.Errorf("database not ready: %w", err)
		}
		logger.Info("Connected to database")
		catalog = catalogrepo.New(pg)
		healthSvc.With("database", pg)
	}

	var limiter chiTransport.Limiter
	if cfg.Redis.Enabled() {
		rs, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			return fmt.Errorf("failed to create redis store: %w", err)
		}
		defer rs.Close()
		if err := rs.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			return fmt.Errorf("redis not ready: %w", err)
		}
		logger.Info("Connected to redis")
		limiter = ratelimitrepo.New(rs, cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.WindowSec)*time.Second)
		healthSvc.With("redis", rs)
	}

	composer := compose.New(field.NewTable(), cfg.Search.BucketCeiling)
	searchSvc := searchuc.New(composer, engine, catalog, cfg.Search.HighlightSize)

	server := chiTransport.NewServer(searchSvc, healthSvc, chiTransport.Limits{
		Default: cfg.Search.DefaultLimit,
		Max:     cfg.Search.MaxLimit,
	}, logger).WithRateLimit(limiter)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-quit:
		logger.Info("Received shutdown signal")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
