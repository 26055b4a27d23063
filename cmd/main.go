package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fieldday/scorekeeper/internal/adapters/audit"
	"github.com/fieldday/scorekeeper/internal/adapters/http/api"
	"github.com/fieldday/scorekeeper/internal/adapters/store"
	service "github.com/fieldday/scorekeeper/internal/app"
	"github.com/fieldday/scorekeeper/internal/config"
	"github.com/fieldday/scorekeeper/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts := []service.Option{
		service.WithLogger(log.Named("service")),
		service.WithSessionQueueSize(cfg.SessionQueueSize),
	}

	// Entry store: Redis when configured, in-memory otherwise.
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			os.Stderr.WriteString("invalid redis_url: " + err.Error() + "\n")
			return
		}
		client := redis.NewClient(redisOpts)
		defer func() { _ = client.Close() }()
		opts = append(opts, service.WithStore(store.NewRedisStore(client)))
		log.Info(ctx, "using redis entry store")
	}

	// Audit sink: Postgres when configured, in-memory ring otherwise.
	if cfg.AuditDBURL != "" {
		pool, err := audit.NewPool(ctx, cfg.AuditDBURL)
		if err != nil {
			os.Stderr.WriteString("failed to connect audit db: " + err.Error() + "\n")
			return
		}
		defer pool.Close()
		pgLog := audit.NewPGLog(pool)
		if err := pgLog.EnsureSchema(ctx); err != nil {
			os.Stderr.WriteString("failed to prepare audit schema: " + err.Error() + "\n")
			return
		}
		opts = append(opts, service.WithAuditSink(pgLog))
		log.Info(ctx, "using postgres audit sink")
	} else {
		opts = append(opts, service.WithAuditSink(audit.NewMemLog(audit.WithCapacity(cfg.AuditLogCapacity))))
	}

	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	if cfg.SeedFile != "" {
		seed, err := config.LoadSeed(cfg.SeedFile)
		if err != nil {
			os.Stderr.WriteString("failed to load seed file: " + err.Error() + "\n")
			return
		}
		if err := svc.Seed(ctx, seed); err != nil {
			os.Stderr.WriteString("failed to seed store: " + err.Error() + "\n")
			return
		}
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
