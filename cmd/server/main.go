package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	httpadapter "sitetrust/internal/adapters/http"
	pg "sitetrust/internal/adapters/postgres"
	"sitetrust/internal/adapters/sqlite"
	"sitetrust/internal/config"
	"sitetrust/internal/ports"
	"sitetrust/internal/services/ratings"
)

const version = "1.0.0"

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}

	log, err := newLogger(cfg)
	if err != nil {
		zap.NewExample().Fatal("logger init failed", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, database, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("store init failed", zap.Error(err))
	}
	defer closeStore()

	svc := ratings.New(store, log)
	srv := httpadapter.New(svc, cfg.RatingMode, database, version, log,
		httpadapter.WithRateLimit(cfg.RateLimit, cfg.RateWindow))
	defer srv.Close()

	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()
	log.Info("listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("store", cfg.Store),
		zap.String("mode", string(cfg.RatingMode)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}
}

// openStore wires the configured persistence backend behind the shared
// store port and runs its migrations.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (ports.RatingStore, string, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		if err := pg.Migrate(ctx, cfg.DatabaseURL); err != nil {
			return nil, "", nil, err
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, "", nil, err
		}
		log.Info("postgres connected")
		return db, "PostgreSQL", db.Close, nil
	default:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, "", nil, err
		}
		log.Info("sqlite opened", zap.String("path", store.Path()))
		return store, "SQLite", func() { _ = store.Close() }, nil
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	var zcfg zap.Config
	if cfg.Env == "development" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
