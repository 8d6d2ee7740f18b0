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

	"github.com/growpodempire/growpod/internal/admin"
	"github.com/growpodempire/growpod/internal/config"
	"github.com/growpodempire/growpod/internal/database"
	"github.com/growpodempire/growpod/internal/database/memory"
	"github.com/growpodempire/growpod/internal/database/postgres"
	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/event"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/pod"
	"github.com/growpodempire/growpod/internal/progression"
	"github.com/growpodempire/growpod/internal/repository"
	"github.com/growpodempire/growpod/internal/reward"
	"github.com/growpodempire/growpod/internal/router"
	"github.com/growpodempire/growpod/internal/server"
)

const (
	dbMaxConns        = 20
	dbMaxConnIdle     = 5 * time.Minute
	dbMaxConnLifetime = 30 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logCfg := logger.ProductionConfig()
	if cfg.Environment == "dev" {
		logCfg = logger.DevelopmentConfig()
	}
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logger.Init(logCfg)

	store, cleanup, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	appAddr := domain.Address(cfg.AppAddress)

	bus := event.NewMemoryBus()
	event.RegisterObservers(bus)

	pods := pod.NewEngine(bus, appAddr)
	rewards := reward.NewService(bus, appAddr)
	slots := progression.NewService(bus, appAddr)
	adminSvc := admin.NewService(appAddr)
	dispatcher := router.New(pods, rewards, slots, adminSvc)

	engine, err := ledger.NewEngine(store, dispatcher, ledger.SystemClock{}, appAddr)
	if err != nil {
		logger.Error("Failed to create engine", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg.Port, engine, store)

	// Run until interrupted, then drain in-flight requests
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
}

// openStore selects the backing store: Postgres normally, in-memory
// when DEV_MODE is set.
func openStore(cfg *config.Config) (repository.Store, func(), error) {
	if cfg.DevMode {
		logger.Warn("DEV_MODE set, using in-memory store; state will not survive restarts")
		return memory.NewStore(), func() {}, nil
	}

	pool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), dbMaxConns, dbMaxConnIdle, dbMaxConnLifetime)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewStore(pool), pool.Close, nil
}
