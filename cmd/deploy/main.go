// Command deploy initializes a deployment: it creates the global
// configuration under the configured owner and bootstraps the three
// protocol assets. Safe to run against an empty database only; the
// bootstrap guard rejects a second run.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/growpodempire/growpod/internal/admin"
	"github.com/growpodempire/growpod/internal/config"
	"github.com/growpodempire/growpod/internal/database"
	"github.com/growpodempire/growpod/internal/database/postgres"
	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/event"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/pod"
	"github.com/growpodempire/growpod/internal/progression"
	"github.com/growpodempire/growpod/internal/reward"
	"github.com/growpodempire/growpod/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 4, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()
	store := postgres.NewStore(pool)

	appAddr := domain.Address(cfg.AppAddress)
	owner := domain.Address(cfg.OwnerAddress)

	bus := event.NewMemoryBus()
	dispatcher := router.New(
		pod.NewEngine(bus, appAddr),
		reward.NewService(bus, appAddr),
		progression.NewService(bus, appAddr),
		admin.NewService(appAddr),
	)

	engine, err := ledger.NewEngine(store, dispatcher, ledger.SystemClock{}, appAddr)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	if _, err := engine.Submit(ctx, []ledger.Operation{
		ledger.AppCall{Sender: owner, OnComplete: ledger.OnCompleteCreate},
	}); err != nil {
		log.Fatalf("Create failed: %v", err)
	}
	fmt.Printf("Global config created, owner %s\n", owner)

	if _, err := engine.Submit(ctx, []ledger.Operation{
		ledger.AppCall{Sender: owner, Action: domain.ActionBootstrap},
	}); err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}

	deployed, err := store.GetGlobalConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to read back config: %v", err)
	}
	fmt.Printf("Assets bootstrapped: BUD=%d TERP=%d SLOT=%d\n",
		deployed.BudAsset, deployed.TerpAsset, deployed.SlotAsset)
}
