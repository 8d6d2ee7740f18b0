// Package pod implements the per-pod growth lifecycle: mint, water,
// nutrients, harvest, cleanup, and the burn-validated breed action.
// One engine serves every slot; the slot index selects the field set.
package pod

import (
	"context"
	"fmt"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/event"
	"github.com/growpodempire/growpod/internal/gate"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/metrics"
)

// Engine runs the lifecycle state machine over an account's pods. It
// mutates the in-memory state the router loaded; persistence and
// atomicity belong to the bundle transaction around it.
type Engine struct {
	bus     event.Bus
	appAddr domain.Address
}

// NewEngine creates a pod lifecycle engine.
func NewEngine(bus event.Bus, appAddr domain.Address) *Engine {
	return &Engine{bus: bus, appAddr: appAddr}
}

// pod resolves the slot's field set, failing when the storage layout
// has no room for it.
func (e *Engine) pod(acct *domain.AccountState, slot int) (*domain.Pod, error) {
	p := acct.Pod(slot)
	if p == nil {
		return nil, fmt.Errorf("%w: slot %d", domain.ErrSlotNotProvisioned, slot)
	}
	return p, nil
}

// Mint starts a new growth cycle in an empty slot, seeding the DNA
// and terpene profile from the caller, timestamp and round.
func (e *Engine) Mint(ctx context.Context, env ledger.Env, acct *domain.AccountState, slot int) error {
	p, err := e.pod(acct, slot)
	if err != nil {
		return err
	}
	if p.Stage != domain.StageEmpty {
		return fmt.Errorf("%w: slot %d is at stage %d", domain.ErrWrongStage, slot, p.Stage)
	}

	p.Stage = domain.StageSeedling
	p.WaterCount = 0
	p.LastWatered = 0
	p.NutrientCount = 0
	p.LastNutrients = 0
	p.DNA = deriveDNA(env.Sender, slot, env.Now, env.Round)
	p.TerpeneProfile = deriveTerpeneProfile(env.Sender, slot, env.Now)

	e.publish(ctx, event.NewPodEvent(event.PodMinted, acct.Address, slot, p.Stage, env.Now))
	return nil
}

// Water advances the watering counter after the cooldown has elapsed.
// A caller-supplied override may lengthen the cooldown but never
// shorten it below the minimum.
func (e *Engine) Water(ctx context.Context, env ledger.Env, acct *domain.AccountState, slot int, override *uint64) error {
	p, err := e.pod(acct, slot)
	if err != nil {
		return err
	}
	if !p.Stage.Growing() {
		return fmt.Errorf("%w: slot %d is at stage %d", domain.ErrWrongStage, slot, p.Stage)
	}

	cooldown := domain.WaterCooldown
	if override != nil {
		cooldown = *override
	}
	if cooldown < domain.WaterCooldownMin {
		return fmt.Errorf("%w: %ds < %ds", domain.ErrCooldownTooShort, cooldown, domain.WaterCooldownMin)
	}
	if p.LastWatered != 0 && env.Now-p.LastWatered < cooldown {
		return fmt.Errorf("%w: watered %ds ago, cooldown %ds", domain.ErrOnCooldown, env.Now-p.LastWatered, cooldown)
	}

	p.LastWatered = env.Now
	p.WaterCount++
	p.Stage = advanceStage(p.Stage, p.WaterCount)

	e.publish(ctx, event.NewPodEvent(event.PodWatered, acct.Address, slot, p.Stage, env.Now))
	return nil
}

// Nutrients advances the nutrient counter after its fixed cooldown.
// Nutrients never move the stage; they only raise the yield bonus.
func (e *Engine) Nutrients(ctx context.Context, env ledger.Env, acct *domain.AccountState, slot int) error {
	p, err := e.pod(acct, slot)
	if err != nil {
		return err
	}
	if !p.Stage.Growing() {
		return fmt.Errorf("%w: slot %d is at stage %d", domain.ErrWrongStage, slot, p.Stage)
	}
	if p.LastNutrients != 0 && env.Now-p.LastNutrients < domain.NutrientCooldown {
		return fmt.Errorf("%w: fed %ds ago, cooldown %ds", domain.ErrOnCooldown, env.Now-p.LastNutrients, domain.NutrientCooldown)
	}

	p.LastNutrients = env.Now
	p.NutrientCount++

	e.publish(ctx, event.NewPodEvent(event.PodFed, acct.Address, slot, p.Stage, env.Now))
	return nil
}

// Harvest pays out the yield for a ready pod and moves it to the
// needs-cleanup stage. The account's shared harvest count rises by
// exactly one.
func (e *Engine) Harvest(ctx context.Context, env ledger.Env, cfg *domain.GlobalConfig, acct *domain.AccountState, slot int) (*ledger.Transfer, error) {
	p, err := e.pod(acct, slot)
	if err != nil {
		return nil, err
	}
	if p.Stage != domain.StageReady {
		return nil, fmt.Errorf("%w: slot %d is at stage %d", domain.ErrWrongStage, slot, p.Stage)
	}
	if cfg.BudAsset == 0 {
		return nil, fmt.Errorf("%w: bud asset", domain.ErrAssetNotBootstrapped)
	}

	yield := computeYield(p.WaterCount, p.NutrientCount)

	p.Stage = domain.StageNeedsCleanup
	acct.HarvestCount++

	metrics.HarvestYield.Add(float64(yield))
	e.publish(ctx, event.NewHarvestEvent(acct.Address, slot, yield, p.WaterCount, p.NutrientCount, acct.HarvestCount))

	return &ledger.Transfer{
		AssetID:  cfg.BudAsset,
		Amount:   yield,
		Sender:   e.appAddr,
		Receiver: acct.Address,
	}, nil
}

// Cleanup resets a harvested pod to empty once the cleanup burn has
// been verified.
func (e *Engine) Cleanup(ctx context.Context, env ledger.Env, cfg *domain.GlobalConfig, acct *domain.AccountState, slot int) error {
	p, err := e.pod(acct, slot)
	if err != nil {
		return err
	}
	if p.Stage != domain.StageNeedsCleanup {
		return fmt.Errorf("%w: slot %d is at stage %d", domain.ErrWrongStage, slot, p.Stage)
	}
	if err := gate.VerifyBurn(env.Payment, cfg.BudAsset, cfg.CleanupCost, e.appAddr); err != nil {
		return err
	}

	p.Reset()

	e.publish(ctx, event.NewPodEvent(event.PodCleaned, acct.Address, slot, p.Stage, env.Now))
	return nil
}

// Breed validates the breed burn and the two parent arguments and
// approves. No genetics are computed on ledger; the documented
// inheritance model lives entirely off-chain.
func (e *Engine) Breed(ctx context.Context, env ledger.Env, cfg *domain.GlobalConfig, args [][]byte) error {
	if cfg.BudAsset == 0 {
		return fmt.Errorf("%w: bud asset", domain.ErrAssetNotBootstrapped)
	}
	if _, _, err := parseBreedParents(args); err != nil {
		return err
	}
	if err := gate.VerifyBurn(env.Payment, cfg.BudAsset, cfg.BreedCost, e.appAddr); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Breed burn accepted", "sender", env.Sender)
	e.publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.PodBred,
		Payload: event.PodPayloadV1{Address: string(env.Sender), Timestamp: env.Now},
	})
	return nil
}

func (e *Engine) publish(ctx context.Context, ev event.Event) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "type", ev.Type, "error", err)
	}
}
