// Package router is the single entry point for application calls. It
// maps the parsed action enum to exactly one handler; no handler is
// reachable any other way.
package router

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/growpodempire/growpod/internal/admin"
	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/pod"
	"github.com/growpodempire/growpod/internal/progression"
	"github.com/growpodempire/growpod/internal/repository"
)

// Router dispatches application calls and lifecycle events.
type Router struct {
	pods    *pod.Engine
	rewards RewardChecker
	slots   *progression.Service
	admin   *admin.Service
}

// RewardChecker rolls the rarity reward for a harvested pod.
type RewardChecker interface {
	Check(ctx context.Context, env ledger.Env, cfg *domain.GlobalConfig, acct *domain.AccountState, slot int) (*ledger.Transfer, error)
}

// New creates a router over the four handler groups.
func New(pods *pod.Engine, rewards RewardChecker, slots *progression.Service, adminSvc *admin.Service) *Router {
	return &Router{pods: pods, rewards: rewards, slots: slots, admin: adminSvc}
}

// Dispatch executes one application call against the bundle's
// transaction and returns any inner transfers the handler emitted.
func (r *Router) Dispatch(ctx context.Context, tx repository.Tx, call ledger.AppCall, env ledger.Env) ([]ledger.Transfer, error) {
	log := logger.FromContext(ctx)

	switch call.OnComplete {
	case ledger.OnCompleteCreate:
		log.Info("Creating application state", "owner", env.Sender)
		return nil, tx.CreateGlobalConfig(ctx, domain.NewGlobalConfig(env.Sender))

	case ledger.OnCompleteOptIn:
		log.Info("Account opting in", "address", env.Sender)
		return nil, tx.CreateAccountState(ctx, domain.NewAccountState(env.Sender))

	case ledger.OnCompleteCloseOut:
		return nil, nil

	case ledger.OnCompleteUpdate, ledger.OnCompleteDelete:
		cfg, err := tx.GetGlobalConfigForUpdate(ctx)
		if err != nil {
			return nil, err
		}
		if env.Sender != cfg.Owner {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotOwner, env.Sender)
		}
		return nil, nil

	case ledger.OnCompleteNoOp:
		return r.dispatchAction(ctx, tx, call, env)

	default:
		return nil, fmt.Errorf("%w: completion %d", domain.ErrInvalidArgument, call.OnComplete)
	}
}

// dispatchAction handles the no-op completion path: the game actions.
func (r *Router) dispatchAction(ctx context.Context, tx repository.Tx, call ledger.AppCall, env ledger.Env) ([]ledger.Transfer, error) {
	cfg, err := tx.GetGlobalConfigForUpdate(ctx)
	if err != nil {
		return nil, err
	}

	switch call.Action {
	case domain.ActionBootstrap:
		if err := r.admin.Bootstrap(ctx, tx, env, cfg); err != nil {
			return nil, err
		}
		return nil, tx.PutGlobalConfig(ctx, cfg)

	case domain.ActionSetAssetIDs:
		if err := r.admin.SetAssetIDs(ctx, env, cfg, call.Args); err != nil {
			return nil, err
		}
		return nil, tx.PutGlobalConfig(ctx, cfg)

	case domain.ActionBreed:
		return nil, r.pods.Breed(ctx, env, cfg, call.Args)

	case domain.ActionMintPod, domain.ActionWater, domain.ActionNutrients,
		domain.ActionHarvest, domain.ActionCleanup, domain.ActionCheckTerp,
		domain.ActionClaimSlotToken, domain.ActionUnlockSlot:
		return r.dispatchAccountAction(ctx, tx, call, env, cfg)

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAction, call.Action)
	}
}

// dispatchAccountAction covers every action that mutates the caller's
// local segment. Only the account's own operations can reach it: the
// state loaded is always the sender's.
func (r *Router) dispatchAccountAction(ctx context.Context, tx repository.Tx, call ledger.AppCall, env ledger.Env, cfg *domain.GlobalConfig) ([]ledger.Transfer, error) {
	acct, err := tx.GetAccountStateForUpdate(ctx, env.Sender)
	if err != nil {
		return nil, err
	}

	var emitted []ledger.Transfer

	switch call.Action {
	case domain.ActionMintPod:
		err = r.pods.Mint(ctx, env, acct, call.Slot)

	case domain.ActionWater:
		var override *uint64
		override, err = cooldownOverride(call.Args)
		if err == nil {
			err = r.pods.Water(ctx, env, acct, call.Slot, override)
		}

	case domain.ActionNutrients:
		err = r.pods.Nutrients(ctx, env, acct, call.Slot)

	case domain.ActionHarvest:
		var t *ledger.Transfer
		t, err = r.pods.Harvest(ctx, env, cfg, acct, call.Slot)
		if t != nil {
			emitted = append(emitted, *t)
		}

	case domain.ActionCleanup:
		err = r.pods.Cleanup(ctx, env, cfg, acct, call.Slot)

	case domain.ActionCheckTerp:
		var t *ledger.Transfer
		t, err = r.rewards.Check(ctx, env, cfg, acct, call.Slot)
		if t != nil {
			emitted = append(emitted, *t)
		}

	case domain.ActionClaimSlotToken:
		var t *ledger.Transfer
		t, err = r.slots.ClaimSlotToken(ctx, env, cfg, acct)
		if t != nil {
			emitted = append(emitted, *t)
		}

	case domain.ActionUnlockSlot:
		err = r.slots.UnlockSlot(ctx, env, cfg, acct)

	default:
		err = fmt.Errorf("%w: %s", domain.ErrUnknownAction, call.Action)
	}

	if err != nil {
		return nil, err
	}

	if err := tx.PutAccountState(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to persist account state: %w", err)
	}
	return emitted, nil
}

// cooldownOverride decodes the optional 8-byte big-endian watering
// cooldown argument.
func cooldownOverride(args [][]byte) (*uint64, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if len(args[0]) != 8 {
		return nil, fmt.Errorf("%w: cooldown must be 8 bytes, got %d", domain.ErrInvalidArgument, len(args[0]))
	}
	v := binary.BigEndian.Uint64(args[0])
	return &v, nil
}
