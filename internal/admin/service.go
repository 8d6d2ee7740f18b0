// Package admin holds the owner-gated deployment controls: one-time
// asset bootstrap and the manual asset-ID override.
package admin

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/repository"
)

// Asset parameters fixed at creation. The full supply sits in the
// application account as reserve, so outbound transfers need no
// counter-signature.
var bootstrapAssets = []domain.Asset{
	{
		UnitName: "BUD",
		Name:     "GrowPod BUD",
		Total:    10_000_000_000_000_000,
		Decimals: 6,
		URL:      "https://growpod.empire/bud",
	},
	{
		UnitName: "TERP",
		Name:     "GrowPod TERP",
		Total:    100_000_000_000_000,
		Decimals: 6,
		URL:      "https://growpod.empire/terp",
	},
	{
		UnitName: "SLOT",
		Name:     "GrowPod Slot Token",
		Total:    1_000_000,
		Decimals: 0,
		URL:      "https://growpod.empire/slot",
	},
}

// Service performs owner-gated administration.
type Service struct {
	appAddr domain.Address
}

// NewService creates an admin service.
func NewService(appAddr domain.Address) *Service {
	return &Service{appAddr: appAddr}
}

// requireOwner fails unless the caller is the recorded owner.
func requireOwner(cfg *domain.GlobalConfig, sender domain.Address) error {
	if sender != cfg.Owner {
		return fmt.Errorf("%w: %s", domain.ErrNotOwner, sender)
	}
	return nil
}

// Bootstrap creates the three system assets and records their IDs.
// Guarded to run at most once: it fails when either the BUD or TERP
// ID is already set.
func (s *Service) Bootstrap(ctx context.Context, tx repository.Tx, env ledger.Env, cfg *domain.GlobalConfig) error {
	if err := requireOwner(cfg, env.Sender); err != nil {
		return err
	}
	if cfg.BudAsset != 0 || cfg.TerpAsset != 0 {
		return domain.ErrAlreadyBootstrapped
	}

	ids := make([]uint64, len(bootstrapAssets))
	for i := range bootstrapAssets {
		asset := bootstrapAssets[i]
		id, err := tx.CreateAsset(ctx, &asset)
		if err != nil {
			return fmt.Errorf("failed to create %s asset: %w", asset.UnitName, err)
		}
		if err := tx.Credit(ctx, id, s.appAddr, asset.Total); err != nil {
			return fmt.Errorf("failed to reserve %s supply: %w", asset.UnitName, err)
		}
		ids[i] = id
	}

	cfg.BudAsset = ids[0]
	cfg.TerpAsset = ids[1]
	cfg.SlotAsset = ids[2]

	logger.FromContext(ctx).Info("Assets bootstrapped",
		"bud", cfg.BudAsset, "terp", cfg.TerpAsset, "slot", cfg.SlotAsset)
	return nil
}

// SetAssetIDs overwrites the recorded asset IDs directly. An escape
// hatch for migrating to pre-existing assets; the only guard is the
// owner check. The slot ID argument is optional.
func (s *Service) SetAssetIDs(ctx context.Context, env ledger.Env, cfg *domain.GlobalConfig, args [][]byte) error {
	if err := requireOwner(cfg, env.Sender); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set_asa_ids requires bud and terp IDs", domain.ErrInvalidArgument)
	}

	ids := make([]uint64, 0, 3)
	for _, arg := range args[:min(len(args), 3)] {
		if len(arg) != 8 {
			return fmt.Errorf("%w: asset ID must be 8 bytes, got %d", domain.ErrInvalidArgument, len(arg))
		}
		ids = append(ids, binary.BigEndian.Uint64(arg))
	}

	cfg.BudAsset = ids[0]
	cfg.TerpAsset = ids[1]
	if len(ids) > 2 {
		cfg.SlotAsset = ids[2]
	}

	logger.FromContext(ctx).Info("Asset IDs overridden",
		"bud", cfg.BudAsset, "terp", cfg.TerpAsset, "slot", cfg.SlotAsset)
	return nil
}
