// Package progression tracks pod capacity: harvests accumulate into
// slot-token claims, and slot tokens burn into unlocked slots.
package progression

import (
	"context"
	"fmt"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/event"
	"github.com/growpodempire/growpod/internal/gate"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
)

// Service applies the two slot-progression mutations. Invariant held
// at every step: 2 <= pod_slots <= 5, harvest_count never negative.
type Service struct {
	bus     event.Bus
	appAddr domain.Address
}

// NewService creates a progression service.
func NewService(bus event.Bus, appAddr domain.Address) *Service {
	return &Service{bus: bus, appAddr: appAddr}
}

// ClaimSlotToken exchanges five accumulated harvests plus a BUD burn
// for one slot token. Harvests above five carry over to later claims.
func (s *Service) ClaimSlotToken(ctx context.Context, env ledger.Env, cfg *domain.GlobalConfig, acct *domain.AccountState) (*ledger.Transfer, error) {
	if cfg.SlotAsset == 0 {
		return nil, fmt.Errorf("%w: slot asset", domain.ErrAssetNotBootstrapped)
	}
	if acct.HarvestCount < domain.HarvestsForSlot {
		return nil, fmt.Errorf("%w: have %d, need %d", domain.ErrNotEnoughHarvests, acct.HarvestCount, domain.HarvestsForSlot)
	}
	if err := gate.VerifyBurn(env.Payment, cfg.BudAsset, domain.SlotTokenCost, s.appAddr); err != nil {
		return nil, err
	}

	acct.HarvestCount -= domain.HarvestsForSlot

	s.publish(ctx, event.NewSlotEvent(event.SlotTokenClaimed, acct.Address, acct.HarvestCount, acct.PodSlots))

	return &ledger.Transfer{
		AssetID:  cfg.SlotAsset,
		Amount:   1,
		Sender:   s.appAddr,
		Receiver: acct.Address,
	}, nil
}

// UnlockSlot burns exactly one slot token to raise pod capacity by
// one, up to the maximum.
func (s *Service) UnlockSlot(ctx context.Context, env ledger.Env, cfg *domain.GlobalConfig, acct *domain.AccountState) error {
	if acct.PodSlots >= domain.MaxPodSlots {
		return fmt.Errorf("%w: %d slots", domain.ErrMaxSlots, acct.PodSlots)
	}
	if err := gate.VerifyExactBurn(env.Payment, cfg.SlotAsset, 1, s.appAddr); err != nil {
		return err
	}

	acct.PodSlots++

	s.publish(ctx, event.NewSlotEvent(event.SlotUnlocked, acct.Address, acct.HarvestCount, acct.PodSlots))
	return nil
}

func (s *Service) publish(ctx context.Context, ev event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "type", ev.Type, "error", err)
	}
}
