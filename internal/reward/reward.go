// Package reward derives the rarity payout from a pod's stored
// terpene profile. The roll is casual-game-grade: one SHA-256 of the
// profile, gated on the first output byte.
package reward

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/event"
	"github.com/growpodempire/growpod/internal/ledger"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/metrics"
)

// Service rolls rarity rewards for harvested pods.
//
// The roll re-derives the same hash from the same stored profile on
// every invocation, so repeating the call repeats the payout until
// cleanup clears the profile. The ledger client is expected to call
// it once per cycle; nothing in the local state records that it ran.
type Service struct {
	bus     event.Bus
	appAddr domain.Address
}

// NewService creates a reward service.
func NewService(bus event.Bus, appAddr domain.Address) *Service {
	return &Service{bus: bus, appAddr: appAddr}
}

// Check rolls the reward for the pod at slot. A roll below the rarity
// window mints TERP scaled toward the maximum as the roll approaches
// zero; otherwise the call succeeds with no payout.
func (s *Service) Check(ctx context.Context, env ledger.Env, cfg *domain.GlobalConfig, acct *domain.AccountState, slot int) (*ledger.Transfer, error) {
	p := acct.Pod(slot)
	if p == nil {
		return nil, fmt.Errorf("%w: slot %d", domain.ErrSlotNotProvisioned, slot)
	}
	if p.Stage != domain.StageNeedsCleanup {
		return nil, fmt.Errorf("%w: slot %d is at stage %d", domain.ErrWrongStage, slot, p.Stage)
	}
	if cfg.TerpAsset == 0 {
		return nil, fmt.Errorf("%w: terp asset", domain.ErrAssetNotBootstrapped)
	}

	roll := Roll(p.TerpeneProfile)
	if roll >= domain.RarityWindow {
		metrics.RewardRolls.WithLabelValues("miss").Inc()
		logger.FromContext(ctx).Info("Reward roll missed", "address", acct.Address, "slot", slot, "roll", roll)
		return nil, nil
	}

	amount := Amount(roll)

	metrics.RewardRolls.WithLabelValues("hit").Inc()
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewRewardEvent(acct.Address, slot, roll, amount)); err != nil {
			logger.FromContext(ctx).Warn("Failed to publish event", "type", event.RewardMinted, "error", err)
		}
	}

	return &ledger.Transfer{
		AssetID:  cfg.TerpAsset,
		Amount:   amount,
		Sender:   s.appAddr,
		Receiver: acct.Address,
	}, nil
}

// Roll hashes the profile and returns the gating byte (0-255).
func Roll(terpeneProfile []byte) uint64 {
	sum := sha256.Sum256(terpeneProfile)
	return uint64(sum[0])
}

// Amount interpolates the payout for a winning roll: linear between
// the minimum and maximum bounds, larger as the roll approaches zero.
func Amount(roll uint64) uint64 {
	return domain.MinTerpReward +
		(domain.RarityWindow-roll)*(domain.MaxTerpReward-domain.MinTerpReward)/domain.RarityWindow
}
