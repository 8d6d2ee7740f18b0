package pod

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/growpodempire/growpod/internal/domain"
)

// advanceStage applies the growth milestones after a watering. The
// ready threshold is a >= check; the intermediate milestones fire
// only at the exact counts 3, 6 and 8 — a pod that somehow skips a
// count skips that stage.
func advanceStage(current domain.Stage, waterCount uint64) domain.Stage {
	switch {
	case waterCount >= domain.WatersForReady:
		return domain.StageReady
	case waterCount == domain.WatersForStage2:
		return domain.StageVegetative
	case waterCount == domain.WatersForStage3:
		return domain.StageBudding
	case waterCount == domain.WatersForStage4:
		return domain.StageFlowering
	default:
		return current
	}
}

// computeYield returns the harvest payout in BUD base units. Bonuses
// are additive fractions of the base, truncating integer division.
func computeYield(waterCount, nutrientCount uint64) uint64 {
	yield := domain.BaseYield
	if waterCount >= domain.WatersForReady {
		yield += domain.BaseYield * domain.WaterBonusPercent / 100
	}
	if nutrientCount >= domain.NutrientsForBonus {
		yield += domain.BaseYield * domain.NutrientBonusPercent / 100
	}
	return yield
}

// slotTag distinguishes the hash inputs per slot. The first slot is
// untagged and later slots carry a 1-based tag, preserving the wire
// state produced by earlier deployments.
func slotTag(prefix string, slot int) []byte {
	if slot == 0 {
		return []byte(prefix)
	}
	return []byte(fmt.Sprintf("%s%d", prefix, slot+1))
}

// deriveDNA seeds a pod's genetic hash from caller identity, the
// ledger timestamp and the round.
func deriveDNA(addr domain.Address, slot int, now, round uint64) []byte {
	h := sha256.New()
	h.Write([]byte(addr))
	h.Write(itob(now))
	h.Write(itob(round))
	if slot > 0 {
		h.Write(slotTag("pod", slot))
	}
	return h.Sum(nil)
}

// deriveTerpeneProfile seeds the independent hash consumed by the
// reward randomizer.
func deriveTerpeneProfile(addr domain.Address, slot int, now uint64) []byte {
	h := sha256.New()
	h.Write(slotTag("terp", slot))
	h.Write([]byte(addr))
	h.Write(itob(now))
	return h.Sum(nil)
}

// parseBreedParents decodes the two 8-byte big-endian parent IDs.
func parseBreedParents(args [][]byte) (uint64, uint64, error) {
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("%w: breed requires two parent IDs", domain.ErrInvalidArgument)
	}
	parents := make([]uint64, 2)
	for i, arg := range args[:2] {
		if len(arg) != 8 {
			return 0, 0, fmt.Errorf("%w: parent ID must be 8 bytes, got %d", domain.ErrInvalidArgument, len(arg))
		}
		parents[i] = binary.BigEndian.Uint64(arg)
	}
	return parents[0], parents[1], nil
}

// itob converts an integer to its 8-byte big-endian form, matching
// the host ledger's integer encoding.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
