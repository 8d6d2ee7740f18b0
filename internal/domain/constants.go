package domain

// Economic constants. All token amounts are in base units of the
// asset's smallest denomination (BUD and TERP carry 6 decimals, the
// slot token carries 0).
const (
	// BaseYield is the harvest payout before bonuses (0.25g of BUD)
	BaseYield uint64 = 250_000_000

	// WaterBonusPercent is added to the base yield at 10+ waterings
	WaterBonusPercent uint64 = 20

	// NutrientBonusPercent is added to the base yield at 10+ nutrient applications
	NutrientBonusPercent uint64 = 30

	// CleanupBurn is the BUD payment required to reset a harvested pod (500 BUD)
	CleanupBurn uint64 = 500_000_000

	// BreedBurn is the BUD payment required for a breed action (1000 BUD)
	BreedBurn uint64 = 1_000_000_000

	// SlotTokenCost is the BUD payment required to claim a slot token (2500 BUD)
	SlotTokenCost uint64 = 2_500_000_000

	// MinTerpReward and MaxTerpReward bound the rarity payout (5k-50k TERP)
	MinTerpReward uint64 = 5_000_000_000
	MaxTerpReward uint64 = 50_000_000_000
)

// Lifecycle timing constants, in seconds of ledger time.
const (
	// WaterCooldown is the default wait between waterings
	WaterCooldown uint64 = 600

	// WaterCooldownMin is the floor for caller-supplied cooldown overrides
	WaterCooldownMin uint64 = 600

	// NutrientCooldown is the fixed wait between nutrient applications
	NutrientCooldown uint64 = 600

	// GrowthCycle is the full cycle period recorded in global config (10 days)
	GrowthCycle uint64 = 864_000
)

// Growth milestone constants. Stages 2-4 are reached only at the
// exact watering counts below; stage 5 at the ready threshold.
const (
	WatersForStage2 uint64 = 3
	WatersForStage3 uint64 = 6
	WatersForStage4 uint64 = 8
	WatersForReady  uint64 = 10

	// NutrientsForBonus is the count at which the nutrient yield bonus applies
	NutrientsForBonus uint64 = 10
)

// Slot progression constants.
const (
	// HarvestsForSlot is the harvest count consumed by one slot-token claim
	HarvestsForSlot uint64 = 5

	// StartingPodSlots is the capacity granted at opt-in
	StartingPodSlots uint64 = 2

	// MaxPodSlots caps per-account pod capacity
	MaxPodSlots uint64 = 5

	// ProvisionedPods is how many pod field-sets the current storage
	// layout allocates per account. pod_slots may exceed this, but
	// minting on a slot without storage fails until the layout grows.
	ProvisionedPods uint64 = 2
)

// Rarity roll constants for the reward randomizer.
const (
	// RarityWindow gates the first hash byte; rolls at or above it pay nothing
	RarityWindow uint64 = 32
)
