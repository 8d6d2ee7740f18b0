package domain

// GlobalConfig is the deployment-wide segment written once at create
// time and thereafter mutated only by owner-gated admin actions.
// Asset IDs stay zero until bootstrap runs.
type GlobalConfig struct {
	Owner       Address `json:"owner"`
	Period      uint64  `json:"period"`
	CleanupCost uint64  `json:"cleanup_cost"`
	BreedCost   uint64  `json:"breed_cost"`
	BudAsset    uint64  `json:"bud_asset"`
	TerpAsset   uint64  `json:"terp_asset"`
	SlotAsset   uint64  `json:"slot_asset"`

	// TerpRegistry is reserved for future profile-uniqueness checks.
	// Nothing reads it yet.
	TerpRegistry []byte `json:"terp_registry,omitempty"`
}

// NewGlobalConfig returns the config written at application create.
func NewGlobalConfig(owner Address) *GlobalConfig {
	return &GlobalConfig{
		Owner:       owner,
		Period:      GrowthCycle,
		CleanupCost: CleanupBurn,
		BreedCost:   BreedBurn,
	}
}

// Asset is a fungible token created once by bootstrap. The system
// account holds all four authority roles so it can move tokens
// without counter-signatures.
type Asset struct {
	ID       uint64 `json:"id"`
	UnitName string `json:"unit_name"`
	Name     string `json:"name"`
	Total    uint64 `json:"total"`
	Decimals uint32 `json:"decimals"`
	URL      string `json:"url"`
}
