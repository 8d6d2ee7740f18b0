package domain

// Stage is a pod's position in the growth lifecycle.
type Stage uint64

// Lifecycle stages. A pod cycles 0 -> 1..4 -> 5 -> 6 -> 0 indefinitely.
const (
	StageEmpty        Stage = 0
	StageSeedling     Stage = 1
	StageVegetative   Stage = 2
	StageBudding      Stage = 3
	StageFlowering    Stage = 4
	StageReady        Stage = 5
	StageNeedsCleanup Stage = 6
)

// Growing reports whether the pod accepts water and nutrients.
func (s Stage) Growing() bool {
	return s >= StageSeedling && s <= StageFlowering
}

// Pod is one growth state machine owned by an account. Timestamps are
// ledger seconds; zero means the action has never happened this cycle.
type Pod struct {
	Slot           int    `json:"slot"`
	Stage          Stage  `json:"stage"`
	WaterCount     uint64 `json:"water_count"`
	LastWatered    uint64 `json:"last_watered"`
	NutrientCount  uint64 `json:"nutrient_count"`
	LastNutrients  uint64 `json:"last_nutrients"`
	DNA            []byte `json:"dna"`
	TerpeneProfile []byte `json:"terpene_profile"`
}

// Reset returns the pod to its empty, pre-mint state. The slot index
// is preserved.
func (p *Pod) Reset() {
	p.Stage = StageEmpty
	p.WaterCount = 0
	p.LastWatered = 0
	p.NutrientCount = 0
	p.LastNutrients = 0
	p.DNA = nil
	p.TerpeneProfile = nil
}
