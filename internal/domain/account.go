package domain

// Address identifies a ledger account. Opaque to the core; the
// ledger client supplies whatever encoding its chain uses.
type Address string

// AccountState is the per-account local segment: the provisioned pods
// plus the shared slot-progression counters. Exactly one exists per
// opted-in account.
type AccountState struct {
	Address      Address `json:"address"`
	Pods         []Pod   `json:"pods"`
	HarvestCount uint64  `json:"harvest_count"`
	PodSlots     uint64  `json:"pod_slots"`
}

// NewAccountState returns the local segment created at opt-in: two
// empty pods and starting capacity.
func NewAccountState(addr Address) *AccountState {
	pods := make([]Pod, ProvisionedPods)
	for i := range pods {
		pods[i].Slot = i
	}
	return &AccountState{
		Address:  addr,
		Pods:     pods,
		PodSlots: StartingPodSlots,
	}
}

// Pod returns the pod at slot, or nil when the slot has no storage
// provisioned.
func (a *AccountState) Pod(slot int) *Pod {
	if slot < 0 || slot >= len(a.Pods) {
		return nil
	}
	return &a.Pods[slot]
}
