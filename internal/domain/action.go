package domain

import (
	"fmt"
	"strings"
)

// Action is the closed set of application calls the router dispatches.
// Parsing happens once at the boundary; handlers switch exhaustively
// and never see an unknown value.
type Action int

const (
	ActionMintPod Action = iota
	ActionWater
	ActionNutrients
	ActionHarvest
	ActionCleanup
	ActionCheckTerp
	ActionBreed
	ActionClaimSlotToken
	ActionUnlockSlot
	ActionBootstrap
	ActionSetAssetIDs
)

var actionNames = map[Action]string{
	ActionMintPod:        "mint_pod",
	ActionWater:          "water",
	ActionNutrients:      "nutrients",
	ActionHarvest:        "harvest",
	ActionCleanup:        "cleanup",
	ActionCheckTerp:      "check_terp",
	ActionBreed:          "breed",
	ActionClaimSlotToken: "claim_slot_token",
	ActionUnlockSlot:     "unlock_slot",
	ActionBootstrap:      "bootstrap",
	ActionSetAssetIDs:    "set_asa_ids",
}

var actionsByName = func() map[string]Action {
	m := make(map[string]Action, len(actionNames))
	for a, n := range actionNames {
		m[n] = a
	}
	return m
}()

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// SlotScoped reports whether the action targets one pod slot.
func (a Action) SlotScoped() bool {
	switch a {
	case ActionMintPod, ActionWater, ActionNutrients, ActionHarvest, ActionCleanup, ActionCheckTerp:
		return true
	default:
		return false
	}
}

// ParseAction resolves a wire action name to an Action and a slot
// index. The legacy two-pod wire format encodes the slot in the name
// ("water_2" is slot 1); bare names are slot 0.
func ParseAction(name string) (Action, int, error) {
	slot := 0
	if base, ok := strings.CutSuffix(name, "_2"); ok {
		if a, found := actionsByName[base]; found && a.SlotScoped() {
			return a, 1, nil
		}
	}
	a, ok := actionsByName[name]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return a, slot, nil
}
