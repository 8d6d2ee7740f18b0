package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/growpodempire/growpod/internal/domain"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event types emitted by the contract core
const (
	PodMinted        Type = "pod.minted"
	PodWatered       Type = "pod.watered"
	PodFed           Type = "pod.fed"
	PodHarvested     Type = "pod.harvested"
	PodCleaned       Type = "pod.cleaned"
	PodBred          Type = "pod.bred"
	RewardMinted     Type = "reward.minted"
	SlotTokenClaimed Type = "slot.token_claimed"
	SlotUnlocked     Type = "slot.unlocked"
)

// Typed event payloads

// PodPayloadV1 describes one pod lifecycle transition
type PodPayloadV1 struct {
	Address   string `json:"address"`
	Slot      int    `json:"slot"`
	Stage     uint64 `json:"stage"`
	Timestamp uint64 `json:"timestamp"`
}

// HarvestPayloadV1 is the typed payload for harvest events
type HarvestPayloadV1 struct {
	Address       string `json:"address"`
	Slot          int    `json:"slot"`
	Yield         uint64 `json:"yield"`
	WaterCount    uint64 `json:"water_count"`
	NutrientCount uint64 `json:"nutrient_count"`
	HarvestCount  uint64 `json:"harvest_count"`
}

// RewardPayloadV1 is the typed payload for reward-roll events
type RewardPayloadV1 struct {
	Address string `json:"address"`
	Slot    int    `json:"slot"`
	Roll    uint64 `json:"roll"`
	Amount  uint64 `json:"amount"`
}

// SlotPayloadV1 is the typed payload for slot-progression events
type SlotPayloadV1 struct {
	Address      string `json:"address"`
	HarvestCount uint64 `json:"harvest_count"`
	PodSlots     uint64 `json:"pod_slots"`
}

// Type-safe event constructors

// NewPodEvent creates a lifecycle event for one pod transition
func NewPodEvent(eventType Type, addr domain.Address, slot int, stage domain.Stage, now uint64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: PodPayloadV1{
			Address:   string(addr),
			Slot:      slot,
			Stage:     uint64(stage),
			Timestamp: now,
		},
	}
}

// NewHarvestEvent creates a harvest event with its yield breakdown
func NewHarvestEvent(addr domain.Address, slot int, yield, waterCount, nutrientCount, harvestCount uint64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PodHarvested,
		Payload: HarvestPayloadV1{
			Address:       string(addr),
			Slot:          slot,
			Yield:         yield,
			WaterCount:    waterCount,
			NutrientCount: nutrientCount,
			HarvestCount:  harvestCount,
		},
	}
}

// NewRewardEvent creates a reward-roll event
func NewRewardEvent(addr domain.Address, slot int, roll, amount uint64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RewardMinted,
		Payload: RewardPayloadV1{
			Address: string(addr),
			Slot:    slot,
			Roll:    roll,
			Amount:  amount,
		},
	}
}

// NewSlotEvent creates a slot-progression event
func NewSlotEvent(eventType Type, addr domain.Address, harvestCount, podSlots uint64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: SlotPayloadV1{
			Address:      string(addr),
			HarvestCount: harvestCount,
			PodSlots:     podSlots,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
