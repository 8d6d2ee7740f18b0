package event

import (
	"context"

	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/metrics"
)

// allTypes lists every event type the core emits.
var allTypes = []Type{
	PodMinted,
	PodWatered,
	PodFed,
	PodHarvested,
	PodCleaned,
	PodBred,
	RewardMinted,
	SlotTokenClaimed,
	SlotUnlocked,
}

// RegisterObservers subscribes the standard logging and metrics
// handlers to every event type. Called once at startup.
func RegisterObservers(bus Bus) {
	for _, t := range allTypes {
		bus.Subscribe(t, observe)
	}
}

func observe(ctx context.Context, e Event) error {
	metrics.EventsPublished.WithLabelValues(string(e.Type)).Inc()
	logger.FromContext(ctx).Info("Event published", "type", e.Type, "payload", e.Payload)
	return nil
}
