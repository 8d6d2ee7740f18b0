// Package handler contains the HTTP handlers for the grow-pod API.
// Handlers translate requests into operation bundles, submit them to
// the ledger engine, and shape the committed result for the client.
// Callers are identified by the address they supply; signature checks
// belong to the ledger client in front of this service.
package handler

import (
	"context"
	"encoding/binary"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/ledger"
)

// Submitter executes operation bundles atomically. Implemented by
// ledger.Engine.
type Submitter interface {
	Submit(ctx context.Context, ops []ledger.Operation) (*ledger.Receipt, error)
	AppAddress() domain.Address
}

// itob encodes v as the 8-byte big-endian argument format used by
// application calls.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
