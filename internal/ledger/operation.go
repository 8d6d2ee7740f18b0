package ledger

import "github.com/growpodempire/growpod/internal/domain"

// Operation is one member of an atomically-executed bundle: either an
// asset transfer or an application call.
type Operation interface {
	isOperation()
}

// Transfer moves amount of an asset between two addresses. A transfer
// addressed to the application account is a burn.
type Transfer struct {
	AssetID  uint64
	Amount   uint64
	Sender   domain.Address
	Receiver domain.Address
}

func (Transfer) isOperation() {}

// OnComplete selects the deployment-lifecycle path of an application
// call, mirroring the host ledger's completion kinds.
type OnComplete int

const (
	OnCompleteNoOp OnComplete = iota
	OnCompleteCreate
	OnCompleteOptIn
	OnCompleteCloseOut
	OnCompleteUpdate
	OnCompleteDelete
)

// AppCall invokes the router once. Slot addresses one pod for
// slot-scoped actions; Args carries byte-encoded extras (a cooldown
// override, breed parent IDs, manual asset IDs).
type AppCall struct {
	Sender     domain.Address
	OnComplete OnComplete
	Action     domain.Action
	Slot       int
	Args       [][]byte
}

func (AppCall) isOperation() {}

// Payment is the typed burn attached to an application call, derived
// from the operation immediately preceding it in the submitted
// bundle. Nil when no transfer precedes the call.
type Payment struct {
	AssetID  uint64
	Amount   uint64
	Receiver domain.Address
}

// Env is the execution environment the host ledger supplies to one
// application call: caller identity, the single ledger timestamp, the
// round, and the call's attached payment.
type Env struct {
	Sender  domain.Address
	Now     uint64
	Round   uint64
	Payment *Payment
}
