package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/logger"
	"github.com/growpodempire/growpod/internal/metrics"
	"github.com/growpodempire/growpod/internal/repository"
)

const assetCacheSize = 64

// Dispatcher routes one application call to its handler. Implemented
// by the router; defined here so the engine does not depend on it.
type Dispatcher interface {
	// Dispatch executes the call against tx and returns the inner
	// transfers the handler emitted, all sourced from the app account.
	Dispatch(ctx context.Context, tx repository.Tx, call AppCall, env Env) ([]Transfer, error)
}

// Receipt summarizes a successfully committed bundle.
type Receipt struct {
	BundleID string     `json:"bundle_id"`
	Emitted  []Transfer `json:"-"`
}

// Engine executes bundles: operations run in submitted order inside
// one store transaction, and any failure aborts the whole bundle with
// no partial effect.
type Engine struct {
	store      repository.Store
	dispatcher Dispatcher
	clock      Clock
	appAddr    domain.Address
	assets     *lru.Cache[uint64, domain.Asset]
}

// NewEngine creates a bundle execution engine.
func NewEngine(store repository.Store, dispatcher Dispatcher, clock Clock, appAddr domain.Address) (*Engine, error) {
	assets, err := lru.New[uint64, domain.Asset](assetCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset cache: %w", err)
	}
	return &Engine{
		store:      store,
		dispatcher: dispatcher,
		clock:      clock,
		appAddr:    appAddr,
		assets:     assets,
	}, nil
}

// AppAddress returns the system's own account.
func (e *Engine) AppAddress() domain.Address {
	return e.appAddr
}

// Submit executes a bundle atomically. The environment timestamp and
// round are captured once and shared by every call in the bundle.
func (e *Engine) Submit(ctx context.Context, ops []Operation) (*Receipt, error) {
	log := logger.FromContext(ctx)

	if len(ops) == 0 {
		return nil, domain.ErrEmptyBundle
	}

	now := e.clock.Now()
	round := e.clock.Round()

	tx, err := e.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin bundle transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	receipt := &Receipt{BundleID: uuid.NewString()}

	for i, op := range ops {
		switch op := op.(type) {
		case Transfer:
			if err := e.applyTransfer(ctx, tx, op); err != nil {
				metrics.BundlesRejected.WithLabelValues("transfer").Inc()
				return nil, fmt.Errorf("operation %d: %w", i, err)
			}
		case AppCall:
			env := Env{
				Sender:  op.Sender,
				Now:     now,
				Round:   round,
				Payment: paymentBefore(ops, i),
			}
			emitted, err := e.dispatcher.Dispatch(ctx, tx, op, env)
			if err != nil {
				metrics.BundlesRejected.WithLabelValues(op.Action.String()).Inc()
				return nil, fmt.Errorf("operation %d (%s): %w", i, op.Action, err)
			}
			for _, inner := range emitted {
				if err := e.applyTransfer(ctx, tx, inner); err != nil {
					return nil, fmt.Errorf("operation %d (%s): inner transfer: %w", i, op.Action, err)
				}
				metrics.TokensEmitted.WithLabelValues(fmt.Sprint(inner.AssetID)).Add(float64(inner.Amount))
			}
			receipt.Emitted = append(receipt.Emitted, emitted...)
			metrics.ActionsTotal.WithLabelValues(op.Action.String()).Inc()
		default:
			return nil, fmt.Errorf("%w: unsupported operation %T", domain.ErrInvalidArgument, op)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit bundle: %w", err)
	}

	metrics.BundlesSubmitted.Inc()
	log.Info("Bundle committed", "bundle_id", receipt.BundleID, "operations", len(ops), "emitted", len(receipt.Emitted))

	return receipt, nil
}

// applyTransfer moves balance between two addresses after confirming
// the asset exists.
func (e *Engine) applyTransfer(ctx context.Context, tx repository.Tx, t Transfer) error {
	if _, err := e.assetParams(ctx, tx, t.AssetID); err != nil {
		return err
	}
	if err := tx.Debit(ctx, t.AssetID, t.Sender, t.Amount); err != nil {
		return fmt.Errorf("debit %s: %w", t.Sender, err)
	}
	if err := tx.Credit(ctx, t.AssetID, t.Receiver, t.Amount); err != nil {
		return fmt.Errorf("credit %s: %w", t.Receiver, err)
	}
	return nil
}

// assetParams resolves asset parameters through the LRU cache. Assets
// are immutable after creation, so cached entries never go stale.
func (e *Engine) assetParams(ctx context.Context, tx repository.Tx, assetID uint64) (domain.Asset, error) {
	if params, ok := e.assets.Get(assetID); ok {
		return params, nil
	}
	params, err := tx.GetAsset(ctx, assetID)
	if err != nil {
		return domain.Asset{}, err
	}
	e.assets.Add(assetID, *params)
	return *params, nil
}

// paymentBefore derives the typed payment for the call at index i
// from the operation immediately preceding it. Only a transfer
// qualifies; anything else leaves the call unpaid.
func paymentBefore(ops []Operation, i int) *Payment {
	if i == 0 {
		return nil
	}
	t, ok := ops[i-1].(Transfer)
	if !ok {
		return nil
	}
	return &Payment{
		AssetID:  t.AssetID,
		Amount:   t.Amount,
		Receiver: t.Receiver,
	}
}
