package memory

import (
	"context"
	"fmt"

	"github.com/growpodempire/growpod/internal/domain"
)

// memTx works on a snapshot of the store state while holding the
// store's mutex. Commit publishes the snapshot; Rollback discards it.
type memTx struct {
	store *Store
	work  *state
	done  bool
}

// Commit publishes the working snapshot
func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	t.store.state = t.work
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// Rollback discards the working snapshot. Safe after Commit.
func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

// CreateGlobalConfig writes the global segment at app create
func (t *memTx) CreateGlobalConfig(ctx context.Context, cfg *domain.GlobalConfig) error {
	if t.work.global != nil {
		return fmt.Errorf("global config already created")
	}
	g := *cfg
	t.work.global = &g
	return nil
}

// GetGlobalConfigForUpdate retrieves the global segment
func (t *memTx) GetGlobalConfigForUpdate(ctx context.Context) (*domain.GlobalConfig, error) {
	if t.work.global == nil {
		return nil, domain.ErrAccountNotFound
	}
	g := *t.work.global
	return &g, nil
}

// PutGlobalConfig overwrites the global segment
func (t *memTx) PutGlobalConfig(ctx context.Context, cfg *domain.GlobalConfig) error {
	g := *cfg
	t.work.global = &g
	return nil
}

// CreateAccountState initializes a local segment at opt-in
func (t *memTx) CreateAccountState(ctx context.Context, state *domain.AccountState) error {
	if _, ok := t.work.accounts[state.Address]; ok {
		return domain.ErrAlreadyOptedIn
	}
	t.work.accounts[state.Address] = cloneAccount(state)
	return nil
}

// GetAccountStateForUpdate retrieves a local segment
func (t *memTx) GetAccountStateForUpdate(ctx context.Context, addr domain.Address) (*domain.AccountState, error) {
	acct, ok := t.work.accounts[addr]
	if !ok {
		return nil, domain.ErrNotOptedIn
	}
	return cloneAccount(acct), nil
}

// PutAccountState overwrites a local segment
func (t *memTx) PutAccountState(ctx context.Context, state *domain.AccountState) error {
	if _, ok := t.work.accounts[state.Address]; !ok {
		return domain.ErrNotOptedIn
	}
	t.work.accounts[state.Address] = cloneAccount(state)
	return nil
}

// CreateAsset registers a new asset and returns its ID
func (t *memTx) CreateAsset(ctx context.Context, asset *domain.Asset) (uint64, error) {
	id := t.work.nextID
	t.work.nextID++
	a := *asset
	a.ID = id
	t.work.assets[id] = &a
	asset.ID = id
	return id, nil
}

// GetAsset retrieves asset parameters by ID
func (t *memTx) GetAsset(ctx context.Context, assetID uint64) (*domain.Asset, error) {
	asset, ok := t.work.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrAssetNotFound, assetID)
	}
	a := *asset
	return &a, nil
}

// Credit adds amount to an address's holding of an asset
func (t *memTx) Credit(ctx context.Context, assetID uint64, addr domain.Address, amount uint64) error {
	holders, ok := t.work.balances[assetID]
	if !ok {
		holders = make(map[domain.Address]uint64)
		t.work.balances[assetID] = holders
	}
	holders[addr] += amount
	return nil
}

// Debit removes amount from an address's holding
func (t *memTx) Debit(ctx context.Context, assetID uint64, addr domain.Address, amount uint64) error {
	holders := t.work.balances[assetID]
	if holders[addr] < amount {
		return fmt.Errorf("%w: asset %d, need %d", domain.ErrInsufficientFunds, assetID, amount)
	}
	holders[addr] -= amount
	return nil
}
