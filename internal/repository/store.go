package repository

import (
	"context"

	"github.com/growpodempire/growpod/internal/domain"
)

// Store is the persistent state split: one global segment, one local
// segment per opted-in account, plus the host-ledger asset registry
// and balances. Read methods never lock; all mutation goes through a
// Tx so a failed bundle leaves no partial effect.
type Store interface {
	// GetGlobalConfig retrieves the global segment.
	// Returns domain.ErrAccountNotFound before the app is created.
	GetGlobalConfig(ctx context.Context) (*domain.GlobalConfig, error)

	// GetAccountState retrieves an account's local segment.
	// Returns domain.ErrNotOptedIn when the account never opted in.
	GetAccountState(ctx context.Context, addr domain.Address) (*domain.AccountState, error)

	// GetAsset retrieves asset parameters by ID.
	GetAsset(ctx context.Context, assetID uint64) (*domain.Asset, error)

	// GetBalance retrieves an address's holding of an asset (0 when unheld).
	GetBalance(ctx context.Context, assetID uint64, addr domain.Address) (uint64, error)

	// TopHarvesters returns accounts ordered by harvest count, descending.
	TopHarvesters(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// GlobalStats aggregates deployment-wide counters.
	GlobalStats(ctx context.Context) (*domain.GlobalStats, error)

	// BeginTx starts an all-or-nothing state transaction.
	BeginTx(ctx context.Context) (Tx, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// Tx is one atomic bundle's view of the store. Every handler runs a
// finite sequence of reads and writes against a Tx; any failure rolls
// the whole thing back.
type Tx interface {
	// CreateGlobalConfig writes the global segment at app create.
	CreateGlobalConfig(ctx context.Context, cfg *domain.GlobalConfig) error

	// GetGlobalConfigForUpdate retrieves the global segment with a write lock.
	GetGlobalConfigForUpdate(ctx context.Context) (*domain.GlobalConfig, error)

	// PutGlobalConfig overwrites the global segment.
	PutGlobalConfig(ctx context.Context, cfg *domain.GlobalConfig) error

	// CreateAccountState initializes a local segment at opt-in.
	// Returns domain.ErrAlreadyOptedIn on a duplicate.
	CreateAccountState(ctx context.Context, state *domain.AccountState) error

	// GetAccountStateForUpdate retrieves a local segment with a write lock.
	// Returns domain.ErrNotOptedIn when absent.
	GetAccountStateForUpdate(ctx context.Context, addr domain.Address) (*domain.AccountState, error)

	// PutAccountState overwrites a local segment.
	PutAccountState(ctx context.Context, state *domain.AccountState) error

	// CreateAsset registers a new asset and returns its ID.
	CreateAsset(ctx context.Context, asset *domain.Asset) (uint64, error)

	// GetAsset retrieves asset parameters by ID.
	GetAsset(ctx context.Context, assetID uint64) (*domain.Asset, error)

	// Credit adds amount to an address's holding of an asset.
	Credit(ctx context.Context, assetID uint64, addr domain.Address, amount uint64) error

	// Debit removes amount from an address's holding.
	// Returns domain.ErrInsufficientFunds when the holding is short.
	Debit(ctx context.Context, assetID uint64, addr domain.Address, amount uint64) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
