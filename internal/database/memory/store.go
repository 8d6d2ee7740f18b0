// Package memory implements the state store in process memory. It
// backs unit tests and DEV_MODE runs; transactions copy the whole
// state and swap it in on commit, giving the same all-or-nothing
// behavior as the Postgres store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/repository"
)

type state struct {
	global   *domain.GlobalConfig
	accounts map[domain.Address]*domain.AccountState
	assets   map[uint64]*domain.Asset
	balances map[uint64]map[domain.Address]uint64
	nextID   uint64
}

func newState() *state {
	return &state{
		accounts: make(map[domain.Address]*domain.AccountState),
		assets:   make(map[uint64]*domain.Asset),
		balances: make(map[uint64]map[domain.Address]uint64),
		nextID:   1,
	}
}

func (s *state) clone() *state {
	c := newState()
	c.nextID = s.nextID
	if s.global != nil {
		g := *s.global
		c.global = &g
	}
	for addr, acct := range s.accounts {
		c.accounts[addr] = cloneAccount(acct)
	}
	for id, asset := range s.assets {
		a := *asset
		c.assets[id] = &a
	}
	for id, holders := range s.balances {
		m := make(map[domain.Address]uint64, len(holders))
		for addr, amt := range holders {
			m[addr] = amt
		}
		c.balances[id] = m
	}
	return c
}

func cloneAccount(acct *domain.AccountState) *domain.AccountState {
	c := *acct
	c.Pods = make([]domain.Pod, len(acct.Pods))
	for i, p := range acct.Pods {
		c.Pods[i] = p
		c.Pods[i].DNA = append([]byte(nil), p.DNA...)
		c.Pods[i].TerpeneProfile = append([]byte(nil), p.TerpeneProfile...)
	}
	return &c
}

// Store implements repository.Store in memory
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore creates an empty in-memory state store
func NewStore() *Store {
	return &Store{state: newState()}
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// BeginTx snapshots the state; Commit swaps the snapshot back in.
// The store-wide mutex serializes bundles, matching the host ledger's
// one-at-a-time execution model.
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	s.mu.Lock()
	return &memTx{store: s, work: s.state.clone()}, nil
}

// GetGlobalConfig retrieves the global segment
func (s *Store) GetGlobalConfig(ctx context.Context) (*domain.GlobalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.global == nil {
		return nil, domain.ErrAccountNotFound
	}
	g := *s.state.global
	return &g, nil
}

// GetAccountState retrieves an account's local segment
func (s *Store) GetAccountState(ctx context.Context, addr domain.Address) (*domain.AccountState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, ok := s.state.accounts[addr]
	if !ok {
		return nil, domain.ErrNotOptedIn
	}
	return cloneAccount(acct), nil
}

// GetAsset retrieves asset parameters by ID
func (s *Store) GetAsset(ctx context.Context, assetID uint64) (*domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.state.assets[assetID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrAssetNotFound, assetID)
	}
	a := *asset
	return &a, nil
}

// GetBalance retrieves an address's holding of an asset
func (s *Store) GetBalance(ctx context.Context, assetID uint64, addr domain.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.balances[assetID][addr], nil
}

// TopHarvesters returns accounts ordered by harvest count, descending
func (s *Store) TopHarvesters(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.LeaderboardEntry, 0, len(s.state.accounts))
	for addr, acct := range s.state.accounts {
		entries = append(entries, domain.LeaderboardEntry{
			Address:      addr,
			HarvestCount: acct.HarvestCount,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].HarvestCount != entries[j].HarvestCount {
			return entries[i].HarvestCount > entries[j].HarvestCount
		}
		return entries[i].Address < entries[j].Address
	})
	if limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// GlobalStats aggregates deployment-wide counters
func (s *Store) GlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &domain.GlobalStats{Accounts: uint64(len(s.state.accounts))}
	for _, acct := range s.state.accounts {
		stats.TotalHarvests += acct.HarvestCount
		for _, p := range acct.Pods {
			switch {
			case p.Stage.Growing():
				stats.PodsGrowing++
			case p.Stage == domain.StageReady:
				stats.PodsReady++
			}
		}
	}
	return stats, nil
}
