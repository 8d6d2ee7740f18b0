// Package postgres implements the state store over PostgreSQL. Every
// bundle runs in one database transaction, which is what makes the
// all-or-nothing execution guarantee hold.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/growpodempire/growpod/internal/domain"
	"github.com/growpodempire/growpod/internal/repository"
)

// Store implements repository.Store for PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new PostgreSQL-backed state store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Ping verifies database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// BeginTx starts a state transaction
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &storeTx{tx: tx}, nil
}

// GetGlobalConfig retrieves the global segment
func (s *Store) GetGlobalConfig(ctx context.Context) (*domain.GlobalConfig, error) {
	return scanGlobalConfig(ctx, s.db, "")
}

// GetAccountState retrieves an account's local segment
func (s *Store) GetAccountState(ctx context.Context, addr domain.Address) (*domain.AccountState, error) {
	return scanAccountState(ctx, s.db, addr, "")
}

// GetAsset retrieves asset parameters by ID
func (s *Store) GetAsset(ctx context.Context, assetID uint64) (*domain.Asset, error) {
	return scanAsset(ctx, s.db, assetID)
}

// GetBalance retrieves an address's holding of an asset
func (s *Store) GetBalance(ctx context.Context, assetID uint64, addr domain.Address) (uint64, error) {
	var amount int64
	err := s.db.QueryRow(ctx,
		`SELECT amount FROM balances WHERE asset_id = $1 AND address = $2`,
		int64(assetID), string(addr),
	).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return uint64(amount), nil
}

// TopHarvesters returns accounts ordered by harvest count, descending
func (s *Store) TopHarvesters(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT address, harvest_count FROM accounts ORDER BY harvest_count DESC, address LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var addr string
		var count int64
		if err := rows.Scan(&addr, &count); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, domain.LeaderboardEntry{
			Address:      domain.Address(addr),
			HarvestCount: uint64(count),
		})
	}
	return entries, rows.Err()
}

// GlobalStats aggregates deployment-wide counters
func (s *Store) GlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	stats := &domain.GlobalStats{}
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM accounts),
			(SELECT COALESCE(SUM(harvest_count), 0) FROM accounts),
			(SELECT COUNT(*) FROM pods WHERE stage BETWEEN 1 AND 4),
			(SELECT COUNT(*) FROM pods WHERE stage = 5)
	`).Scan(&stats.Accounts, &stats.TotalHarvests, &stats.PodsGrowing, &stats.PodsReady)
	if err != nil {
		return nil, fmt.Errorf("failed to query global stats: %w", err)
	}
	return stats, nil
}

// scanGlobalConfig reads the singleton row, optionally with a lock suffix
func scanGlobalConfig(ctx context.Context, q rowQuerier, lock string) (*domain.GlobalConfig, error) {
	cfg := &domain.GlobalConfig{}
	var owner string
	var period, cleanup, breed, bud, terp, slot int64
	err := q.QueryRow(ctx,
		`SELECT owner, period, cleanup_cost, breed_cost, bud_asset, terp_asset, slot_asset, terp_registry
		 FROM global_config`+lock,
	).Scan(&owner, &period, &cleanup, &breed, &bud, &terp, &slot, &cfg.TerpRegistry)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get global config: %w", err)
	}
	cfg.Owner = domain.Address(owner)
	cfg.Period = uint64(period)
	cfg.CleanupCost = uint64(cleanup)
	cfg.BreedCost = uint64(breed)
	cfg.BudAsset = uint64(bud)
	cfg.TerpAsset = uint64(terp)
	cfg.SlotAsset = uint64(slot)
	return cfg, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// scanAccountState reads the progression row plus the pod rows
func scanAccountState(ctx context.Context, q rowQuerier, addr domain.Address, lock string) (*domain.AccountState, error) {
	state := &domain.AccountState{Address: addr}
	var harvests, slots int64
	err := q.QueryRow(ctx,
		`SELECT harvest_count, pod_slots FROM accounts WHERE address = $1`+lock,
		string(addr),
	).Scan(&harvests, &slots)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotOptedIn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	state.HarvestCount = uint64(harvests)
	state.PodSlots = uint64(slots)

	rows, err := q.Query(ctx,
		`SELECT slot, stage, water_count, last_watered, nutrient_count, last_nutrients, dna, terpene_profile
		 FROM pods WHERE address = $1 ORDER BY slot`,
		string(addr),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Pod
		var slot int16
		var stage, waters, lastWatered, nutrients, lastNutrients int64
		if err := rows.Scan(&slot, &stage, &waters, &lastWatered, &nutrients, &lastNutrients, &p.DNA, &p.TerpeneProfile); err != nil {
			return nil, fmt.Errorf("failed to scan pod: %w", err)
		}
		p.Slot = int(slot)
		p.Stage = domain.Stage(stage)
		p.WaterCount = uint64(waters)
		p.LastWatered = uint64(lastWatered)
		p.NutrientCount = uint64(nutrients)
		p.LastNutrients = uint64(lastNutrients)
		state.Pods = append(state.Pods, p)
	}
	return state, rows.Err()
}

// scanAsset reads one asset registry row
func scanAsset(ctx context.Context, q rowQuerier, assetID uint64) (*domain.Asset, error) {
	asset := &domain.Asset{ID: assetID}
	var total int64
	err := q.QueryRow(ctx,
		`SELECT unit_name, asset_name, total, decimals, url FROM assets WHERE asset_id = $1`,
		int64(assetID),
	).Scan(&asset.UnitName, &asset.Name, &total, &asset.Decimals, &asset.URL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrAssetNotFound, assetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	asset.Total = uint64(total)
	return asset, nil
}
