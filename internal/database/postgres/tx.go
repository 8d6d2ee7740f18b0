package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/growpodempire/growpod/internal/domain"
)

// storeTx implements repository.Tx over one pgx transaction
type storeTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *storeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *storeTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// CreateGlobalConfig writes the global segment at app create
func (t *storeTx) CreateGlobalConfig(ctx context.Context, cfg *domain.GlobalConfig) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO global_config (owner, period, cleanup_cost, breed_cost, bud_asset, terp_asset, slot_asset, terp_registry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(cfg.Owner), int64(cfg.Period), int64(cfg.CleanupCost), int64(cfg.BreedCost),
		int64(cfg.BudAsset), int64(cfg.TerpAsset), int64(cfg.SlotAsset), cfg.TerpRegistry)
	if err != nil {
		return fmt.Errorf("failed to create global config: %w", err)
	}
	return nil
}

// GetGlobalConfigForUpdate retrieves the global segment with a write lock
func (t *storeTx) GetGlobalConfigForUpdate(ctx context.Context) (*domain.GlobalConfig, error) {
	return scanGlobalConfig(ctx, t.tx, " FOR UPDATE")
}

// PutGlobalConfig overwrites the global segment
func (t *storeTx) PutGlobalConfig(ctx context.Context, cfg *domain.GlobalConfig) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE global_config
		SET owner = $1, period = $2, cleanup_cost = $3, breed_cost = $4,
		    bud_asset = $5, terp_asset = $6, slot_asset = $7, terp_registry = $8,
		    updated_at = NOW()`,
		string(cfg.Owner), int64(cfg.Period), int64(cfg.CleanupCost), int64(cfg.BreedCost),
		int64(cfg.BudAsset), int64(cfg.TerpAsset), int64(cfg.SlotAsset), cfg.TerpRegistry)
	if err != nil {
		return fmt.Errorf("failed to update global config: %w", err)
	}
	return nil
}

// CreateAccountState initializes a local segment at opt-in
func (t *storeTx) CreateAccountState(ctx context.Context, state *domain.AccountState) error {
	res, err := t.tx.Exec(ctx, `
		INSERT INTO accounts (address, harvest_count, pod_slots)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO NOTHING`,
		string(state.Address), int64(state.HarvestCount), int64(state.PodSlots))
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrAlreadyOptedIn
	}

	for _, p := range state.Pods {
		if err := t.upsertPod(ctx, state.Address, p); err != nil {
			return err
		}
	}
	return nil
}

// GetAccountStateForUpdate retrieves a local segment with a write lock
func (t *storeTx) GetAccountStateForUpdate(ctx context.Context, addr domain.Address) (*domain.AccountState, error) {
	return scanAccountState(ctx, t.tx, addr, " FOR UPDATE")
}

// PutAccountState overwrites a local segment
func (t *storeTx) PutAccountState(ctx context.Context, state *domain.AccountState) error {
	res, err := t.tx.Exec(ctx, `
		UPDATE accounts SET harvest_count = $2, pod_slots = $3, updated_at = NOW()
		WHERE address = $1`,
		string(state.Address), int64(state.HarvestCount), int64(state.PodSlots))
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotOptedIn
	}

	for _, p := range state.Pods {
		if err := t.upsertPod(ctx, state.Address, p); err != nil {
			return err
		}
	}
	return nil
}

func (t *storeTx) upsertPod(ctx context.Context, addr domain.Address, p domain.Pod) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO pods (address, slot, stage, water_count, last_watered, nutrient_count, last_nutrients, dna, terpene_profile)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (address, slot) DO UPDATE
		SET stage = EXCLUDED.stage,
		    water_count = EXCLUDED.water_count,
		    last_watered = EXCLUDED.last_watered,
		    nutrient_count = EXCLUDED.nutrient_count,
		    last_nutrients = EXCLUDED.last_nutrients,
		    dna = EXCLUDED.dna,
		    terpene_profile = EXCLUDED.terpene_profile`,
		string(addr), int16(p.Slot), int64(p.Stage), int64(p.WaterCount), int64(p.LastWatered),
		int64(p.NutrientCount), int64(p.LastNutrients), p.DNA, p.TerpeneProfile)
	if err != nil {
		return fmt.Errorf("failed to upsert pod %d: %w", p.Slot, err)
	}
	return nil
}

// CreateAsset registers a new asset and returns its ID
func (t *storeTx) CreateAsset(ctx context.Context, asset *domain.Asset) (uint64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO assets (unit_name, asset_name, total, decimals, url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING asset_id`,
		asset.UnitName, asset.Name, int64(asset.Total), asset.Decimals, asset.URL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create asset: %w", err)
	}
	asset.ID = uint64(id)
	return asset.ID, nil
}

// GetAsset retrieves asset parameters by ID
func (t *storeTx) GetAsset(ctx context.Context, assetID uint64) (*domain.Asset, error) {
	return scanAsset(ctx, t.tx, assetID)
}

// Credit adds amount to an address's holding of an asset
func (t *storeTx) Credit(ctx context.Context, assetID uint64, addr domain.Address, amount uint64) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO balances (asset_id, address, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (asset_id, address) DO UPDATE SET amount = balances.amount + EXCLUDED.amount`,
		int64(assetID), string(addr), int64(amount))
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

// Debit removes amount from an address's holding
func (t *storeTx) Debit(ctx context.Context, assetID uint64, addr domain.Address, amount uint64) error {
	var current int64
	err := t.tx.QueryRow(ctx,
		`SELECT amount FROM balances WHERE asset_id = $1 AND address = $2 FOR UPDATE`,
		int64(assetID), string(addr),
	).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && uint64(current) < amount) {
		return fmt.Errorf("%w: asset %d, need %d", domain.ErrInsufficientFunds, assetID, amount)
	}
	if err != nil {
		return fmt.Errorf("failed to read balance: %w", err)
	}

	_, err = t.tx.Exec(ctx,
		`UPDATE balances SET amount = amount - $3 WHERE asset_id = $1 AND address = $2`,
		int64(assetID), string(addr), int64(amount))
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	return nil
}
