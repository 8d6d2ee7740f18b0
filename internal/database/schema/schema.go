package schema

// SchemaSQL contains the full database schema initialization script.
// The layout mirrors the on-ledger storage shape: one global row,
// one accounts row plus two pod rows per opted-in address, and the
// host-ledger asset registry with its balance table.
const SchemaSQL = `
-- Global segment (exactly one row)
CREATE TABLE IF NOT EXISTS global_config (
    singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
    owner TEXT NOT NULL,
    period BIGINT NOT NULL,
    cleanup_cost BIGINT NOT NULL,
    breed_cost BIGINT NOT NULL,
    bud_asset BIGINT NOT NULL DEFAULT 0,
    terp_asset BIGINT NOT NULL DEFAULT 0,
    slot_asset BIGINT NOT NULL DEFAULT 0,
    terp_registry BYTEA NOT NULL DEFAULT ''::bytea,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Per-account local segment: progression counters
CREATE TABLE IF NOT EXISTS accounts (
    address TEXT PRIMARY KEY,
    harvest_count BIGINT NOT NULL DEFAULT 0 CHECK (harvest_count >= 0),
    pod_slots BIGINT NOT NULL DEFAULT 2 CHECK (pod_slots BETWEEN 2 AND 5),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Per-account local segment: pod field sets.
-- The slot check is the storage ceiling: two field sets per account.
CREATE TABLE IF NOT EXISTS pods (
    address TEXT NOT NULL REFERENCES accounts(address) ON DELETE CASCADE,
    slot SMALLINT NOT NULL CHECK (slot >= 0 AND slot < 2),
    stage BIGINT NOT NULL DEFAULT 0 CHECK (stage BETWEEN 0 AND 6),
    water_count BIGINT NOT NULL DEFAULT 0,
    last_watered BIGINT NOT NULL DEFAULT 0,
    nutrient_count BIGINT NOT NULL DEFAULT 0,
    last_nutrients BIGINT NOT NULL DEFAULT 0,
    dna BYTEA,
    terpene_profile BYTEA,
    PRIMARY KEY (address, slot)
);

-- Host-ledger asset registry
CREATE TABLE IF NOT EXISTS assets (
    asset_id BIGSERIAL PRIMARY KEY,
    unit_name VARCHAR(8) NOT NULL,
    asset_name VARCHAR(32) NOT NULL,
    total BIGINT NOT NULL,
    decimals INTEGER NOT NULL,
    url TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Host-ledger balances
CREATE TABLE IF NOT EXISTS balances (
    asset_id BIGINT NOT NULL REFERENCES assets(asset_id) ON DELETE CASCADE,
    address TEXT NOT NULL,
    amount BIGINT NOT NULL DEFAULT 0 CHECK (amount >= 0),
    PRIMARY KEY (asset_id, address)
);

CREATE INDEX IF NOT EXISTS idx_accounts_harvest_count ON accounts (harvest_count DESC);
CREATE INDEX IF NOT EXISTS idx_balances_address ON balances (address);
`
