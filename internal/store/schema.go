package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id               TEXT PRIMARY KEY,
    seed                 INTEGER NOT NULL,
    transactions         INTEGER NOT NULL,
    start_date           TEXT NOT NULL,
    end_date             TEXT NOT NULL,
    currency             TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_costcenter (
    cost_center_id       TEXT PRIMARY KEY,
    cost_center_name     TEXT NOT NULL,
    department           TEXT NOT NULL,
    region               TEXT NOT NULL,
    manager              TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dim_account (
    account_id           TEXT PRIMARY KEY,
    account_name         TEXT NOT NULL,
    pl_level_1           TEXT NOT NULL,
    pl_level_2           TEXT NOT NULL,
    pl_level_3           TEXT NOT NULL,
    sort_pl1             INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS fact_gl (
    txn_id               TEXT PRIMARY KEY,
    txn_date             TEXT NOT NULL,
    amount               REAL NOT NULL,
    currency             TEXT NOT NULL,
    account_id           TEXT NOT NULL REFERENCES dim_account(account_id),
    cost_center_id       TEXT NOT NULL REFERENCES dim_costcenter(cost_center_id),
    country              TEXT NOT NULL,
    vendor_customer      TEXT NOT NULL,
    description          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fact_budget_monthly (
    month_start          TEXT NOT NULL,
    account_id           TEXT NOT NULL REFERENCES dim_account(account_id),
    cost_center_id       TEXT NOT NULL REFERENCES dim_costcenter(cost_center_id),
    budget_amount        REAL NOT NULL,
    PRIMARY KEY (month_start, account_id, cost_center_id)
);

CREATE INDEX IF NOT EXISTS idx_fact_gl_date ON fact_gl(txn_date);
CREATE INDEX IF NOT EXISTS idx_fact_gl_account ON fact_gl(account_id);
`
