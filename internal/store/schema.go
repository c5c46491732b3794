package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS plans (
    name                 TEXT PRIMARY KEY,
    start_year           INTEGER NOT NULL,
    end_year             INTEGER NOT NULL,
    inflation_rate       REAL NOT NULL,
    revision             INTEGER NOT NULL DEFAULT 1,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS elements (
    plan_name            TEXT NOT NULL REFERENCES plans(name) ON DELETE CASCADE,
    kind                 TEXT NOT NULL,
    element_id           TEXT NOT NULL,
    position             INTEGER NOT NULL,
    payload              TEXT NOT NULL,
    PRIMARY KEY (plan_name, kind, element_id)
);

CREATE INDEX IF NOT EXISTS idx_elements_plan ON elements(plan_name, position);
`
