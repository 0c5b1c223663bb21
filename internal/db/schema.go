package db

// Schema is the DDL for the jobtrack history database.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
    id              TEXT PRIMARY KEY,
    spreadsheet_id  TEXT NOT NULL,
    query           TEXT NOT NULL,
    messages        INTEGER NOT NULL DEFAULT 0,
    appended        INTEGER NOT NULL DEFAULT 0,
    failed          INTEGER NOT NULL DEFAULT 0,
    started_at      TEXT NOT NULL,
    finished_at     TEXT
);

CREATE TABLE IF NOT EXISTS rows (
    run_id          TEXT NOT NULL,
    message_id      TEXT NOT NULL,
    company         TEXT NOT NULL,
    job_title       TEXT NOT NULL,
    date            TEXT,
    rejection_stage TEXT,
    next_steps      TEXT NOT NULL,
    notes           TEXT,
    PRIMARY KEY (run_id, message_id),
    FOREIGN KEY (run_id) REFERENCES runs(id)
);

CREATE INDEX IF NOT EXISTS idx_rows_company ON rows(company);
CREATE INDEX IF NOT EXISTS idx_rows_stage ON rows(rejection_stage);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
`
