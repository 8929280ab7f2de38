package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Monitored processes
CREATE TABLE IF NOT EXISTS processes (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    docket TEXT NOT NULL,
    forum TEXT,
    case_type TEXT NOT NULL DEFAULT '',
    plaintiff TEXT NOT NULL DEFAULT '',
    defendant TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK(status IN ('active', 'terminated', 'suspended')),
    notifications_enabled INTEGER NOT NULL DEFAULT 1,
    last_actuation_date TIMESTAMP,
    last_actuation_desc TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(owner_id, docket)
);
CREATE INDEX IF NOT EXISTS idx_owner_processes ON processes(owner_id);
CREATE INDEX IF NOT EXISTS idx_process_status ON processes(status);

-- Actuations. The unique index backs up the reconciler's dedup-key check so
-- concurrent syncs of the same case cannot insert the same event twice.
CREATE TABLE IF NOT EXISTS actuations (
    id TEXT PRIMARY KEY,
    process_id TEXT NOT NULL,
    date TIMESTAMP NOT NULL,
    type TEXT NOT NULL DEFAULT '',
    annotation TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP,
    end_date TIMESTAMP,
    is_new INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (process_id) REFERENCES processes(id) ON DELETE CASCADE,
    UNIQUE(process_id, date, annotation)
);
CREATE INDEX IF NOT EXISTS idx_process_actuations ON actuations(process_id);
CREATE INDEX IF NOT EXISTS idx_actuations_is_new ON actuations(process_id, is_new);

-- Credit ledger for sync metering
CREATE TABLE IF NOT EXISTS credit_accounts (
    owner_id TEXT PRIMARY KEY,
    balance INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- API keys for authentication
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
CREATE INDEX IF NOT EXISTS idx_owner_keys ON api_keys(owner_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
