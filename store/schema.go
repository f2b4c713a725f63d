package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CurrentSchemaVersion is the schema version a freshly opened store is
// migrated to.
const CurrentSchemaVersion = 2

// migrateSchema brings db to [CurrentSchemaVersion]. Empty databases get the
// current schema directly.
func migrateSchema(ctx context.Context, db *sql.DB) error {
	version, err := SchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	switch {
	case version == 0:
		return createSchema(ctx, db)

	case version == CurrentSchemaVersion:
		return nil

	case version > CurrentSchemaVersion:
		return fmt.Errorf("schema version %d is newer than supported version %d",
			version, CurrentSchemaVersion)
	}

	for v := version + 1; v <= CurrentSchemaVersion; v++ {
		if err := migrations[v](ctx, db); err != nil {
			return fmt.Errorf("migration to version %d failed: %w", v, err)
		}

		if err := setSchemaVersion(ctx, db, v); err != nil {
			return err
		}
	}

	return nil
}

// migrations[v] upgrades a version v-1 schema to version v.
var migrations = map[int]func(context.Context, *sql.DB) error{
	1: func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, createItemsTable)

		return err
	},
	2: func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, createItemsOrderIndex)

		return err
	},
}

const (
	createItemsTable = `CREATE TABLE IF NOT EXISTS items (
		id         TEXT PRIMARY KEY,
		path       TEXT NOT NULL,
		name       TEXT NOT NULL,
		type       TEXT NOT NULL,
		value      TEXT NOT NULL DEFAULT 'null',
		ord        INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		UNIQUE (path, name)
	)`

	createItemsOrderIndex = `CREATE INDEX IF NOT EXISTS idx_items_path_ord
		ON items (path, ord, created_at)`
)

func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{createItemsTable, createItemsOrderIndex} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO schema_version (version) VALUES (?)`,
		CurrentSchemaVersion,
	); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return tx.Commit()
}

func setSchemaVersion(ctx context.Context, db *sql.DB, version int) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, version)
	if err != nil {
		return fmt.Errorf("failed to set schema version %d: %w", version, err)
	}

	return nil
}

// SchemaVersion returns the schema version recorded in db, or 0 if none is.
func SchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var version int

	err := db.QueryRowContext(ctx,
		`SELECT version FROM schema_version ORDER BY version DESC LIMIT 1`,
	).Scan(&version)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	return version, nil
}
