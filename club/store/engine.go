// Package store is the on-device persistent store: one sqlite file holding
// every collection declared in the catalog, opened at a target schema version
// and migrated additively. Records are JSON documents keyed by their own
// primary-key field; secondary lookups go through declared expression indexes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/bus"
)

// Engine provides collection-scoped CRUD over the on-device database and
// broadcasts a change signal after every committed mutation. One Engine is
// opened per instance and reused for its lifetime.
type Engine struct {
	db  *sql.DB
	bus bus.Bus
}

// Open opens (or creates) the database at path and ensures the schema matches
// targetVersion. Missing collections and indexes are created inside a single
// upgrade transaction; existing ones are never dropped, renamed, or rewritten.
// A lock held by another instance surfaces as ErrStoreUnavailable; an errored
// upgrade rolls back completely and surfaces as ErrMigrationFailed.
func Open(ctx context.Context, path string, targetVersion int, changeBus bus.Bus) (*Engine, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database at %s: %v", ErrStoreUnavailable, path, err)
	}

	// sqlite supports one writer at a time; within this instance every store
	// operation is serialized through a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode = WAL", "PRAGMA busy_timeout = 5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			if isBusy(err) {
				return nil, fmt.Errorf("%w: another instance holds the database: %v", ErrStoreUnavailable, err)
			}
			return nil, fmt.Errorf("%w: setting pragmas: %v", ErrStoreUnavailable, err)
		}
	}

	if err := migrate(ctx, db, targetVersion); err != nil {
		db.Close()
		return nil, err
	}

	return &Engine{db: db, bus: changeBus}, nil
}

// Close releases the database handle.
func (e *Engine) Close() error {
	return e.db.Close()
}

// migrate runs the additive upgrade pass. The whole pass happens inside one
// immediate transaction, so a concurrently open instance blocks it (busy)
// and a failing statement rolls every structural change back.
func migrate(ctx context.Context, db *sql.DB, targetVersion int) error {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("%w: reading schema version: %v", ErrStoreUnavailable, err)
	}
	if current >= targetVersion {
		return nil
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquiring connection for upgrade: %v", ErrStoreUnavailable, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		if isBusy(err) {
			return fmt.Errorf("%w: upgrade blocked by another open instance", ErrStoreUnavailable)
		}
		return fmt.Errorf("%w: starting upgrade transaction: %v", ErrMigrationFailed, err)
	}

	rollback := func(cause error) error {
		if _, rbErr := conn.ExecContext(ctx, "ROLLBACK"); rbErr != nil {
			log.Printf("ERROR: Failed to roll back schema upgrade: %v", rbErr)
		}
		return fmt.Errorf("%w: %v", ErrMigrationFailed, cause)
	}

	for _, col := range Catalog {
		if col.Since > targetVersion {
			continue
		}
		createTable := fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (k TEXT PRIMARY KEY, doc TEXT NOT NULL)", col.Name)
		if _, err := conn.ExecContext(ctx, createTable); err != nil {
			return rollback(fmt.Errorf("creating collection %s: %w", col.Name, err))
		}
		for _, field := range col.Indexes {
			createIndex := fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (json_extract(doc, '$.%s'))",
				col.Name, field, col.Name, field)
			if _, err := conn.ExecContext(ctx, createIndex); err != nil {
				return rollback(fmt.Errorf("creating index %s.%s: %w", col.Name, field, err))
			}
		}
	}

	if _, err := conn.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", targetVersion)); err != nil {
		return rollback(fmt.Errorf("recording schema version %d: %w", targetVersion, err))
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return rollback(fmt.Errorf("committing upgrade: %w", err))
	}

	log.Printf("INFO: Store schema upgraded from version %d to %d.", current, targetVersion)
	return nil
}

// Get returns the raw record for key, or nil with no error when absent.
func (e *Engine) Get(ctx context.Context, collection, key string) (json.RawMessage, error) {
	col, ok := catalogByName(collection)
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", ErrRecordInvalid, collection)
	}

	var doc string
	err := e.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT doc FROM %s WHERE k = ?", col.Name), key).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, key, err)
	}
	return json.RawMessage(doc), nil
}

// Put inserts or replaces the record, keyed by the record's own primary-key
// field. On success exactly one change signal is broadcast.
func (e *Engine) Put(ctx context.Context, collection string, record any) error {
	col, ok := catalogByName(collection)
	if !ok {
		return fmt.Errorf("%w: unknown collection %q", ErrRecordInvalid, collection)
	}

	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: record for %s does not marshal: %v", ErrRecordInvalid, collection, err)
	}
	key, err := extractKey(doc, col.Key)
	if err != nil {
		return fmt.Errorf("%w: record for %s: %v", ErrRecordInvalid, collection, err)
	}

	_, err = e.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (k, doc) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET doc = excluded.doc", col.Name),
		key, string(doc))
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", collection, key, err)
	}

	e.bus.Publish(ctx)
	return nil
}

// Delete removes the record if present. Deleting an absent key succeeds.
// On success exactly one change signal is broadcast.
func (e *Engine) Delete(ctx context.Context, collection, key string) error {
	col, ok := catalogByName(collection)
	if !ok {
		return fmt.Errorf("%w: unknown collection %q", ErrRecordInvalid, collection)
	}

	if _, err := e.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE k = ?", col.Name), key); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, key, err)
	}

	e.bus.Publish(ctx)
	return nil
}

// GetAll returns every record in the collection. Order is unspecified and
// callers must not rely on it.
func (e *Engine) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	col, ok := catalogByName(collection)
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", ErrRecordInvalid, collection)
	}
	return e.queryDocs(ctx, fmt.Sprintf("SELECT doc FROM %s", col.Name))
}

// GetAllByIndex returns every record whose declared index field equals value.
func (e *Engine) GetAllByIndex(ctx context.Context, collection, index string, value any) ([]json.RawMessage, error) {
	col, ok := catalogByName(collection)
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", ErrRecordInvalid, collection)
	}
	if !col.declaresIndex(index) {
		return nil, fmt.Errorf("%w: collection %q declares no index %q", ErrRecordInvalid, collection, index)
	}
	return e.queryDocs(ctx,
		fmt.Sprintf("SELECT doc FROM %s WHERE json_extract(doc, '$.%s') = ?", col.Name, index), value)
}

func (e *Engine) queryDocs(ctx context.Context, query string, args ...any) ([]json.RawMessage, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		docs = append(docs, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed during record iteration: %w", err)
	}
	return docs, nil
}

// extractKey reads the primary-key field out of a marshaled record.
func extractKey(doc []byte, keyField string) (string, error) {
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return "", fmt.Errorf("record is not a JSON object: %v", err)
	}
	key, _ := fields[keyField].(string)
	if key == "" {
		return "", fmt.Errorf("missing or empty primary key field %q", keyField)
	}
	return key, nil
}

// isBusy reports whether err is sqlite's "someone else holds the lock".
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
