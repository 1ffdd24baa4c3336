package state

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/kpus-tech/ai-updates-monitor/pkg/domain"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLiteStore persists source state in a local SQLite database
type SQLiteStore struct {
	db *sqlx.DB
}

// errCritical marks store errors that must not be retried
var errCritical = errors.New("critical store error")

// NewSQLiteStore opens (or creates) the database and initializes the schema
func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = "file:updates-monitor.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get returns the state for a source, nil when the source was never seen
func (s *SQLiteStore) Get(ctx context.Context, sourceID string) (*domain.SourceState, error) {
	var st domain.SourceState
	err := s.db.GetContext(ctx, &st, "SELECT * FROM source_state WHERE source_id = ?", sourceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get state for %s: %w", sourceID, err)
	}
	return &st, nil
}

// Put upserts the state for a source, retrying on transient lock errors
func (s *SQLiteStore) Put(ctx context.Context, st *domain.SourceState) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO source_state (source_id, fingerprint, etag, last_modified, last_seen_utc, last_item_key)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(source_id) DO UPDATE SET
				fingerprint = excluded.fingerprint,
				etag = excluded.etag,
				last_modified = excluded.last_modified,
				last_seen_utc = excluded.last_seen_utc,
				last_item_key = excluded.last_item_key
		`
		_, err := s.db.ExecContext(ctx, query, st.SourceID, st.Fingerprint, st.ETag,
			st.LastModified, st.LastSeen, st.LastItemKey)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return fmt.Errorf("put state for %s: %w", st.SourceID, errors.Join(errCritical, err))
		}
		return nil
	}, errCritical)
}

// BatchGet returns states for the given sources, missing keys are omitted
func (s *SQLiteStore) BatchGet(ctx context.Context, sourceIDs []string) (map[string]*domain.SourceState, error) {
	if len(sourceIDs) == 0 {
		return map[string]*domain.SourceState{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM source_state WHERE source_id IN (?)", sourceIDs)
	if err != nil {
		return nil, fmt.Errorf("build batch query: %w", err)
	}

	var states []domain.SourceState
	if err := s.db.SelectContext(ctx, &states, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("batch get states: %w", err)
	}

	result := make(map[string]*domain.SourceState, len(states))
	for i := range states {
		result[states[i].SourceID] = &states[i]
	}
	return result, nil
}

// Close releases the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
