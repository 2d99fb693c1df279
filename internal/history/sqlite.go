package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	anerror "github.com/msto63/analiza/pkg/core/error"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/analiza.db",
	}
}

func dbError(err error, msg, operation string) *anerror.Error {
	return anerror.Wrap(err, msg).WithCode(anerror.CodeDatabaseError).WithOperation(operation)
}

// NewSQLiteStore opens or creates the run database. An empty path uses
// DefaultSQLiteConfig.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg.Path = DefaultSQLiteConfig().Path
	}

	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, anerror.Wrap(err, "failed to create directory").
			WithCode(anerror.CodeIOError).
			WithOperation("history.NewSQLiteStore").
			WithDetail("path", dir)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, dbError(err, "failed to open database", "history.NewSQLiteStore")
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema", "history.initSchema")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ns INTEGER NOT NULL,
		token_count INTEGER NOT NULL,
		lexical_errors INTEGER NOT NULL,
		syntax_errors INTEGER NOT NULL,
		token_report TEXT,
		lexical_report TEXT,
		syntax_report TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run. A missing ID or start time is filled in.
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.StartedAt.IsZero() {
		entry.StartedAt = time.Now()
	}
	entry.StartedAt = entry.StartedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, started_at, duration_ns, token_count, lexical_errors,
			syntax_errors, token_report, lexical_report, syntax_report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Source, entry.StartedAt, int64(entry.Duration), entry.TokenCount,
		entry.LexicalErrorCount, entry.SyntaxErrorCount, entry.TokenReport, entry.LexicalReport,
		entry.SyntaxReport)

	if err != nil {
		return dbError(err, "failed to insert run", "history.Record").WithDetail("id", entry.ID)
	}

	return nil
}

const selectColumns = `SELECT id, source, started_at, duration_ns, token_count, lexical_errors,
	syntax_errors, token_report, lexical_report, syntax_report FROM runs`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var entry Entry
	var durationNS int64
	var tokenReport, lexicalReport, syntaxReport sql.NullString

	if err := row.Scan(&entry.ID, &entry.Source, &entry.StartedAt, &durationNS, &entry.TokenCount,
		&entry.LexicalErrorCount, &entry.SyntaxErrorCount, &tokenReport, &lexicalReport,
		&syntaxReport); err != nil {
		return nil, err
	}

	entry.Duration = time.Duration(durationNS)
	entry.TokenReport = tokenReport.String
	entry.LexicalReport = lexicalReport.String
	entry.SyntaxReport = syntaxReport.String
	return &entry, nil
}

// Get retrieves a run by ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, err := scanEntry(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, anerror.New("run not found").
			WithCode(anerror.CodeNotFound).
			WithOperation("history.Get").
			WithDetail("id", id)
	}
	if err != nil {
		return nil, dbError(err, "failed to read run", "history.Get").WithDetail("id", id)
	}
	return entry, nil
}

// List retrieves runs matching filter, newest first
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectColumns + ` WHERE 1=1`
	var args []interface{}

	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if filter.OnlyFailed {
		query += " AND (lexical_errors > 0 OR syntax_errors > 0)"
	}
	if !filter.Since.IsZero() {
		query += " AND started_at >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY started_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query runs", "history.List")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan run", "history.List")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to iterate runs", "history.List")
	}

	return entries, nil
}

// Stats returns run statistics
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{BySource: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN lexical_errors = 0 AND syntax_errors = 0 THEN 1 ELSE 0 END), 0)
		FROM runs
	`).Scan(&stats.Total, &stats.Clean)
	if err != nil {
		return nil, dbError(err, "failed to count runs", "history.Stats")
	}
	stats.Failed = stats.Total - stats.Clean

	rows, err := s.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM runs GROUP BY source`)
	if err != nil {
		return nil, dbError(err, "failed to group runs", "history.Stats")
	}
	defer rows.Close()
	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, dbError(err, "failed to scan source count", "history.Stats")
		}
		stats.BySource[source] = count
	}

	// Last run time; ordering keeps the column type so the driver returns a time
	var last time.Time
	err = s.db.QueryRowContext(ctx, `SELECT started_at FROM runs ORDER BY started_at DESC LIMIT 1`).Scan(&last)
	if err == nil {
		stats.LastRun = last
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, dbError(err, "failed to read last run", "history.Stats")
	}

	return stats, nil
}

// Prune removes runs started before now minus olderThan
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()

	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, dbError(err, "failed to prune runs", "history.Prune")
	}
	deleted, _ := result.RowsAffected()

	return deleted, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
