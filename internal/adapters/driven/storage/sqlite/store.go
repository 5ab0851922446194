package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/pew/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
	"github.com/custodia-labs/pew/internal/logger"
)

// Table names.
const (
	feastsTable = "feasts"
	hymnsTable  = "neh"
)

// Ensure Store implements the interface.
var _ driven.TableLoader = (*Store)(nil)

// Store is a SQLite database holding the reference tables.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at dbPath.
// If dbPath is empty, defaults to ~/.pew/pew.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".pew", "pew.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_tables.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}

// ImportTables replaces the stored tables with tables in one transaction.
func (s *Store) ImportTables(ctx context.Context, tables *domain.Tables) error {
	if tables == nil {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, table := range []string{feastsTable, hymnsTable} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	feastStmt, err := tx.PrepareContext(ctx, insertQuery(feastsTable, domain.FeastColumns))
	if err != nil {
		return fmt.Errorf("preparing feast insert: %w", err)
	}
	defer feastStmt.Close()

	for _, feast := range tables.Feasts {
		if _, err := feastStmt.ExecContext(ctx, toArgs(feast.Row())...); err != nil {
			return fmt.Errorf("inserting feast %q: %w", feast.Name, err)
		}
	}

	hymnStmt, err := tx.PrepareContext(ctx, insertQuery(hymnsTable, domain.HymnColumns))
	if err != nil {
		return fmt.Errorf("preparing hymn insert: %w", err)
	}
	defer hymnStmt.Close()

	for _, hymn := range tables.Hymns {
		if _, err := hymnStmt.ExecContext(ctx, hymn.Number, hymn.FirstLine); err != nil {
			return fmt.Errorf("inserting hymn %d: %w", hymn.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	logger.Info("imported %d feasts and %d hymns into %s", len(tables.Feasts), len(tables.Hymns), s.path)
	return nil
}

// LoadTables reads both tables in insertion order after checking their columns.
func (s *Store) LoadTables(ctx context.Context) (*domain.Tables, error) {
	if err := s.checkColumns(ctx, feastsTable, domain.FeastColumns); err != nil {
		return nil, err
	}
	if err := s.checkColumns(ctx, hymnsTable, domain.HymnColumns); err != nil {
		return nil, err
	}

	feasts, err := s.loadFeasts(ctx)
	if err != nil {
		return nil, err
	}
	hymns, err := s.loadHymns(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Tables{Feasts: feasts, Hymns: hymns}, nil
}

func (s *Store) loadFeasts(ctx context.Context) ([]domain.Feast, error) {
	rows, err := s.db.QueryContext(ctx, selectQuery(feastsTable, domain.FeastColumns))
	if err != nil {
		return nil, fmt.Errorf("querying feasts: %w", err)
	}
	defer rows.Close()

	feasts := []domain.Feast{}
	cells := make([]string, len(domain.FeastColumns))
	dest := make([]any, len(cells))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning feast: %w", err)
		}
		feast, err := domain.FeastFromRow(cells)
		if err != nil {
			return nil, err
		}
		feasts = append(feasts, feast)
	}
	return feasts, rows.Err()
}

func (s *Store) loadHymns(ctx context.Context) ([]domain.HymnRow, error) {
	rows, err := s.db.QueryContext(ctx, selectQuery(hymnsTable, domain.HymnColumns))
	if err != nil {
		return nil, fmt.Errorf("querying hymns: %w", err)
	}
	defer rows.Close()

	hymns := []domain.HymnRow{}
	for rows.Next() {
		var h domain.HymnRow
		if err := rows.Scan(&h.Number, &h.FirstLine); err != nil {
			return nil, fmt.Errorf("scanning hymn: %w", err)
		}
		hymns = append(hymns, h)
	}
	return hymns, rows.Err()
}

// checkColumns compares the live column list of table with want.
func (s *Store) checkColumns(ctx context.Context, table string, want []string) error {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return fmt.Errorf("reading %s columns: %w", table, err)
	}
	defer rows.Close()

	var got []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning %s columns: %w", table, err)
		}
		got = append(got, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !slices.Equal(got, want) {
		return &domain.SchemaError{Table: table, Want: want, Got: got}
	}
	return nil
}

func quoteColumns(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = `"` + c + `"`
	}
	return strings.Join(quoted, ", ")
}

func insertQuery(table string, columns []string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, quoteColumns(columns), placeholders)
}

func selectQuery(table string, columns []string) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", quoteColumns(columns), table)
}

func toArgs(cells []string) []any {
	args := make([]any, len(cells))
	for i, c := range cells {
		args[i] = c
	}
	return args
}
