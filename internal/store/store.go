// Package store owns the vacancy table: schema, transactional bulk replace,
// and the analytical read queries. It runs on PostgreSQL in production and on
// SQLite for local use and tests, through database/sql.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/avdonin/vacstat/internal/model"
)

// Ensure SQLStore implements model.VacancyStore.
var _ model.VacancyStore = (*SQLStore)(nil)

// Table names are interpolated into DDL, so they must be bare identifiers.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLStore implements model.VacancyStore on top of a database/sql handle.
type SQLStore struct {
	db      *sql.DB
	table   string
	dialect dialect
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
func NewSQLiteStore(dbPath, table string) (*SQLStore, error) {
	return open("sqlite", dbPath, table, sqliteDialect)
}

// NewPostgresStore connects to PostgreSQL using a connection URL or DSN.
func NewPostgresStore(dsn, table string) (*SQLStore, error) {
	return open("pgx", dsn, table, postgresDialect)
}

func open(driver, dsn, table string, d dialect) (*SQLStore, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s db: %w", driver, err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s db: %w", driver, err)
	}

	return &SQLStore{db: db, table: table, dialect: d}, nil
}

// EnsureSchema creates the vacancy table if it does not exist. Idempotent and
// safe to call on every startup: an existing table and its rows are left
// untouched.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(s.dialect.createTable, s.table)); err != nil {
		return fmt.Errorf("creating %s table: %w", s.table, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
