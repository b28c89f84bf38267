package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// Dialect carries what differs between the supported SQL backends.
type Dialect interface {
	// DriverName is the database/sql driver name.
	DriverName() string
	// DSN adjusts a user supplied DSN with the options the store relies on.
	DSN(dsn string) string
	Placeholder() squirrel.PlaceholderFormat
	Configure(db *sql.DB)
	// MigrationsDir is the subdirectory of migrations/ holding this dialect's files.
	MigrationsDir() string
	// UpsertSuffix turns an INSERT into an insert-or-update on conflictColumn.
	UpsertSuffix(conflictColumn string, update ...string) string
}

// DialectFor resolves a driver name from configuration.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite3", "sqlite", "":
		return sqliteDialect{}, nil
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver: %s", driver)
}

type sqliteDialect struct{}

func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) DSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL"
}

func (sqliteDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Question }

// A single connection keeps writes serialized and lets :memory: databases
// survive between queries.
func (sqliteDialect) Configure(db *sql.DB) {
	db.SetMaxOpenConns(1)
}

func (sqliteDialect) MigrationsDir() string { return "sqlite" }

func (sqliteDialect) UpsertSuffix(conflictColumn string, update ...string) string {
	return excludedUpsert(conflictColumn, update)
}

type postgresDialect struct{}

func (postgresDialect) DriverName() string { return "postgres" }

func (postgresDialect) DSN(dsn string) string { return dsn }

func (postgresDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Dollar }

func (postgresDialect) Configure(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func (postgresDialect) MigrationsDir() string { return "postgres" }

func (postgresDialect) UpsertSuffix(conflictColumn string, update ...string) string {
	return excludedUpsert(conflictColumn, update)
}

type mysqlDialect struct{}

func (mysqlDialect) DriverName() string { return "mysql" }

// DATETIME columns are only scanned into time.Time with parseTime.
func (mysqlDialect) DSN(dsn string) string {
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "parseTime=true"
}

func (mysqlDialect) Placeholder() squirrel.PlaceholderFormat { return squirrel.Question }

func (mysqlDialect) Configure(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func (mysqlDialect) MigrationsDir() string { return "mysql" }

func (mysqlDialect) UpsertSuffix(_ string, update ...string) string {
	sets := make([]string, len(update))
	for i, col := range update {
		sets[i] = fmt.Sprintf("%s = VALUES(%s)", col, col)
	}
	return "ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}

func excludedUpsert(conflictColumn string, update []string) string {
	sets := make([]string, len(update))
	for i, col := range update {
		sets[i] = fmt.Sprintf("%s = excluded.%s", col, col)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", conflictColumn, strings.Join(sets, ", "))
}
