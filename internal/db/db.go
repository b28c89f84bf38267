package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pandaschool/internal/logger"
)

//go:embed migrations
var migrationsFS embed.FS

type DB struct {
	*sql.DB
	Dialect Dialect
	log     *logger.Logger
}

// Open connects to driver/dsn, checks the connection and applies migrations.
func Open(driver, dsn string) (*DB, error) {
	log := logger.Default().WithPrefix("db")

	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	log.Info("opening %s database", dialect.DriverName())
	sqlDB, err := sql.Open(dialect.DriverName(), dialect.DSN(dsn))
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	dialect.Configure(sqlDB)

	if err := sqlDB.Ping(); err != nil {
		log.Error("failed to ping database: %v", err)
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{DB: sqlDB, Dialect: dialect, log: log}

	log.Debug("applying migrations")
	if err := db.applyMigrations(context.Background()); err != nil {
		log.Error("failed to apply migrations: %v", err)
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

// Builder returns a squirrel statement builder using the dialect's placeholders.
func (db *DB) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(db.Dialect.Placeholder())
}

func (db *DB) applyMigrations(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(255) PRIMARY KEY, applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	dir := path.Join("migrations", db.Dialect.MigrationsDir())
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		version := entry.Name()
		applied, err := db.isMigrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			db.log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile(path.Join(dir, version))
		if err != nil {
			return err
		}
		db.log.Info("applying migration: %s", version)
		err = db.Tx(ctx, func(tx *sql.Tx) error {
			// Drivers differ on multi-statement Exec, so run one at a time.
			for _, stmt := range strings.Split(string(sqlBytes), ";") {
				if strings.TrimSpace(stmt) == "" {
					continue
				}
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			q, args, err := db.Builder().Insert("schema_migrations").Columns("version").Values(version).ToSql()
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(ctx, q, args...)
			return err
		})
		if err != nil {
			db.log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		db.log.Info("migration %s applied successfully", version)
	}
	return nil
}

func (db *DB) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	q, args, err := db.Builder().Select("version").From("schema_migrations").Where(squirrel.Eq{"version": version}).ToSql()
	if err != nil {
		return false, err
	}
	var v string
	err = db.QueryRowContext(ctx, q, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Tx runs fn in a transaction, rolling back when it returns an error.
func (db *DB) Tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		db.log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		db.log.Error("failed to commit transaction: %v", err)
		return err
	}
	db.log.Debug("transaction committed")
	return nil
}
