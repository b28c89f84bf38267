package db_test

import (
	"context"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pandaschool/internal/db"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	database, err := db.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	var n int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	for _, table := range []string{"users", "kv_store"} {
		var name string
		err := database.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := db.Open("oracle", "whatever")
	assert.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	database, err := db.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	insert := `INSERT INTO kv_store (store_key, payload, updated_at) VALUES ('k', 'v', CURRENT_TIMESTAMP)`
	_, err = database.ExecContext(ctx, insert)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx, insert)
	require.Error(t, err)

	assert.True(t, db.IsUniqueViolation(err))
	assert.False(t, db.IsUniqueViolation(assert.AnError))
}

func TestDialects(t *testing.T) {
	tests := []struct {
		driver      string
		driverName  string
		placeholder squirrel.PlaceholderFormat
		dsnIn       string
		dsnOut      string
		upsert      string
	}{
		{
			driver:      "sqlite",
			driverName:  "sqlite3",
			placeholder: squirrel.Question,
			dsnIn:       "file:panda.db",
			dsnOut:      "file:panda.db?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL",
			upsert:      "ON CONFLICT (store_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at",
		},
		{
			driver:      "Postgres",
			driverName:  "postgres",
			placeholder: squirrel.Dollar,
			dsnIn:       "postgres://localhost/panda",
			dsnOut:      "postgres://localhost/panda",
			upsert:      "ON CONFLICT (store_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at",
		},
		{
			driver:      "mysql",
			driverName:  "mysql",
			placeholder: squirrel.Question,
			dsnIn:       "panda:secret@tcp(localhost:3306)/panda?charset=utf8mb4",
			dsnOut:      "panda:secret@tcp(localhost:3306)/panda?charset=utf8mb4&parseTime=true",
			upsert:      "ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = VALUES(updated_at)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.driverName, func(t *testing.T) {
			d, err := db.DialectFor(tt.driver)
			require.NoError(t, err)
			assert.Equal(t, tt.driverName, d.DriverName())
			assert.Equal(t, tt.placeholder, d.Placeholder())
			assert.Equal(t, tt.dsnOut, d.DSN(tt.dsnIn))
			assert.Equal(t, tt.upsert, d.UpsertSuffix("store_key", "payload", "updated_at"))
		})
	}
}

func TestPostgresPlaceholders(t *testing.T) {
	d, err := db.DialectFor("postgres")
	require.NoError(t, err)

	q, _, err := squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder()).
		Select("payload").From("kv_store").Where(squirrel.Eq{"store_key": "k"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT payload FROM kv_store WHERE store_key = $1", q)
}
