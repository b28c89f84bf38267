package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pandaschool/internal/db"
	"github.com/vytor/pandaschool/internal/logger"
	"github.com/vytor/pandaschool/internal/repository"
)

type kvRepository struct {
	db *db.DB
}

// NewKVRepository creates a new KVRepository implementation
func NewKVRepository(database *db.DB) repository.KVRepository {
	return &kvRepository{db: database}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("getting key: %s", key)

	q, args, err := r.db.Builder().
		Select("payload").
		From("kv_store").
		Where(squirrel.Eq{"store_key": key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var payload string
	err = r.db.QueryRowContext(ctx, q, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key not found: %s", key)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get key %s: %v", key, err)
		return nil, err
	}
	return []byte(payload), nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("setting key: %s (%d bytes)", key, len(value))

	q, args, err := r.db.Builder().
		Insert("kv_store").
		Columns("store_key", "payload", "updated_at").
		Values(key, string(value), at.UTC()).
		Suffix(r.db.Dialect.UpsertSuffix("store_key", "payload", "updated_at")).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		log.Error("failed to set key %s: %v", key, err)
		return err
	}
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_repo")
	log.Debug("deleting key: %s", key)

	q, args, err := r.db.Builder().
		Delete("kv_store").
		Where(squirrel.Eq{"store_key": key}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to delete key %s: %v", key, err)
	}
	return err
}
