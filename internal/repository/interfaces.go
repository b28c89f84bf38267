package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/pandaschool/internal/models"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// UserRepository handles parent account data access
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// KVRepository is the key-value table behind the progress store.
// Get returns nil, nil for a missing key.
type KVRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, at time.Time) error
	Delete(ctx context.Context, key string) error
}
