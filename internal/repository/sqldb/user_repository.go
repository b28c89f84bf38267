package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/pandaschool/internal/db"
	"github.com/vytor/pandaschool/internal/logger"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/repository"
)

type userRepository struct {
	db *db.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(database *db.DB) repository.UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) Create(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("creating user: id=%s", user.ID)

	q, args, err := r.db.Builder().
		Insert("users").
		Columns("id", "email", "password_hash", "created_at").
		Values(user.ID, normalizeEmail(user.Email), user.PasswordHash, user.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		if db.IsUniqueViolation(err) {
			log.Debug("email already registered")
			return fmt.Errorf("user %s: %w", user.ID, repository.ErrDuplicate)
		}
		log.Error("failed to create user: %v", err)
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": normalizeEmail(email)})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *userRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	q, args, err := r.db.Builder().
		Select("id", "email", "password_hash", "created_at").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u models.User
	err = r.db.QueryRowContext(ctx, q, args...).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
