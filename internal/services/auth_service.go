package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/pandaschool/internal/auth"
	"github.com/vytor/pandaschool/internal/errors"
	"github.com/vytor/pandaschool/internal/logger"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/repository"
)

// MinPasswordLength is the shortest accepted signup password.
const MinPasswordLength = 6

type SignupInput struct {
	Email      string
	Password   string
	ParentName string
}

type LoginResult struct {
	AccessToken string
	UserID      string
}

// AuthService handles parent accounts and access tokens
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Authenticate resolves an access token to a user id.
	Authenticate(ctx context.Context, token string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	kvRepo   repository.KVRepository
	tokens   *auth.TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, kvRepo repository.KVRepository, tokens *auth.TokenIssuer) AuthService {
	return &authService{userRepo: userRepo, kvRepo: kvRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("auth")
	email := strings.ToLower(strings.TrimSpace(in.Email))
	log.Debug("signing up: email=%s", email)

	if email == "" {
		return "", errors.NewValidationError("email", "cannot be empty")
	}
	if len(in.Password) < MinPasswordLength {
		return "", errors.NewValidationError("password", "must be at least 6 characters")
	}
	if strings.TrimSpace(in.ParentName) == "" {
		return "", errors.NewValidationError("parentName", "cannot be empty")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Error("failed to look up email: %v", err)
		return "", errors.NewInternalError(err)
	}
	if existing != nil {
		return "", errors.NewEmailExistsError()
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", errors.NewInternalError(err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	user := models.User{ID: uuid.NewString(), Email: email, PasswordHash: hash, CreatedAt: now}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", errors.NewEmailExistsError()
		}
		log.Error("failed to create user: %v", err)
		return "", errors.NewInternalError(err)
	}

	profile, err := json.Marshal(models.ParentProfile{ParentName: strings.TrimSpace(in.ParentName), Email: email, CreatedAt: now})
	if err != nil {
		return "", errors.NewInternalError(err)
	}
	if err := s.kvRepo.Set(ctx, storeKey(user.ID, kindProfile), profile, now); err != nil {
		log.Error("failed to store parent profile: %v", err)
		return "", errors.NewInternalError(err)
	}

	log.Info("user signed up: id=%s", user.ID)
	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContext(ctx).WithPrefix("auth")

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		log.Error("failed to look up email: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		log.Error("stored hash unusable for user %s: %v", user.ID, err)
		return nil, errors.NewInternalError(err)
	}
	if !ok {
		return nil, errors.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Debug("user logged in: id=%s", user.ID)
	return &LoginResult{AccessToken: token, UserID: user.ID}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("auth")

	userID, err := s.tokens.Verify(token)
	if err != nil {
		log.Debug("token rejected: %v", err)
		return "", errors.NewUnauthorizedError("invalid or expired token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Error("failed to look up user %s: %v", userID, err)
		return "", errors.NewInternalError(err)
	}
	if user == nil {
		return "", errors.NewUnauthorizedError("account no longer exists")
	}
	return userID, nil
}
