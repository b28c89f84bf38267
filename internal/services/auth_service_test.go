package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pandaschool/internal/auth"
	"github.com/vytor/pandaschool/internal/errors"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/repository"
	"github.com/vytor/pandaschool/internal/services"
	"github.com/vytor/pandaschool/internal/testutil/mocks"
)

const testSecret = "test-secret-at-least-16"

func newAuthService() (services.AuthService, *mocks.MockUserRepository, *mocks.MockKVRepository) {
	users := new(mocks.MockUserRepository)
	kv := new(mocks.MockKVRepository)
	return services.NewAuthService(users, kv, auth.NewTokenIssuer(testSecret, time.Hour)), users, kv
}

func TestSignup_StoresUserAndProfile(t *testing.T) {
	svc, users, kv := newAuthService()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "mom@example.com").Return(nil, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "mom@example.com" && u.ID != "" && u.PasswordHash != "secret1"
	})).Return(nil)

	var stored []byte
	kv.On("Set", ctx, mock.MatchedBy(func(k string) bool { return len(k) > 0 }), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(2).([]byte) }).
		Return(nil)

	id, err := svc.Signup(ctx, services.SignupInput{Email: " Mom@Example.com", Password: "secret1", ParentName: "Mom"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	kv.AssertCalled(t, "Set", ctx, "user:"+id+":profile", mock.Anything, mock.Anything)
	var profile models.ParentProfile
	require.NoError(t, json.Unmarshal(stored, &profile))
	assert.Equal(t, "Mom", profile.ParentName)
	assert.Equal(t, "mom@example.com", profile.Email)
	users.AssertExpectations(t)
}

func TestSignup_EmailExists(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()
	users.On("GetByEmail", ctx, "dad@example.com").Return(&models.User{ID: "x"}, nil)

	_, err := svc.Signup(ctx, services.SignupInput{Email: "dad@example.com", Password: "secret1", ParentName: "Dad"})

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeEmailExists, appErr.Code)
	assert.Equal(t, 422, appErr.Status)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_DuplicateOnInsert(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()
	users.On("GetByEmail", ctx, "dad@example.com").Return(nil, nil)
	users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Signup(ctx, services.SignupInput{Email: "dad@example.com", Password: "secret1", ParentName: "Dad"})

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeEmailExists, appErr.Code)
}

func TestSignup_Validation(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	tests := []services.SignupInput{
		{Email: "", Password: "secret1", ParentName: "Mom"},
		{Email: "mom@example.com", Password: "12345", ParentName: "Mom"},
		{Email: "mom@example.com", Password: "secret1", ParentName: "  "},
	}
	for _, in := range tests {
		_, err := svc.Signup(ctx, in)
		var appErr *errors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	}
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	user := &models.User{ID: "user-1", Email: "mom@example.com", PasswordHash: hash}
	users.On("GetByEmail", ctx, "mom@example.com").Return(user, nil)
	users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)
	users.On("GetByID", ctx, "user-1").Return(user, nil)

	res, err := svc.Login(ctx, "mom@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", res.UserID)

	id, err := svc.Authenticate(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	_, err = svc.Login(ctx, "mom@example.com", "wrong-password")
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeInvalidCredentials, appErr.Code)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeInvalidCredentials, appErr.Code)
}

func TestAuthenticate_Rejects(t *testing.T) {
	svc, users, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "not-a-token")
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	token, err := auth.NewTokenIssuer(testSecret, time.Hour).Issue("deleted-user")
	require.NoError(t, err)
	users.On("GetByID", ctx, "deleted-user").Return(nil, nil)

	_, err = svc.Authenticate(ctx, token)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}
