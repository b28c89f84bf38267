package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pandaschool/internal/api"
	"github.com/vytor/pandaschool/internal/auth"
	"github.com/vytor/pandaschool/internal/client"
	"github.com/vytor/pandaschool/internal/errors"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/progress"
	"github.com/vytor/pandaschool/internal/repository/sqldb"
	"github.com/vytor/pandaschool/internal/services"
	"github.com/vytor/pandaschool/internal/testutil"
)

func newBackend(t *testing.T) *httptest.Server {
	database := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, database) })

	users := sqldb.NewUserRepository(database)
	kv := sqldb.NewKVRepository(database)
	server := &api.Server{
		DB:           database,
		AuthService:  services.NewAuthService(users, kv, auth.NewTokenIssuer("client-test-secret-01", time.Hour)),
		StoreService: services.NewStoreService(kv),
		Validator:    api.NewValidator(),
	}
	srv := httptest.NewServer(server.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_AgainstBackend(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL+"/", 5*time.Second)
	ctx := context.Background()

	userID, err := c.Signup(ctx, "mom@example.com", "secret1", "Mom")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	cred, err := c.Login(ctx, "mom@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, userID, cred.UserID)

	require.NoError(t, c.SaveChild(ctx, cred.AccessToken, models.ChildProfile{ChildName: "Lily", ChildAge: 6, Avatar: 3}))

	p, err := progress.Update(models.NewProgress(), models.LessonResult{Subject: models.Shapes, ScorePercent: 90, CorrectAnswers: 9, WrongAnswers: 1}, time.Now())
	require.NoError(t, err)
	require.NoError(t, c.SaveProgress(ctx, cred.AccessToken, models.ProgressRecord{Progress: p}))

	data, err := c.UserData(ctx, cred.AccessToken)
	require.NoError(t, err)
	require.NotNil(t, data.Profile)
	require.NotNil(t, data.Child)
	require.NotNil(t, data.Progress)
	assert.Equal(t, "Lily", data.Child.ChildName)
	assert.Equal(t, p, data.Progress.Progress)

	summary, err := c.Summary(ctx, cred.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.LessonsCompleted)
	assert.Equal(t, models.Medium, summary.Subjects[0].CurrentDifficulty)
}

func TestClient_RemoteErrors(t *testing.T) {
	srv := newBackend(t)
	c := client.New(srv.URL, 5*time.Second)
	ctx := context.Background()

	_, err := c.Signup(ctx, "dad@example.com", "secret1", "Dad")
	require.NoError(t, err)

	_, err = c.Signup(ctx, "dad@example.com", "secret1", "Dad")
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeEmailExists, appErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)

	_, err = c.Login(ctx, "dad@example.com", "nope-nope")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeInvalidCredentials, appErr.Code)
	assert.False(t, errors.Is(err, errors.ErrSessionInvalid), "login failures are not session failures")

	err = c.SaveChild(ctx, "", models.ChildProfile{ChildName: "Tom", ChildAge: 3})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)

	_, err = c.UserData(ctx, "stale-token")
	assert.True(t, errors.Is(err, errors.ErrSessionInvalid))
}

func TestClient_ServerFailureIsPersistenceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.New(srv.URL, 5*time.Second)
	err := c.SaveProgress(context.Background(), "token", models.ProgressRecord{Progress: models.NewProgress()})
	assert.True(t, errors.Is(err, errors.ErrPersistenceUnavailable))
}

func TestClient_UnreachableIsPersistenceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := client.New(url, time.Second)
	_, err := c.UserData(context.Background(), "token")
	assert.True(t, errors.Is(err, errors.ErrPersistenceUnavailable))
}
