package sqldb_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/pandaschool/internal/db"
	"github.com/vytor/pandaschool/internal/models"
	"github.com/vytor/pandaschool/internal/repository"
	"github.com/vytor/pandaschool/internal/repository/sqldb"
	"github.com/vytor/pandaschool/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqldb.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func newUser(email string) models.User {
	return models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC),
	}
}

func (s *UserRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()
	user := newUser("Parent@Example.com ")

	s.Require().NoError(s.repo.Create(ctx, user))

	byEmail, err := s.repo.GetByEmail(ctx, "parent@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(byEmail)
	s.Assert().Equal(user.ID, byEmail.ID)
	s.Assert().Equal("parent@example.com", byEmail.Email)
	s.Assert().Equal("hash", byEmail.PasswordHash)
	s.Assert().True(user.CreatedAt.Equal(byEmail.CreatedAt))

	byID, err := s.repo.GetByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(byID)
	s.Assert().Equal("parent@example.com", byID.Email)
}

func (s *UserRepositorySuite) TestGet_NotFound() {
	ctx := context.Background()

	u, err := s.repo.GetByEmail(ctx, "nobody@example.com")
	s.Assert().NoError(err)
	s.Assert().Nil(u)

	u, err = s.repo.GetByID(ctx, uuid.NewString())
	s.Assert().NoError(err)
	s.Assert().Nil(u)
}

func (s *UserRepositorySuite) TestCreate_DuplicateEmail() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, newUser("kid@example.com")))

	err := s.repo.Create(ctx, newUser("KID@example.com"))
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
