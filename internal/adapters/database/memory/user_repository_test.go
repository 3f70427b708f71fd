package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/stretchr/testify/suite"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	repo *UserRepository
	ctx  context.Context
	now  time.Time
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.repo = NewUserRepository()
	s.ctx = context.Background()
	s.now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *UserRepositoryTestSuite) newUser(id, username, email string) domain.User {
	hash := "hash"
	return domain.User{
		UserID:       id,
		Username:     username,
		Email:        email,
		AuthProvider: domain.ProviderLocal,
		PasswordHash: &hash,
		Role:         domain.RoleUser,
		CreatedAt:    s.now,
		UpdatedAt:    s.now,
	}
}

func (s *UserRepositoryTestSuite) TestSaveUser_UniqueFields() {
	s.Require().NoError(s.repo.SaveUser(s.ctx, s.newUser("1", "alice", "alice@x.com")))

	err := s.repo.SaveUser(s.ctx, s.newUser("2", "alice", "other@x.com"))
	s.ErrorIs(err, apperrors.ErrDuplicate)

	err = s.repo.SaveUser(s.ctx, s.newUser("3", "bob", "alice@x.com"))
	s.ErrorIs(err, apperrors.ErrDuplicate)

	// Admins without email do not collide on the empty value.
	s.NoError(s.repo.SaveUser(s.ctx, s.newUser("4", "root1", "")))
	s.NoError(s.repo.SaveUser(s.ctx, s.newUser("5", "root2", "")))
}

func (s *UserRepositoryTestSuite) TestFindUserByIdentifier() {
	s.Require().NoError(s.repo.SaveUser(s.ctx, s.newUser("1", "alice", "alice@x.com")))

	byName, err := s.repo.FindUserByIdentifier(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("1", byName.UserID)

	byEmail, err := s.repo.FindUserByIdentifier(s.ctx, "alice@x.com")
	s.Require().NoError(err)
	s.Equal("1", byEmail.UserID)

	_, err = s.repo.FindUserByIdentifier(s.ctx, "ghost")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserRepositoryTestSuite) TestOneTimeCodesRespectExpiry() {
	u := s.newUser("1", "alice", "alice@x.com")
	u.SetVerificationCode("123456", s.now.Add(time.Hour))
	u.SetResetToken("reset-hash", s.now.Add(time.Hour))
	s.Require().NoError(s.repo.SaveUser(s.ctx, u))

	found, err := s.repo.FindUserByVerificationCode(s.ctx, "123456", s.now)
	s.Require().NoError(err)
	s.Equal("1", found.UserID)

	_, err = s.repo.FindUserByVerificationCode(s.ctx, "123456", s.now.Add(2*time.Hour))
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.repo.FindUserByResetToken(s.ctx, "reset-hash", s.now)
	s.NoError(err)
	_, err = s.repo.FindUserByResetToken(s.ctx, "reset-hash", s.now.Add(time.Hour))
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserRepositoryTestSuite) TestSessionTokenCompareAndClear() {
	s.Require().NoError(s.repo.SaveUser(s.ctx, s.newUser("1", "alice", "alice@x.com")))
	s.Require().NoError(s.repo.UpdateSessionToken(s.ctx, "1", "t2", s.now))

	s.NoError(s.repo.ClearSessionToken(s.ctx, "1", "t1"))
	u, _ := s.repo.FindUserByID(s.ctx, "1")
	s.Equal("t2", u.SessionToken, "a stale token must not clear a newer session")
	s.Equal(s.now, *u.LastLogin)

	s.NoError(s.repo.ClearSessionToken(s.ctx, "1", "t2"))
	u, _ = s.repo.FindUserByID(s.ctx, "1")
	s.Empty(u.SessionToken)
}

func (s *UserRepositoryTestSuite) TestListingAndCounting() {
	for i, name := range []string{"a", "b", "c"} {
		u := s.newUser(name, name, name+"@x.com")
		u.CreatedAt = s.now.Add(time.Duration(i) * time.Minute)
		u.IsVerified = i%2 == 0
		s.Require().NoError(s.repo.SaveUser(s.ctx, u))
	}
	admin := s.newUser("d", "root", "")
	admin.Role = domain.RoleAdmin
	s.Require().NoError(s.repo.SaveUser(s.ctx, admin))

	page, err := s.repo.FindUsers(s.ctx, 2, 1)
	s.Require().NoError(err)
	s.Len(page, 2)
	s.Equal("b", page[0].UserID)

	admins, err := s.repo.FindUsersByRole(s.ctx, domain.RoleAdmin)
	s.Require().NoError(err)
	s.Len(admins, 1)

	total, verified, err := s.repo.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(4, total)
	s.Equal(2, verified)
}

func (s *UserRepositoryTestSuite) TestDeleteUser() {
	s.Require().NoError(s.repo.SaveUser(s.ctx, s.newUser("1", "alice", "alice@x.com")))
	s.NoError(s.repo.DeleteUser(s.ctx, "1"))
	s.ErrorIs(s.repo.DeleteUser(s.ctx, "1"), apperrors.ErrNotFound)
	exists, err := s.repo.UsernameExists(s.ctx, "alice")
	s.NoError(err)
	s.False(exists)
}

func (s *UserRepositoryTestSuite) TestConcurrentSessionUpdates() {
	s.Require().NoError(s.repo.SaveUser(s.ctx, s.newUser("1", "alice", "alice@x.com")))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.repo.UpdateSessionToken(s.ctx, "1", "tok", s.now)
			_, _ = s.repo.FindUserByID(s.ctx, "1")
		}()
	}
	wg.Wait()

	u, err := s.repo.FindUserByID(s.ctx, "1")
	s.Require().NoError(err)
	s.Equal("tok", u.SessionToken)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
