package services_test

import (
	"context"
	"testing"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/freshmanexams/fe_backend/internal/dto"
	"github.com/stretchr/testify/suite"
)

type OAuthBridgeTestSuite struct {
	suite.Suite
	env *testEnv
	ctx context.Context
}

func (s *OAuthBridgeTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.env.mailer.acceptAll()
	s.ctx = context.Background()
}

func profile(id, email, name string) *domain.GoogleUserInfo {
	return &domain.GoogleUserInfo{ID: id, Email: email, VerifiedEmail: true, Name: name}
}

func (s *OAuthBridgeTestSuite) TestSignIn_NewUser() {
	user, session, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-1", "John.Doe@Gmail.com", "John Doe"))
	s.Require().NoError(err)

	s.Equal("johndoe", user.Username)
	s.Equal("john.doe@gmail.com", user.Email)
	s.True(user.IsVerified)
	s.False(user.HasPassword())
	s.Equal(domain.ProviderGoogle, user.AuthProvider)
	s.Equal(domain.RoleUser, user.Role)
	s.Require().NotNil(user.GoogleID)
	s.Equal("g-1", *user.GoogleID)

	authed, err := s.env.svc.Session.AuthenticateVerified(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(user.UserID, authed.UserID)

	record, err := s.env.repos.ProgressRepo.FindProgressByUserName(s.ctx, "johndoe")
	s.Require().NoError(err)
	s.Empty(record.Entries)
}

func (s *OAuthBridgeTestSuite) TestSignIn_CollidingUsernamesGetSuffixes() {
	first, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-1", "john.doe@gmail.com", ""))
	s.Require().NoError(err)
	second, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-2", "john.doe@yahoo.com", ""))
	s.Require().NoError(err)
	third, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-3", "johndoe@example.com", ""))
	s.Require().NoError(err)

	s.Equal("johndoe", first.Username)
	s.Equal("johndoe1", second.Username)
	s.Equal("johndoe2", third.Username)
}

func (s *OAuthBridgeTestSuite) TestSignIn_SuffixAvoidsLocalUsernames() {
	_, _, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	s.Require().NoError(err)

	user, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-1", "alice@gmail.com", "Alice"))
	s.Require().NoError(err)
	s.Equal("alice1", user.Username)
}

func (s *OAuthBridgeTestSuite) TestSignIn_LinksExistingAccount() {
	registered, _, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	s.Require().NoError(err)
	s.False(registered.IsVerified)

	user, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-1", "ALICE@x.com", "Alice"))
	s.Require().NoError(err)

	s.Equal(registered.UserID, user.UserID)
	s.Equal("alice", user.Username)
	s.True(user.IsVerified)
	s.Nil(user.VerificationCode)
	s.True(user.HasPassword())
	s.Equal(domain.ProviderGoogle, user.AuthProvider)
	s.Require().NotNil(user.GoogleID)
	s.Equal("g-1", *user.GoogleID)

	total, _, err := s.env.repos.UserRepo.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, total)
}

func (s *OAuthBridgeTestSuite) TestSignIn_RoleResetOnlyWhenLinking() {
	admin, _, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{
		Username: "boss", Email: "boss@x.com", Password: "pw", Role: string(domain.RoleSuperAdmin),
	})
	s.Require().NoError(err)

	linked, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-1", "boss@x.com", ""))
	s.Require().NoError(err)
	s.Equal(admin.UserID, linked.UserID)
	s.Equal(domain.RoleUser, linked.Role)

	// An operator re-elevates the linked account; later Google sign-ins keep the role.
	linked.Role = domain.RoleAdmin
	s.Require().NoError(s.env.repos.UserRepo.UpdateUser(s.ctx, *linked))

	again, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-1", "boss@x.com", ""))
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, again.Role)
}

func (s *OAuthBridgeTestSuite) TestSignIn_SupersedesPasswordSession() {
	_, _, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	s.Require().NoError(err)
	_, first, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-1", "alice@x.com", ""))
	s.Require().NoError(err)

	_, second, err := s.env.svc.User.Login(s.ctx, "alice", "pw123")
	s.Require().NoError(err)

	_, err = s.env.svc.Session.Authenticate(s.ctx, first.Token)
	s.ErrorIs(err, apperrors.ErrSessionSuperseded)
	_, err = s.env.svc.Session.Authenticate(s.ctx, second.Token)
	s.NoError(err)
}

func (s *OAuthBridgeTestSuite) TestSignIn_RejectsMissingOrUnverifiedEmail() {
	_, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-1", "", "No Mail"))
	s.ErrorIs(err, apperrors.ErrNoEmailFromProvider)

	unverified := profile("g-2", "someone@x.com", "")
	unverified.VerifiedEmail = false
	_, _, err = s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, unverified)
	s.ErrorIs(err, apperrors.ErrNoEmailFromProvider)

	_, _, err = s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, nil)
	s.ErrorIs(err, apperrors.ErrNoEmailFromProvider)
}

func (s *OAuthBridgeTestSuite) TestSignIn_StoresPictureOnCreate() {
	p := profile("g-1", "pic@x.com", "")
	p.Picture = "https://lh3.example/pic.jpg"

	user, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, p)
	s.Require().NoError(err)
	s.Require().NotNil(user.Photo)
	s.Equal("https://lh3.example/pic.jpg", *user.Photo)

	stored, err := s.env.repos.UserRepo.FindUserByID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.Photo)
	s.Equal(*user.Photo, *stored.Photo)
	s.Equal(*user.Photo, dto.ToUserResponse(stored).Photo)
}

func (s *OAuthBridgeTestSuite) TestSignIn_PictureOnlySetWhenLinking() {
	_, _, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "pw123"})
	s.Require().NoError(err)

	first := profile("g-1", "alice@x.com", "")
	first.Picture = "https://lh3.example/one.jpg"
	linked, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, first)
	s.Require().NoError(err)
	s.Require().NotNil(linked.Photo)
	s.Equal("https://lh3.example/one.jpg", *linked.Photo)

	// Already linked: a new Google picture does not replace the stored one.
	second := profile("g-1", "alice@x.com", "")
	second.Picture = "https://lh3.example/two.jpg"
	again, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, second)
	s.Require().NoError(err)
	s.Require().NotNil(again.Photo)
	s.Equal("https://lh3.example/one.jpg", *again.Photo)
}

func (s *OAuthBridgeTestSuite) TestSignIn_NoPictureLeavesPhotoEmpty() {
	user, _, err := s.env.svc.OAuthBridge.SignInWithGoogle(s.ctx, profile("g-1", "plain@x.com", ""))
	s.Require().NoError(err)
	s.Nil(user.Photo)
	s.Empty(dto.ToUserResponse(user).Photo)
}

func (s *OAuthBridgeTestSuite) TestGoogleLoginURL_CarriesState() {
	state, err := s.env.svc.GoogleOAuthHandler.GenerateStateString(s.ctx)
	s.Require().NoError(err)
	s.Len(state, 32)

	url := s.env.svc.GoogleOAuthHandler.GetGoogleLoginURL(s.ctx, state)
	s.Contains(url, "accounts.google.com")
	s.Contains(url, "state="+state)
	s.Contains(url, "client_id=client-id")
}

func TestOAuthBridge(t *testing.T) {
	suite.Run(t, new(OAuthBridgeTestSuite))
}
