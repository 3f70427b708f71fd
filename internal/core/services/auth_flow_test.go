package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/freshmanexams/fe_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthFlowTestSuite struct {
	suite.Suite
	env *testEnv
	ctx context.Context
}

func (s *AuthFlowTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.ctx = context.Background()
}

func (s *AuthFlowTestSuite) register(username, email, password string) *domain.User {
	user, _, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	s.Require().NoError(err)
	return user
}

// storedCode reads the verification code straight from the store.
func (s *AuthFlowTestSuite) storedCode(username string) string {
	u, err := s.env.repos.UserRepo.FindUserByUsername(s.ctx, username)
	s.Require().NoError(err)
	s.Require().NotNil(u.VerificationCode)
	return *u.VerificationCode
}

func (s *AuthFlowTestSuite) registerVerified(username, email, password string) (*domain.User, *domain.Session) {
	s.register(username, email, password)
	user, session, err := s.env.svc.Verification.Verify(s.ctx, s.storedCode(username))
	s.Require().NoError(err)
	return user, session
}

// --- Register / Verify ---

func (s *AuthFlowTestSuite) TestAliceScenario() {
	s.env.mailer.acceptAll()

	user, emailSent, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "pw123",
	})
	s.Require().NoError(err)
	s.True(emailSent)
	s.False(user.IsVerified)
	s.Equal(domain.RoleUser, user.Role)

	_, _, err = s.env.svc.User.Login(s.ctx, "alice", "pw123")
	s.ErrorIs(err, apperrors.ErrNotVerified)

	code := s.storedCode("alice")
	s.env.mailer.AssertCalled(s.T(), "SendVerificationEmail", mock.Anything, "alice@x.com", code)

	verified, session, err := s.env.svc.Verification.Verify(s.ctx, code)
	s.Require().NoError(err)
	s.True(verified.IsVerified)
	s.Require().NotNil(session)
	s.NotEmpty(session.Token)

	authed, err := s.env.svc.Session.AuthenticateVerified(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(user.UserID, authed.UserID)
	s.env.mailer.AssertCalled(s.T(), "SendWelcomeEmail", mock.Anything, "alice@x.com", "alice")
}

func (s *AuthFlowTestSuite) TestVerify_CodeIsSingleUse() {
	s.env.mailer.acceptAll()
	s.register("alice", "alice@x.com", "pw123")
	code := s.storedCode("alice")

	_, _, err := s.env.svc.Verification.Verify(s.ctx, code)
	s.Require().NoError(err)

	_, _, err = s.env.svc.Verification.Verify(s.ctx, code)
	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredCode)
}

func (s *AuthFlowTestSuite) TestVerify_ExpiredCode() {
	s.env.mailer.acceptAll()
	s.register("alice", "alice@x.com", "pw123")
	code := s.storedCode("alice")

	s.env.clock.Advance(25 * time.Hour)

	_, _, err := s.env.svc.Verification.Verify(s.ctx, code)
	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredCode)
}

func (s *AuthFlowTestSuite) TestRegister_EmailFailureStillCreatesUser() {
	s.env.mailer.On("SendVerificationEmail", mock.Anything, "alice@x.com", mock.Anything).
		Return(errors.New("smtp down")).Once()

	user, emailSent, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "pw123",
	})
	s.Require().NoError(err)
	s.False(emailSent)

	stored, err := s.env.repos.UserRepo.FindUserByID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.NotNil(stored.VerificationCode)
}

func (s *AuthFlowTestSuite) TestRegister_Duplicates() {
	s.env.mailer.acceptAll()
	s.register("alice", "alice@x.com", "pw123")

	_, _, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{Username: "alice", Email: "other@x.com", Password: "pw"})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, _, err = s.env.svc.User.Register(s.ctx, dto.RegisterRequest{Username: "bob", Email: "ALICE@x.com", Password: "pw"})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AuthFlowTestSuite) TestRegister_Validation() {
	_, _, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{Username: "alice", Password: "pw"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = s.env.svc.User.Register(s.ctx, dto.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw", Role: "root"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AuthFlowTestSuite) TestRegister_PrivilegedRolesSkipVerification() {
	admin, emailSent, err := s.env.svc.User.Register(s.ctx, dto.RegisterRequest{
		Username: "root", Password: "pw", Role: string(domain.RoleAdmin),
	})
	s.Require().NoError(err)
	s.False(emailSent)
	s.True(admin.IsVerified)
	s.Nil(admin.VerificationCode)
	s.env.mailer.AssertNotCalled(s.T(), "SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything)

	_, session, err := s.env.svc.User.Login(s.ctx, "root", "pw")
	s.Require().NoError(err)
	s.NotEmpty(session.Token)

	_, _, err = s.env.svc.User.Register(s.ctx, dto.RegisterRequest{
		Username: "boss", Password: "pw", Role: string(domain.RoleSuperAdmin),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

// --- Login / Sessions ---

func (s *AuthFlowTestSuite) TestLogin_SupersedesPreviousSession() {
	s.env.mailer.acceptAll()
	_, first := s.registerVerified("alice", "alice@x.com", "pw123")

	s.env.clock.Advance(time.Second)
	_, second, err := s.env.svc.User.Login(s.ctx, "alice@x.com", "pw123")
	s.Require().NoError(err)
	s.NotEqual(first.Token, second.Token)

	_, err = s.env.svc.Session.Authenticate(s.ctx, first.Token)
	s.ErrorIs(err, apperrors.ErrSessionSuperseded)

	_, err = s.env.svc.Session.Authenticate(s.ctx, second.Token)
	s.NoError(err)
}

func (s *AuthFlowTestSuite) TestLogin_SameSecondStillSupersedes() {
	s.env.mailer.acceptAll()
	s.registerVerified("alice", "alice@x.com", "pw123")

	_, first, err := s.env.svc.User.Login(s.ctx, "alice", "pw123")
	s.Require().NoError(err)
	_, second, err := s.env.svc.User.Login(s.ctx, "alice", "pw123")
	s.Require().NoError(err)

	_, err = s.env.svc.Session.Authenticate(s.ctx, first.Token)
	s.ErrorIs(err, apperrors.ErrSessionSuperseded)
	_, err = s.env.svc.Session.Authenticate(s.ctx, second.Token)
	s.NoError(err)
}

func (s *AuthFlowTestSuite) TestLogin_BadCredentials() {
	s.env.mailer.acceptAll()
	s.registerVerified("alice", "alice@x.com", "pw123")

	_, _, err := s.env.svc.User.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, _, err = s.env.svc.User.Login(s.ctx, "nobody", "pw123")
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, _, err = s.env.svc.User.Login(s.ctx, "  ALICE@X.COM ", "pw123")
	s.NoError(err)
}

func (s *AuthFlowTestSuite) TestLogin_UnverifiedWithWrongPasswordIsUnauthorized() {
	s.env.mailer.acceptAll()
	s.register("alice", "alice@x.com", "pw123")

	_, _, err := s.env.svc.User.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *AuthFlowTestSuite) TestAuthenticate_Failures() {
	_, err := s.env.svc.Session.Authenticate(s.ctx, "")
	s.ErrorIs(err, apperrors.ErrMissingToken)

	_, err = s.env.svc.Session.Authenticate(s.ctx, "not-a-jwt")
	s.ErrorIs(err, apperrors.ErrInvalidToken)

	token, _, err := s.env.svc.Token.IssueSessionToken(s.ctx, "ghost-user")
	s.Require().NoError(err)
	_, err = s.env.svc.Session.Authenticate(s.ctx, token)
	s.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (s *AuthFlowTestSuite) TestAuthenticate_ExpiredToken() {
	s.env.mailer.acceptAll()
	_, session := s.registerVerified("alice", "alice@x.com", "pw123")

	s.env.clock.Advance(8 * 24 * time.Hour)

	_, err := s.env.svc.Session.Authenticate(s.ctx, session.Token)
	s.ErrorIs(err, apperrors.ErrInvalidToken)
}

func (s *AuthFlowTestSuite) TestAuthenticateVerified_RejectsUnverified() {
	s.env.mailer.acceptAll()
	user := s.register("alice", "alice@x.com", "pw123")

	session, err := s.env.svc.Session.StartSession(s.ctx, user)
	s.Require().NoError(err)

	_, err = s.env.svc.Session.Authenticate(s.ctx, session.Token)
	s.NoError(err)
	_, err = s.env.svc.Session.AuthenticateVerified(s.ctx, session.Token)
	s.ErrorIs(err, apperrors.ErrNotVerified)
}

func (s *AuthFlowTestSuite) TestEndSession_RevokesToken() {
	s.env.mailer.acceptAll()
	user, session := s.registerVerified("alice", "alice@x.com", "pw123")

	s.Require().NoError(s.env.svc.Session.EndSession(s.ctx, user.UserID, session.Token))

	_, err := s.env.svc.Session.Authenticate(s.ctx, session.Token)
	s.ErrorIs(err, apperrors.ErrSessionSuperseded)
}

func (s *AuthFlowTestSuite) TestEndSession_StaleTokenKeepsNewerSession() {
	s.env.mailer.acceptAll()
	user, old := s.registerVerified("alice", "alice@x.com", "pw123")
	_, current, err := s.env.svc.User.Login(s.ctx, "alice", "pw123")
	s.Require().NoError(err)

	s.Require().NoError(s.env.svc.Session.EndSession(s.ctx, user.UserID, old.Token))

	_, err = s.env.svc.Session.Authenticate(s.ctx, current.Token)
	s.NoError(err)
}

// --- Resend ---

func (s *AuthFlowTestSuite) TestResend_ReusesUnexpiredCode() {
	s.env.mailer.acceptAll()
	user := s.register("alice", "alice@x.com", "pw123")
	code := s.storedCode("alice")

	s.env.clock.Advance(time.Hour)
	sent, err := s.env.svc.Verification.ResendCode(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.True(sent)
	s.Equal(code, s.storedCode("alice"))
	s.env.mailer.AssertNumberOfCalls(s.T(), "SendVerificationEmail", 2)
}

func (s *AuthFlowTestSuite) TestResend_RotatesExpiredCode() {
	s.env.mailer.acceptAll()
	user := s.register("alice", "alice@x.com", "pw123")
	code := s.storedCode("alice")

	s.env.clock.Advance(25 * time.Hour)
	sent, err := s.env.svc.Verification.ResendCode(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.True(sent)

	fresh := s.storedCode("alice")
	s.NotEqual(code, fresh)
	s.env.mailer.AssertCalled(s.T(), "SendVerificationEmail", mock.Anything, "alice@x.com", fresh)

	_, _, err = s.env.svc.Verification.Verify(s.ctx, fresh)
	s.NoError(err)
}

func (s *AuthFlowTestSuite) TestResend_AlreadyVerified() {
	s.env.mailer.acceptAll()
	user, _ := s.registerVerified("alice", "alice@x.com", "pw123")

	_, err := s.env.svc.Verification.ResendCode(s.ctx, user.UserID)
	s.ErrorIs(err, apperrors.ErrAlreadyVerified)
}

func (s *AuthFlowTestSuite) TestResend_DeliveryFailure() {
	s.env.mailer.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))
	user := s.register("alice", "alice@x.com", "pw123")

	sent, err := s.env.svc.Verification.ResendCode(s.ctx, user.UserID)
	s.NoError(err)
	s.False(sent)
}

// --- Password reset ---

func (s *AuthFlowTestSuite) TestGhostScenario() {
	err := s.env.svc.PasswordReset.RequestReset(s.ctx, "ghost@x.com")
	s.NoError(err)

	total, _, err := s.env.repos.UserRepo.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Zero(total)
	s.env.mailer.AssertNotCalled(s.T(), "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthFlowTestSuite) TestRequestReset_DeliveryFailureIsSilent() {
	s.env.mailer.On("SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))
	s.env.mailer.acceptAll()
	s.register("alice", "alice@x.com", "pw123")

	s.NoError(s.env.svc.PasswordReset.RequestReset(s.ctx, "alice@x.com"))
}

func (s *AuthFlowTestSuite) requestResetToken(email string) string {
	var resetURL string
	s.env.mailer.On("SendPasswordResetEmail", mock.Anything, email, mock.Anything).
		Run(func(args mock.Arguments) { resetURL = args.String(2) }).
		Return(nil).Once()

	s.Require().NoError(s.env.svc.PasswordReset.RequestReset(s.ctx, email))

	prefix := "http://client.test/user/Reset-Password/"
	s.Require().True(strings.HasPrefix(resetURL, prefix), resetURL)
	token := strings.TrimPrefix(resetURL, prefix)
	s.Len(token, 40)
	return token
}

func (s *AuthFlowTestSuite) TestResetPassword_Flow() {
	s.env.mailer.acceptAll()
	s.registerVerified("alice", "alice@x.com", "pw123")

	token := s.requestResetToken("alice@x.com")

	stored, err := s.env.repos.UserRepo.FindUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(stored.ResetPasswordToken)
	s.NotEqual(token, *stored.ResetPasswordToken)

	s.Require().NoError(s.env.svc.PasswordReset.ResetPassword(s.ctx, token, "newpw"))
	s.env.mailer.AssertCalled(s.T(), "SendResetSuccessEmail", mock.Anything, "alice@x.com")

	_, _, err = s.env.svc.User.Login(s.ctx, "alice", "pw123")
	s.ErrorIs(err, apperrors.ErrInvalidCredentials)
	_, _, err = s.env.svc.User.Login(s.ctx, "alice", "newpw")
	s.NoError(err)

	err = s.env.svc.PasswordReset.ResetPassword(s.ctx, token, "again")
	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredCode)
}

func (s *AuthFlowTestSuite) TestResetPassword_ExpiredToken() {
	s.env.mailer.acceptAll()
	s.registerVerified("alice", "alice@x.com", "pw123")
	token := s.requestResetToken("alice@x.com")

	s.env.clock.Advance(61 * time.Minute)

	err := s.env.svc.PasswordReset.ResetPassword(s.ctx, token, "newpw")
	s.ErrorIs(err, apperrors.ErrInvalidOrExpiredCode)
}

func (s *AuthFlowTestSuite) TestResetPassword_MissingPassword() {
	err := s.env.svc.PasswordReset.ResetPassword(s.ctx, "whatever", "")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func TestAuthFlow(t *testing.T) {
	suite.Run(t, new(AuthFlowTestSuite))
}
