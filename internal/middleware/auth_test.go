package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSessionService) AuthenticateVerified(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSessionService) StartSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) EndSession(ctx context.Context, userID string, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

var testCookie = middleware.SessionCookie{Name: "token", SameSite: http.SameSiteStrictMode, MaxAge: time.Hour}

func newGuardedRouter(sessions portssvc.SessionSvcFacade, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{middleware.SessionGuard(sessions, testCookie)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		token, _ := middleware.GetSessionTokenFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userID": user.UserID, "token": token})
	})
	r.GET("/protected", chain...)
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSessionGuard_CookieToken(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Authenticate", mock.Anything, "cookie-token").
		Return(&domain.User{UserID: "u-1", IsVerified: true}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	w := httptest.NewRecorder()
	newGuardedRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "u-1", body["userID"])
	assert.Equal(t, "cookie-token", body["token"])
	sessions.AssertExpectations(t)
}

func TestSessionGuard_BearerFallback(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Authenticate", mock.Anything, "header-token").
		Return(&domain.User{UserID: "u-1"}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer header-token")
	w := httptest.NewRecorder()
	newGuardedRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	sessions.AssertExpectations(t)
}

func TestSessionGuard_MissingToken(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Authenticate", mock.Anything, "").Return(nil, apperrors.ErrMissingToken).Once()

	w := httptest.NewRecorder()
	newGuardedRouter(sessions).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized - no token provided", body["message"])
}

func TestSessionGuard_SupersededClearsCookie(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Authenticate", mock.Anything, "old-token").Return(nil, apperrors.ErrSessionSuperseded).Once()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "old-token"})
	w := httptest.NewRecorder()
	newGuardedRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestSessionGuard_UserNotFound(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Authenticate", mock.Anything, "t").Return(nil, apperrors.ErrUserNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer t")
	w := httptest.NewRecorder()
	newGuardedRouter(sessions).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireVerified(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Authenticate", mock.Anything, "t").Return(&domain.User{UserID: "u-1", IsVerified: false}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer t")
	w := httptest.NewRecorder()
	newGuardedRouter(sessions, middleware.RequireVerified()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Please verify your email first", decodeBody(t, w)["message"])
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		role     domain.Role
		wantCode int
	}{
		{domain.RoleUser, http.StatusForbidden},
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleSuperAdmin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			sessions := new(MockSessionService)
			sessions.On("Authenticate", mock.Anything, "t").
				Return(&domain.User{UserID: "u-1", IsVerified: true, Role: tt.role}, nil).Once()

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer t")
			w := httptest.NewRecorder()
			newGuardedRouter(sessions, middleware.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(middleware.GetLoggerFromCtx(context.Background())))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	const given = "0b6e3f9a-1f7e-4c55-a3a7-1d2f0f0b7c11"
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get("X-Request-ID"))
}
