package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/freshmanexams/fe_backend/internal/adapters/database/memory"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/core/services"
	"github.com/freshmanexams/fe_backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock EmailSender ---
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendVerificationEmail(ctx context.Context, to, code string) error {
	args := m.Called(ctx, to, code)
	return args.Error(0)
}

func (m *MockEmailSender) SendWelcomeEmail(ctx context.Context, to, name string) error {
	args := m.Called(ctx, to, name)
	return args.Error(0)
}

func (m *MockEmailSender) SendPasswordResetEmail(ctx context.Context, to, resetURL string) error {
	args := m.Called(ctx, to, resetURL)
	return args.Error(0)
}

func (m *MockEmailSender) SendResetSuccessEmail(ctx context.Context, to string) error {
	args := m.Called(ctx, to)
	return args.Error(0)
}

func (m *MockEmailSender) SendContactEmail(ctx context.Context, to string, msg domain.ContactMessage) error {
	args := m.Called(ctx, to, msg)
	return args.Error(0)
}

// acceptAll makes the verification, welcome and reset-confirmation sends
// succeed unless a test registered its own expectation first. Reset links
// are left to each test so the URL can be captured.
func (m *MockEmailSender) acceptAll() {
	m.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("SendResetSuccessEmail", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// testClock is a manually advanced clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		JWTIssuer:           "fe_backend_test",
		SessionTokenTTL:     7 * 24 * time.Hour,
		VerificationCodeTTL: 24 * time.Hour,
		ResetTokenTTL:       time.Hour,
		ClientURL:           "http://client.test",
		GoogleClientID:      "client-id",
	}
}

// testEnv wires every service on a fresh in-memory store.
type testEnv struct {
	repos  portsrepo.RepositoryProvider
	mailer *MockEmailSender
	clock  *testClock
	svc    *portssvc.ServiceContainer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		repos:  memory.NewRepositoryProvider(),
		mailer: new(MockEmailSender),
		clock:  newTestClock(),
	}
	svc, err := services.NewServiceContainer(testConfig(), env.repos, env.mailer, services.WithClock(env.clock.Now))
	require.NoError(t, err)
	env.svc = svc
	return env
}
