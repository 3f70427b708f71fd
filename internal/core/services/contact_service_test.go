package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/freshmanexams/fe_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func contactMessage() domain.ContactMessage {
	return domain.ContactMessage{
		Email:   " visitor@x.com ",
		Name:    "Visitor",
		Subject: "Question",
		Message: "When is the next mock exam?",
	}
}

func TestContactRelay_DefaultsToSubmitter(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.On("SendContactEmail", mock.Anything, "visitor@x.com", mock.MatchedBy(func(m domain.ContactMessage) bool {
		return m.Email == "visitor@x.com" && m.Subject == "Question"
	})).Return(nil).Once()

	sent, err := env.svc.Contact.Relay(context.Background(), contactMessage())
	require.NoError(t, err)
	assert.Equal(t, "visitor@x.com", sent.Email)
	env.mailer.AssertExpectations(t)
}

func TestContactRelay_UsesConfiguredInbox(t *testing.T) {
	mailer := new(MockEmailSender)
	mailer.On("SendContactEmail", mock.Anything, "support@fe.example", mock.Anything).Return(nil).Once()

	svc := services.NewContactService(mailer, "support@fe.example")
	_, err := svc.Relay(context.Background(), contactMessage())
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestContactRelay_RequiresEveryField(t *testing.T) {
	env := newTestEnv(t)

	for _, blank := range []func(*domain.ContactMessage){
		func(m *domain.ContactMessage) { m.Email = "" },
		func(m *domain.ContactMessage) { m.Name = "  " },
		func(m *domain.ContactMessage) { m.Subject = "" },
		func(m *domain.ContactMessage) { m.Message = "\n" },
	} {
		msg := contactMessage()
		blank(&msg)
		_, err := env.svc.Contact.Relay(context.Background(), msg)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		code, text := apperrors.HTTPStatus(err)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "All fields are required", text)
	}
	env.mailer.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactRelay_DeliveryFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.On("SendContactEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	_, err := env.svc.Contact.Relay(context.Background(), contactMessage())
	require.Error(t, err)
	code, text := apperrors.HTTPStatus(err)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal Server Error", text)
}
