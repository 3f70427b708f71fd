package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestGenerateJWT_ParseRoundTrip(t *testing.T) {
	now := time.Now()
	token, err := GenerateJWT("user-1", testSecret, time.Hour, "fe-test", now)
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "fe-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateJWT_SameSecondTokensDiffer(t *testing.T) {
	now := time.Now()
	a, err := GenerateJWT("user-1", testSecret, time.Hour, "fe-test", now)
	require.NoError(t, err)
	b, err := GenerateJWT("user-1", testSecret, time.Hour, "fe-test", now)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	_, err := GenerateJWT("user-1", "", time.Hour, "fe-test", time.Now())
	assert.Error(t, err)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("user-1", testSecret, time.Minute, "fe-test", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, testSecret)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", testSecret, time.Hour, "fe-test", time.Now())
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "another-secret")
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestParseAndValidateJWT_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, testSecret)
	assert.Error(t, err)
}
