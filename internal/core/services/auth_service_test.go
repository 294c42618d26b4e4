package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biovote/registry/internal/core/domain"
)

func TestLoginIssuesVerifiableCredential(t *testing.T) {
	auth := NewAuthService("admin", "admin123", []byte("test-secret"))

	token, err := auth.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, auth.Verify(token))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth := NewAuthService("admin", "admin123", []byte("test-secret"))

	_, err := auth.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = auth.Login(context.Background(), "root", "admin123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	auth := NewAuthService("admin", "admin123", []byte("test-secret"))
	other := NewAuthService("admin", "admin123", []byte("other-secret"))

	token, err := other.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	assert.ErrorIs(t, auth.Verify(token), domain.ErrUnauthorized)
	assert.ErrorIs(t, auth.Verify(""), domain.ErrUnauthorized)
	assert.ErrorIs(t, auth.Verify("not-a-token"), domain.ErrUnauthorized)
}
