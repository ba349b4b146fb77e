package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"diaspora-portal-service/internal/config"
	"diaspora-portal-service/internal/domain/auth"
	xerrors "diaspora-portal-service/internal/pkg/errors"
	"diaspora-portal-service/internal/pkg/token"
	"diaspora-portal-service/internal/repository/memory"
)

func newTestService(t *testing.T) (*AuthService, *token.Codec) {
	t.Helper()

	codec, err := token.NewCodec(config.AuthConfig{
		Environment: config.EnvDevelopment,
		Secret:      strings.Repeat("a", 32),
		Issuer:      "diaspora-portal",
		TokenTTL:    24 * time.Hour,
		ClockSkew:   15 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("Portal#Demo1"), bcrypt.MinCost)
	require.NoError(t, err)

	store := memory.NewCredentialStore([]*auth.Credential{
		{ID: "usr_01", Email: "amina.diallo@example.com", FullName: "Amina Diallo", PasswordHash: string(hash), Status: "active"},
		{ID: "usr_02", Email: "kwame.mensah@example.com", FullName: "Kwame Mensah", PasswordHash: string(hash), Status: "disabled"},
	})

	// Registry and rate limiter are Redis-backed and optional; the login
	// path must work without them.
	return NewAuthService(store, codec, nil, nil, zap.NewNop()), codec
}

func TestLoginSuccess(t *testing.T) {
	svc, codec := newTestService(t)

	identity, signed, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "amina.diallo@example.com",
		Password: "Portal#Demo1",
	})
	require.NoError(t, err)
	assert.Equal(t, "usr_01", identity.ID)
	assert.Equal(t, "Amina Diallo", identity.Name)

	// The issued token resolves back to the same identity.
	verified, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, *identity, *verified)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)

	identity, _, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "Amina.Diallo@Example.com",
		Password: "Portal#Demo1",
	})
	require.NoError(t, err)
	assert.Equal(t, "usr_01", identity.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "amina.diallo@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
}

// Unknown email and wrong password are indistinguishable to the caller.
func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Portal#Demo1",
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "kwame.mensah@example.com",
		Password: "Portal#Demo1",
	})
	assert.ErrorIs(t, err, xerrors.ErrAccountDisabled)
}

func TestLoginTouchesLastLogin(t *testing.T) {
	svc, _ := newTestService(t)

	before := time.Now()
	_, _, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "amina.diallo@example.com",
		Password: "Portal#Demo1",
	})
	require.NoError(t, err)

	cred, err := svc.creds.FindByEmail(context.Background(), "amina.diallo@example.com")
	require.NoError(t, err)
	require.True(t, cred.LastLogin.Valid)
	assert.False(t, cred.LastLogin.Time.Before(before))
}
