package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"diaspora-portal-service/internal/config"
	"diaspora-portal-service/internal/domain/auth"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		Environment: config.EnvDevelopment,
		Secret:      strings.Repeat("a", 32),
		Issuer:      "diaspora-portal",
		TokenTTL:    24 * time.Hour,
		ClockSkew:   15 * time.Second,
	}
}

func testIdentity() auth.UserIdentity {
	return auth.UserIdentity{ID: "usr_01", Email: "amina.diallo@example.com", Name: "Amina Diallo"}
}

func TestCodecRoundtrip(t *testing.T) {
	codec, err := NewCodec(testConfig(), zap.NewNop())
	require.NoError(t, err)

	signed, jti, err := codec.Issue(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, jti)

	identity, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "usr_01", identity.ID)
	assert.Equal(t, "amina.diallo@example.com", identity.Email)
	assert.Equal(t, "Amina Diallo", identity.Name)

	claims, err := codec.VerifyClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "usr_01", claims.Subject)
}

func TestCodecUniqueJTI(t *testing.T) {
	codec, err := NewCodec(testConfig(), zap.NewNop())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		_, jti, err := codec.Issue(testIdentity())
		require.NoError(t, err)
		require.False(t, seen[jti], "jti %q issued twice", jti)
		seen[jti] = true
	}
}

func TestCodecExpiredToken(t *testing.T) {
	codec, err := NewCodec(testConfig(), zap.NewNop())
	require.NoError(t, err)

	// Issue a token whose whole lifetime is already in the past.
	codec.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	signed, _, err := codec.Issue(testIdentity())
	require.NoError(t, err)

	codec.now = time.Now
	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestCodecClockSkewLeeway(t *testing.T) {
	codec, err := NewCodec(testConfig(), zap.NewNop())
	require.NoError(t, err)

	// Expired 10 seconds ago: inside the 15s leeway, still accepted.
	codec.now = func() time.Time { return time.Now().Add(-24*time.Hour - 10*time.Second) }
	signed, _, err := codec.Issue(testIdentity())
	require.NoError(t, err)

	codec.now = time.Now
	_, err = codec.Verify(signed)
	assert.NoError(t, err)
}

func TestCodecWrongSecret(t *testing.T) {
	issuer, err := NewCodec(testConfig(), zap.NewNop())
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.Secret = strings.Repeat("b", 32)
	verifier, err := NewCodec(otherCfg, zap.NewNop())
	require.NoError(t, err)

	signed, _, err := issuer.Issue(testIdentity())
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestCodecMalformedToken(t *testing.T) {
	codec, err := NewCodec(testConfig(), zap.NewNop())
	require.NoError(t, err)

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := codec.Verify(tok)
		assert.ErrorIs(t, err, ErrMalformed, "token %q", tok)
	}
}

func TestCodecTamperedPayload(t *testing.T) {
	codec, err := NewCodec(testConfig(), zap.NewNop())
	require.NoError(t, err)

	signed, _, err := codec.Issue(testIdentity())
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	parts[1] = strings.Repeat("x", len(parts[1]))

	_, err = codec.Verify(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestNewCodecProductionSecretPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Environment = config.EnvProduction
	cfg.Secret = "short"

	_, err := NewCodec(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}
