// internal/pkg/token/codec.go
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"diaspora-portal-service/internal/config"
	"diaspora-portal-service/internal/domain/auth"
)

// Typed verification failures. Callers that gate access must treat them all
// as "no identity"; they exist so the failure mode can be logged.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrBadSignature = errors.New("token signature invalid")
	ErrMalformed    = errors.New("token malformed")
)

// Codec issues and verifies HMAC-signed session tokens. The signing secret
// is resolved once at construction; a production config with a missing or
// short secret fails here rather than at first use.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	skew   time.Duration
	logger *zap.Logger

	// now is stubbed in tests to issue tokens in the past.
	now func() time.Time
}

func NewCodec(cfg config.AuthConfig, logger *zap.Logger) (*Codec, error) {
	secret, err := cfg.SessionSecret(logger)
	if err != nil {
		return nil, err
	}

	return &Codec{
		secret: []byte(secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		skew:   cfg.ClockSkew,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Issue signs a token embedding the identity with a fresh ULID jti and the
// configured TTL. Returns the compact token and its jti.
func (c *Codec) Issue(identity auth.UserIdentity) (string, string, error) {
	now := c.now()
	jti := ulid.Make().String()

	claims := &Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   identity.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, jti, nil
}

// Verify validates signature and expiry (with clock-skew leeway) and
// returns the embedded identity. Failures come back as one of the typed
// errors above.
func (c *Codec) Verify(tokenString string) (*auth.UserIdentity, error) {
	claims, err := c.VerifyClaims(tokenString)
	if err != nil {
		return nil, err
	}
	return &claims.User, nil
}

// VerifyClaims is Verify exposed at claims granularity, for callers that
// also need the jti (session bookkeeping at logout).
func (c *Codec) VerifyClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithLeeway(c.skew), jwt.WithIssuer(c.issuer))

	if err != nil {
		return nil, classify(err)
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}

	return claims, nil
}

// TTL exposes the configured token lifetime, used to size the cookie.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return fmt.Errorf("token verification failed: %w", err)
	}
}
