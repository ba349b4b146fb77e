// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"diaspora-portal-service/internal/domain/auth"
	xerrors "diaspora-portal-service/internal/pkg/errors"
	"diaspora-portal-service/internal/pkg/session"
	"diaspora-portal-service/internal/pkg/token"
)

// CredentialStore resolves login attempts to stored credential records.
// Backed by PostgreSQL in deployments and by the fixed in-memory table in
// development and tests.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*auth.Credential, error)
	TouchLastLogin(ctx context.Context, id string) error
}

type AuthService struct {
	creds       CredentialStore
	codec       *token.Codec
	registry    *session.Registry
	rateLimiter *session.RateLimiter
	logger      *zap.Logger
}

func NewAuthService(
	creds CredentialStore,
	codec *token.Codec,
	registry *session.Registry,
	rateLimiter *session.RateLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		creds:       creds,
		codec:       codec,
		registry:    registry,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// Login checks credentials and issues a session token. A wrong email or
// password comes back as xerrors.ErrInvalidCredentials; the handler turns
// that into a success:false response, never a server error.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.UserIdentity, string, error) {
	if s.rateLimiter != nil {
		allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, req.Email)
		if err != nil {
			// Rate limiting is protective, not load-bearing. Let the
			// attempt through if Redis is unreachable.
			s.logger.Warn("login rate limit check failed", zap.Error(err))
		} else if !allowed {
			s.logger.Info("login rate limited",
				zap.String("email", req.Email),
				zap.String("ip", req.IPAddress),
				zap.Int64("remaining", remaining),
			)
			return nil, "", xerrors.ErrRateLimited
		}
	}

	cred, err := s.creds.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, "", xerrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if cred.Status != "active" {
		return nil, "", xerrors.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", xerrors.ErrInvalidCredentials
	}

	identity := cred.Identity()

	signed, jti, err := s.codec.Issue(identity)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	s.trackSession(ctx, &session.Record{
		JTI:       jti,
		UserID:    identity.ID,
		Email:     identity.Email,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.codec.TTL()),
	})

	if err := s.creds.TouchLastLogin(ctx, identity.ID); err != nil {
		s.logger.Warn("failed to record last login", zap.Error(err))
	}
	if s.rateLimiter != nil {
		if err := s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, req.Email); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	return &identity, signed, nil
}

// Logout drops the session registry entry. The cookie clearing happens at
// the handler; losing the registry entry is acceptable, so errors are only
// logged.
func (s *AuthService) Logout(ctx context.Context, userID, jti string) {
	if s.registry == nil {
		return
	}
	if err := s.registry.Drop(ctx, userID, jti); err != nil {
		s.logger.Warn("failed to drop session record",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

// ActiveSessions lists the registry's records for a user.
func (s *AuthService) ActiveSessions(ctx context.Context, userID string) ([]*session.Record, error) {
	if s.registry == nil {
		return nil, nil
	}
	return s.registry.ActiveSessions(ctx, userID)
}

func (s *AuthService) trackSession(ctx context.Context, rec *session.Record) {
	if s.registry == nil {
		return
	}
	if err := s.registry.Track(ctx, rec); err != nil {
		s.logger.Warn("failed to track session", zap.String("jti", rec.JTI), zap.Error(err))
	}
}
