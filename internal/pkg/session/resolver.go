// internal/pkg/session/resolver.go
package session

import (
	"net/http"

	"go.uber.org/zap"

	"diaspora-portal-service/internal/domain/auth"
	"diaspora-portal-service/internal/pkg/token"
)

// Resolver turns an incoming request into a user identity, or nothing.
// Safe to call on every request; it has no side effects.
type Resolver struct {
	codec      *token.Codec
	cookieName string
	logger     *zap.Logger
}

func NewResolver(codec *token.Codec, cookieName string, logger *zap.Logger) *Resolver {
	return &Resolver{
		codec:      codec,
		cookieName: cookieName,
		logger:     logger,
	}
}

// ResolveRequest reads the session cookie and verifies it. A missing cookie
// short-circuits without invoking the codec. Every verification failure
// collapses to nil here; the distinction is logged for diagnostics but never
// surfaced to callers.
func (r *Resolver) ResolveRequest(req *http.Request) *auth.UserIdentity {
	identity, _ := r.ResolveSession(req)
	return identity
}

// ResolveSession is ResolveRequest plus the token's jti, for callers that
// do session bookkeeping (logout).
func (r *Resolver) ResolveSession(req *http.Request) (*auth.UserIdentity, string) {
	cookie, err := req.Cookie(r.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ""
	}

	claims, err := r.codec.VerifyClaims(cookie.Value)
	if err != nil {
		r.logger.Debug("session token rejected",
			zap.Error(err),
			zap.String("path", req.URL.Path),
		)
		return nil, ""
	}

	return &claims.User, claims.ID
}

// CookieName returns the name of the session cookie this resolver reads.
func (r *Resolver) CookieName() string {
	return r.cookieName
}
