// internal/pkg/token/claims.go
package token

import (
	"github.com/golang-jwt/jwt/v5"

	"diaspora-portal-service/internal/domain/auth"
)

// Claims is the session token payload: the embedded user identity plus the
// registered claims (iat, exp, nbf, jti).
type Claims struct {
	User auth.UserIdentity `json:"user"`
	jwt.RegisteredClaims
}
