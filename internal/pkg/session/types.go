// internal/pkg/session/types.go
package session

import "time"

// Record is the registry's view of one issued token. Advisory bookkeeping
// only: token verification never consults it.
type Record struct {
	JTI       string    `json:"jti"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
