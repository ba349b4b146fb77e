// internal/domain/auth/dto.go
package auth

// LoginRequest for portal login.
type LoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse is the wire shape of POST /api/auth/login. Credential
// mismatch is a normal Success=false outcome, not a server error.
type LoginResponse struct {
	Success bool          `json:"success"`
	User    *UserIdentity `json:"user,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// MeResponse is the wire shape of GET /api/auth/me. A 200 response is
// always a definitive answer, whether or not the caller is authenticated.
type MeResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserIdentity `json:"user,omitempty"`
}
