// internal/domain/auth/entity.go
package auth

import (
	"database/sql"
	"time"
)

// UserIdentity is the principal carried inside a session token. It is
// immutable once issued to a session; the server forgets it on logout or
// token expiry.
type UserIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Credential represents a stored login record backing the credential store.
type Credential struct {
	ID           string       `json:"id" db:"id"`
	Email        string       `json:"email" db:"email"`
	FullName     string       `json:"full_name" db:"full_name"`
	PasswordHash string       `json:"-" db:"password_hash"`
	Status       string       `json:"status" db:"status"` // active, disabled
	LastLogin    sql.NullTime `json:"last_login" db:"last_login"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
	DeletedAt    sql.NullTime `json:"-" db:"deleted_at"`
}

// Identity derives the token payload from a credential record.
func (c *Credential) Identity() UserIdentity {
	return UserIdentity{ID: c.ID, Email: c.Email, Name: c.FullName}
}
