// internal/repository/postgres/credential_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diaspora-portal-service/internal/domain/auth"
	xerrors "diaspora-portal-service/internal/pkg/errors"
)

// CredentialRepository reads portal login records from PostgreSQL.
type CredentialRepository struct {
	db *pgxpool.Pool
}

func NewCredentialRepository(db *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// FindByEmail retrieves an active credential record by email.
func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*auth.Credential, error) {
	query := `
		SELECT id, email, full_name, password_hash, status,
		       last_login, created_at, updated_at, deleted_at
		FROM portal_users
		WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL
	`

	var cred auth.Credential
	err := r.db.QueryRow(ctx, query, email).Scan(
		&cred.ID, &cred.Email, &cred.FullName, &cred.PasswordHash, &cred.Status,
		&cred.LastLogin, &cred.CreatedAt, &cred.UpdatedAt, &cred.DeletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credential: %w", err)
	}

	return &cred, nil
}

// TouchLastLogin records a successful login timestamp.
func (r *CredentialRepository) TouchLastLogin(ctx context.Context, id string) error {
	query := `UPDATE portal_users SET last_login = now(), updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
