// internal/repository/memory/credential_store.go
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"diaspora-portal-service/internal/domain/auth"
	xerrors "diaspora-portal-service/internal/pkg/errors"
)

// CredentialStore is a fixed in-memory credential table. It backs the demo
// login flow in tests and development runs without a database; in a real
// deployment the PostgreSQL repository takes its place.
type CredentialStore struct {
	mu    sync.RWMutex
	creds map[string]*auth.Credential // keyed by lowercase email
}

func NewCredentialStore(creds []*auth.Credential) *CredentialStore {
	m := make(map[string]*auth.Credential, len(creds))
	for _, c := range creds {
		m[strings.ToLower(c.Email)] = c
	}
	return &CredentialStore{creds: m}
}

func (s *CredentialStore) FindByEmail(_ context.Context, email string) (*auth.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.creds[strings.ToLower(email)]
	if !ok {
		return nil, xerrors.ErrNotFound
	}

	cp := *cred
	return &cp, nil
}

func (s *CredentialStore) TouchLastLogin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.creds {
		if c.ID == id {
			c.LastLogin.Time = time.Now()
			c.LastLogin.Valid = true
			break
		}
	}
	return nil
}
