// internal/client/authstate/cache.go
package authstate

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"diaspora-portal-service/internal/domain/auth"
)

// cacheKey is the fixed name under which the last-known identity is kept,
// mirroring the browser's session-storage key.
const cacheKey = "user"

// FallbackCache mirrors the last-known identity locally so a transient
// failure of the who-am-I call does not log the user out. It is advisory
// only: a definitive server answer always overwrites or clears it.
type FallbackCache interface {
	Load() (*auth.UserIdentity, bool)
	Store(identity *auth.UserIdentity) error
	Clear() error
}

// FileCache keeps the identity as a JSON file in a directory, the client
// process's stand-in for browser local storage.
type FileCache struct {
	path string
}

func NewFileCache(dir string) *FileCache {
	return &FileCache{path: filepath.Join(dir, cacheKey+".json")}
}

func (c *FileCache) Load() (*auth.UserIdentity, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}

	var identity auth.UserIdentity
	if err := json.Unmarshal(data, &identity); err != nil || identity.ID == "" {
		return nil, false
	}
	return &identity, true
}

func (c *FileCache) Store(identity *auth.UserIdentity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

func (c *FileCache) Clear() error {
	err := os.Remove(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
