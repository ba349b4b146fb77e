// internal/pkg/session/registry.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Registry tracks issued tokens in Redis so the portal can list a user's
// active sessions and drop entries on logout. Entries expire with the token
// TTL. The registry is best-effort: callers log failures and carry on, and
// token verification never depends on it.
type Registry struct {
	client *redis.Client
}

func NewRegistry(client *redis.Client) *Registry {
	return &Registry{client: client}
}

// Track stores a record for a freshly issued token.
func (r *Registry) Track(ctx context.Context, rec *Record) error {
	key := r.sessionKey(rec.UserID, rec.JTI)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session record already expired")
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session record: %w", err)
	}
	return nil
}

// Drop removes the record for one token, typically at logout.
func (r *Registry) Drop(ctx context.Context, userID, jti string) error {
	return r.client.Del(ctx, r.sessionKey(userID, jti)).Err()
}

// ActiveSessions lists the records still held for a user.
func (r *Registry) ActiveSessions(ctx context.Context, userID string) ([]*Record, error) {
	pattern := fmt.Sprintf("session:%s:*", userID)

	var records []*Record
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue // expired between scan and get
		}

		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		records = append(records, &rec)
	}

	return records, iter.Err()
}

func (r *Registry) sessionKey(userID, jti string) string {
	return fmt.Sprintf("session:%s:%s", userID, jti)
}
