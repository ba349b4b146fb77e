// internal/client/authstate/context.go

// Package authstate is the client-side source of truth for "who is logged
// in". It reconciles against the portal's who-am-I endpoint, keeps a local
// fallback cache for degraded mode, and feeds the route guard. One Context
// per running client instance; created at startup, discarded at shutdown.
package authstate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"diaspora-portal-service/internal/domain/auth"
)

// State is an immutable snapshot of the auth context.
type State struct {
	User            *auth.UserIdentity
	Loading         bool
	IsAuthenticated bool
}

// Context holds the current identity and applies transitions in event
// order. The server's definitive answers always win over the fallback
// cache; the cache is only adopted when the server cannot be reached.
type Context struct {
	mu sync.Mutex

	api    API
	cache  FallbackCache
	logger *zap.Logger

	user        *auth.UserIdentity
	loading     bool
	reconciling bool

	listeners map[int]func(State)
	nextID    int

	// NavigateHome is invoked after logout so the embedding client can
	// force a fresh view of the home route. Optional.
	NavigateHome func()
}

func NewContext(api API, cache FallbackCache, logger *zap.Logger) *Context {
	return &Context{
		api:       api,
		cache:     cache,
		logger:    logger,
		loading:   true,
		listeners: make(map[int]func(State)),
	}
}

// Snapshot returns the current state.
func (c *Context) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers a listener called after every transition. The
// returned function unsubscribes.
func (c *Context) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Reconcile asks the server who the session belongs to and applies the
// answer. A definitive response overwrites or clears the fallback cache;
// a transport failure adopts the cache as a best-effort unverified state.
// Re-running it is idempotent, and concurrent calls collapse into one.
// A cancelled ctx discards the result rather than updating torn-down state.
func (c *Context) Reconcile(ctx context.Context) error {
	c.mu.Lock()
	if c.reconciling {
		c.mu.Unlock()
		return nil
	}
	c.reconciling = true
	c.mu.Unlock()

	me, err := c.api.Me(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reconciling = false

	if ctx.Err() != nil {
		// Caller went away while the fetch was in flight.
		return ctx.Err()
	}

	if err != nil {
		c.logger.Warn("auth reconciliation failed, falling back to cache", zap.Error(err))
		if cached, ok := c.cache.Load(); ok {
			c.user = cached
		} else {
			c.user = nil
		}
		c.loading = false
		c.notifyLocked()
		return nil
	}

	if me.Authenticated && me.User != nil {
		c.user = me.User
		if err := c.cache.Store(me.User); err != nil {
			c.logger.Warn("failed to update fallback cache", zap.Error(err))
		}
	} else {
		c.user = nil
		if err := c.cache.Clear(); err != nil {
			c.logger.Warn("failed to clear fallback cache", zap.Error(err))
		}
	}
	c.loading = false
	c.notifyLocked()
	return nil
}

// Login adopts an identity the caller has already verified with the server
// (a completed login exchange). It is synchronous: no network round trip,
// the state is readable immediately after it returns.
func (c *Context) Login(identity auth.UserIdentity) {
	c.mu.Lock()
	c.user = &identity
	c.loading = false
	if err := c.cache.Store(&identity); err != nil {
		c.logger.Warn("failed to update fallback cache", zap.Error(err))
	}
	c.notifyLocked()
	c.mu.Unlock()
}

// Logout tells the server best-effort, clears the cache, goes Anonymous,
// and triggers the home navigation hook. A failed server call never blocks
// the local logout.
func (c *Context) Logout(ctx context.Context) {
	if err := c.api.Logout(ctx); err != nil {
		c.logger.Warn("server logout failed, proceeding locally", zap.Error(err))
	}

	c.mu.Lock()
	c.user = nil
	c.loading = false
	if err := c.cache.Clear(); err != nil {
		c.logger.Warn("failed to clear fallback cache", zap.Error(err))
	}
	navigate := c.NavigateHome
	c.notifyLocked()
	c.mu.Unlock()

	if navigate != nil {
		navigate()
	}
}

func (c *Context) snapshotLocked() State {
	return State{
		User:            c.user,
		Loading:         c.loading,
		IsAuthenticated: c.user != nil,
	}
}

// notifyLocked invokes listeners with the fresh snapshot. Listener
// callbacks must not call back into the Context synchronously.
func (c *Context) notifyLocked() {
	state := c.snapshotLocked()
	for _, fn := range c.listeners {
		fn(state)
	}
}
