package authstate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"diaspora-portal-service/internal/domain/auth"
)

// fakeAPI scripts the server's answers.
type fakeAPI struct {
	me    *auth.MeResponse
	meErr error

	logoutErr   error
	logoutCalls atomic.Int32
}

func (f *fakeAPI) Me(ctx context.Context) (*auth.MeResponse, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.me, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*auth.LoginResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.logoutCalls.Add(1)
	return f.logoutErr
}

func amina() *auth.UserIdentity {
	return &auth.UserIdentity{ID: "usr_01", Email: "amina.diallo@example.com", Name: "Amina Diallo"}
}

func newTestContext(t *testing.T, api API) (*Context, *FileCache) {
	t.Helper()
	cache := NewFileCache(t.TempDir())
	return NewContext(api, cache, zap.NewNop()), cache
}

func TestInitialStateIsLoading(t *testing.T) {
	ctx, _ := newTestContext(t, &fakeAPI{})

	state := ctx.Snapshot()
	assert.True(t, state.Loading)
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
}

func TestReconcileDefinitiveAuthenticated(t *testing.T) {
	api := &fakeAPI{me: &auth.MeResponse{Authenticated: true, User: amina()}}
	ctx, cache := newTestContext(t, api)

	require.NoError(t, ctx.Reconcile(context.Background()))

	state := ctx.Snapshot()
	assert.False(t, state.Loading)
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "usr_01", state.User.ID)

	// The definitive answer was mirrored into the fallback cache.
	cached, ok := cache.Load()
	require.True(t, ok)
	assert.Equal(t, "usr_01", cached.ID)
}

func TestReconcileDefinitiveAnonymousClearsCache(t *testing.T) {
	api := &fakeAPI{me: &auth.MeResponse{Authenticated: false}}
	ctx, cache := newTestContext(t, api)

	// Stale identity left over from an earlier session.
	require.NoError(t, cache.Store(amina()))

	require.NoError(t, ctx.Reconcile(context.Background()))

	state := ctx.Snapshot()
	assert.False(t, state.Loading)
	assert.False(t, state.IsAuthenticated)

	_, ok := cache.Load()
	assert.False(t, ok, "definitive anonymous answer must clear the cache")
}

func TestReconcileTransportFailureAdoptsCache(t *testing.T) {
	api := &fakeAPI{meErr: errors.New("connection refused")}
	ctx, cache := newTestContext(t, api)

	require.NoError(t, cache.Store(amina()))

	require.NoError(t, ctx.Reconcile(context.Background()))

	state := ctx.Snapshot()
	assert.False(t, state.Loading)
	assert.True(t, state.IsAuthenticated, "cached identity is adopted when the server is unreachable")
	assert.Equal(t, "usr_01", state.User.ID)
}

func TestReconcileTransportFailureEmptyCache(t *testing.T) {
	api := &fakeAPI{meErr: errors.New("connection refused")}
	ctx, _ := newTestContext(t, api)

	require.NoError(t, ctx.Reconcile(context.Background()))

	state := ctx.Snapshot()
	assert.False(t, state.Loading)
	assert.False(t, state.IsAuthenticated)
}

// A later definitive answer overrides an identity adopted from the cache.
func TestDefinitiveAnswerOverridesCacheFallback(t *testing.T) {
	api := &fakeAPI{meErr: errors.New("connection refused")}
	ctx, cache := newTestContext(t, api)

	require.NoError(t, cache.Store(amina()))
	require.NoError(t, ctx.Reconcile(context.Background()))
	require.True(t, ctx.Snapshot().IsAuthenticated)

	// Server comes back and says the session is gone.
	api.meErr = nil
	api.me = &auth.MeResponse{Authenticated: false}
	require.NoError(t, ctx.Reconcile(context.Background()))

	assert.False(t, ctx.Snapshot().IsAuthenticated)
	_, ok := cache.Load()
	assert.False(t, ok)
}

func TestReconcileCancelledContextDiscardsResult(t *testing.T) {
	api := &fakeAPI{me: &auth.MeResponse{Authenticated: true, User: amina()}}
	ctx, _ := newTestContext(t, api)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	err := ctx.Reconcile(cancelled)
	assert.Error(t, err)

	// The torn-down caller's result was discarded: still loading, still
	// anonymous.
	state := ctx.Snapshot()
	assert.True(t, state.Loading)
	assert.False(t, state.IsAuthenticated)
}

func TestLoginIsSynchronous(t *testing.T) {
	ctx, cache := newTestContext(t, &fakeAPI{})

	ctx.Login(*amina())

	// Readable immediately, no reconciliation round trip.
	state := ctx.Snapshot()
	assert.False(t, state.Loading)
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, "usr_01", state.User.ID)

	cached, ok := cache.Load()
	require.True(t, ok)
	assert.Equal(t, "usr_01", cached.ID)
}

func TestLogoutClearsStateAndCache(t *testing.T) {
	api := &fakeAPI{}
	ctx, cache := newTestContext(t, api)
	ctx.Login(*amina())

	navigated := false
	ctx.NavigateHome = func() { navigated = true }

	ctx.Logout(context.Background())

	state := ctx.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.True(t, navigated)
	assert.Equal(t, int32(1), api.logoutCalls.Load())

	_, ok := cache.Load()
	assert.False(t, ok)
}

// A failed server call never blocks the local logout.
func TestLogoutBestEffort(t *testing.T) {
	api := &fakeAPI{logoutErr: errors.New("connection refused")}
	ctx, cache := newTestContext(t, api)
	ctx.Login(*amina())

	ctx.Logout(context.Background())

	assert.False(t, ctx.Snapshot().IsAuthenticated)
	_, ok := cache.Load()
	assert.False(t, ok)
}

func TestSubscribeNotifiesAndUnsubscribes(t *testing.T) {
	api := &fakeAPI{me: &auth.MeResponse{Authenticated: true, User: amina()}}
	ctx, _ := newTestContext(t, api)

	var got []State
	unsubscribe := ctx.Subscribe(func(s State) { got = append(got, s) })

	require.NoError(t, ctx.Reconcile(context.Background()))
	require.Len(t, got, 1)
	assert.True(t, got[0].IsAuthenticated)

	unsubscribe()
	ctx.Logout(context.Background())
	assert.Len(t, got, 1, "unsubscribed listener must not fire")
}
