package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"blogia/blog-client/internal/apiclient"
	"blogia/blog-client/internal/observability"
	"blogia/blog-client/internal/tokenstore"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// API is the slice of apiclient.Client the manager drives.
type API interface {
	Login(ctx context.Context, username, password string) (*apiclient.Token, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.User, error)
	CurrentUser(ctx context.Context) (*apiclient.User, error)
	UseToken(token string)
	SetToken(ctx context.Context, token string) error
}

type Snapshot struct {
	State  State
	User   *apiclient.User
	Claims *Claims
}

func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated
}

// Manager owns the logged-in state. It starts Unknown and settles on
// Anonymous or Authenticated once Rehydrate or Login completes.
type Manager struct {
	api   API
	store tokenstore.Store
	log   *slog.Logger
	now   func() time.Time

	mu     sync.RWMutex
	state  State
	user   *apiclient.User
	claims *Claims

	ready     chan struct{}
	readyOnce sync.Once

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

type Option func(*Manager)

func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func New(api API, store tokenstore.Store, opts ...Option) *Manager {
	m := &Manager{
		api:   api,
		store: store,
		log:   observability.Discard(),
		now:   time.Now,
		ready: make(chan struct{}),
		subs:  make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{State: m.state}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	if m.claims != nil {
		c := *m.claims
		snap.Claims = &c
	}
	return snap
}

// Ready is closed once the state has left Unknown.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

func (m *Manager) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-m.ready:
		return m.Snapshot(), nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Subscribe registers fn for every later state change and returns the
// func that unregisters it.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subs, id)
			m.subMu.Unlock()
		})
	}
}

// Rehydrate restores the session from the stored token. A rejected or
// expired token is cleared and the session becomes Anonymous without an
// error; only store failures and caller cancellation are returned.
func (m *Manager) Rehydrate(ctx context.Context) error {
	tok, found, err := m.store.Get(ctx)
	if err != nil {
		m.setAnonymous()
		return fmt.Errorf("read stored token: %w", err)
	}
	if !found || tok == "" {
		m.setAnonymous()
		return nil
	}

	claims := parseClaims(tok)
	if claims.Expired(m.now()) {
		m.log.Info("stored token expired", "subject", claims.Subject, "expired_at", claims.ExpiresAt)
		m.clearToken(ctx)
		m.setAnonymous()
		return nil
	}

	m.api.UseToken(tok)
	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		m.log.Warn("auth check failed", "error", err, "status", apiclient.StatusCode(err))
		m.clearToken(ctx)
		m.setAnonymous()
		return nil
	}

	m.setAuthenticated(user, claims)
	return nil
}

// Login authenticates and then loads the current user. On failure the
// state is not promoted and the error is returned for the caller to render.
func (m *Manager) Login(ctx context.Context, username, password string) (*apiclient.Token, error) {
	tok, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.log.Info("login failed", "username", username, "error", err)
		return nil, err
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Warn("login user fetch failed", "username", username, "error", err)
		m.clearToken(context.WithoutCancel(ctx))
		m.setAnonymous()
		return nil, err
	}

	m.setAuthenticated(user, parseClaims(tok.AccessToken))
	return tok, nil
}

// Register creates an account. It does not log the new user in.
func (m *Manager) Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.User, error) {
	return m.api.Register(ctx, req)
}

func (m *Manager) Logout(ctx context.Context) error {
	err := m.api.SetToken(ctx, "")
	m.setAnonymous()
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// UpdateUser replaces the in-memory user after the caller has already
// saved the change on the backend.
func (m *Manager) UpdateUser(user apiclient.User) error {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	m.user = &user
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.publish(snap)
	return nil
}

func (m *Manager) clearToken(ctx context.Context) {
	if err := m.api.SetToken(ctx, ""); err != nil {
		m.log.Error("clear stored token", "error", err)
	}
}

func (m *Manager) setAnonymous() {
	m.transition(StateAnonymous, nil, nil)
}

func (m *Manager) setAuthenticated(user *apiclient.User, claims *Claims) {
	if claims != nil && claims.Subject != "" && user != nil && claims.Subject != user.Username {
		m.log.Warn("token subject does not match current user", "subject", claims.Subject, "username", user.Username)
	}
	m.transition(StateAuthenticated, user, claims)
}

func (m *Manager) transition(state State, user *apiclient.User, claims *Claims) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.claims = claims
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.readyOnce.Do(func() { close(m.ready) })
	m.publish(snap)
}

func (m *Manager) publish(snap Snapshot) {
	m.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
