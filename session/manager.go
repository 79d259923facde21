// Package session owns the client-side session lifecycle: restoring a
// persisted token at boot, logging in and out, and keeping the single
// source of truth for who is currently authenticated.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/harvestly/go-session-gate/internal/errors"
	"github.com/harvestly/go-session-gate/token"
	"github.com/harvestly/go-session-gate/tokenstore"
	"github.com/harvestly/go-session-gate/users"
)

// refreshCall is the shared outcome of a single-flight refresh. Waiters block
// on done and read err afterwards.
type refreshCall struct {
	done chan struct{}
	err  error
}

// Manager is the session state machine. It is the sole writer of session
// state and of the persisted token; consumers read Snapshot views.
type Manager struct {
	backend Backend
	store   tokenstore.Store
	nowTime func() time.Time // nowTime function (injectable for testing)

	mu            sync.Mutex
	state         State
	user          *users.User
	token         string
	lastErr       error
	lastRefreshAt time.Time
	generation    uint64
	inflight      *refreshCall
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// NewManager initializes a Manager with its required dependencies. If the
// store holds a persisted token the session boots in StateRestoring and the
// caller is expected to invoke Restore; otherwise it boots unauthenticated.
func NewManager(backend Backend, store tokenstore.Store, options ...ManagerOption) (*Manager, error) {
	if backend == nil {
		return nil, errors.New("[NewManager] backend is required")
	}
	if store == nil {
		return nil, errors.New("[NewManager] token store is required")
	}

	m := &Manager{
		backend: backend,
		store:   store,
		nowTime: time.Now,
		state:   StateUnauthenticated,
	}

	for _, opt := range options {
		opt(m)
	}

	if persisted := store.Get(); persisted != "" {
		m.state = StateRestoring
		m.token = persisted
	}

	return m, nil
}

// Session returns a read-only snapshot of the current session.
func (m *Manager) Session() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		State:         m.state,
		Token:         m.token,
		Err:           m.lastErr,
		LastRefreshAt: m.lastRefreshAt,
		Generation:    m.generation,
	}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}

// Restore verifies the persisted token found at boot. Only valid from
// StateRestoring. A rejected token gets exactly one refresh attempt; a
// rejected refresh ends the session with the persisted token removed. A
// network failure settles the session unauthenticated but leaves the
// persisted token in place, since it may still be valid once connectivity
// returns.
func (m *Manager) Restore(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateRestoring {
		m.mu.Unlock()
		return errors.Wrap(NotRestoringErr, "[Manager.Restore]")
	}
	gen := m.generation
	tok := m.token
	m.mu.Unlock()

	user, err := m.backend.Validate(ctx, tok)
	if err == nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.generation != gen {
			log.Debug().Msg("restore superseded by logout, result discarded")
			return nil
		}
		m.setAuthenticatedLocked(Credentials{Token: tok, User: *user}, false)
		return nil
	}

	if apperrors.IsUnauthorized(err) {
		if refreshErr := m.refresh(ctx, gen, tok); refreshErr != nil {
			return errors.Wrap(refreshErr, "[Manager.Restore] refresh after rejected token")
		}
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		return nil
	}
	m.user = nil
	m.token = ""
	m.state = StateUnauthenticated
	m.lastErr = err
	if !apperrors.IsNetwork(err) {
		m.store.Remove()
	}
	return errors.Wrap(err, "[Manager.Restore] validate")
}

// Login exchanges credentials for a session. Valid from StateUnauthenticated
// or StateError. On failure the session moves to StateError with the cause
// recorded; no token is persisted.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, "Login", func(ctx context.Context) (*Credentials, error) {
		return m.backend.Login(ctx, email, password)
	})
}

// Register creates an account and establishes a session, with the same
// transition contract as Login.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) error {
	return m.authenticate(ctx, "Register", func(ctx context.Context) (*Credentials, error) {
		return m.backend.Register(ctx, req)
	})
}

func (m *Manager) authenticate(ctx context.Context, op string, call func(context.Context) (*Credentials, error)) error {
	m.mu.Lock()
	if state := m.state; state != StateUnauthenticated && state != StateError {
		m.mu.Unlock()
		return errors.Wrapf(InvalidStateErr, "[Manager.%s] state %s", op, state)
	}
	m.state = StateAuthenticating
	m.lastErr = nil
	gen := m.generation
	m.mu.Unlock()

	creds, err := call(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generation != gen {
		log.Debug().Str("op", op).Msg("authentication superseded by logout, result discarded")
		return nil
	}
	if err != nil {
		m.user = nil
		m.token = ""
		m.state = StateError
		m.lastErr = err
		return errors.Wrapf(err, "[Manager.%s] backend call", op)
	}
	m.setAuthenticatedLocked(*creds, true)
	return nil
}

// RefreshAuth rotates the bearer token. It is single-flight: concurrent
// callers share one network call and its outcome. On failure the session is
// logged out and the error re-raised.
func (m *Manager) RefreshAuth(ctx context.Context) error {
	m.mu.Lock()
	gen := m.generation
	tok := m.token
	m.mu.Unlock()

	if tok == "" {
		return errors.Wrap(NoActiveSessionErr, "[Manager.RefreshAuth]")
	}
	if err := m.refresh(ctx, gen, tok); err != nil {
		return errors.Wrap(err, "[Manager.RefreshAuth]")
	}
	return nil
}

// refresh performs or joins the single in-flight refresh call. The owner of
// the call applies the resulting transition under the generation guard;
// waiters only observe the shared error.
func (m *Manager) refresh(ctx context.Context, gen uint64, tok string) error {
	m.mu.Lock()
	if call := m.inflight; call != nil {
		m.mu.Unlock()
		select {
		case <-call.done:
			return call.err
		case <-ctx.Done():
			return apperrors.Wrapf(apperrors.ErrTimeout, "waiting for in-flight refresh: %v", ctx.Err())
		}
	}
	call := &refreshCall{done: make(chan struct{})}
	m.inflight = call
	m.mu.Unlock()

	creds, err := m.backend.Refresh(ctx, tok)

	m.mu.Lock()
	if m.generation != gen {
		log.Debug().Msg("refresh superseded by logout, result discarded")
	} else if err == nil {
		m.setAuthenticatedLocked(*creds, true)
	} else {
		m.logoutLocked()
		m.lastErr = err
	}
	m.inflight = nil
	m.mu.Unlock()

	call.err = err
	close(call.done)
	return err
}

// Logout clears the session and the persisted token from any state. It is
// idempotent and is the only operation that moves the generation counter,
// which is what invalidates results of async operations still in flight.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logoutLocked()
	m.lastErr = nil
}

func (m *Manager) logoutLocked() {
	m.user = nil
	m.token = ""
	m.state = StateUnauthenticated
	m.generation++
	m.store.Remove()
}

// ClearError drops the recorded error without changing state.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = nil
}

// TokenExpiresAt reports the locally readable expiry of the current token,
// when it has one.
func (m *Manager) TokenExpiresAt() (time.Time, bool) {
	m.mu.Lock()
	tok := m.token
	m.mu.Unlock()
	return token.ExpiresAt(tok)
}

// RefreshDue reports whether the current token expires within leeway and a
// proactive RefreshAuth is advisable.
func (m *Manager) RefreshDue(leeway time.Duration) bool {
	m.mu.Lock()
	tok := m.token
	m.mu.Unlock()
	return token.RefreshDue(tok, leeway, m.nowTime())
}

// setAuthenticatedLocked installs fresh credentials. The user is replaced
// wholesale, never merged.
func (m *Manager) setAuthenticatedLocked(creds Credentials, persist bool) {
	u := creds.User
	m.user = &u
	m.token = creds.Token
	m.state = StateAuthenticated
	m.lastErr = nil
	m.lastRefreshAt = m.nowTime()
	if persist {
		m.store.Set(creds.Token)
	}
}
