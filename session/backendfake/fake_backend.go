package backendfake

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/harvestly/go-session-gate/session"
	"github.com/harvestly/go-session-gate/users"
)

var _ session.Backend = (*FakeBackend)(nil)

// FakeBackend is a scriptable session.Backend for tests. Each operation
// delegates to its function field when set and fails otherwise. Call counts
// are tracked per operation so tests can assert how many network calls a
// flow produced.
type FakeBackend struct {
	LoginFn    func(ctx context.Context, email, password string) (*session.Credentials, error)
	RegisterFn func(ctx context.Context, req session.RegisterRequest) (*session.Credentials, error)
	ValidateFn func(ctx context.Context, token string) (*users.User, error)
	RefreshFn  func(ctx context.Context, token string) (*session.Credentials, error)

	mu    sync.Mutex
	calls map[string]int
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{calls: make(map[string]int)}
}

func (b *FakeBackend) Login(ctx context.Context, email, password string) (*session.Credentials, error) {
	b.record("login")
	if b.LoginFn == nil {
		return nil, errors.New("login not scripted")
	}
	return b.LoginFn(ctx, email, password)
}

func (b *FakeBackend) Register(ctx context.Context, req session.RegisterRequest) (*session.Credentials, error) {
	b.record("register")
	if b.RegisterFn == nil {
		return nil, errors.New("register not scripted")
	}
	return b.RegisterFn(ctx, req)
}

func (b *FakeBackend) Validate(ctx context.Context, token string) (*users.User, error) {
	b.record("validate")
	if b.ValidateFn == nil {
		return nil, errors.New("validate not scripted")
	}
	return b.ValidateFn(ctx, token)
}

func (b *FakeBackend) Refresh(ctx context.Context, token string) (*session.Credentials, error) {
	b.record("refresh")
	if b.RefreshFn == nil {
		return nil, errors.New("refresh not scripted")
	}
	return b.RefreshFn(ctx, token)
}

// Calls returns how many times an operation ("login", "register",
// "validate", "refresh") was invoked.
func (b *FakeBackend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *FakeBackend) record(op string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
}
