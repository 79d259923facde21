package session

import (
	"context"

	"github.com/harvestly/go-session-gate/users"
)

// Credentials is what the backend returns on any call that establishes or
// rotates a session: the bearer token plus the account it belongs to.
type Credentials struct {
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

// RegisterRequest carries a new-account signup.
type RegisterRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Role     users.RoleType `json:"role"`
	Profile  users.Profile  `json:"profile"`
}

// Backend is the auth surface of the marketplace API. Implementations must
// classify failures with the internal/errors sentinels so the Manager can
// distinguish rejected tokens from unreachable networks.
type Backend interface {
	Login(ctx context.Context, email, password string) (*Credentials, error)
	Register(ctx context.Context, req RegisterRequest) (*Credentials, error)
	Validate(ctx context.Context, token string) (*users.User, error)
	Refresh(ctx context.Context, token string) (*Credentials, error)
}
