package session

import (
	"time"

	"github.com/harvestly/go-session-gate/users"
)

// State is the single authoritative phase of a session. Collapsing the
// loading / authenticated / restoring flags into one enum keeps impossible
// combinations unrepresentable.
type State int

const (
	// StateUnauthenticated is the resting state with no usable credentials.
	StateUnauthenticated State = iota
	// StateRestoring means a persisted token was found at boot and is being
	// verified against the backend.
	StateRestoring
	// StateAuthenticating means a login or register call is in flight.
	StateAuthenticating
	// StateAuthenticated means the session holds a verified user and token.
	StateAuthenticated
	// StateError means the last login or register attempt failed. The session
	// is still unauthenticated; the error is kept for the caller to surface.
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateRestoring:
		return "restoring"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateError:
		return "error"
	}
	return "unknown"
}

// InFlight reports whether the session is mid-transition. Route decisions
// must not be finalized while this is true.
func (s State) InFlight() bool {
	return s == StateRestoring || s == StateAuthenticating
}

// Snapshot is an immutable read-only view of the session handed to
// consumers. Only the Manager writes session state; everyone else reads
// snapshots.
type Snapshot struct {
	State         State
	User          *users.User
	Token         string
	Err           error
	LastRefreshAt time.Time
	Generation    uint64
}

// Authenticated reports whether the snapshot carries a verified user.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil && s.Token != ""
}
