// Package tokenstore provides best-effort durable persistence for the single
// bearer token a device holds. Stores never fail: when the underlying storage
// is unavailable every operation degrades to a no-op, so callers can treat
// persistence as optional.
package tokenstore

// Store owns exactly one persisted token. Get returns the empty string when
// no token is stored or storage is unavailable.
type Store interface {
	Get() string
	Set(token string)
	Remove()
}

// Noop is the store used when no persistent storage exists at all. Every
// operation succeeds and does nothing.
type Noop struct{}

var _ Store = Noop{}

func (Noop) Get() string { return "" }

func (Noop) Set(token string) {}

func (Noop) Remove() {}
