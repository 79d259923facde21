package tokenstore

import "sync"

// Memory keeps the token in process memory only. Useful for tests and for
// ephemeral sessions that should not survive a restart.
type Memory struct {
	mu    sync.RWMutex
	token string
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Memory) Set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *Memory) Remove() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}
