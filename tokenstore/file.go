package tokenstore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// File persists the token to a single file on disk. All I/O failures are
// swallowed: a broken disk downgrades the store to forget-on-restart
// behaviour rather than breaking the session flow.
type File struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*File)(nil)

// NewFile returns a file-backed store. An empty path yields a store that
// behaves like Noop.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.path == "" {
		return ""
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Str("path", f.path).Msg("token read failed")
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (f *File) Set(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.path == "" || token == "" {
		return
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			log.Debug().Err(err).Str("path", f.path).Msg("token dir create failed")
			return
		}
	}
	if err := os.WriteFile(f.path, []byte(token), 0o600); err != nil {
		log.Debug().Err(err).Str("path", f.path).Msg("token write failed")
	}
}

func (f *File) Remove() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.path == "" {
		return
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Str("path", f.path).Msg("token remove failed")
	}
}
