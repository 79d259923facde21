package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harvestly/go-session-gate/tokenstore"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := tokenstore.NewFile(filepath.Join(t.TempDir(), "token"))

	require.Empty(t, store.Get())

	store.Set("tok-abc")
	require.Equal(t, "tok-abc", store.Get())

	store.Set("tok-def")
	require.Equal(t, "tok-def", store.Get())

	store.Remove()
	require.Empty(t, store.Get())

	// Removing twice must stay silent
	store.Remove()
	require.Empty(t, store.Get())
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "token")
	store := tokenstore.NewFile(path)

	store.Set("tok-1")
	require.Equal(t, "tok-1", store.Get())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "tok-1", string(data))
}

func TestFileStoreUnavailableStorageDegradesToNoop(t *testing.T) {
	// A directory path cannot be written as a file; every operation must
	// swallow the failure.
	dir := t.TempDir()
	store := tokenstore.NewFile(dir)

	require.NotPanics(t, func() {
		store.Set("tok-1")
		_ = store.Get()
		store.Remove()
	})
	require.Empty(t, store.Get())
}

func TestFileStoreEmptyPathBehavesLikeNoop(t *testing.T) {
	store := tokenstore.NewFile("")

	store.Set("tok-1")
	require.Empty(t, store.Get())
	store.Remove()
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := tokenstore.NewMemory()

	require.Empty(t, store.Get())
	store.Set("tok-1")
	require.Equal(t, "tok-1", store.Get())
	store.Remove()
	require.Empty(t, store.Get())
}

func TestNoopStore(t *testing.T) {
	store := tokenstore.Noop{}

	store.Set("tok-1")
	require.Empty(t, store.Get())
	store.Remove()
}
