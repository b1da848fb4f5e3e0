package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func nextReload(t *testing.T, w *ConfigWatcher) Reload {
	t.Helper()
	select {
	case r, ok := <-w.Reloads:
		require.True(t, ok, "Reloads closed unexpectedly")
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return Reload{}
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	writeFile(t, path, "physics:\n  gravity: 0.4\n")

	w, err := New(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, path, "physics:\n  gravity: 0.9\n")

	r := nextReload(t, w)
	require.NoError(t, r.Err)
	require.Equal(t, w.Path(), r.Path)
	require.Equal(t, 0.9, r.Config.Physics.Gravity)
	require.Equal(t, 20, r.Config.Physics.IterationCap, "unset keys keep their defaults")
}

func TestWatcherReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	writeFile(t, path, "physics:\n  gravity: 0.4\n")

	w, err := New(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, path, "physics:\n  iteration_cap: 0\n")

	r := nextReload(t, w)
	require.Error(t, r.Err)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "platformer.yaml")
	writeFile(t, path, "{}\n")

	w, err := New(path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.yaml"), "physics:\n  gravity: 3\n")

	select {
	case r := <-w.Reloads:
		t.Fatalf("unexpected reload for %s", r.Path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	writeFile(t, path, "{}\n")

	w, err := New(path, 0, nil)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Reloads
	require.False(t, ok)
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "platformer.yaml"), 0, nil)
	require.Error(t, err)
}
