package viewer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfigReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vitrine.toml")
	require.NoError(t, os.WriteFile(path, []byte("fps = 60\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan Settings, 1)
	errc := make(chan error, 1)
	go func() { errc <- WatchConfig(ctx, path, out, nil) }()

	// The watcher starts asynchronously, so keep rewriting until it reports.
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case s := <-out:
			assert.InDelta(t, 0.25, s.KeyIntensity, 1e-12)
			assert.Equal(t, BackgroundModeGradient, s.BackgroundMode)
			cancel()
			require.NoError(t, <-errc)
			return
		case <-tick.C:
			data := "[settings]\nkey_intensity = 0.25\nbackground_mode = \"gradient\"\n"
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			// Unrelated files in the directory are ignored.
			require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("fps = 0"), 0o644))
		case err := <-errc:
			t.Fatalf("watcher stopped: %v", err)
		case <-deadline:
			t.Fatal("no reload")
		}
	}
}

func TestWatchConfigMissingDir(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "nope", "vitrine.toml"), make(chan Settings), nil)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	nop, err := NewLogger("", false)
	require.NoError(t, err)
	assert.NotNil(t, nop)

	path := filepath.Join(t.TempDir(), "vitrine.log")
	logger, err := NewLogger(path, true)
	require.NoError(t, err)
	logger.Debug("model loaded")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "model loaded")
}
