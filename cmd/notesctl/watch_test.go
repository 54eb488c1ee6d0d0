package main

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>v0</p>"), 0o600))

	var (
		mu       sync.Mutex
		contents []string
	)
	latest := func() string {
		mu.Lock()
		defer mu.Unlock()
		if len(contents) == 0 {
			return ""
		}
		return contents[len(contents)-1]
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	flushed := make(chan struct{})
	go func() {
		done <- watchFile(ctx, path, func(content string) {
			mu.Lock()
			contents = append(contents, content)
			mu.Unlock()
		}, func() error {
			close(flushed)
			return nil
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("<p>v1</p>"), 0o600))

	assert.Eventually(t, func() bool { return latest() == "<p>v1</p>" }, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchFile did not return after cancel")
	}
	<-flushed

	mu.Lock()
	defer mu.Unlock()
	for _, c := range contents {
		assert.NotEqual(t, "ignored", c)
	}
}
