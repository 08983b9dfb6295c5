// Package testutil provides the shared harness for integration-style tests:
// writing profile files to a temporary directory, running the app startup
// path against them, and capturing log output.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/accelgo/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a startup harness run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// WriteProfileDir writes the given relative-path -> content files under a
// fresh temp dir and returns its path.
func WriteProfileDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// RunStartup exercises the app constructor against a profile tree. NewApp
// panics on fatal startup errors; the harness turns that into an error so
// tests can assert on it.
func RunStartup(t *testing.T, files map[string]string, config app.Config) *HarnessResult {
	t.Helper()

	dir := WriteProfileDir(t, files)
	if config.ProfilePath == "" {
		config.ProfilePath = dir
	} else {
		config.ProfilePath = filepath.Join(dir, config.ProfilePath)
	}
	if config.LogLevel == "" {
		config.LogLevel = "debug"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}

	logBuffer := &SafeBuffer{}
	result := &HarnessResult{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		result.App = app.NewApp(logBuffer, &config, nil)
	}()

	result.LogOutput = logBuffer.String()
	return result
}
