// Package testutil provides harnesses for running assembly passes against
// HCL fixtures written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/wpreg/internal/app"
	"github.com/vk/wpreg/internal/hcl_adapter"
	"github.com/vk/wpreg/internal/registry"
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

// HarnessResult holds the outcome of one assembly pass.
type HarnessResult struct {
	LogOutput string
	Result    *app.Result
	Err       error
	App       *app.App
}

// WriteFiles writes files (relative path -> content) under a fresh temporary
// directory and returns the directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return tmpDir
}

// RunAssembly writes files to a temporary directory and assembles them into
// reg. Built-in fragments are left out so fixtures are self-contained.
func RunAssembly(t *testing.T, reg *registry.Registry, files map[string]string) *HarnessResult {
	t.Helper()
	return RunAssemblyWithConfig(t, reg, app.Config{Paths: []string{WriteFiles(t, files)}})
}

// RunAssemblyWithConfig runs one assembly pass with the given configuration,
// logging at debug level into the result.
func RunAssemblyWithConfig(t *testing.T, reg *registry.Registry, cfg app.Config) *HarnessResult {
	t.Helper()

	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, appConfig, hcl_adapter.NewLoader(), app.WithRegistry(reg))
	result, runErr := testApp.Assemble(context.Background())

	if os.Getenv("WPREG_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Result:    result,
		Err:       runErr,
		App:       testApp,
	}
}
