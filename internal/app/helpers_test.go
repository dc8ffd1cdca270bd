package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// testCatalog has three skills in a chain. gRPC belongs to another owner.
const testCatalog = `
skillset "backend" {
  id   = 7
  name = "Backend"
}

skill "go" {
  id    = 1
  title = "Go basics"
  owner {
    uid        = 612
    first_name = "Ada"
    last_name  = "Lovelace"
  }
}

skill "http" {
  id            = 2
  title         = "HTTP servers"
  prerequisites = [skill.go.id]
  owner {
    uid = 612
  }
}

skill "grpc" {
  id            = 3
  title         = "gRPC"
  prerequisites = [skill.http.id]
  owner {
    uid = 99
  }
}
`

func writeTestCatalog(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.hcl"), []byte(content), 0o600))
	return dir
}

func baseConfig(command Command, catalogPath string) Config {
	return Config{
		Command:      command,
		Source:       SourceHCL,
		CatalogPaths: []string{catalogPath},
		MaxLevel:     20,
		LogFormat:    "text",
		LogLevel:     "debug",
		Port:         8080,
	}
}

// setupAppTest creates an App for cfg and captures its output and logs.
func setupAppTest(t *testing.T, cfg Config) (*App, *bytes.Buffer, *SafeBuffer) {
	t.Helper()

	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &SafeBuffer{}
	a, err := NewApp(context.Background(), out, logs, validated)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("SKILLTREE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out, logs
}
