package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/skilltree/internal/cli"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Levels(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeCatalog(t, `
skill "a" {
  id    = 1
  title = "A"
  owner {
    uid = 1
  }
}
skill "b" {
  id            = 2
  title         = "B"
  prerequisites = [skill.a.id]
  owner {
    uid = 1
  }
}
`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"levels", "--json", path})

	// --- Assert ---
	require.NoError(t, err)
	var got struct {
		Levels map[string][]int64 `json:"levels"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, map[string][]int64{"0": {1}, "1": {2}}, got.Levels)
}

func TestRun_InvalidCatalog(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeCatalog(t, `
		skill "a" {
			id = 1
		// Missing closing brace here
	`)

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"levels", path})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
	var exitErr *cli.ExitError
	assert.False(t, errors.As(err, &exitErr), "runtime failures are not usage errors")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"levels", "--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
