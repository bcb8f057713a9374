package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCLIUnknownCommand(t *testing.T) {
	assert.Equal(t, 1, runCLI([]string{"bogus"}))
}

func TestRunCLINoArgs(t *testing.T) {
	assert.Equal(t, 1, runCLI(nil))
}

func TestRunCLIHelp(t *testing.T) {
	assert.Equal(t, 0, runCLI([]string{"help"}))
	assert.Equal(t, 0, runCLI([]string{"--help"}))
}

func TestRunCLIVersion(t *testing.T) {
	assert.Equal(t, 0, runCLI([]string{"version"}))
	assert.Equal(t, 0, runCLI([]string{"version", "--json"}))
}

func TestGenerateRequiresFlags(t *testing.T) {
	assert.Equal(t, 2, runCLI([]string{"generate"}))
	assert.Equal(t, 2, runCLI([]string{"generate", "--api-name", "X"}))
}

func TestVerifyMissingManifest(t *testing.T) {
	assert.Equal(t, 1, runCLI([]string{"verify", "--dir", t.TempDir()}))
}

func TestGenerateRefusesNonEmptyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep"), []byte("x"), 0o644))

	code := runCLI([]string{
		"generate",
		"--api-name", "Petstore",
		"--api-url", "https://petstore.example.com",
		"--spec-file", "petstore.yaml",
		"--out", dir,
	})
	assert.Equal(t, 1, code)
}
