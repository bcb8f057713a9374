package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestGenerateAndVerify(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pipeline.yaml", "env: {}\ntasks: {}\n")
	writeFile(t, dir, "generator_config.yaml", "packageName: x\n")

	require.NoError(t, Generate(dir, "run-1", []string{"pipeline.yaml", "generator_config.yaml"}))

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version)
	assert.Equal(t, "run-1", m.RunID)
	assert.Len(t, m.Hashes, 2)

	res, err := Verify(dir)
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Empty(t, res.Errors)
}

func TestGenerateSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pipeline.yaml", "env: {}\n")

	require.NoError(t, Generate(dir, "run-1", []string{"pipeline.yaml", "not-there.yaml"}))

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, m.Hashes, 1)
	assert.Contains(t, m.Hashes, "pipeline.yaml")
}

func TestVerifyDetectsEdit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pipeline.yaml", "env: {}\n")
	require.NoError(t, Generate(dir, "run-1", []string{"pipeline.yaml"}))

	writeFile(t, dir, "pipeline.yaml", "env: {tampered: yes}\n")

	res, err := Verify(dir)
	require.NoError(t, err)
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "hash mismatch")
}

func TestVerifyDetectsMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pipeline.yaml", "env: {}\n")
	require.NoError(t, Generate(dir, "run-1", []string{"pipeline.yaml"}))
	require.NoError(t, os.Remove(filepath.Join(dir, "pipeline.yaml")))

	res, err := Verify(dir)
	require.NoError(t, err)
	assert.False(t, res.Passed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "missing")
}

func TestVerifyNoManifest(t *testing.T) {
	_, err := Verify(t.TempDir())
	assert.Error(t, err)
}

func TestComputeHashStable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a", "content")
	writeFile(t, dir, "b", "content")

	ha, err := ComputeHash(filepath.Join(dir, "a"))
	require.NoError(t, err)
	hb, err := ComputeHash(filepath.Join(dir, "b"))
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.Len(t, ha, 64)
}
