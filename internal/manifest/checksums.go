// Package manifest records BLAKE3 checksums of the artifacts a scaffold run
// emits, so a later verify can tell a hand-edited document from the one the
// tool wrote.
package manifest

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// FileName is the manifest's fixed name in the project root.
const FileName = ".checksums"

// Manifest maps emitted artifact names to their BLAKE3 hashes.
type Manifest struct {
	Version     int               `yaml:"version"`
	GeneratedAt string            `yaml:"generated_at"`
	RunID       string            `yaml:"run_id"`
	Hashes      map[string]string `yaml:"hashes"`
}

// Result holds the outcome of a verification run.
type Result struct {
	Passed   bool
	Errors   []string
	Warnings []string
}

// ComputeHash computes the BLAKE3 hash of a file.
func ComputeHash(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// Generate hashes the named files in dir and writes the manifest there.
// Missing files are skipped; the artifact set varies by invocation mode.
func Generate(dir, runID string, files []string) error {
	m := Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		RunID:       runID,
		Hashes:      make(map[string]string),
	}

	for _, name := range files {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		hash, err := ComputeHash(path)
		if err != nil {
			return fmt.Errorf("hash %s: %w", name, err)
		}
		m.Hashes[name] = hash
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("serialize manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads the manifest from dir.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Verify checks every manifest entry against the files in dir. A missing file
// or hash mismatch is an error; a file that cannot be hashed is too.
func Verify(dir string) (*Result, error) {
	m, err := Load(dir)
	if err != nil {
		return nil, err
	}

	r := &Result{Passed: true}
	for name, want := range m.Hashes {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			r.Errors = append(r.Errors, fmt.Sprintf("%s: recorded in manifest but missing", name))
			continue
		}
		got, err := ComputeHash(path)
		if err != nil {
			r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if got != want {
			r.Errors = append(r.Errors, fmt.Sprintf("%s: hash mismatch (expected %s, got %s)", name, want, got))
		}
	}
	if len(m.Hashes) == 0 {
		r.Warnings = append(r.Warnings, "manifest records no artifacts")
	}

	r.Passed = len(r.Errors) == 0
	return r, nil
}
