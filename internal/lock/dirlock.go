// Package lock serializes scaffold invocations targeting the same project
// directory. The lock file lives beside the target directory, not inside it,
// because the empty-directory precondition must hold when scaffolding starts.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// DirLock is an exclusive per-target-directory lock implemented via a PID
// file + flock(2). Keep the lock alive by keeping the file descriptor open.
type DirLock struct {
	path string
	f    *os.File
}

// LockPathFor returns the lock file path for a target directory: a sibling
// file named after the directory.
func LockPathFor(targetDir string) string {
	clean := filepath.Clean(targetDir)
	return filepath.Join(filepath.Dir(clean), "."+filepath.Base(clean)+".lock")
}

// Acquire takes an exclusive non-blocking lock for targetDir and writes the
// current PID into the lock file. Returns a handle that must be released.
func Acquire(targetDir string) (*DirLock, error) {
	if strings.TrimSpace(targetDir) == "" {
		return nil, fmt.Errorf("target directory is empty")
	}
	lockPath := LockPathFor(targetDir)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("another invocation holds %s: %w", lockPath, err)
	}

	if err := writePID(f); err != nil {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
		return nil, err
	}

	return &DirLock{path: lockPath, f: f}, nil
}

func writePID(f *os.File) error {
	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate lock file: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("seek lock file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		return fmt.Errorf("write pid: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync lock file: %w", err)
	}
	return nil
}

func (l *DirLock) Path() string { return l.path }

// Release unlocks and removes the lock file.
func (l *DirLock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	err := l.f.Close()
	l.f = nil
	_ = os.Remove(l.path)
	return err
}
