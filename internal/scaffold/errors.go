package scaffold

import "fmt"

// NonEmptyDirError means the target directory already had content outside
// test mode. Scaffolding never overwrites unrelated existing content.
type NonEmptyDirError struct {
	Dir string
}

func (e *NonEmptyDirError) Error() string {
	return fmt.Sprintf("cannot scaffold into %s: directory is not empty", e.Dir)
}

// MissingDirError means the target directory vanished between preparation and
// project initialization.
type MissingDirError struct {
	Dir string
}

func (e *MissingDirError) Error() string {
	return fmt.Sprintf("project directory %s does not exist", e.Dir)
}

// InitFailedError means the project initializer exited non-zero or could not
// be spawned. Output carries the buffered process output.
type InitFailedError struct {
	Dir    string
	Output string
	Err    error
}

func (e *InitFailedError) Error() string {
	return fmt.Sprintf("project init at %s failed: %s", e.Dir, e.Output)
}

func (e *InitFailedError) Unwrap() error { return e.Err }

// InstallFailedError means installing an external tool failed. Output carries
// the buffered process output so the operator can retry by hand.
type InstallFailedError struct {
	Tool   string
	Output string
	Err    error
}

func (e *InstallFailedError) Error() string {
	return fmt.Sprintf("installing %s failed: %s", e.Tool, e.Output)
}

func (e *InstallFailedError) Unwrap() error { return e.Err }
