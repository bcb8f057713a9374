// Package modconfig carries the dependency-update configuration for a
// generated project. The pipeline's generate-all task embeds a serialized
// Configurator inside a small Go program; when the external runner executes
// that program it re-enters this package and brings the generated go.mod up
// to date. The package is public (not internal/) precisely so the emitted
// program can import it, and for the same reason it spawns processes itself
// instead of depending on internal/exec.
package modconfig

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ModulePath is this tool's own module path, pinned into emitted programs.
const ModulePath = "github.com/mattjoyce/specforge"

// Version is this tool's version, overridden at release via -ldflags.
var Version = "0.1.0-dev"

// Require names one module requirement to add to the generated project.
type Require struct {
	Path    string `yaml:"path"`
	Version string `yaml:"version"`
}

// Configurator is the dependency-update document. It must survive a YAML
// round trip unchanged; the emitted program deserializes it verbatim.
type Configurator struct {
	ToolModule  string    `yaml:"tool_module"`
	ToolVersion string    `yaml:"tool_version"`
	PackageName string    `yaml:"package_name"`
	Requires    []Require `yaml:"requires,omitempty"`
}

// New builds a Configurator for the named generated package, pinned to the
// running tool's module and version.
func New(packageName string) *Configurator {
	return &Configurator{
		ToolModule:  ModulePath,
		ToolVersion: Version,
		PackageName: packageName,
	}
}

// Runner spawns one buffered command in a directory. Implementations return
// the combined output, the exit code when the process ran, and an error only
// when it could not be spawned.
type Runner interface {
	Run(ctx context.Context, dir, name string, args []string) (output string, exitCode int, err error)
}

// ExecRunner is the production Runner on os/exec.
type ExecRunner struct{}

// NewExecRunner creates an ExecRunner.
func NewExecRunner() *ExecRunner { return &ExecRunner{} }

// Run executes the command with stdout and stderr buffered together.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args []string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return buf.String(), exitErr.ExitCode(), nil
		}
		return buf.String(), 0, err
	}
	return buf.String(), 0, nil
}

// UpdateError reports a failed dependency update, carrying the buffered
// process output so the caller can surface it without re-running.
type UpdateError struct {
	Step   string
	Output string
	Err    error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("dependency update %q failed: %s", e.Step, e.Output)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// UpdateGoMod brings the generated project's go.mod up to date: one `go get`
// per requirement, then `go mod tidy`. Steps run sequentially and the first
// failure aborts the rest.
func (c *Configurator) UpdateGoMod(ctx context.Context, runner Runner, dir string) error {
	for _, req := range c.Requires {
		target := req.Path
		if req.Version != "" {
			target += "@" + req.Version
		}
		if err := runGo(ctx, runner, dir, "get", target); err != nil {
			return err
		}
	}
	return runGo(ctx, runner, dir, "mod", "tidy")
}

func runGo(ctx context.Context, runner Runner, dir string, args ...string) error {
	step := "go " + strings.Join(args, " ")
	out, code, err := runner.Run(ctx, dir, "go", args)
	if err != nil {
		return &UpdateError{Step: step, Output: out, Err: err}
	}
	if code != 0 {
		return &UpdateError{Step: step, Output: out}
	}
	return nil
}
