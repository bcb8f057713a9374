// Package scaffold runs the ordered setup sequence for one invocation:
// prepare the target directory, initialize the project, lay out the internal
// working tree, and emit the pipeline documents. Steps run strictly in order
// and the first failure aborts the rest; there is no rollback. An aborted run
// may leave a partially populated directory — acceptable because non-test
// mode requires an empty starting directory and test mode wipes on the next
// invocation.
package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/mattjoyce/specforge/internal/cli"
	"github.com/mattjoyce/specforge/internal/exec"
	"github.com/mattjoyce/specforge/internal/genconfig"
	"github.com/mattjoyce/specforge/internal/lock"
	"github.com/mattjoyce/specforge/internal/log"
	"github.com/mattjoyce/specforge/internal/manifest"
	"github.com/mattjoyce/specforge/internal/pipeline"
)

// Orchestrator drives the scaffold sequence for one invocation.
type Orchestrator struct {
	cctx   *cli.Context
	runner exec.CommandRunner
	logger *slog.Logger
	runID  string
}

// New creates an Orchestrator with a fresh run ID.
func New(cctx *cli.Context, runner exec.CommandRunner) *Orchestrator {
	runID := uuid.NewString()
	return &Orchestrator{
		cctx:   cctx,
		runner: runner,
		logger: log.WithRun(runID).With(slog.String("component", "scaffold")),
		runID:  runID,
	}
}

// Run executes the full sequence. The target directory is locked for the
// duration so two invocations cannot race on it.
func (o *Orchestrator) Run(ctx context.Context) error {
	dir := o.cctx.OutputProjectDir()

	l, err := lock.Acquire(dir)
	if err != nil {
		return err
	}
	defer func() { _ = l.Release() }()

	o.logger.Info("scaffolding project", "dir", dir, "test_mode", o.cctx.TestMode)

	if o.cctx.TestMode {
		if err := o.resetDir(dir); err != nil {
			return err
		}
	} else {
		if err := o.createDirAndCheckEmpty(dir); err != nil {
			return err
		}
	}
	if err := o.initProject(ctx, dir); err != nil {
		return err
	}
	if err := o.setupWorkDir(); err != nil {
		return err
	}
	if err := o.writeGitignore(); err != nil {
		return err
	}
	if o.cctx.TestMode {
		if err := o.writeTestSpec(); err != nil {
			return err
		}
	}
	if err := o.emitDocuments(); err != nil {
		return err
	}

	o.logger.Info("scaffold complete", "dir", dir)
	return nil
}

// resetDir wipes and recreates the target directory (test mode only).
func (o *Orchestrator) resetDir(dir string) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove test directory: %w", err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create test directory: %w", err)
	}
	return nil
}

// createDirAndCheckEmpty creates the target directory if absent and fails if
// it holds any entry.
func (o *Orchestrator) createDirAndCheckEmpty(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read project directory: %w", err)
	}
	if len(entries) > 0 {
		return &NonEmptyDirError{Dir: dir}
	}
	return nil
}

// initProject invokes the external project initializer in the prepared
// directory. All process output is buffered and carried on failure.
func (o *Orchestrator) initProject(ctx context.Context, dir string) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return &MissingDirError{Dir: dir}
	}

	libName := o.cctx.ResolveLibName()
	res, err := o.runner.Run(ctx, "go", []string{"mod", "init", libName}, exec.RunOpts{Dir: dir})
	if err != nil {
		return &InitFailedError{Dir: dir, Output: res.Combined(), Err: err}
	}
	if res.ExitCode != 0 {
		e := &InitFailedError{Dir: dir, Output: res.Combined()}
		o.logger.Error("project init failed", "dir", dir, "output", res.Combined())
		return e
	}

	o.logger.Info("initialized project", "dir", dir, "module", libName)
	return nil
}

// setupWorkDir creates the internal working subdirectory.
func (o *Orchestrator) setupWorkDir() error {
	workDir := o.cctx.OutputProjectSubpath(cli.WorkDirName)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("create working directory: %w", err)
	}
	return nil
}

// writeGitignore writes the ignore file naming the working subdirectory.
// Known limitation: this overwrites any existing ignore file rather than
// merging; safe today only because the directory was empty (or freshly
// wiped) when this step runs.
func (o *Orchestrator) writeGitignore() error {
	path := o.cctx.OutputProjectSubpath(cli.GitignoreName)
	content := "/" + cli.WorkDirName + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write ignore file: %w", err)
	}
	return nil
}

// writeTestSpec writes the embedded sample specification to the resolved
// local spec path (test mode only).
func (o *Orchestrator) writeTestSpec() error {
	path := o.cctx.LocalSpecPath
	if path == "" {
		return &cli.ParamError{
			Param:  "spec-file",
			Reason: "test generation needs a local spec path to write the sample specification to",
		}
	}
	if err := os.WriteFile(path, []byte(PetstoreYAML), 0o644); err != nil {
		return fmt.Errorf("write sample specification: %w", err)
	}
	o.logger.Info("wrote sample specification", "path", path)
	return nil
}

// emitDocuments writes the generator config, the pipeline document, and the
// checksum manifest over both.
func (o *Orchestrator) emitDocuments() error {
	dir := o.cctx.OutputProjectDir()

	cfg := genconfig.New(o.cctx.ResolveLibName())
	if err := cfg.Write(dir, pipeline.GeneratorConfigFileName); err != nil {
		return err
	}

	spec, err := pipeline.Assemble(o.cctx)
	if err != nil {
		return err
	}
	if err := spec.Write(dir); err != nil {
		return err
	}

	if err := manifest.Generate(dir, o.runID, []string{
		pipeline.PipelineFileName,
		pipeline.GeneratorConfigFileName,
	}); err != nil {
		return err
	}

	o.logger.Info("emitted pipeline documents",
		"pipeline", pipeline.PipelineFileName,
		"generator_config", pipeline.GeneratorConfigFileName)
	return nil
}
