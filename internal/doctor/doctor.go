// Package doctor validates the environment a scaffold invocation depends on:
// the external tools the orchestrator and the emitted tasks invoke, and the
// target directory precondition.
package doctor

import (
	"fmt"
	"os"

	"github.com/mattjoyce/specforge/internal/cli"
	"github.com/mattjoyce/specforge/internal/exec"
	"github.com/mattjoyce/specforge/internal/pipeline"
)

// Result holds the outcome of a validation run.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// Issue describes a single validation error or warning.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Doctor validates the environment for an invocation context.
type Doctor struct {
	cctx   *cli.Context
	runner exec.CommandRunner
}

// New creates a Doctor.
func New(cctx *cli.Context, runner exec.CommandRunner) *Doctor {
	return &Doctor{cctx: cctx, runner: runner}
}

// Validate runs all checks and returns a result.
func (d *Doctor) Validate() *Result {
	r := &Result{Valid: true}

	d.checkRequiredTools(r)
	d.checkOptionalTools(r)
	d.checkTargetDir(r)
	d.checkSpecSource(r)

	r.Valid = len(r.Errors) == 0
	return r
}

func (d *Doctor) addError(r *Result, category, msg string) {
	r.Errors = append(r.Errors, Issue{Category: category, Message: msg})
}

func (d *Doctor) addWarning(r *Result, category, msg string) {
	r.Warnings = append(r.Warnings, Issue{Category: category, Message: msg})
}

// checkRequiredTools verifies the binaries the orchestrator itself spawns.
func (d *Doctor) checkRequiredTools(r *Result) {
	if !d.runner.LookPath("go") {
		d.addError(r, "tools", "go not found on PATH; the project initializer cannot run")
	}
}

// checkOptionalTools verifies the binaries the emitted tasks will need under
// the runner. Missing ones are warnings: scaffolding still succeeds, the
// pipeline just cannot run yet.
func (d *Doctor) checkOptionalTools(r *Result) {
	if !d.runner.LookPath("wget") {
		d.addWarning(r, "tools", "wget not found on PATH; download tasks will fail under the runner")
	}
	if !d.runner.LookPath(pipeline.GeneratorCLIScript) {
		d.addWarning(r, "tools", fmt.Sprintf(
			"%s not found on PATH; run the install-tool task before generating", pipeline.GeneratorCLIScript))
	}
	if !d.runner.LookPath("taskmake") {
		d.addWarning(r, "tools", "taskmake not found on PATH; install the task runner to execute the pipeline")
	}
}

// checkTargetDir mirrors the orchestrator's directory precondition without
// touching anything.
func (d *Doctor) checkTargetDir(r *Result) {
	dir := d.cctx.OutputProjectDir()
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return // absent is fine, scaffold creates it
		}
		d.addError(r, "target", fmt.Sprintf("cannot stat %s: %v", dir, err))
		return
	}
	if !info.IsDir() {
		d.addError(r, "target", fmt.Sprintf("%s exists and is not a directory", dir))
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		d.addError(r, "target", fmt.Sprintf("cannot read %s: %v", dir, err))
		return
	}
	if len(entries) > 0 {
		if d.cctx.TestMode {
			d.addWarning(r, "target", fmt.Sprintf("%s is not empty; test generation will wipe it", dir))
		} else {
			d.addError(r, "target", fmt.Sprintf("%s is not empty; scaffolding will refuse to run", dir))
		}
	}
}

// checkSpecSource verifies a spec file name can be resolved at all.
func (d *Doctor) checkSpecSource(r *Result) {
	if _, err := d.cctx.SpecFileName(); err != nil {
		d.addError(r, "params", err.Error())
	}
}
