package scaffold

import (
	"context"

	"github.com/mattjoyce/specforge/internal/exec"
	"github.com/mattjoyce/specforge/internal/log"
)

// RunnerInstallTarget is the go-install target for the external task runner
// that consumes the emitted pipeline document.
const RunnerInstallTarget = "github.com/mattjoyce/taskmake/cmd/taskmake@latest"

// InstallRunner installs the external task runner. Failure output is buffered
// into the error so the operator can run the install command manually.
func InstallRunner(ctx context.Context, runner exec.CommandRunner) error {
	logger := log.WithComponent("install")

	res, err := runner.Run(ctx, "go", []string{"install", RunnerInstallTarget}, exec.RunOpts{})
	if err != nil {
		return &InstallFailedError{Tool: RunnerInstallTarget, Output: res.Combined(), Err: err}
	}
	if res.ExitCode != 0 {
		e := &InstallFailedError{Tool: RunnerInstallTarget, Output: res.Combined()}
		logger.Error("runner install failed", "output", res.Combined())
		return e
	}

	logger.Info("installed task runner", "target", RunnerInstallTarget)
	return nil
}
