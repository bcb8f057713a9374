package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattjoyce/specforge/internal/cli"
	"github.com/mattjoyce/specforge/internal/doctor"
	"github.com/mattjoyce/specforge/internal/exec"
	"github.com/mattjoyce/specforge/internal/log"
	"github.com/mattjoyce/specforge/internal/manifest"
	"github.com/mattjoyce/specforge/internal/scaffold"
	"github.com/mattjoyce/specforge/modconfig"
)

var (
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	os.Exit(runCLI(os.Args[1:]))
}

func runCLI(cliArgs []string) int {
	if len(cliArgs) < 1 {
		printUsage()
		return 1
	}

	cmd := cliArgs[0]
	args := cliArgs[1:]

	switch cmd {
	case "generate":
		return runGenerate(args, false)
	case "test-generation":
		return runGenerate(args, true)
	case "install-runner":
		return runInstallRunner(args)
	case "doctor":
		return runDoctor(args)
	case "verify":
		return runVerify(args)
	case "version", "--version":
		return runVersion(args)
	case "help", "--help", "-h":
		printUsage()
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Print(`specforge - Scaffold an API client library and its generation pipeline

Usage:
  specforge <command> [flags]

Commands:
  generate         Scaffold a project and emit its pipeline document
  test-generation  Like generate, but wipe the target and use a sample spec
  install-runner   Install the taskmake runner that executes the pipeline
  doctor           Check external tools and the target directory state
  verify           Check emitted artifacts against the checksum manifest
  version          Show version information

Run 'specforge <command> -h' for command flags.
`)
}

// contextFlags binds the shared invocation flags onto a flag set.
func contextFlags(fs *flag.FlagSet, cctx *cli.Context) {
	fs.StringVar(&cctx.APIName, "api-name", "", "Name of the API or site (required)")
	fs.StringVar(&cctx.APIURL, "api-url", "", "Base URL of the API (required)")
	fs.StringVar(&cctx.SpecURL, "spec-url", "", "Default spec download URL (optional)")
	fs.StringVar(&cctx.LocalSpecPath, "spec-file", "", "Path to a local spec file (optional)")
	fs.StringVar(&cctx.LibName, "lib-name", "", "Library package name (default: derived from api-name)")
	fs.StringVar(&cctx.OutputDir, "out", "", "Target project directory (required)")
	fs.StringVar(&cctx.LogLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	fs.StringVar(&cctx.LogFormat, "log-format", "text", "Log format (text or json)")
}

func runGenerate(args []string, testMode bool) int {
	name := "generate"
	if testMode {
		name = "test-generation"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cctx := &cli.Context{TestMode: testMode}
	contextFlags(fs, cctx)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if cctx.APIName == "" || cctx.APIURL == "" || cctx.OutputDir == "" {
		fmt.Fprintln(os.Stderr, "generate requires --api-name, --api-url and --out")
		return 2
	}
	if testMode && cctx.LocalSpecPath == "" {
		cctx.LocalSpecPath = filepath.Join(cctx.OutputDir, "petstore.yaml")
	}

	log.Setup(cctx.LogLevel, cctx.LogFormat)

	o := scaffold.New(cctx, exec.NewRealRunner())
	if err := o.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Scaffold failed: %v\n", err)
		return 1
	}

	fmt.Printf("Scaffolded %s at %s\n", cctx.ResolveLibName(), cctx.OutputProjectDir())
	return 0
}

func runInstallRunner(args []string) int {
	fs := flag.NewFlagSet("install-runner", flag.ContinueOnError)
	level := fs.String("log-level", "INFO", "Log level")
	format := fs.String("log-format", "text", "Log format")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log.Setup(*level, *format)

	if err := scaffold.InstallRunner(context.Background(), exec.NewRealRunner()); err != nil {
		fmt.Fprintf(os.Stderr, "Install failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "You can retry manually: go install %s\n", scaffold.RunnerInstallTarget)
		return 1
	}
	return 0
}

func runDoctor(args []string) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "Output the report as JSON")
	cctx := &cli.Context{}
	contextFlags(fs, cctx)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	result := doctor.New(cctx, exec.NewRealRunner()).Validate()

	if *jsonOut {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	} else {
		for _, e := range result.Errors {
			fmt.Printf("ERROR [%s] %s\n", e.Category, e.Message)
		}
		for _, w := range result.Warnings {
			fmt.Printf("WARN  [%s] %s\n", w.Category, w.Message)
		}
		if result.Valid {
			fmt.Println("Environment OK")
		}
	}

	if !result.Valid {
		return 1
	}
	return 0
}

func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	dir := fs.String("dir", ".", "Project directory holding the checksum manifest")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	result, err := manifest.Verify(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Verify failed: %v\n", err)
		return 1
	}

	for _, e := range result.Errors {
		fmt.Printf("ERROR %s\n", e)
	}
	for _, w := range result.Warnings {
		fmt.Printf("WARN  %s\n", w)
	}
	if !result.Passed {
		return 1
	}
	fmt.Println("Artifacts match the manifest")
	return 0
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

func runVersion(args []string) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "Output version metadata as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	info := versionInfo{Version: modconfig.Version, Commit: gitCommit, BuildTime: buildDate}
	if *jsonOut {
		data, _ := json.Marshal(info)
		fmt.Println(string(data))
		return 0
	}
	fmt.Printf("specforge version %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildTime)
	return 0
}
