package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/specforge/internal/cli"
	"github.com/mattjoyce/specforge/modconfig"
)

// Spec is the complete document emitted for the runner: the environment
// section plus the task catalog. Built once per invocation, immutable, and
// written exactly once.
type Spec struct {
	Env   Env             `yaml:"env"`
	Tasks map[string]Task `yaml:"tasks"`
}

// Assemble builds the environment and the full task catalog from the
// invocation context. download-default-spec is included only when a default
// spec URL was supplied.
func Assemble(ctx *cli.Context) (*Spec, error) {
	env, err := BuildEnv(ctx)
	if err != nil {
		return nil, err
	}

	generateAll, err := GenerateAllTask(modconfig.New(ctx.ResolveLibName()))
	if err != nil {
		return nil, err
	}

	named := []NamedTask{
		FixGeneratedTask(),
		ScaffoldTask(),
		generateAll,
		GenerateTask(false),
		GenerateTask(true),
		CheckToolTask(),
		InstallToolTask(),
		CleanOutputTask(),
		CreateOutputTask(),
		DownloadSpecTask(),
	}
	if ctx.SpecURL != "" {
		named = append(named, DownloadDefaultSpecTask())
	}

	tasks, err := buildTaskMap(named)
	if err != nil {
		return nil, err
	}

	return &Spec{Env: env, Tasks: tasks}, nil
}

// buildTaskMap keys tasks by name, rejecting duplicate names and dependency
// edges that point outside the catalog. Both are builder regressions; catching
// them here keeps the emitted document internally consistent.
func buildTaskMap(named []NamedTask) (map[string]Task, error) {
	tasks := make(map[string]Task, len(named))
	for _, nt := range named {
		if nt.Name == "" {
			return nil, fmt.Errorf("task with empty name")
		}
		if _, exists := tasks[nt.Name]; exists {
			return nil, fmt.Errorf("duplicate task name %q", nt.Name)
		}
		tasks[nt.Name] = nt.Task
	}
	for name, task := range tasks {
		for _, dep := range task.Dependencies {
			if _, ok := tasks[dep]; !ok {
				return nil, fmt.Errorf("task %q depends on unknown task %q", name, dep)
			}
		}
	}
	return tasks, nil
}

// Write serializes the document to its fixed file name in dir, overwriting
// any prior file. Serialization and I/O errors propagate verbatim.
func (s *Spec) Write(dir string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("serialize pipeline document: %w", err)
	}

	path := filepath.Join(dir, PipelineFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pipeline document: %w", err)
	}
	return nil
}
