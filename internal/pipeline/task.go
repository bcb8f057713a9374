// Package pipeline models the env+tasks document that specforge emits for the
// external taskmake runner: a flat environment mapping plus a catalog of named
// tasks with dependency edges, condition scripts, and embedded scripts. The
// runner resolves ${NAME} substitution tokens and schedules tasks along the
// dependency edges; this package only constructs and serializes the document.
package pipeline

// Task is one named unit of work in the emitted document. A task carries
// either a command plus args or an inline script; mixing is legal on the wire
// but no catalog task does both. ConditionScript gates execution by exit
// status under the runner: zero proceeds, non-zero skips.
type Task struct {
	Description     string   `yaml:"description,omitempty"`
	Command         string   `yaml:"command,omitempty"`
	Args            []string `yaml:"args,omitempty"`
	Dependencies    []string `yaml:"dependencies,omitempty"`
	ConditionScript []string `yaml:"condition_script,omitempty"`
	ScriptRunner    string   `yaml:"script_runner,omitempty"`
	Script          string   `yaml:"script,omitempty"`
}

// NamedTask pairs a Task with its catalog name.
type NamedTask struct {
	Name string
	Task Task
}
