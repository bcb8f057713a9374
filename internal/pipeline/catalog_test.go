package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattjoyce/specforge/modconfig"
)

func TestFixGeneratedTask(t *testing.T) {
	nt := FixGeneratedTask()

	assert.Equal(t, TaskFixGenerated, nt.Name)
	assert.Equal(t, "gofmt", nt.Task.Command)
	assert.Equal(t, []string{"-s", "-w", "."}, nt.Task.Args)
	assert.Empty(t, nt.Task.Dependencies)
}

func TestScaffoldTaskSequencesDirectorySetup(t *testing.T) {
	nt := ScaffoldTask()

	assert.Equal(t, TaskScaffold, nt.Name)
	assert.Empty(t, nt.Task.Command, "scaffold has no direct action")
	assert.Empty(t, nt.Task.Script)
	assert.Equal(t, []string{TaskCreateOutput, TaskCleanOutput}, nt.Task.Dependencies)
}

func TestGenerateTaskVariants(t *testing.T) {
	plain := GenerateTask(false)
	dry := GenerateTask(true)

	assert.Equal(t, TaskGenerate, plain.Name)
	assert.Equal(t, TaskGenerateDryRun, dry.Name)

	assert.Equal(t, "${GENERATOR_CLI_SCRIPT}", plain.Task.Command)
	assert.Equal(t, []string{
		"generate",
		"--generator-name", "go",
		"--output", "${OUTPUT_DIR}",
		"--input-spec", "${SPEC_FILE_PATH}",
		"--config", "${GENERATOR_CONFIG_PATH}",
	}, plain.Task.Args)

	assert.Equal(t, append(plain.Task.Args, "--dry-run"), dry.Task.Args)

	for _, nt := range []NamedTask{plain, dry} {
		cond := strings.Join(nt.Task.ConditionScript, "\n")
		assert.Contains(t, cond, "command -v ${GENERATOR_CLI_SCRIPT}")
		assert.Contains(t, cond, "exit 1")
	}
}

func TestGenerateArgsReturnsFreshSlice(t *testing.T) {
	a := generateArgs()
	b := generateArgs()
	a[0] = "mutated"

	assert.Equal(t, "generate", b[0])
}

func TestDryRunDoesNotMutatePlainVariant(t *testing.T) {
	// Building the dry-run variant first must not leak --dry-run into the
	// plain variant through a shared backing array.
	_ = GenerateTask(true)
	plain := GenerateTask(false)

	assert.NotContains(t, plain.Task.Args, "--dry-run")
}

func TestGenerateAllTask(t *testing.T) {
	nt, err := GenerateAllTask(modconfig.New("petstore-api"))
	require.NoError(t, err)

	assert.Equal(t, TaskGenerateAll, nt.Name)
	assert.Equal(t, []string{TaskGenerate, TaskFixGenerated}, nt.Task.Dependencies)
	assert.Equal(t, "@go", nt.Task.ScriptRunner)
	assert.Contains(t, nt.Task.Script, "modconfig.Configurator")
	assert.Contains(t, nt.Task.Script, "petstore-api")
}

func TestCheckToolTask(t *testing.T) {
	nt := CheckToolTask()

	assert.Equal(t, TaskCheckTool, nt.Name)
	assert.Equal(t, "command", nt.Task.Command)
	assert.Equal(t, []string{"-v", "${GENERATOR_CLI_SCRIPT}"}, nt.Task.Args)
}

func TestInstallToolTaskScript(t *testing.T) {
	nt := InstallToolTask()

	require.Equal(t, TaskInstallTool, nt.Name)
	script := nt.Task.Script
	assert.Empty(t, nt.Task.Command, "install-tool is script-only")

	// download, then the enable/review/delete prompt
	assert.Contains(t, script, "wget -N ${GENERATOR_CLI_URL}")
	assert.Contains(t, script, `select erd in "Enable" "Review" "Delete"`)
	// review loops back to the prompt after the pager closes
	assert.Contains(t, script, "less $CLI_PATH")
	assert.Contains(t, script, "deal_with_cli")
	// enable is idempotent on the profile line
	assert.Contains(t, script, "grep -q")
	assert.Contains(t, script, "chmod u+x $CLI_PATH")
}

func TestOutputDirTasks(t *testing.T) {
	clean := CleanOutputTask()
	create := CreateOutputTask()

	assert.Equal(t, "rm", clean.Task.Command)
	assert.Equal(t, []string{"-rf", "${OUTPUT_DIR}/*"}, clean.Task.Args)
	assert.Equal(t, "mkdir", create.Task.Command)
	assert.Equal(t, []string{"-p", "${OUTPUT_DIR}"}, create.Task.Args)
}

func TestDownloadTasks(t *testing.T) {
	spec := DownloadSpecTask()
	dflt := DownloadDefaultSpecTask()

	assert.Equal(t, "wget", spec.Task.Command)
	assert.Equal(t, []string{"${@}", "-O", "${SPEC_FILE_PATH}"}, spec.Task.Args,
		"download-spec takes its URL from runner varargs")

	assert.Equal(t, "wget", dflt.Task.Command)
	assert.Equal(t, []string{"${SPEC_FILE_URL}", "-O", "${SPEC_FILE_PATH}"}, dflt.Task.Args)
}
