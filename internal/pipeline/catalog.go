package pipeline

import (
	"github.com/mattjoyce/specforge/modconfig"
)

// Catalog task names. Dependency edges below reference these; keeping them as
// constants lets the construction-time edge check catch a rename in one place.
const (
	TaskFixGenerated        = "fix-generated"
	TaskScaffold            = "scaffold"
	TaskGenerateAll         = "generate-all"
	TaskGenerate            = "generate"
	TaskGenerateDryRun      = "generate-dry-run"
	TaskCheckTool           = "check-tool"
	TaskInstallTool         = "install-tool"
	TaskCleanOutput         = "clean-output"
	TaskCreateOutput        = "create-output"
	TaskDownloadSpec        = "download-spec"
	TaskDownloadDefaultSpec = "download-default-spec"
)

// goScriptRunner is the runner directive for embedded Go programs.
const goScriptRunner = "@go"

// generateArgs returns a fresh option list for the generator invocation.
// Shared by generate and its dry-run variant; returning a new slice keeps the
// variants from aliasing one backing array.
func generateArgs() []string {
	return []string{
		"generate",
		"--generator-name", "go",
		"--output", "${OUTPUT_DIR}",
		"--input-spec", "${SPEC_FILE_PATH}",
		"--config", "${GENERATOR_CONFIG_PATH}",
	}
}

// FixGeneratedTask repairs generated sources in place across the whole tree.
func FixGeneratedTask() NamedTask {
	return NamedTask{
		Name: TaskFixGenerated,
		Task: Task{
			Description: "Fix ${LIB_NAME} generated code",
			Command:     "gofmt",
			Args:        []string{"-s", "-w", "."},
		},
	}
}

// ScaffoldTask sequences output directory setup. It has no action of its own;
// it exists only for its dependency edges.
func ScaffoldTask() NamedTask {
	return NamedTask{
		Name: TaskScaffold,
		Task: Task{
			Description: "Set up ${LIB_NAME} project",
			Dependencies: []string{
				TaskCreateOutput,
				TaskCleanOutput,
			},
		},
	}
}

// GenerateAllTask runs generation plus repair, then executes an embedded Go
// program that re-invokes the dependency-update routine with the serialized
// configurator. The only catalog constructor that can fail: it serializes the
// configurator into the embedded program text.
func GenerateAllTask(cfg *modconfig.Configurator) (NamedTask, error) {
	script, err := RenderGenerateAllScript(cfg)
	if err != nil {
		return NamedTask{}, err
	}
	return NamedTask{
		Name: TaskGenerateAll,
		Task: Task{
			Description: "Generate ${LIB_NAME} code and bring it up to par",
			Dependencies: []string{
				TaskGenerate,
				TaskFixGenerated,
			},
			ScriptRunner: goScriptRunner,
			Script:       script,
		},
	}, nil
}

// GenerateTask invokes the external generator. Gated on the generator CLI
// being reachable on PATH; the condition script's non-zero exit tells the
// operator how to install it. dryRun appends the generator's dry-run flag and
// a distinguishing name suffix.
func GenerateTask(dryRun bool) NamedTask {
	name := TaskGenerate
	args := generateArgs()
	if dryRun {
		name = TaskGenerateDryRun
		args = append(args, "--dry-run")
	}
	return NamedTask{
		Name: name,
		Task: Task{
			Description: "Generate ${LIB_NAME} code",
			ConditionScript: []string{
				"#!/bin/bash",
				"# check that the generator cli command exists",
				"if command -v ${GENERATOR_CLI_SCRIPT} >& /dev/null ; then",
				`  echo "Found generator CLI command."`,
				"  exit 0",
				"else",
				`  echo "Missing generator CLI command. Try running 'taskmake install-tool'."`,
				"  exit 1",
				"fi",
			},
			Command: "${GENERATOR_CLI_SCRIPT}",
			Args:    args,
		},
	}
}

// CheckToolTask probes for the generator CLI on PATH.
func CheckToolTask() NamedTask {
	return NamedTask{
		Name: TaskCheckTool,
		Task: Task{
			Description: "Check that the generator CLI is installed",
			Command:     "command",
			Args:        []string{"-v", "${GENERATOR_CLI_SCRIPT}"},
		},
	}
}

// installToolScript downloads the generator CLI artifact and walks the
// operator through enabling it: mark executable and append a PATH line to the
// shell profile (idempotently), review it in a pager and come back to the
// prompt, or delete it.
const installToolScript = `#!/bin/bash
CLI_SUBDIR=$HOME/${GENERATOR_CLI_SUBDIR}
CLI_PATH=$HOME/${GENERATOR_CLI_PATH}
CLI_SCRIPT=${GENERATOR_CLI_SCRIPT}
if [[ ! -s "$HOME/.bash_profile" && -s "$HOME/.profile" ]] ; then
    PROFILE_FILE="$HOME/.profile"
else
    PROFILE_FILE="$HOME/.bash_profile"
fi
function check_cli
{
    source $PROFILE_FILE
    if command -v $CLI_SCRIPT >& /dev/null
    then
        echo "Install success. You can now run the \"$CLI_SCRIPT\" command"
        echo "After running \"source $PROFILE_FILE\""
        exit 0
    else
        echo "Install failed."
        exit 0
    fi
}
function enable_cli
{
    chmod u+x $CLI_PATH
    line_to_add="export PATH=\$PATH:$CLI_SUBDIR/"
    if ! grep -q "$line_to_add" "${PROFILE_FILE}" ; then
        echo "Adding \"$line_to_add\" to ${PROFILE_FILE}."
        echo "# Generator CLI" >> $PROFILE_FILE
        echo "$line_to_add" >> $PROFILE_FILE
    else
        echo "Line already found in $PROFILE_FILE"
    fi
    check_cli
}
# review the downloaded cli artifact file and optionally enable
function deal_with_cli
{
    echo Downloaded generator CLI script at $CLI_PATH
    echo Do you want to enable, review the script or delete it?
    select erd in "Enable" "Review" "Delete"; do
        case $erd in
            Enable)
                enable_cli
                break
                ;;
            Review)
                less $CLI_PATH
                deal_with_cli
                break
                ;;
            Delete)
                rm $CLI_PATH
                rm -rf $CLI_SUBDIR
                exit 1
                ;;
        esac
    done
}
# get the cli
function get_cli
{
    mkdir -p $CLI_SUBDIR
    wget -N ${GENERATOR_CLI_URL} -O $CLI_PATH
}

get_cli
deal_with_cli
`

// InstallToolTask runs the interactive generator CLI installer script.
func InstallToolTask() NamedTask {
	return NamedTask{
		Name: TaskInstallTool,
		Task: Task{
			Description: "Install the generator CLI",
			Script:      installToolScript,
		},
	}
}

// CleanOutputTask recursively removes the output directory contents.
func CleanOutputTask() NamedTask {
	return NamedTask{
		Name: TaskCleanOutput,
		Task: Task{
			Description: "Clean ${LIB_NAME} output dir at ${OUTPUT_DIR}",
			Command:     "rm",
			Args:        []string{"-rf", "${OUTPUT_DIR}/*"},
		},
	}
}

// CreateOutputTask creates the output directory.
func CreateOutputTask() NamedTask {
	return NamedTask{
		Name: TaskCreateOutput,
		Task: Task{
			Description: "Create ${LIB_NAME} output dir at ${OUTPUT_DIR}",
			Command:     "mkdir",
			Args:        []string{"-p", "${OUTPUT_DIR}"},
		},
	}
}

// DownloadSpecTask downloads a spec from a caller-supplied URL argument.
func DownloadSpecTask() NamedTask {
	return NamedTask{
		Name: TaskDownloadSpec,
		Task: Task{
			Description: "Download the ${API_NAME} specification from a given URL",
			Command:     "wget",
			Args:        []string{"${@}", "-O", "${SPEC_FILE_PATH}"},
		},
	}
}

// DownloadDefaultSpecTask downloads from the pre-resolved default spec URL.
// Only included in the catalog when a default URL was supplied.
func DownloadDefaultSpecTask() NamedTask {
	return NamedTask{
		Name: TaskDownloadDefaultSpec,
		Task: Task{
			Description: "Download the ${API_NAME} specification from '${SPEC_FILE_URL}'",
			Command:     "wget",
			Args:        []string{"${SPEC_FILE_URL}", "-O", "${SPEC_FILE_PATH}"},
		},
	}
}
