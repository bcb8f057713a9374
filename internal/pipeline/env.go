package pipeline

import (
	"github.com/mattjoyce/specforge/internal/cli"
)

// Defaults for the generator tool artifact and the documents written beside
// the pipeline document.
const (
	// PipelineFileName is the fixed name of the emitted document in the
	// project root.
	PipelineFileName = "pipeline.yaml"

	// GeneratorConfigFileName is the generator options document the generate
	// task points openapi-generator at.
	GeneratorConfigFileName = "generator_config.yaml"

	// GeneratorCLIURL is the download URL of the generator launcher script.
	GeneratorCLIURL = "https://raw.githubusercontent.com/OpenAPITools/openapi-generator/master/bin/utils/openapi-generator-cli.sh"

	// GeneratorCLISubdir is where the launcher lands under $HOME.
	GeneratorCLISubdir = "bin/openapitools"

	// GeneratorCLIScript is the launcher's executable name.
	GeneratorCLIScript = "openapi-generator-cli"
)

// Env is the environment section of the emitted document. Values are either
// literals or strings embedding ${NAME} substitution tokens that reference
// other entries; tokens are emitted verbatim and resolved only by the runner.
type Env struct {
	APIURL              string `yaml:"API_URL"`
	APIName             string `yaml:"API_NAME"`
	LibName             string `yaml:"LIB_NAME"`
	OutputDir           string `yaml:"OUTPUT_DIR"`
	OutputTmpDir        string `yaml:"OUTPUT_TMP_DIR"`
	GeneratorCLIURL     string `yaml:"GENERATOR_CLI_URL"`
	GeneratorCLISubdir  string `yaml:"GENERATOR_CLI_SUBDIR"`
	GeneratorCLIPath    string `yaml:"GENERATOR_CLI_PATH"`
	GeneratorCLIScript  string `yaml:"GENERATOR_CLI_SCRIPT"`
	GeneratorConfigFile string `yaml:"GENERATOR_CONFIG_FILE"`
	GeneratorConfigPath string `yaml:"GENERATOR_CONFIG_PATH"`
	SpecDownloadDir     string `yaml:"SPEC_DOWNLOAD_DIR"`
	SpecFileName        string `yaml:"SPEC_FILE_NAME"`
	SpecFilePath        string `yaml:"SPEC_FILE_PATH"`
	SpecFileURL         string `yaml:"SPEC_FILE_URL"`
}

// BuildEnv derives the full environment section from the invocation context.
// Fails only when the spec file name cannot be resolved (cli.ParamError).
// Paths are relative to the project root because the runner executes there.
func BuildEnv(ctx *cli.Context) (Env, error) {
	specFileName, err := ctx.SpecFileName()
	if err != nil {
		return Env{}, err
	}

	return Env{
		APIURL:              ctx.APIURL,
		APIName:             ctx.APIName,
		LibName:             ctx.ResolveLibName(),
		OutputDir:           ".",
		OutputTmpDir:        "./" + cli.WorkDirName,
		GeneratorCLIURL:     GeneratorCLIURL,
		GeneratorCLISubdir:  GeneratorCLISubdir,
		GeneratorCLIPath:    "${GENERATOR_CLI_SUBDIR}/${GENERATOR_CLI_SCRIPT}",
		GeneratorCLIScript:  GeneratorCLIScript,
		GeneratorConfigFile: GeneratorConfigFileName,
		GeneratorConfigPath: "${GENERATOR_CONFIG_FILE}",
		SpecDownloadDir:     "${OUTPUT_TMP_DIR}/specdl",
		SpecFileName:        specFileName,
		SpecFilePath:        "${SPEC_FILE_NAME}",
		SpecFileURL:         ctx.SpecURL,
	}, nil
}
