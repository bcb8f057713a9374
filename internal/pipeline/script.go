package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/specforge/modconfig"
)

// generateAllScriptTemplate is the source text of the program embedded in the
// generate-all task. The leading taskmake:module comments are the runner's
// manifest contract for the @go script runner: each names a module the
// program needs, pinned to a version. Placeholders:
//
//	@TOOL_MODULE@   this tool's module path
//	@TOOL_VERSION@  this tool's version
//	@CONFIGURATOR@  the serialized modconfig document, as a quoted Go string
const generateAllScriptTemplate = `// taskmake:module @TOOL_MODULE@ @TOOL_VERSION@
// taskmake:module gopkg.in/yaml.v3 v3.0.1
package main

import (
	"context"
	"log"

	"@TOOL_MODULE@/modconfig"
	"gopkg.in/yaml.v3"
)

const configuratorYAML = @CONFIGURATOR@

func main() {
	var c modconfig.Configurator
	if err := yaml.Unmarshal([]byte(configuratorYAML), &c); err != nil {
		log.Fatal(err)
	}
	if err := c.UpdateGoMod(context.Background(), modconfig.NewExecRunner(), "."); err != nil {
		log.Fatal(err)
	}
}
`

// placeholderPattern matches any unfilled @NAME@ template token.
var placeholderPattern = regexp.MustCompile(`@[A-Z_]+@`)

// RenderGenerateAllScript fills the embedded-program template from the
// configurator. Fails if the configurator cannot be serialized; this is the
// only fallible step in catalog construction.
func RenderGenerateAllScript(cfg *modconfig.Configurator) (string, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("serialize configurator: %w", err)
	}

	script := strings.NewReplacer(
		"@TOOL_MODULE@", cfg.ToolModule,
		"@TOOL_VERSION@", cfg.ToolVersion,
		"@CONFIGURATOR@", strconv.Quote(string(raw)),
	).Replace(generateAllScriptTemplate)

	if leftover := placeholderPattern.FindString(script); leftover != "" {
		return "", fmt.Errorf("unfilled script placeholder %s", leftover)
	}
	return script, nil
}
