package pipeline

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mattjoyce/specforge/modconfig"
)

func TestRenderGenerateAllScript(t *testing.T) {
	cfg := modconfig.New("petstore-api")
	cfg.Requires = []modconfig.Require{{Path: "golang.org/x/oauth2", Version: "v0.21.0"}}

	script, err := RenderGenerateAllScript(cfg)
	require.NoError(t, err)

	// tool identity pinned into the runner manifest header and the import
	assert.Contains(t, script, "// taskmake:module "+modconfig.ModulePath+" "+modconfig.Version)
	assert.Contains(t, script, `"`+modconfig.ModulePath+`/modconfig"`)

	// the serialized configurator is embedded verbatim as a quoted string
	raw, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, script, strconv.Quote(string(raw)))

	// no template tokens survive rendering
	assert.NotContains(t, script, "@TOOL_MODULE@")
	assert.NotContains(t, script, "@TOOL_VERSION@")
	assert.NotContains(t, script, "@CONFIGURATOR@")
}

func TestRenderGenerateAllScriptDeterministic(t *testing.T) {
	cfg := modconfig.New("petstore-api")

	a, err := RenderGenerateAllScript(cfg)
	require.NoError(t, err)
	b, err := RenderGenerateAllScript(cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRenderedScriptRoundTripsConfigurator(t *testing.T) {
	cfg := modconfig.New("petstore-api")
	cfg.Requires = []modconfig.Require{{Path: "github.com/google/uuid"}}

	script, err := RenderGenerateAllScript(cfg)
	require.NoError(t, err)

	// Pull the quoted constant back out of the program text and check the
	// embedded document deserializes to the original configurator.
	const marker = "const configuratorYAML = "
	i := strings.Index(script, marker)
	require.GreaterOrEqual(t, i, 0)
	line := script[i+len(marker):]
	line = line[:strings.Index(line, "\n")]

	unquoted, err := strconv.Unquote(line)
	require.NoError(t, err)

	var back modconfig.Configurator
	require.NoError(t, yaml.Unmarshal([]byte(unquoted), &back))
	assert.Equal(t, *cfg, back)
}
