package cli

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLibName(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{
			name: "explicit lib name wins",
			ctx:  Context{APIName: "Petstore", LibName: "petstore-client"},
			want: "petstore-client",
		},
		{
			name: "derived from api name",
			ctx:  Context{APIName: "Petstore"},
			want: "petstore-api",
		},
		{
			name: "spaces and punctuation squeezed",
			ctx:  Context{APIName: "My  Cool_API v2"},
			want: "my-cool-api-v2-api",
		},
		{
			name: "trailing punctuation trimmed",
			ctx:  Context{APIName: "weird!!"},
			want: "weird-api",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ctx.ResolveLibName())
		})
	}
}

func TestSpecFileName(t *testing.T) {
	tests := []struct {
		name    string
		ctx     Context
		want    string
		wantErr bool
	}{
		{
			name: "from local path",
			ctx:  Context{LocalSpecPath: "/tmp/specs/petstore.yaml"},
			want: "petstore.yaml",
		},
		{
			name: "local path beats url",
			ctx:  Context{LocalSpecPath: "local.yaml", SpecURL: "https://example.com/remote.json"},
			want: "local.yaml",
		},
		{
			name: "from default spec url",
			ctx:  Context{SpecURL: "https://example.com/api/spec.json"},
			want: "spec.json",
		},
		{
			name:    "nothing to derive from",
			ctx:     Context{},
			wantErr: true,
		},
		{
			name:    "url with empty path",
			ctx:     Context{SpecURL: "https://example.com"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ctx.SpecFileName()
			if tt.wantErr {
				require.Error(t, err)
				var pe *ParamError
				assert.True(t, errors.As(err, &pe), "want ParamError, got %T", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputPaths(t *testing.T) {
	ctx := Context{OutputDir: "./out/proj/"}

	assert.Equal(t, filepath.Clean("./out/proj"), ctx.OutputProjectDir())
	assert.Equal(t,
		filepath.Join("out", "proj", WorkDirName),
		ctx.OutputProjectSubpath(WorkDirName))
	assert.Equal(t,
		filepath.Join("out", "proj", ".specforge", "specdl"),
		ctx.OutputProjectSubpath(WorkDirName, "specdl"))
}
