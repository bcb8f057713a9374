// Package cli holds the resolved invocation context shared by every component.
// Flag parsing lives in cmd/specforge; this package is pure derivation, no I/O.
package cli

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Well-known names inside a scaffolded project.
const (
	// WorkDirName is the internal working subdirectory created in the project
	// root and excluded from version control.
	WorkDirName = ".specforge"

	// GitignoreName is the ignore file written during scaffolding.
	GitignoreName = ".gitignore"
)

// Context is the resolved CLI context for one invocation.
// Built once from parsed flags, immutable thereafter.
type Context struct {
	APIName       string // display/identity name of the API or site
	APIURL        string // base URL of the API
	SpecURL       string // optional default spec download URL ("" if none)
	LibName       string // optional library/package name; derived from APIName when empty
	LocalSpecPath string // optional path to a user-supplied local spec file
	OutputDir     string // target project directory
	TestMode      bool   // test-generation invocation

	LogLevel  string
	LogFormat string
}

// ParamError reports a required parameter that could not be resolved from the
// CLI context.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("missing required parameter %q: %s", e.Param, e.Reason)
}

// ResolveLibName returns the library/package name, deriving it from the API
// name when not supplied explicitly.
func (c *Context) ResolveLibName() string {
	if c.LibName != "" {
		return c.LibName
	}
	return sanitizeName(c.APIName) + "-api"
}

// SpecFileName resolves the local spec file name: the base name of the local
// spec path when one was supplied, otherwise the base name of the default spec
// URL path. Fails when neither yields a usable name.
func (c *Context) SpecFileName() (string, error) {
	if c.LocalSpecPath != "" {
		name := filepath.Base(c.LocalSpecPath)
		if name != "." && name != string(filepath.Separator) {
			return name, nil
		}
	}
	if c.SpecURL != "" {
		if u, err := url.Parse(c.SpecURL); err == nil {
			name := path.Base(u.Path)
			if name != "." && name != "/" && name != "" {
				return name, nil
			}
		}
	}
	return "", &ParamError{
		Param:  "spec-file",
		Reason: "no local spec path and no default spec URL to derive a file name from",
	}
}

// OutputProjectDir returns the cleaned target project directory.
func (c *Context) OutputProjectDir() string {
	return filepath.Clean(c.OutputDir)
}

// OutputProjectSubpath joins parts under the target project directory.
func (c *Context) OutputProjectSubpath(parts ...string) string {
	return filepath.Join(append([]string{c.OutputProjectDir()}, parts...)...)
}

// sanitizeName lowercases a display name and squeezes every run of
// non-alphanumeric characters into a single dash.
func sanitizeName(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
