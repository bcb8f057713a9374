// Package genconfig writes the flat generator-options document that the
// pipeline's generate task hands to openapi-generator. Field names follow the
// go generator's option names exactly; the document is a plain key/value
// mapping with no logic of its own.
package genconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GeneratorConfig holds options for openapi-generator's go generator.
// See: https://openapi-generator.tech/docs/generators/go/
type GeneratorConfig struct {
	// Prefix enum names with the class name.
	EnumClassPrefix bool `yaml:"enumClassPrefix"`
	// Generate interfaces for api classes.
	GenerateInterfaces bool `yaml:"generateInterfaces"`
	// Hides the generation timestamp when files are generated.
	HideGenerationTimestamp bool `yaml:"hideGenerationTimestamp"`
	// Whether the generated package is a submodule of an existing module.
	IsGoSubmodule bool `yaml:"isGoSubmodule"`
	// Go package name (convention: lowercase).
	PackageName string `yaml:"packageName"`
	// Go package version.
	PackageVersion string `yaml:"packageVersion"`
	// Prefix every generated struct with this string.
	StructPrefix bool `yaml:"structPrefix"`
	// Use the discriminator's mapping to resolve oneOf models.
	UseOneOfDiscriminatorLookup bool `yaml:"useOneOfDiscriminatorLookup"`
	// Whether to include AWS v4 signature support.
	WithAWSV4Signature bool `yaml:"withAWSV4Signature"`
	// Generate a go.mod and go.sum for the package.
	WithGoMod bool `yaml:"withGoMod"`
	// Generate XML annotations inside the structs.
	WithXml bool `yaml:"withXml"`
}

// defaults per the go generator docs, except packageName which always comes
// from the invocation.
func defaults() GeneratorConfig {
	return GeneratorConfig{
		EnumClassPrefix:             false,
		GenerateInterfaces:          false,
		HideGenerationTimestamp:     true,
		IsGoSubmodule:               false,
		PackageName:                 "openapi",
		PackageVersion:              "1.0.0",
		StructPrefix:                false,
		UseOneOfDiscriminatorLookup: false,
		WithAWSV4Signature:          false,
		WithGoMod:                   true,
		WithXml:                     false,
	}
}

// New builds a config for the named library package.
func New(libName string) GeneratorConfig {
	cfg := defaults()
	cfg.PackageName = libName
	return cfg
}

// Write serializes the document to its fixed file name in dir, overwriting
// any prior file.
func (c GeneratorConfig) Write(dir, fileName string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serialize generator config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0o644); err != nil {
		return fmt.Errorf("write generator config: %w", err)
	}
	return nil
}
