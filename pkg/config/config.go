// Package config loads the optional toolchain configuration for the
// tensorbored proto generator. Every field has a default that reproduces the
// stock behavior, so running without a config file is the common case. The
// schema list itself is fixed in code and is deliberately not configurable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Demonstrandum/tensorbored/pkg/errors"
)

// Config holds the complete generator tool configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Generator GeneratorConfig `yaml:"generator" json:"generator"`
}

// LoggingConfig holds logging-specific configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// GeneratorConfig holds code-generation configuration
type GeneratorConfig struct {
	// BytesPackages lists schema package prefixes whose bytes fields are
	// emitted with the shared-buffer (CORD) representation.
	BytesPackages []string `yaml:"bytesPackages" json:"bytesPackages"`

	// Format runs the generated Go sources through gofmt. Off by default;
	// formatting is not needed to build.
	Format bool `yaml:"format" json:"format"`

	// Plugins are the protoc plugins invoked over the compiled schemas.
	Plugins []PluginConfig `yaml:"plugins" json:"plugins"`
}

// PluginConfig identifies one protoc plugin invocation
type PluginConfig struct {
	// Name is the plugin suffix, e.g. "go" for protoc-gen-go.
	Name string `yaml:"name" json:"name"`
	// Path overrides the plugin binary; defaults to protoc-gen-<name>
	// resolved from PATH.
	Path string `yaml:"path" json:"path"`
	// Parameter is passed verbatim as the plugin parameter.
	Parameter string `yaml:"parameter" json:"parameter"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "ERROR",
		},
		Generator: GeneratorConfig{
			BytesPackages: []string{"tensorbored"},
			Format:        false,
			Plugins: []PluginConfig{
				{Name: "go", Parameter: "paths=source_relative"},
				{Name: "go-grpc", Parameter: "paths=source_relative"},
			},
		},
	}
}

// LoadConfig loads tool configuration from the specified file.
//
//  1. Path given explicitly (error if missing)
//
//  2. Path from GENPROTOS_CONFIG environment variable
//
//  3. ./genprotos-config.yml
//
//  4. ./config/genprotos-config.yml
//
// When no file is found the defaults are returned with an empty path.
func LoadConfig(configPath string) (*Config, string, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = findConfig()
		if configPath == "" {
			return DefaultConfig(), "", nil
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, "", apperrors.NewConfigError("genprotos", "",
			fmt.Errorf("configuration file not found: %s", configPath))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, "", apperrors.NewConfigError("genprotos", "",
			fmt.Errorf("failed to read config file %s: %w", configPath, err))
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, "", apperrors.NewConfigError("genprotos", "",
			fmt.Errorf("failed to parse config: %w", err))
	}

	if err := config.Validate(); err != nil {
		return nil, "", err
	}

	return config, configPath, nil
}

// Validate checks the configuration for values the generator cannot use.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, p := range c.Generator.Plugins {
		if p.Name == "" {
			return apperrors.NewConfigError("generator", fmt.Sprintf("plugins[%d].name", i),
				fmt.Errorf("plugin name must not be empty"))
		}
		if seen[p.Name] {
			return apperrors.NewConfigError("generator", fmt.Sprintf("plugins[%d].name", i),
				fmt.Errorf("duplicate plugin %q", p.Name))
		}
		seen[p.Name] = true
	}
	for i, pkg := range c.Generator.BytesPackages {
		if pkg == "" || pkg == "." {
			return apperrors.NewConfigError("generator", fmt.Sprintf("bytesPackages[%d]", i),
				fmt.Errorf("package prefix must not be empty"))
		}
	}
	return nil
}

// findConfig searches for the tool configuration file in standard locations.
// Returns empty string if no configuration file is found.
func findConfig() string {
	if envPath := os.Getenv("GENPROTOS_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	locations := []string{
		"./genprotos-config.yml",
		filepath.Join("config", "genprotos-config.yml"),
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
