// Package cli wires up the genprotos command tree.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Demonstrandum/tensorbored/internal/protogen/codegen"
	"github.com/Demonstrandum/tensorbored/internal/protogen/manifest"
	"github.com/Demonstrandum/tensorbored/pkg/config"
	apperrors "github.com/Demonstrandum/tensorbored/pkg/errors"
	"github.com/Demonstrandum/tensorbored/pkg/logger"
)

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	var configPath string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "genprotos <output-root>",
		Short: "Generate Go sources and a descriptor set from the tensorbored schemas",
		Long: `genprotos compiles the fixed set of tensorbored .proto schemas, relative to
the current working directory, into generated Go code plus a serialized
file-descriptor set under <output-root>/genproto/.

Bytes fields in the tensorbored schema packages are emitted with the
shared-buffer representation, and generated sources are written exactly as
the plugins produce them (no reformatting pass).

On success nothing is printed; any failure aborts the run with a non-zero
exit status.`,
		Args:          outputRootArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], configPath, logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to toolchain configuration file (searches common locations if not specified)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override the configured log level (DEBUG, INFO, WARN, ERROR)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}

// outputRootArgs enforces the single positional argument. A missing output
// root is a startup precondition failure, reported before any generator work.
func outputRootArgs(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errors.New("must give output directory as first argument")
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected extra arguments: %v", args[1:])
	}
	return nil
}

// outputPaths derives the generated-artifacts directory and the descriptor
// file path from the output root.
func outputPaths(outputRoot string) (outDir, descriptorPath string) {
	outDir = filepath.Join(outputRoot, manifest.OutSubdir)
	return outDir, filepath.Join(outDir, manifest.DescriptorFile)
}

func runGenerate(cmd *cobra.Command, outputRoot, configPath, logLevel string) error {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	parsed, err := logger.ParseLevel(level)
	if err != nil {
		return apperrors.NewConfigError("logging", "level", err)
	}
	logger.SetLevel(parsed)

	log := logger.WithField("component", "genprotos")
	if cfgPath != "" {
		log.Debug("loaded configuration", "path", cfgPath)
	}

	outDir, descriptorPath := outputPaths(outputRoot)
	log.Debug("generating", "outDir", outDir, "descriptor", descriptorPath)

	gen := codegen.New(codegen.Options{
		OutDir:            outDir,
		DescriptorSetPath: descriptorPath,
		BytesPackages:     cfg.Generator.BytesPackages,
		Format:            cfg.Generator.Format,
		Plugins:           pluginsFromConfig(cfg.Generator.Plugins),
	})
	return gen.Run(cmd.Context(), manifest.Files(), manifest.ImportPaths())
}

func pluginsFromConfig(plugins []config.PluginConfig) []codegen.Plugin {
	if len(plugins) == 0 {
		return nil
	}
	out := make([]codegen.Plugin, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, codegen.Plugin{Name: p.Name, Path: p.Path, Parameter: p.Parameter})
	}
	return out
}
