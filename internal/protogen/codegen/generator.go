// Package codegen drives protoc plugins over compiled schema descriptors and
// writes the resulting sources and the serialized descriptor set. It is the
// Go counterpart of a protoc invocation, configured in code rather than on a
// command line.
package codegen

import (
	"context"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/Demonstrandum/tensorbored/internal/protogen/compiler"
	apperrors "github.com/Demonstrandum/tensorbored/pkg/errors"
	"github.com/Demonstrandum/tensorbored/pkg/logger"
)

// Generator runs the full generation pipeline: compile, mark shared-buffer
// bytes fields, write the descriptor set, invoke each plugin, write its
// output. Any failure aborts the run; nothing is retried.
type Generator struct {
	opts   Options
	runner Runner
	log    *logger.Logger
}

func New(opts Options) *Generator {
	return NewWithRunner(opts, execRunner{})
}

// NewWithRunner is split out so tests can substitute the plugin transport.
func NewWithRunner(opts Options, runner Runner) *Generator {
	if opts.Plugins == nil {
		opts.Plugins = DefaultPlugins()
	}
	return &Generator{
		opts:   opts,
		runner: runner,
		log:    logger.WithField("component", "codegen"),
	}
}

// Run compiles the named schema files against the include roots and
// generates code for them.
func (g *Generator) Run(ctx context.Context, filenames []string, importPaths []string) error {
	res, err := compiler.Compile(ctx, filenames, importPaths)
	if err != nil {
		return err
	}

	marked := markSharedBytes(res.Set, g.opts.BytesPackages)
	g.log.Debug("marked shared-buffer bytes fields", "fields", marked)

	// The descriptor set is written only once compilation has succeeded, so
	// a failed run never leaves a descriptor file behind.
	if g.opts.DescriptorSetPath != "" {
		if err := writeDescriptorSet(g.opts.DescriptorSetPath, res.Set); err != nil {
			return err
		}
		g.log.Debug("wrote descriptor set", "path", g.opts.DescriptorSetPath)
	}

	for _, plugin := range g.opts.Plugins {
		if err := g.runPlugin(ctx, plugin, filenames, res.Set); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) runPlugin(ctx context.Context, plugin Plugin, filenames []string, set *descriptorpb.FileDescriptorSet) error {
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: filenames,
		ProtoFile:      set.GetFile(),
	}
	if plugin.Parameter != "" {
		req.Parameter = proto.String(plugin.Parameter)
	}

	resp, err := g.runner.Run(ctx, plugin.binary(), req)
	if err != nil {
		return apperrors.WrapPluginError(plugin.binary(), "exec", err)
	}
	if respErr := resp.GetError(); respErr != "" {
		return apperrors.WrapPluginError(plugin.binary(), "generate", errors.New(respErr))
	}

	for _, file := range resp.GetFile() {
		if err := g.writeGenerated(plugin, file); err != nil {
			return err
		}
	}
	g.log.Debug("plugin finished", "plugin", plugin.binary(), "files", len(resp.GetFile()))
	return nil
}

func (g *Generator) writeGenerated(plugin Plugin, file *pluginpb.CodeGeneratorResponse_File) error {
	if file.GetInsertionPoint() != "" {
		return apperrors.WrapPluginError(plugin.binary(), "write",
			fmt.Errorf("insertion points are not supported (file %q)", file.GetName()))
	}

	name := file.GetName()
	if name == "" {
		return apperrors.WrapPluginError(plugin.binary(), "write",
			errors.New("response file has no name"))
	}
	// Plugin output must stay inside the output directory.
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return apperrors.WrapPluginError(plugin.binary(), "write",
			fmt.Errorf("response file %q escapes the output directory", name))
	}

	content := []byte(file.GetContent())
	if g.opts.Format && strings.HasSuffix(name, ".go") {
		formatted, err := format.Source(content)
		if err != nil {
			return apperrors.WrapPluginError(plugin.binary(), "format",
				fmt.Errorf("file %q: %w", name, err))
		}
		content = formatted
	}

	target := filepath.Join(g.opts.OutDir, clean)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return apperrors.NewFilesystemError(filepath.Dir(target), "mkdir", err)
	}
	if err := os.WriteFile(target, content, 0644); err != nil {
		return apperrors.NewFilesystemError(target, "write", err)
	}
	return nil
}
