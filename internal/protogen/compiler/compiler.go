// Package compiler turns .proto sources into linked descriptors. It wraps
// bufbuild/protocompile so the rest of the toolchain only ever sees resolved
// FileDescriptorSets, never raw parser state.
package compiler

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/linker"
	"github.com/bufbuild/protocompile/protoutil"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	apperrors "github.com/Demonstrandum/tensorbored/pkg/errors"
	"github.com/Demonstrandum/tensorbored/pkg/logger"
)

// Result holds the outcome of one compilation pass.
type Result struct {
	// Files are the requested files, linked, in request order.
	Files linker.Files

	// Set contains the requested files plus their transitive imports.
	// Imports always precede their importers, and the relative order of the
	// requested files follows the request, so the set is byte-stable across
	// runs over identical inputs.
	Set *descriptorpb.FileDescriptorSet
}

// Compile parses and links the named schema files against the given include
// roots and assembles the full descriptor set.
func Compile(ctx context.Context, filenames []string, importPaths []string) (*Result, error) {
	log := logger.WithField("component", "compiler")

	for _, name := range filenames {
		if !resolvable(name, importPaths) {
			return nil, apperrors.NewSchemaNotFoundError(name)
		}
	}

	c := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: importPaths,
		}),
		SourceInfoMode: protocompile.SourceInfoStandard,
	}

	files, err := c.Compile(ctx, filenames...)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.WrapCompileError("", "resolve",
				errors.Join(apperrors.ErrSchemaNotFound, err))
		}
		return nil, apperrors.WrapCompileError("", "compile", err)
	}

	set := assembleSet(files)
	log.Debug("compiled schemas", "requested", len(filenames), "total", len(set.File))
	return &Result{Files: files, Set: set}, nil
}

// resolvable reports whether a schema file exists under any include root.
func resolvable(name string, importPaths []string) bool {
	for _, root := range importPaths {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}

func assembleSet(files linker.Files) *descriptorpb.FileDescriptorSet {
	set := &descriptorpb.FileDescriptorSet{}
	seen := make(map[string]bool)
	for _, fd := range files {
		appendWithImports(fd, seen, set)
	}
	return set
}

// appendWithImports adds fd and its transitive imports to the set in
// dependency order. The descriptor protos are cloned: callers mutate field
// options (shared-buffer marking) and must not corrupt the linker's view.
func appendWithImports(fd protoreflect.FileDescriptor, seen map[string]bool, set *descriptorpb.FileDescriptorSet) {
	if seen[fd.Path()] {
		return
	}
	seen[fd.Path()] = true

	imports := fd.Imports()
	for i := 0; i < imports.Len(); i++ {
		appendWithImports(imports.Get(i).FileDescriptor, seen, set)
	}

	fdp := protoutil.ProtoFromFileDescriptor(fd)
	set.File = append(set.File, proto.Clone(fdp).(*descriptorpb.FileDescriptorProto))
}
