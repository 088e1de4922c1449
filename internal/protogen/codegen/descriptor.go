package codegen

import (
	"os"
	"path/filepath"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	apperrors "github.com/Demonstrandum/tensorbored/pkg/errors"
)

// writeDescriptorSet serializes the set to path, creating parent directories
// as needed and overwriting any previous file. Marshaling is deterministic so
// repeated runs over identical inputs produce byte-identical output.
func writeDescriptorSet(path string, set *descriptorpb.FileDescriptorSet) error {
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(set)
	if err != nil {
		return apperrors.WrapCompileError("", "marshal descriptor set", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewFilesystemError(dir, "mkdir", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewFilesystemError(path, "write", err)
	}
	return nil
}
