// Package manifest pins down the schema files the tensorbored toolchain
// compiles. The list is fixed at build time; adding a schema to the project
// means editing this package, not passing flags.
package manifest

// OutSubdir is the directory created under the output root for all
// generated artifacts.
const OutSubdir = "genproto"

// DescriptorFile is the name of the serialized FileDescriptorSet written
// alongside the generated sources.
const DescriptorFile = "descriptor.bin"

// PackagePrefix is the schema package whose bytes fields (including those of
// nested packages) use the shared-buffer representation.
const PackagePrefix = "tensorbored"

// schemaFiles is ordered; the generated descriptor set preserves this order
// for the requested files.
var schemaFiles = []string{
	"tensorbored/compat/proto/event.proto",
	"tensorbored/data/proto/data_provider.proto",
	"tensorbored/plugins/audio/plugin_data.proto",
	"tensorbored/plugins/image/plugin_data.proto",
}

// Files returns the fixed, ordered list of schema files to compile, as paths
// relative to the include root.
func Files() []string {
	out := make([]string, len(schemaFiles))
	copy(out, schemaFiles)
	return out
}

// ImportPaths returns the include search roots used to resolve schema files
// and their imports. The current working directory is the sole root.
func ImportPaths() []string {
	return []string{"."}
}
