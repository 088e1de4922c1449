package codegen

// Plugin identifies one protoc plugin invoked over the compiled schemas.
type Plugin struct {
	// Name is the plugin suffix, e.g. "go" for protoc-gen-go.
	Name string
	// Path overrides the binary to execute. Empty means protoc-gen-<Name>
	// resolved from PATH.
	Path string
	// Parameter is passed verbatim in the CodeGeneratorRequest.
	Parameter string
}

func (p Plugin) binary() string {
	if p.Path != "" {
		return p.Path
	}
	return "protoc-gen-" + p.Name
}

// Options configures one generation run.
type Options struct {
	// OutDir is the directory generated sources are written beneath, using
	// the source-relative paths the plugins emit.
	OutDir string

	// DescriptorSetPath, when non-empty, is where the serialized
	// FileDescriptorSet is written. Overwritten if present.
	DescriptorSetPath string

	// BytesPackages lists schema package prefixes whose bytes fields are
	// emitted with the shared-buffer (CORD) representation. A prefix matches
	// the package itself and any package nested under it.
	BytesPackages []string

	// Format runs generated .go sources through gofmt before writing. Off
	// by default; formatting is not needed to build.
	Format bool

	// Plugins to invoke, in order. Nil means DefaultPlugins.
	Plugins []Plugin
}

// DefaultPlugins returns the standard Go toolchain pair: message code from
// protoc-gen-go and service stubs from protoc-gen-go-grpc.
func DefaultPlugins() []Plugin {
	return []Plugin{
		{Name: "go", Parameter: "paths=source_relative"},
		{Name: "go-grpc", Parameter: "paths=source_relative"},
	}
}
