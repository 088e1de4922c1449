// Package registry resolves serialized descriptor sets back into protobuf
// registries, so a descriptor.bin produced by the generator can be inspected
// and served without the generated code.
package registry

import (
	"os"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"

	apperrors "github.com/Demonstrandum/tensorbored/pkg/errors"
)

// Load reads a serialized FileDescriptorSet from path and resolves it into a
// file registry.
func Load(path string) (*protoregistry.Files, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewFilesystemError(path, "read", err)
	}

	set := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, set); err != nil {
		return nil, apperrors.WrapCompileError(path, "decode descriptor set", err)
	}

	files, err := protodesc.NewFiles(set)
	if err != nil {
		return nil, apperrors.WrapCompileError(path, "resolve descriptor set", err)
	}
	return files, nil
}

// Types builds a type registry covering every message, enum and extension in
// the file registry, backed by dynamic types.
func Types(files *protoregistry.Files) (*protoregistry.Types, error) {
	types := &protoregistry.Types{}
	var rangeErr error
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		rangeErr = registerFile(types, fd)
		return rangeErr == nil
	})
	if rangeErr != nil {
		return nil, rangeErr
	}
	return types, nil
}

func registerFile(types *protoregistry.Types, fd protoreflect.FileDescriptor) error {
	if err := registerEnums(types, fd.Enums()); err != nil {
		return err
	}
	if err := registerExtensions(types, fd.Extensions()); err != nil {
		return err
	}
	return registerMessages(types, fd.Messages())
}

func registerMessages(types *protoregistry.Types, messages protoreflect.MessageDescriptors) error {
	for i := 0; i < messages.Len(); i++ {
		md := messages.Get(i)
		if err := types.RegisterMessage(dynamicpb.NewMessageType(md)); err != nil {
			return err
		}
		if err := registerEnums(types, md.Enums()); err != nil {
			return err
		}
		if err := registerExtensions(types, md.Extensions()); err != nil {
			return err
		}
		if err := registerMessages(types, md.Messages()); err != nil {
			return err
		}
	}
	return nil
}

func registerEnums(types *protoregistry.Types, enums protoreflect.EnumDescriptors) error {
	for i := 0; i < enums.Len(); i++ {
		if err := types.RegisterEnum(dynamicpb.NewEnumType(enums.Get(i))); err != nil {
			return err
		}
	}
	return nil
}

func registerExtensions(types *protoregistry.Types, exts protoreflect.ExtensionDescriptors) error {
	for i := 0; i < exts.Len(); i++ {
		if err := types.RegisterExtension(dynamicpb.NewExtensionType(exts.Get(i))); err != nil {
			return err
		}
	}
	return nil
}

// ServiceInfo presents the services of a file registry in the shape the gRPC
// reflection service expects.
type ServiceInfo struct {
	files *protoregistry.Files
}

func NewServiceInfo(files *protoregistry.Files) *ServiceInfo {
	return &ServiceInfo{files: files}
}

func (s *ServiceInfo) GetServiceInfo() map[string]grpc.ServiceInfo {
	out := make(map[string]grpc.ServiceInfo)
	s.files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		services := fd.Services()
		for i := 0; i < services.Len(); i++ {
			sd := services.Get(i)
			methods := sd.Methods()
			infos := make([]grpc.MethodInfo, 0, methods.Len())
			for j := 0; j < methods.Len(); j++ {
				md := methods.Get(j)
				infos = append(infos, grpc.MethodInfo{
					Name:           string(md.Name()),
					IsClientStream: md.IsStreamingClient(),
					IsServerStream: md.IsStreamingServer(),
				})
			}
			out[string(sd.FullName())] = grpc.ServiceInfo{
				Methods:  infos,
				Metadata: fd.Path(),
			}
		}
		return true
	})
	return out
}
