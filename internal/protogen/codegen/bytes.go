package codegen

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// markSharedBytes sets ctype = CORD on every bytes field declared in a file
// whose package falls under one of the given prefixes, so consumers that
// support a shared-buffer representation use it instead of an owned copy.
// Returns the number of fields marked.
func markSharedBytes(set *descriptorpb.FileDescriptorSet, prefixes []string) int {
	marked := 0
	for _, file := range set.GetFile() {
		if !packageMatches(file.GetPackage(), prefixes) {
			continue
		}
		marked += markFields(file.GetExtension())
		for _, message := range file.GetMessageType() {
			marked += markMessage(message)
		}
	}
	return marked
}

func markMessage(message *descriptorpb.DescriptorProto) int {
	marked := markFields(message.GetField())
	marked += markFields(message.GetExtension())
	for _, nested := range message.GetNestedType() {
		marked += markMessage(nested)
	}
	return marked
}

func markFields(fields []*descriptorpb.FieldDescriptorProto) int {
	marked := 0
	for _, field := range fields {
		if field.GetType() != descriptorpb.FieldDescriptorProto_TYPE_BYTES {
			continue
		}
		if field.Options == nil {
			field.Options = &descriptorpb.FieldOptions{}
		}
		field.Options.Ctype = descriptorpb.FieldOptions_CORD.Enum()
		marked++
	}
	return marked
}

// packageMatches reports whether pkg equals a prefix or is nested under one.
// Matching is per package component: "tensorbored.data" is under
// "tensorbored", "tensorboredx" is not. A leading dot on a prefix (the
// fully-qualified spelling) is accepted.
func packageMatches(pkg string, prefixes []string) bool {
	for _, prefix := range prefixes {
		prefix = strings.TrimPrefix(prefix, ".")
		if prefix == "" {
			continue
		}
		if pkg == prefix || strings.HasPrefix(pkg, prefix+".") {
			return true
		}
	}
	return false
}
