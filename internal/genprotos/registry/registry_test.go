package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/Demonstrandum/tensorbored/internal/protogen/compiler"
	apperrors "github.com/Demonstrandum/tensorbored/pkg/errors"
)

// writeDescriptor compiles a small schema with a unary and a streaming rpc
// and writes its descriptor set to a file, mimicking generator output.
func writeDescriptor(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	schema := `
syntax = "proto3";
package demo;
message Ping {
  bytes payload = 1;
}
enum Mode {
  MODE_UNSPECIFIED = 0;
  MODE_LOUD = 1;
}
service Echo {
  rpc Send(Ping) returns (Ping);
  rpc Watch(Ping) returns (stream Ping);
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "echo.proto"), []byte(schema), 0644))

	res, err := compiler.Compile(context.Background(), []string{"echo.proto"}, []string{dir})
	require.NoError(t, err)

	data, err := proto.Marshal(res.Set)
	require.NoError(t, err)

	path := filepath.Join(dir, "descriptor.bin")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDescriptor(t)

	files, err := Load(path)
	require.NoError(t, err)

	fd, err := files.FindFileByPath("echo.proto")
	require.NoError(t, err)
	assert.Equal(t, "demo", string(fd.Package()))

	d, err := files.FindDescriptorByName("demo.Echo")
	require.NoError(t, err)
	assert.Equal(t, "demo.Echo", string(d.FullName()))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
	assert.True(t, apperrors.IsFilesystemError(err))
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsCompileError(err))
}

func TestTypes(t *testing.T) {
	files, err := Load(writeDescriptor(t))
	require.NoError(t, err)

	types, err := Types(files)
	require.NoError(t, err)

	mt, err := types.FindMessageByName("demo.Ping")
	require.NoError(t, err)
	assert.Equal(t, "demo.Ping", string(mt.Descriptor().FullName()))

	et, err := types.FindEnumByName("demo.Mode")
	require.NoError(t, err)
	assert.Equal(t, "demo.Mode", string(et.Descriptor().FullName()))
}

func TestServiceInfo(t *testing.T) {
	files, err := Load(writeDescriptor(t))
	require.NoError(t, err)

	info := NewServiceInfo(files).GetServiceInfo()
	require.Contains(t, info, "demo.Echo")

	echo := info["demo.Echo"]
	assert.Equal(t, "echo.proto", echo.Metadata)
	require.Len(t, echo.Methods, 2)

	byName := make(map[string]bool)
	for _, m := range echo.Methods {
		byName[m.Name] = m.IsServerStream
	}
	assert.False(t, byName["Send"], "Send is unary")
	assert.True(t, byName["Watch"], "Watch streams from the server")
}
