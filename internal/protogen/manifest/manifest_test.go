package manifest

import "testing"

func TestFiles_FixedOrder(t *testing.T) {
	want := []string{
		"tensorbored/compat/proto/event.proto",
		"tensorbored/data/proto/data_provider.proto",
		"tensorbored/plugins/audio/plugin_data.proto",
		"tensorbored/plugins/image/plugin_data.proto",
	}

	got := Files()
	if len(got) != len(want) {
		t.Fatalf("Files() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Files()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFiles_ReturnsCopy(t *testing.T) {
	first := Files()
	first[0] = "mutated.proto"

	if Files()[0] == "mutated.proto" {
		t.Error("Files() must not expose the underlying slice")
	}
}

func TestImportPaths(t *testing.T) {
	paths := ImportPaths()
	if len(paths) != 1 || paths[0] != "." {
		t.Errorf("ImportPaths() = %v, want [.]", paths)
	}
}
