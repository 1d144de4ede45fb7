package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func mkfiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("G28\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestMediaListing(t *testing.T) {
	root := t.TempDir()
	mkfiles(t, root, "b.gcode", "a.GCO", "notes.txt", ".hidden.gcode", "parts/gear.gcode")

	m := NewMedia(root)
	if !m.Mount() {
		t.Fatalf("Expected media mounted")
	}

	want := []string{"parts", "a.GCO", "b.gcode"}
	if m.Count() != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), m.Count())
	}
	for i, name := range want {
		e, _ := m.Entry(i)
		if e.Name != name {
			t.Errorf("Entry %d: expected %s, got %s", i, name, e.Name)
		}
	}
	if e, _ := m.Entry(0); !e.Dir {
		t.Errorf("Expected parts to be a directory")
	}
	if _, ok := m.Entry(3); ok {
		t.Errorf("Expected no entry past the end")
	}
}

func TestMediaNavigation(t *testing.T) {
	root := t.TempDir()
	mkfiles(t, root, "top.gcode", "parts/gear.gcode", "parts/deep/bolt.gcode")

	m := NewMedia(root)
	m.Mount()

	if err := m.Cd("parts"); err != nil {
		t.Fatalf("cd: %v", err)
	}
	if m.AtRoot() || m.Dir() != "/parts" {
		t.Errorf("Expected /parts, got %s", m.Dir())
	}
	if m.Count() != 2 {
		t.Errorf("Expected deep and gear.gcode, got %d entries", m.Count())
	}
	e, _ := m.Entry(1)
	if e.Path != filepath.Join(root, "parts", "gear.gcode") {
		t.Errorf("Unexpected path %s", e.Path)
	}

	if err := m.Cd("missing"); err == nil {
		t.Errorf("Expected an error entering a missing directory")
	}
	if m.Dir() != "/parts" {
		t.Errorf("Expected to stay in /parts, got %s", m.Dir())
	}
	if err := m.Cd(".."); err == nil {
		t.Errorf("Expected .. rejected")
	}

	m.Up()
	if !m.AtRoot() {
		t.Errorf("Expected root after Up")
	}
}

func TestMediaUnmounted(t *testing.T) {
	m := NewMedia(filepath.Join(t.TempDir(), "absent"))
	if m.Mount() {
		t.Errorf("Expected no media")
	}
	if err := m.Root(); err != ErrNoMedia {
		t.Errorf("Expected ErrNoMedia, got %v", err)
	}
}
