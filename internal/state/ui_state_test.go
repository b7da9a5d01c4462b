package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultUIState(t *testing.T) {
	state := DefaultUIState()
	if !state.Sidebar.Visible {
		t.Error("Expected sidebar to be visible by default")
	}
	if state.LastProfile != "" {
		t.Errorf("Expected no last profile, got %q", state.LastProfile)
	}
}

func TestLoadNonExistent(t *testing.T) {
	state := Load(filepath.Join(t.TempDir(), "missing"))
	if !state.Sidebar.Visible {
		t.Error("Expected default sidebar visibility to be true")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	err := Save(dir, &UIState{
		Sidebar:     SidebarState{Visible: false},
		LastProfile: "prod",
	})
	if err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	loaded := Load(dir)
	if loaded.Sidebar.Visible {
		t.Error("Expected sidebar to be hidden after round trip")
	}
	if loaded.LastProfile != "prod" {
		t.Errorf("LastProfile = %q, want prod", loaded.LastProfile)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write state file: %v", err)
	}

	state := Load(dir)
	if !state.Sidebar.Visible {
		t.Error("Expected defaults for corrupt state file")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(`{"last_profile":"dev"}`), 0644); err != nil {
		t.Fatalf("Failed to write state file: %v", err)
	}

	state := Load(dir)
	if !state.Sidebar.Visible {
		t.Error("missing sidebar field should keep the default")
	}
	if state.LastProfile != "dev" {
		t.Errorf("LastProfile = %q, want dev", state.LastProfile)
	}
}
