package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func makePet(t *testing.T, dir string) string {
	t.Helper()
	petDir := filepath.Join(dir, dirName)
	if err := os.MkdirAll(petDir, 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(petDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("name = \"Pip\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	want := makePet(t, root)

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, found, err := FindConfigFile(nested)
	if err != nil {
		t.Fatalf("FindConfigFile failed: %v", err)
	}
	if !found {
		t.Fatal("expected to find the pet in a parent directory")
	}
	if got != want {
		t.Errorf("found %s, want %s", got, want)
	}
}

func TestFindConfigFilePrefersNearest(t *testing.T) {
	root := t.TempDir()
	makePet(t, root)
	inner := filepath.Join(root, "project")
	want := makePet(t, inner)

	got, found, err := FindConfigFile(inner)
	if err != nil || !found {
		t.Fatalf("FindConfigFile: found=%v err=%v", found, err)
	}
	if got != want {
		t.Errorf("found %s, want %s", got, want)
	}
}

func TestGetStatePathFromConfig(t *testing.T) {
	got := GetStatePathFromConfig(filepath.Join("x", dirName, "config.toml"))
	want := filepath.Join("x", dirName, "pet.state.toml")
	if got != want {
		t.Errorf("state path = %s, want %s", got, want)
	}
}

func TestLocateExplicit(t *testing.T) {
	configPath := makePet(t, t.TempDir())

	got, err := Locate(configPath, t.TempDir())
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if got != configPath {
		t.Errorf("Locate = %s, want %s", got, configPath)
	}

	if _, err := Locate(filepath.Join(t.TempDir(), "nope.toml"), ""); err == nil {
		t.Error("expected an error for a missing explicit config")
	}
}

func TestLocateFallsBackToGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	want := makePet(t, home)

	got, err := Locate("", t.TempDir())
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if got != want {
		t.Errorf("Locate = %s, want %s", got, want)
	}
}
