package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSourcesSortedAndFiltered(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "CheqApp.swift", "")
	writeFile(t, dir, "Views/Auth/AuthView.swift", "")
	writeFile(t, dir, "Models/User.swift", "")
	writeFile(t, dir, "Package.swift", "")
	writeFile(t, dir, "README.md", "")
	writeFile(t, dir, "generate_app_icon.py", "")

	got, err := Sources(dir, Options{Exclude: []string{"Package.swift"}})
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	want := []string{"CheqApp.swift", "Models/User.swift", "Views/Auth/AuthView.swift"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sources (-want +got):\n%s", diff)
	}
}

func TestSourcesSkipsHiddenBuildAndBundles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "App.swift", "")
	writeFile(t, dir, ".hidden.swift", "")
	writeFile(t, dir, ".build/checkouts/Dep.swift", "")
	writeFile(t, dir, "build/Generated.swift", "")
	writeFile(t, dir, "DerivedData/X.swift", "")
	writeFile(t, dir, "Cheq.xcodeproj/Fake.swift", "")
	writeFile(t, dir, "Assets.xcassets/Fake.swift", "")
	writeFile(t, dir, "Pods/Lib/Lib.swift", "")

	got, err := Sources(dir, Options{})
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if diff := cmp.Diff([]string{"App.swift"}, got); diff != "" {
		t.Errorf("Sources (-want +got):\n%s", diff)
	}
}

func TestSourcesHonorsGitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "Generated/\nScratch.swift\n")
	writeFile(t, dir, "App.swift", "")
	writeFile(t, dir, "Scratch.swift", "")
	writeFile(t, dir, "Generated/Mocks.swift", "")

	got, err := Sources(dir, Options{})
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if diff := cmp.Diff([]string{"App.swift"}, got); diff != "" {
		t.Errorf("Sources (-want +got):\n%s", diff)
	}
}

func TestSourcesCustomExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.m", "")
	writeFile(t, dir, "App.swift", "")

	got, err := Sources(dir, Options{Extension: ".m"})
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if diff := cmp.Diff([]string{"main.m"}, got); diff != "" {
		t.Errorf("Sources (-want +got):\n%s", diff)
	}
}

func TestSourcesMissingRoot(t *testing.T) {
	t.Parallel()

	if _, err := Sources(filepath.Join(t.TempDir(), "missing"), Options{}); err == nil {
		t.Error("expected error for a missing root")
	}

	file := filepath.Join(t.TempDir(), "file.swift")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Sources(file, Options{}); err == nil {
		t.Error("expected error when root is a file")
	}
}
