package service

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moasq/pbxgen/internal/config"
	"github.com/moasq/pbxgen/internal/iconset"
	"github.com/moasq/pbxgen/internal/pbxproj"
)

func writeFile(t *testing.T, dir, rel string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

// cheqTree lays out a small copy of the Cheq app.
func cheqTree(t *testing.T, withResources bool) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range []string{
		"CheqApp.swift",
		"ContentView.swift",
		"Package.swift",
		"Models/Receipt.swift",
		"Views/Auth/LoginView.swift",
		"Views/Home/HomeView.swift",
		"Utilities/Constants.swift",
	} {
		writeFile(t, root, rel)
	}
	if withResources {
		writeFile(t, root, "Assets.xcassets/Contents.json")
		writeFile(t, root, "Cheq.xcdatamodeld/Cheq.xcdatamodel/contents")
		writeFile(t, root, "Info.plist")
		writeFile(t, root, "Cheq.entitlements")
	}
	return root
}

func newTestService(root string, cfg *config.Config) *Service {
	return NewService(cfg, root, ServiceOpts{IDs: &pbxproj.SequenceGenerator{}})
}

func TestGenerateProjectWritesVerifiedFile(t *testing.T) {
	root := cheqTree(t, true)
	svc := newTestService(root, config.Default())

	res, err := svc.GenerateProject(context.Background(), GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateProject: %v", err)
	}
	if !res.Written {
		t.Error("project not written")
	}
	if want := filepath.Join(root, "Cheq.xcodeproj", "project.pbxproj"); res.Path != want {
		t.Errorf("path = %s, want %s", res.Path, want)
	}
	if res.SourceFiles != 6 {
		t.Errorf("source files = %d, want 6 (Package.swift excluded)", res.SourceFiles)
	}
	if len(res.MissingResources) != 0 {
		t.Errorf("unexpected missing resources %v", res.MissingResources)
	}

	report, err := svc.CheckProject("")
	if err != nil {
		t.Fatalf("CheckProject: %v", err)
	}
	if report.Kinds[pbxproj.ISAFileReference] == 0 || report.Objects != res.Objects {
		t.Errorf("unexpected report %+v", report)
	}

	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	checks := []struct {
		desc string
		want string
	}{
		{"bundle id", "PRODUCT_BUNDLE_IDENTIFIER = com.zeinanosier.cheq;"},
		{"team", "DEVELOPMENT_TEAM = HFQ8UWKULA;"},
		{"login view", "/* LoginView.swift in Sources */"},
		{"package", `XCRemoteSwiftPackageReference "GoogleSignIn-iOS"`},
	}
	for _, c := range checks {
		if !strings.Contains(string(data), c.want) {
			t.Errorf("%s: expected %q in project file", c.desc, c.want)
		}
	}
	if strings.Contains(string(data), "Package.swift") {
		t.Error("Package.swift referenced in project")
	}
}

func TestGenerateProjectMissingResources(t *testing.T) {
	root := cheqTree(t, false)

	res, err := newTestService(root, config.Default()).GenerateProject(context.Background(), GenerateOptions{})
	if err != nil {
		t.Fatalf("lenient GenerateProject: %v", err)
	}
	if len(res.MissingResources) != 4 {
		t.Errorf("missing resources = %v", res.MissingResources)
	}

	_, err = newTestService(root, config.Default()).GenerateProject(context.Background(), GenerateOptions{Strict: true})
	if !errors.Is(err, ErrMissingResource) {
		t.Fatalf("expected ErrMissingResource, got %v", err)
	}
	if !strings.Contains(err.Error(), "Cheq.entitlements") {
		t.Errorf("error does not name every resource: %v", err)
	}

	cfg := config.Default()
	cfg.StrictResources = true
	if _, err := newTestService(root, cfg).GenerateProject(context.Background(), GenerateOptions{}); !errors.Is(err, ErrMissingResource) {
		t.Errorf("strict_resources ignored: %v", err)
	}
}

func TestGenerateProjectDryRun(t *testing.T) {
	root := cheqTree(t, true)
	res, err := newTestService(root, config.Default()).GenerateProject(context.Background(), GenerateOptions{DryRun: true})
	if err != nil {
		t.Fatalf("GenerateProject: %v", err)
	}
	if res.Written {
		t.Error("dry run reported a write")
	}
	if _, err := os.Stat(res.Path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("dry run wrote %s", res.Path)
	}
	if !strings.HasPrefix(res.Outline, "project Cheq\n") || !strings.Contains(res.Outline, "LoginView.swift") {
		t.Errorf("unexpected outline:\n%s", res.Outline)
	}
}

func TestGenerateProjectOutputOverride(t *testing.T) {
	root := cheqTree(t, true)
	out := filepath.Join(t.TempDir(), "Other.xcodeproj", "project.pbxproj")
	res, err := newTestService(root, config.Default()).GenerateProject(context.Background(), GenerateOptions{Output: out})
	if err != nil {
		t.Fatalf("GenerateProject: %v", err)
	}
	if res.Path != out {
		t.Errorf("path = %s, want %s", res.Path, out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Error(err)
	}
}

func TestCheckProjectRejectsBrokenFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "broken.pbxproj")
	if err := os.WriteFile(path, []byte("{ not a project"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := newTestService(root, config.Default()).CheckProject(path); err == nil {
		t.Error("expected error")
	}
	if _, err := newTestService(root, config.Default()).CheckProject("missing.pbxproj"); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestGenerateIcons(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "icon.png")
	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 1024, 1024))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	res, err := newTestService(root, config.Default()).GenerateIcons(context.Background(), IconOptions{Source: src})
	if err != nil {
		t.Fatalf("GenerateIcons: %v", err)
	}
	if want := filepath.Join(root, "Assets.xcassets", "AppIcon.appiconset"); res.Dir != want {
		t.Errorf("dir = %s, want %s", res.Dir, want)
	}
	if len(res.Files) != len(iconset.Icons) {
		t.Errorf("wrote %d files", len(res.Files))
	}
}
