package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moasq/pbxgen/internal/config"
	"github.com/moasq/pbxgen/internal/pbxproj"
	"github.com/moasq/pbxgen/internal/service"
)

func testTools(t *testing.T) (*tools, string) {
	t.Helper()
	root := t.TempDir()
	for _, rel := range []string{"App.swift", "Views/HomeView.swift"} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := &config.Config{Name: "Demo", BundleID: "com.example.demo"}
	open := func(string) (*service.Service, error) {
		return service.NewService(cfg, root, service.ServiceOpts{IDs: &pbxproj.SequenceGenerator{}}), nil
	}
	return &tools{open: open}, root
}

func TestGenerateAndCheckProjectTools(t *testing.T) {
	tl, root := testTools(t)
	ctx := context.Background()

	_, out, err := tl.generateProject(ctx, nil, generateProjectInput{Root: root, DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !strings.Contains(out.Message, "HomeView.swift") {
		t.Errorf("dry run message missing outline:\n%s", out.Message)
	}

	_, out, err = tl.generateProject(ctx, nil, generateProjectInput{Root: root})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out.Message, "2 source files") {
		t.Errorf("unexpected message %q", out.Message)
	}

	_, out, err = tl.checkProject(ctx, nil, checkProjectInput{Root: root})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.HasPrefix(out.Message, "OK:") || !strings.Contains(out.Message, "PBXProject=1") {
		t.Errorf("unexpected message %q", out.Message)
	}
}

func TestGenerateIconsToolRequiresSource(t *testing.T) {
	tl, root := testTools(t)
	if _, _, err := tl.generateIcons(context.Background(), nil, generateIconsInput{Root: root}); err == nil {
		t.Error("expected error without a source")
	}
}

func TestNewServer(t *testing.T) {
	if NewServer("test", OpenProject(nil)) == nil {
		t.Fatal("nil server")
	}
}
