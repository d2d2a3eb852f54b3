package pbxproj

import (
	"strings"
	"testing"
)

func TestCheckReportsEveryProblem(t *testing.T) {
	gen := &SequenceGenerator{Prefix: "F"}
	m := newManifest()

	a := &Group{Ident: gen.NewID(), Name: "A"}
	b := &Group{Ident: gen.NewID(), Name: "B", Children: []ID{a.Ident}}
	a.Children = []ID{b.Ident, "DEADBEEFDEADBEEFDEADBEEF"}
	m.add(a)
	m.add(b)
	m.add(&Group{Ident: a.Ident})
	m.MainGroup = a
	m.RootObject = "FFFFFFFFFFFFFFFFFFFFFFFF"

	err := m.Check()
	if err == nil {
		t.Fatal("expected errors")
	}
	msg := err.Error()
	checks := []struct {
		desc string
		want string
	}{
		{"duplicate definition", "defined more than once"},
		{"missing root", "root object FFFFFFFFFFFFFFFFFFFFFFFF is not defined"},
		{"dangling child", "references undefined DEADBEEFDEADBEEFDEADBEEF"},
		{"cycle", "is its own ancestor"},
	}
	for _, c := range checks {
		if !strings.Contains(msg, c.want) {
			t.Errorf("%s: expected %q in:\n%s", c.desc, c.want, msg)
		}
	}
}

func TestCheckSourceFileMembership(t *testing.T) {
	m := mustSynthesize(t, []string{"A.swift", "B.swift"}, Options{Name: "X", Groups: []Mapping{}}, &SequenceGenerator{})

	// Drop B from the main group and list A twice in Sources.
	sf := m.SourceFiles[1]
	var kept []ID
	for _, c := range m.MainGroup.Children {
		if c != sf.FileRef {
			kept = append(kept, c)
		}
	}
	m.MainGroup.Children = kept
	m.Sources.Files = append(m.Sources.Files, m.SourceFiles[0].BuildFile)

	err := m.Check()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"B.swift belongs to 0 groups", "A.swift listed 2 times in Sources", "sources phase has 3 entries"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in:\n%v", want, err)
		}
	}
}

func TestSettingsNormalize(t *testing.T) {
	got, err := NormalizeSettings(map[string]any{
		"ENABLE_PREVIEWS":            true,
		"ALWAYS_SEARCH_USER_PATHS":   false,
		"CURRENT_PROJECT_VERSION":    1,
		"IPHONEOS_DEPLOYMENT_TARGET": 17.5,
		"LD_RUNPATH_SEARCH_PATHS":    []any{"$(inherited)", "@executable_path/Frameworks"},
		"DEVELOPMENT_ASSET_PATHS":    "",
	})
	if err != nil {
		t.Fatalf("NormalizeSettings: %v", err)
	}
	checks := map[string]string{
		"ENABLE_PREVIEWS":            "YES",
		"ALWAYS_SEARCH_USER_PATHS":   "NO",
		"CURRENT_PROJECT_VERSION":    "1",
		"IPHONEOS_DEPLOYMENT_TARGET": "17.5",
		"DEVELOPMENT_ASSET_PATHS":    "",
	}
	for k, want := range checks {
		if got[k] != want {
			t.Errorf("%s = %v, want %s", k, got[k], want)
		}
	}
	list, ok := got["LD_RUNPATH_SEARCH_PATHS"].([]string)
	if !ok || len(list) != 2 || list[0] != "$(inherited)" {
		t.Errorf("LD_RUNPATH_SEARCH_PATHS = %#v", got["LD_RUNPATH_SEARCH_PATHS"])
	}

	if _, err := NormalizeSettings(map[string]any{"BAD": map[string]any{"a": 1}}); err == nil {
		t.Error("expected error for a dictionary value")
	}
	if _, err := NormalizeSettings(map[string]any{"BAD": []any{[]any{"x"}}}); err == nil {
		t.Error("expected error for a nested list")
	}
}
