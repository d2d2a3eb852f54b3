package pbxproj

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var viewMappings = []Mapping{
	{Prefix: "Models/", Name: "Models"},
	{Prefix: "Views/", Name: "Views"},
	{Prefix: "Views/Auth/", Name: "Auth"},
	{Prefix: "Utilities/", Name: "Utilities"},
	{Prefix: "Utilities/DesignSystem/", Name: "DesignSystem"},
}

// assignments flattens a plan into file -> group path.
func assignments(plan *GroupPlan) map[string]string {
	out := map[string]string{}
	var walk func(g *GroupPlan, key string)
	walk = func(g *GroupPlan, key string) {
		for _, f := range g.Files {
			out[f] = key
		}
		for _, c := range g.Groups {
			name := c.Name
			if key != "" {
				name = key + "/" + c.Name
			}
			walk(c, name)
		}
	}
	walk(plan, "")
	return out
}

func TestPlanGroupsLongestPrefix(t *testing.T) {
	files := []string{
		"App.swift",
		"Models/User.swift",
		"Utilities/Constants.swift",
		"Utilities/DesignSystem/Typography.swift",
		"Views/Auth/LoginView.swift",
		"Views/RootView.swift",
	}

	plan, err := PlanGroups(files, viewMappings)
	if err != nil {
		t.Fatalf("PlanGroups: %v", err)
	}

	want := map[string]string{
		"App.swift":                               "",
		"Models/User.swift":                       "Models",
		"Utilities/Constants.swift":               "Utilities",
		"Utilities/DesignSystem/Typography.swift": "Utilities/DesignSystem",
		"Views/Auth/LoginView.swift":              "Views/Auth",
		"Views/RootView.swift":                    "Views",
	}
	if diff := cmp.Diff(want, assignments(plan)); diff != "" {
		t.Errorf("assignments mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanGroupsIgnoresMappingOrder(t *testing.T) {
	files := []string{"Views/Auth/LoginView.swift", "Views/RootView.swift"}

	reversed := make([]Mapping, len(viewMappings))
	for i, m := range viewMappings {
		reversed[len(viewMappings)-1-i] = m
	}

	a, err := PlanGroups(files, viewMappings)
	if err != nil {
		t.Fatalf("PlanGroups: %v", err)
	}
	b, err := PlanGroups(files, reversed)
	if err != nil {
		t.Fatalf("PlanGroups reversed: %v", err)
	}
	if diff := cmp.Diff(assignments(a), assignments(b)); diff != "" {
		t.Errorf("mapping order changed assignments:\n%s", diff)
	}
}

func TestPlanGroupsNestsByPrefix(t *testing.T) {
	plan, err := PlanGroups(nil, viewMappings)
	if err != nil {
		t.Fatalf("PlanGroups: %v", err)
	}

	var top []string
	for _, g := range plan.Groups {
		top = append(top, g.Name)
	}
	if diff := cmp.Diff([]string{"Models", "Views", "Utilities"}, top); diff != "" {
		t.Fatalf("top-level groups (-want +got):\n%s", diff)
	}

	views := plan.Groups[1]
	if len(views.Groups) != 1 || views.Groups[0].Name != "Auth" {
		t.Fatalf("Views children = %+v, want [Auth]", views.Groups)
	}
	if got := views.Groups[0].Path; got != "Auth" {
		t.Errorf("Auth path = %q, want relative path Auth", got)
	}
}

func TestPlanGroupsPathWithoutParentMapping(t *testing.T) {
	plan, err := PlanGroups([]string{"Sources/Feature/A.swift"}, []Mapping{{Prefix: "Sources/Feature/", Name: "Feature"}})
	if err != nil {
		t.Fatalf("PlanGroups: %v", err)
	}
	g := plan.Groups[0]
	if g.Path != "Sources/Feature" {
		t.Errorf("path = %q, want Sources/Feature", g.Path)
	}
	if got := g.RelPath(g.Files[0]); got != "A.swift" {
		t.Errorf("RelPath = %q, want A.swift", got)
	}
}

func TestPlanGroupsKeepsUnmappedSubdirectoriesInParent(t *testing.T) {
	plan, err := PlanGroups([]string{"Views/Home/HomeView.swift"}, []Mapping{{Prefix: "Views/", Name: "Views"}})
	if err != nil {
		t.Fatalf("PlanGroups: %v", err)
	}
	views := plan.Groups[0]
	if len(views.Files) != 1 {
		t.Fatalf("Views files = %v", views.Files)
	}
	if got := views.RelPath(views.Files[0]); got != "Home/HomeView.swift" {
		t.Errorf("RelPath = %q, want Home/HomeView.swift", got)
	}
}

func TestPlanGroupsRejectsBadMappings(t *testing.T) {
	tests := []struct {
		desc     string
		mappings []Mapping
	}{
		{"missing slash", []Mapping{{Prefix: "Models", Name: "Models"}}},
		{"empty prefix", []Mapping{{Prefix: "", Name: "Models"}}},
		{"absolute prefix", []Mapping{{Prefix: "/Models/", Name: "Models"}}},
		{"missing name", []Mapping{{Prefix: "Models/"}}},
		{"duplicate prefix", []Mapping{{Prefix: "Models/", Name: "A"}, {Prefix: "Models/", Name: "B"}}},
	}
	for _, tt := range tests {
		_, err := PlanGroups(nil, tt.mappings)
		if !errors.Is(err, ErrInvalidMapping) {
			t.Errorf("%s: err = %v, want ErrInvalidMapping", tt.desc, err)
		}
	}
}

func TestDeriveMappings(t *testing.T) {
	got := DeriveMappings([]string{
		"App.swift",
		"Views/Auth/LoginView.swift",
		"Models/User.swift",
	})
	want := []Mapping{
		{Prefix: "Models/", Name: "Models"},
		{Prefix: "Views/", Name: "Views"},
		{Prefix: "Views/Auth/", Name: "Auth"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DeriveMappings (-want +got):\n%s", diff)
	}
}
