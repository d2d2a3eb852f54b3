package pbxproj

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// ErrInvalidMapping is returned for malformed directory-to-group mappings.
var ErrInvalidMapping = errors.New("invalid group mapping")

// Mapping assigns every file under Prefix (a directory path ending in "/")
// to the group Name.
type Mapping struct {
	Prefix string `yaml:"prefix" json:"prefix"`
	Name   string `yaml:"name" json:"name"`
}

// GroupPlan is one node of the planned navigator tree.
type GroupPlan struct {
	Name   string
	Prefix string // "" for the main group
	Path   string // directory relative to the parent group
	Groups []*GroupPlan
	Files  []string // project-relative paths, sorted
}

// RelPath returns file relative to the directory of g.
func (g *GroupPlan) RelPath(file string) string {
	return strings.TrimPrefix(file, g.Prefix)
}

// PlanGroups partitions files into the group tree described by mappings.
//
// A mapping's parent is the mapping with the longest prefix that strictly
// contains it; top-level mappings hang off the main group. Each file goes
// to the mapping with the longest matching prefix, so Views/Auth/X.swift
// lands in Views/Auth/ rather than Views/. Files no mapping matches stay
// in the main group. Child groups keep the order of mappings.
func PlanGroups(files []string, mappings []Mapping) (*GroupPlan, error) {
	if err := ValidateMappings(mappings); err != nil {
		return nil, err
	}

	root := &GroupPlan{}
	nodes := make([]*GroupPlan, len(mappings))
	for i, m := range mappings {
		nodes[i] = &GroupPlan{Name: m.Name, Prefix: m.Prefix}
	}
	for i, m := range mappings {
		parent := root
		for j, other := range mappings {
			if i == j || !strings.HasPrefix(m.Prefix, other.Prefix) {
				continue
			}
			if len(other.Prefix) > len(parent.Prefix) {
				parent = nodes[j]
			}
		}
		nodes[i].Path = strings.TrimSuffix(strings.TrimPrefix(m.Prefix, parent.Prefix), "/")
		parent.Groups = append(parent.Groups, nodes[i])
	}

	// Most specific first.
	bySpecificity := make([]*GroupPlan, len(nodes))
	copy(bySpecificity, nodes)
	sort.SliceStable(bySpecificity, func(i, j int) bool {
		return len(bySpecificity[i].Prefix) > len(bySpecificity[j].Prefix)
	})

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	for _, f := range sorted {
		target := root
		for _, n := range bySpecificity {
			if strings.HasPrefix(f, n.Prefix) {
				target = n
				break
			}
		}
		target.Files = append(target.Files, f)
	}
	return root, nil
}

// ValidateMappings reports the first malformed or duplicate mapping.
func ValidateMappings(mappings []Mapping) error {
	seen := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		switch {
		case m.Prefix == "":
			return fmt.Errorf("%w: empty prefix for group %q", ErrInvalidMapping, m.Name)
		case !strings.HasSuffix(m.Prefix, "/"):
			return fmt.Errorf("%w: prefix %q must end with /", ErrInvalidMapping, m.Prefix)
		case strings.HasPrefix(m.Prefix, "/"):
			return fmt.Errorf("%w: prefix %q must be relative", ErrInvalidMapping, m.Prefix)
		case m.Name == "":
			return fmt.Errorf("%w: prefix %q has no group name", ErrInvalidMapping, m.Prefix)
		case seen[m.Prefix]:
			return fmt.Errorf("%w: prefix %q mapped twice", ErrInvalidMapping, m.Prefix)
		}
		seen[m.Prefix] = true
	}
	return nil
}

// DeriveMappings builds one mapping per directory that holds files,
// including intermediate directories, named after the last path element.
func DeriveMappings(files []string) []Mapping {
	dirs := map[string]bool{}
	for _, f := range files {
		for d := path.Dir(f); d != "." && d != "/" && !dirs[d]; d = path.Dir(d) {
			dirs[d] = true
		}
	}
	sorted := make([]string, 0, len(dirs))
	for d := range dirs {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	out := make([]Mapping, 0, len(sorted))
	for _, d := range sorted {
		out = append(out, Mapping{Prefix: d + "/", Name: path.Base(d)})
	}
	return out
}
