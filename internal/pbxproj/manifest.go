// Package pbxproj builds, serializes and checks Xcode project files.
package pbxproj

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

const (
	archiveVersion = "1"
	objectVersion  = "56"
)

// SourceFile is a compiled file together with its two records.
type SourceFile struct {
	Path      string // relative to the project root, slash separated
	FileRef   ID
	BuildFile ID
}

// Manifest is a complete project document. It is built once by
// Synthesize and never modified afterwards.
type Manifest struct {
	RootObject ID

	Project    *Project
	Target     *NativeTarget
	MainGroup  *Group
	Sources    *BuildPhase
	Frameworks *BuildPhase
	Resources  *BuildPhase

	SourceFiles []SourceFile

	objects map[ID]Object
	order   []ID
	dupes   []ID
}

func newManifest() *Manifest {
	return &Manifest{objects: make(map[ID]Object)}
}

func (m *Manifest) add(o Object) {
	id := o.ID()
	if _, exists := m.objects[id]; exists {
		m.dupes = append(m.dupes, id)
		return
	}
	m.objects[id] = o
	m.order = append(m.order, id)
}

// Object returns the record with the given identifier.
func (m *Manifest) Object(id ID) (Object, bool) {
	o, ok := m.objects[id]
	return o, ok
}

// Objects returns every record in insertion order.
func (m *Manifest) Objects() []Object {
	out := make([]Object, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.objects[id])
	}
	return out
}

// Groups returns every group keyed by its slash-joined path from the main
// group (the main group itself is keyed by "").
func (m *Manifest) Groups() map[string]*Group {
	out := map[string]*Group{}
	seen := map[ID]bool{}
	var walk func(g *Group, key string)
	walk = func(g *Group, key string) {
		out[key] = g
		seen[g.Ident] = true
		for _, c := range g.Children {
			child, ok := m.objects[c].(*Group)
			if !ok || seen[c] {
				continue
			}
			name := child.Comment()
			if key != "" {
				name = key + "/" + name
			}
			walk(child, name)
		}
	}
	if m.MainGroup != nil {
		walk(m.MainGroup, "")
	}
	return out
}

// Check verifies that the document is well formed: identifiers are valid
// and defined once, every reference resolves, and every source file is a
// child of exactly one group and listed once in the Sources phase.
func (m *Manifest) Check() error {
	var result *multierror.Error

	for _, id := range m.dupes {
		result = multierror.Append(result, fmt.Errorf("identifier %s defined more than once", id))
	}
	if _, ok := m.objects[m.RootObject]; !ok {
		result = multierror.Append(result, fmt.Errorf("root object %s is not defined", m.RootObject))
	}

	ids := make([]ID, 0, len(m.objects))
	for id := range m.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parents := map[ID]int{}
	for _, id := range ids {
		o := m.objects[id]
		if !id.Valid() {
			result = multierror.Append(result, fmt.Errorf("%s %q has malformed identifier %s", o.ISA(), o.Comment(), id))
		}
		for _, ref := range References(o) {
			if _, ok := m.objects[ref]; !ok {
				result = multierror.Append(result, fmt.Errorf("%s %s references undefined %s", o.ISA(), id, ref))
			}
		}
		if g, ok := o.(*Group); ok {
			for _, c := range g.Children {
				parents[c]++
			}
		}
	}

	inSources := map[ID]int{}
	if m.Sources != nil {
		for _, f := range m.Sources.Files {
			inSources[f]++
		}
	}
	for _, sf := range m.SourceFiles {
		if n := parents[sf.FileRef]; n != 1 {
			result = multierror.Append(result, fmt.Errorf("%s belongs to %d groups", sf.Path, n))
		}
		if n := inSources[sf.BuildFile]; n != 1 {
			result = multierror.Append(result, fmt.Errorf("%s listed %d times in Sources", sf.Path, n))
		}
	}
	if m.Sources != nil && len(m.Sources.Files) != len(m.SourceFiles) {
		result = multierror.Append(result, fmt.Errorf("sources phase has %d entries for %d source files", len(m.Sources.Files), len(m.SourceFiles)))
	}
	if m.MainGroup != nil {
		if id, ok := m.findCycle(m.MainGroup.Ident, map[ID]bool{}); ok {
			result = multierror.Append(result, fmt.Errorf("group %s is its own ancestor", id))
		}
	}

	return result.ErrorOrNil()
}

func (m *Manifest) findCycle(id ID, onPath map[ID]bool) (ID, bool) {
	if onPath[id] {
		return id, true
	}
	g, ok := m.objects[id].(*Group)
	if !ok {
		return "", false
	}
	onPath[id] = true
	defer delete(onPath, id)
	for _, c := range g.Children {
		if cyc, found := m.findCycle(c, onPath); found {
			return cyc, true
		}
	}
	return "", false
}

// References returns every identifier an object's properties point at.
func References(o Object) []ID {
	var refs []ID
	var walk func(v any)
	walk = func(v any) {
		switch val := v.(type) {
		case ID:
			refs = append(refs, val)
		case []any:
			for _, item := range val {
				walk(item)
			}
		case map[string]any:
			for _, item := range val {
				walk(item)
			}
		}
	}
	walk(o.Properties())
	return refs
}
