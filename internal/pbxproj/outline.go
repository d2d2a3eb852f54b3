package pbxproj

import (
	"fmt"
	"sort"
	"strings"
)

// Outline renders the structure of m without identifiers: the group tree,
// phase membership, configurations with their setting names, and package
// requirements. Two documents built from the same tree and options have
// equal outlines even though their identifiers differ.
func Outline(m *Manifest) string {
	var b strings.Builder

	if m.Project != nil {
		fmt.Fprintf(&b, "project %s\n", m.Project.Name)
	}
	if m.MainGroup != nil {
		writeGroup(&b, m, m.MainGroup, 1, map[ID]bool{})
	}

	for _, phase := range []*BuildPhase{m.Sources, m.Frameworks, m.Resources} {
		if phase == nil {
			continue
		}
		fmt.Fprintf(&b, "phase %s\n", phase.Comment())
		for _, id := range phase.Files {
			fmt.Fprintf(&b, "  %s\n", commentOf(m, id))
		}
	}

	if m.Target != nil {
		if list, ok := m.objects[m.Target.ConfigList].(*ConfigurationList); ok {
			for _, id := range list.Configs {
				cfg, ok := m.objects[id].(*BuildConfiguration)
				if !ok {
					continue
				}
				keys := make([]string, 0, len(cfg.Settings))
				for k := range cfg.Settings {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				fmt.Fprintf(&b, "configuration %s\n", cfg.Name)
				for _, k := range keys {
					fmt.Fprintf(&b, "  %s = %v\n", k, cfg.Settings[k])
				}
			}
		}
	}

	if m.Project != nil {
		for _, id := range m.Project.PackageReferences {
			if pkg, ok := m.objects[id].(*RemotePackage); ok {
				fmt.Fprintf(&b, "package %s %s from %s\n", pkg.Name, pkg.URL, pkg.MinVersion)
			}
		}
	}
	return b.String()
}

func writeGroup(b *strings.Builder, m *Manifest, g *Group, depth int, seen map[ID]bool) {
	seen[g.Ident] = true
	indent := strings.Repeat("  ", depth)
	for _, id := range g.Children {
		switch child := m.objects[id].(type) {
		case *Group:
			fmt.Fprintf(b, "%s%s/\n", indent, child.Comment())
			if !seen[id] {
				writeGroup(b, m, child, depth+1, seen)
			}
		case *FileReference:
			fmt.Fprintf(b, "%s%s\n", indent, child.Path)
		default:
			fmt.Fprintf(b, "%s?%s\n", indent, id)
		}
	}
}

func commentOf(m *Manifest, id ID) string {
	if o, ok := m.objects[id]; ok {
		return o.Comment()
	}
	return string(id)
}
