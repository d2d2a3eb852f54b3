package pbxproj

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Options configures Synthesize. Everything that the project file hard
// codes lives here so that one routine serves every project layout.
type Options struct {
	// Name of the target and of the built product (Name.app).
	Name string
	// Groups maps directories to navigator groups. When nil, one group per
	// directory is derived from the file list.
	Groups    []Mapping
	Resources []Resource
	Packages  []Package

	// Base settings are shared by both configurations; Debug and Release
	// are applied on top.
	Base    Settings
	Debug   Settings
	Release Settings

	ToolsVersion      string   // defaults to 1500
	DevelopmentRegion string   // defaults to en
	KnownRegions      []string // defaults to en, Base
}

// Resource is a non-source file registered in the main group.
type Resource struct {
	Path string `yaml:"path" json:"path"`
}

// Package is a remote Swift package and the products the target links.
type Package struct {
	Name       string   `yaml:"name,omitempty" json:"name,omitempty"`
	URL        string   `yaml:"url" json:"url"`
	MinVersion string   `yaml:"min_version" json:"min_version"`
	Products   []string `yaml:"products,omitempty" json:"products,omitempty"`
}

// DisplayName returns Name, or the last element of the repository URL.
func (p Package) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return strings.TrimSuffix(path.Base(strings.TrimSuffix(p.URL, "/")), ".git")
}

const (
	configDebug   = "Debug"
	configRelease = "Release"

	productTypeApplication = "com.apple.product-type.application"
)

var sourceFileTypes = map[string]string{
	".swift": "sourcecode.swift",
	".m":     "sourcecode.c.objc",
	".mm":    "sourcecode.cpp.objcpp",
	".c":     "sourcecode.c.c",
	".h":     "sourcecode.c.h",
	".cpp":   "sourcecode.cpp.cpp",
	".metal": "sourcecode.metal",
}

type resourceType struct {
	fileType string
	bundled  bool // copied by the Resources phase
}

var resourceFileTypes = map[string]resourceType{
	".xcassets":     {"folder.assetcatalog", true},
	".xcdatamodeld": {"wrapper.xcdatamodel", true},
	".storyboard":   {"file.storyboard", true},
	".xib":          {"file.xib", true},
	".strings":      {"text.plist.strings", true},
	".xcstrings":    {"text.json.xcstrings", true},
	".json":         {"text.json", true},
	".xcprivacy":    {"text.xml", true},
	".plist":        {"text.plist.xml", false},
	".entitlements": {"text.plist.entitlements", false},
}

// ResourceFileType returns the lastKnownFileType for a resource and
// whether the Resources phase copies it into the bundle. Info.plist and
// entitlements are referenced from build settings instead.
func ResourceFileType(p string) (string, bool) {
	if t, ok := resourceFileTypes[strings.ToLower(path.Ext(p))]; ok {
		return t.fileType, t.bundled
	}
	return "file", true
}

func sourceFileType(p string) string {
	if t, ok := sourceFileTypes[strings.ToLower(path.Ext(p))]; ok {
		return t
	}
	return "sourcecode"
}

type synth struct {
	m    *Manifest
	gen  IDGenerator
	refs map[string]ID
}

// Synthesize builds a project document from project-relative, slash
// separated source paths. The input order does not matter; files are
// processed in lexicographic order so that two runs over the same tree
// yield documents that differ only in identifier values.
func Synthesize(files []string, opts Options, gen IDGenerator) (*Manifest, error) {
	if opts.Name == "" {
		return nil, errors.New("project name is required")
	}
	if gen == nil {
		gen = XIDGenerator{}
	}
	opts = withDefaults(opts)

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return nil, fmt.Errorf("source file %s listed twice", sorted[i])
		}
	}

	mappings := opts.Groups
	if mappings == nil {
		mappings = DeriveMappings(sorted)
	}
	plan, err := PlanGroups(sorted, mappings)
	if err != nil {
		return nil, err
	}

	s := &synth{m: newManifest(), gen: gen, refs: make(map[string]ID, len(sorted))}

	sources := &BuildPhase{Ident: gen.NewID(), Kind: ISASourcesPhase}
	for _, f := range sorted {
		sf := SourceFile{Path: f, FileRef: gen.NewID(), BuildFile: gen.NewID()}
		s.refs[f] = sf.FileRef
		s.m.SourceFiles = append(s.m.SourceFiles, sf)
		s.m.add(&BuildFile{Ident: sf.BuildFile, FileRef: sf.FileRef, Name: path.Base(f), Phase: "Sources"})
		sources.Files = append(sources.Files, sf.BuildFile)
	}

	mainGroup := s.group(plan)

	resources := &BuildPhase{Ident: gen.NewID(), Kind: ISAResourcesPhase}
	for _, r := range opts.Resources {
		fileType, bundled := ResourceFileType(r.Path)
		ref := &FileReference{Ident: gen.NewID(), Path: r.Path, FileType: fileType, SourceTree: sourceTreeGroup}
		s.m.add(ref)
		mainGroup.Children = append(mainGroup.Children, ref.Ident)
		if bundled {
			bf := &BuildFile{Ident: gen.NewID(), FileRef: ref.Ident, Name: path.Base(r.Path), Phase: "Resources"}
			s.m.add(bf)
			resources.Files = append(resources.Files, bf.Ident)
		}
	}

	frameworks := &BuildPhase{Ident: gen.NewID(), Kind: ISAFrameworksPhase}
	var packageRefs, productRefs []ID
	for _, p := range opts.Packages {
		pkg := &RemotePackage{Ident: gen.NewID(), Name: p.DisplayName(), URL: p.URL, MinVersion: p.MinVersion}
		s.m.add(pkg)
		packageRefs = append(packageRefs, pkg.Ident)
		for _, name := range p.Products {
			prod := &PackageProduct{Ident: gen.NewID(), Package: pkg.Ident, Product: name}
			bf := &BuildFile{Ident: gen.NewID(), ProductRef: prod.Ident, Name: name, Phase: "Frameworks"}
			s.m.add(prod)
			s.m.add(bf)
			productRefs = append(productRefs, prod.Ident)
			frameworks.Files = append(frameworks.Files, bf.Ident)
		}
	}

	app := &FileReference{
		Ident:            gen.NewID(),
		Path:             opts.Name + ".app",
		ExplicitFileType: "wrapper.application",
		SourceTree:       sourceTreeProducts,
	}
	products := &Group{Ident: gen.NewID(), Name: "Products", Children: []ID{app.Ident}}
	mainGroup.Children = append(mainGroup.Children, products.Ident)
	s.m.add(app)
	s.m.add(products)

	debug := &BuildConfiguration{Ident: gen.NewID(), Name: configDebug, Settings: opts.Base.Merge(opts.Debug)}
	release := &BuildConfiguration{Ident: gen.NewID(), Name: configRelease, Settings: opts.Base.Merge(opts.Release)}
	configs := []ID{debug.Ident, release.Ident}
	projectList := &ConfigurationList{
		Ident:   gen.NewID(),
		Owner:   fmt.Sprintf("PBXProject %q", opts.Name),
		Configs: configs,
		Default: configRelease,
	}
	targetList := &ConfigurationList{
		Ident:   gen.NewID(),
		Owner:   fmt.Sprintf("PBXNativeTarget %q", opts.Name),
		Configs: configs,
		Default: configRelease,
	}

	target := &NativeTarget{
		Ident:           gen.NewID(),
		Name:            opts.Name,
		ConfigList:      targetList.Ident,
		Phases:          []ID{sources.Ident, frameworks.Ident, resources.Ident},
		PackageProducts: productRefs,
		Product:         app.Ident,
		ProductType:     productTypeApplication,
	}
	project := &Project{
		Ident:             gen.NewID(),
		Name:              opts.Name,
		ConfigList:        projectList.Ident,
		MainGroup:         mainGroup.Ident,
		ProductsGroup:     products.Ident,
		Targets:           []ID{target.Ident},
		PackageReferences: packageRefs,
		KnownRegions:      opts.KnownRegions,
		DevelopmentRegion: opts.DevelopmentRegion,
		ToolsVersion:      opts.ToolsVersion,
	}

	for _, o := range []Object{sources, frameworks, resources, debug, release, projectList, targetList, target, project} {
		s.m.add(o)
	}

	s.m.RootObject = project.Ident
	s.m.Project = project
	s.m.Target = target
	s.m.MainGroup = mainGroup
	s.m.Sources = sources
	s.m.Frameworks = frameworks
	s.m.Resources = resources

	if err := s.m.Check(); err != nil {
		return nil, fmt.Errorf("synthesized project is malformed: %w", err)
	}
	return s.m, nil
}

// group adds the group for plan and, recursively, its subgroups and file
// references. Subgroups come before files.
func (s *synth) group(plan *GroupPlan) *Group {
	g := &Group{Ident: s.gen.NewID(), Name: plan.Name, Path: plan.Path}
	for _, child := range plan.Groups {
		g.Children = append(g.Children, s.group(child).Ident)
	}
	for _, f := range plan.Files {
		ref := &FileReference{
			Ident:      s.refs[f],
			Path:       plan.RelPath(f),
			FileType:   sourceFileType(f),
			SourceTree: sourceTreeGroup,
		}
		s.m.add(ref)
		g.Children = append(g.Children, ref.Ident)
	}
	s.m.add(g)
	return g
}

func withDefaults(opts Options) Options {
	if opts.ToolsVersion == "" {
		opts.ToolsVersion = "1500"
	}
	if opts.DevelopmentRegion == "" {
		opts.DevelopmentRegion = "en"
	}
	if len(opts.KnownRegions) == 0 {
		opts.KnownRegions = []string{"en", "Base"}
	}
	if opts.Base == nil {
		opts.Base = Settings{}
	}
	return opts
}
