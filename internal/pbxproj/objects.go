package pbxproj

import (
	"fmt"
	"path"
)

// Object is one record in the objects table of a project file.
//
// Properties returns every key except isa. Values are string, ID (a
// cross-reference to another object), []any or map[string]any.
type Object interface {
	ID() ID
	ISA() string
	Comment() string
	Properties() map[string]any
}

// Kind discriminators.
const (
	ISABuildFile          = "PBXBuildFile"
	ISAFileReference      = "PBXFileReference"
	ISAFrameworksPhase    = "PBXFrameworksBuildPhase"
	ISAGroup              = "PBXGroup"
	ISANativeTarget       = "PBXNativeTarget"
	ISAProject            = "PBXProject"
	ISAResourcesPhase     = "PBXResourcesBuildPhase"
	ISASourcesPhase       = "PBXSourcesBuildPhase"
	ISABuildConfiguration = "XCBuildConfiguration"
	ISAConfigurationList  = "XCConfigurationList"
	ISARemotePackage      = "XCRemoteSwiftPackageReference"
	ISAPackageProduct     = "XCSwiftPackageProductDependency"
)

const (
	sourceTreeGroup    = "<group>"
	sourceTreeProducts = "BUILT_PRODUCTS_DIR"

	// buildActionMask is the "all actions" mask Xcode writes on every phase.
	buildActionMask = "2147483647"
)

// BuildFile links a file reference or a package product into a phase.
type BuildFile struct {
	Ident      ID
	FileRef    ID
	ProductRef ID
	Name       string // display name of the referenced file or product
	Phase      string // Sources, Frameworks or Resources
}

func (b *BuildFile) ID() ID          { return b.Ident }
func (b *BuildFile) ISA() string     { return ISABuildFile }
func (b *BuildFile) Comment() string { return fmt.Sprintf("%s in %s", b.Name, b.Phase) }

func (b *BuildFile) Properties() map[string]any {
	p := map[string]any{}
	if b.FileRef != "" {
		p["fileRef"] = b.FileRef
	}
	if b.ProductRef != "" {
		p["productRef"] = b.ProductRef
	}
	return p
}

// FileReference points at a file on disk relative to its enclosing group.
type FileReference struct {
	Ident ID
	// Path is relative to the parent group's directory.
	Path             string
	FileType         string // lastKnownFileType
	ExplicitFileType string
	SourceTree       string
}

func (f *FileReference) ID() ID      { return f.Ident }
func (f *FileReference) ISA() string { return ISAFileReference }

// Comment is the base name of the file.
func (f *FileReference) Comment() string { return path.Base(f.Path) }

func (f *FileReference) Properties() map[string]any {
	p := map[string]any{
		"path":       f.Path,
		"sourceTree": f.SourceTree,
	}
	if f.ExplicitFileType != "" {
		p["explicitFileType"] = f.ExplicitFileType
		p["includeInIndex"] = "0"
	} else {
		p["lastKnownFileType"] = f.FileType
	}
	if base := path.Base(f.Path); base != f.Path {
		p["name"] = base
	}
	return p
}

// Group is a node of the navigator tree. The main group has neither
// name nor path.
type Group struct {
	Ident    ID
	Name     string
	Path     string
	Children []ID
}

func (g *Group) ID() ID      { return g.Ident }
func (g *Group) ISA() string { return ISAGroup }

func (g *Group) Comment() string {
	if g.Name != "" {
		return g.Name
	}
	return g.Path
}

func (g *Group) Properties() map[string]any {
	p := map[string]any{
		"children":   idList(g.Children),
		"sourceTree": sourceTreeGroup,
	}
	if g.Path != "" {
		p["path"] = g.Path
	}
	if g.Name != "" && g.Name != g.Path {
		p["name"] = g.Name
	}
	return p
}

// BuildPhase is one of the Sources, Frameworks or Resources phases.
type BuildPhase struct {
	Ident ID
	Kind  string // one of the ISA*Phase constants
	Files []ID
}

func (b *BuildPhase) ID() ID      { return b.Ident }
func (b *BuildPhase) ISA() string { return b.Kind }

func (b *BuildPhase) Comment() string {
	switch b.Kind {
	case ISASourcesPhase:
		return "Sources"
	case ISAFrameworksPhase:
		return "Frameworks"
	case ISAResourcesPhase:
		return "Resources"
	}
	return b.Kind
}

func (b *BuildPhase) Properties() map[string]any {
	return map[string]any{
		"buildActionMask":                    buildActionMask,
		"files":                              idList(b.Files),
		"runOnlyForDeploymentPostprocessing": "0",
	}
}

// NativeTarget is the application target.
type NativeTarget struct {
	Ident           ID
	Name            string
	ConfigList      ID
	Phases          []ID
	PackageProducts []ID
	Product         ID
	ProductType     string
}

func (t *NativeTarget) ID() ID          { return t.Ident }
func (t *NativeTarget) ISA() string     { return ISANativeTarget }
func (t *NativeTarget) Comment() string { return t.Name }

func (t *NativeTarget) Properties() map[string]any {
	p := map[string]any{
		"buildConfigurationList": t.ConfigList,
		"buildPhases":            idList(t.Phases),
		"buildRules":             []any{},
		"dependencies":           []any{},
		"name":                   t.Name,
		"productName":            t.Name,
		"productReference":       t.Product,
		"productType":            t.ProductType,
	}
	if len(t.PackageProducts) > 0 {
		p["packageProductDependencies"] = idList(t.PackageProducts)
	}
	return p
}

// Project is the root object of the document.
type Project struct {
	Ident             ID
	Name              string
	ConfigList        ID
	MainGroup         ID
	ProductsGroup     ID
	Targets           []ID
	PackageReferences []ID
	KnownRegions      []string
	DevelopmentRegion string
	ToolsVersion      string // e.g. 1500
}

func (p *Project) ID() ID          { return p.Ident }
func (p *Project) ISA() string     { return ISAProject }
func (p *Project) Comment() string { return "Project object" }

func (p *Project) Properties() map[string]any {
	targetAttrs := map[string]any{}
	for _, t := range p.Targets {
		targetAttrs[string(t)] = map[string]any{"CreatedOnToolsVersion": createdOnTools(p.ToolsVersion)}
	}
	regions := make([]any, 0, len(p.KnownRegions))
	for _, r := range p.KnownRegions {
		regions = append(regions, r)
	}
	props := map[string]any{
		"attributes": map[string]any{
			"BuildIndependentTargetsInParallel": "1",
			"LastSwiftUpdateCheck":              p.ToolsVersion,
			"LastUpgradeCheck":                  p.ToolsVersion,
			"TargetAttributes":                  targetAttrs,
		},
		"buildConfigurationList": p.ConfigList,
		"compatibilityVersion":   "Xcode 14.0",
		"developmentRegion":      p.DevelopmentRegion,
		"hasScannedForEncodings": "0",
		"knownRegions":           regions,
		"mainGroup":              p.MainGroup,
		"productRefGroup":        p.ProductsGroup,
		"projectDirPath":         "",
		"projectRoot":            "",
		"targets":                idList(p.Targets),
	}
	if len(p.PackageReferences) > 0 {
		props["packageReferences"] = idList(p.PackageReferences)
	}
	return props
}

// createdOnTools turns "1500" into "15.0".
func createdOnTools(v string) string {
	if len(v) < 3 {
		return v
	}
	return v[:len(v)-2] + "." + v[len(v)-2:len(v)-1]
}

// BuildConfiguration is a named settings table (Debug or Release).
type BuildConfiguration struct {
	Ident    ID
	Name     string
	Settings Settings
}

func (c *BuildConfiguration) ID() ID          { return c.Ident }
func (c *BuildConfiguration) ISA() string     { return ISABuildConfiguration }
func (c *BuildConfiguration) Comment() string { return c.Name }

func (c *BuildConfiguration) Properties() map[string]any {
	return map[string]any{
		"buildSettings": c.Settings.plist(),
		"name":          c.Name,
	}
}

// ConfigurationList groups the configurations of a project or target.
type ConfigurationList struct {
	Ident   ID
	Owner   string // e.g. PBXProject "Cheq"
	Configs []ID
	Default string
}

func (l *ConfigurationList) ID() ID          { return l.Ident }
func (l *ConfigurationList) ISA() string     { return ISAConfigurationList }
func (l *ConfigurationList) Comment() string { return "Build configuration list for " + l.Owner }

func (l *ConfigurationList) Properties() map[string]any {
	return map[string]any{
		"buildConfigurations":           idList(l.Configs),
		"defaultConfigurationIsVisible": "0",
		"defaultConfigurationName":      l.Default,
	}
}

// RemotePackage is a Swift package pulled from a repository.
type RemotePackage struct {
	Ident      ID
	Name       string
	URL        string
	MinVersion string
}

func (r *RemotePackage) ID() ID      { return r.Ident }
func (r *RemotePackage) ISA() string { return ISARemotePackage }

func (r *RemotePackage) Comment() string {
	return fmt.Sprintf("%s %q", ISARemotePackage, r.Name)
}

func (r *RemotePackage) Properties() map[string]any {
	return map[string]any{
		"repositoryURL": r.URL,
		"requirement": map[string]any{
			"kind":           "upToNextMajorVersion",
			"minimumVersion": r.MinVersion,
		},
	}
}

// PackageProduct is one library product of a RemotePackage.
type PackageProduct struct {
	Ident   ID
	Package ID
	Product string
}

func (p *PackageProduct) ID() ID          { return p.Ident }
func (p *PackageProduct) ISA() string     { return ISAPackageProduct }
func (p *PackageProduct) Comment() string { return p.Product }

func (p *PackageProduct) Properties() map[string]any {
	return map[string]any{
		"package":     p.Package,
		"productName": p.Product,
	}
}

func idList(ids []ID) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}
	return out
}
