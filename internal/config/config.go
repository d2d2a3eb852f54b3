// Package config loads the pbxgen.yml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/moasq/pbxgen/internal/pbxproj"
)

// DefaultFile is the configuration file looked up in the project root.
const DefaultFile = "pbxgen.yml"

// Config holds everything the generator needs to know about a project
// beyond its file tree.
type Config struct {
	// Name of the app target; also names Name.xcodeproj.
	Name     string `yaml:"name"`
	BundleID string `yaml:"bundle_id"`
	// Team is the development team written to DEVELOPMENT_TEAM.
	Team             string `yaml:"team,omitempty"`
	DeploymentTarget string `yaml:"deployment_target,omitempty"`

	// Output is the project file path relative to the root. Defaults to
	// Name.xcodeproj/project.pbxproj.
	Output          string   `yaml:"output,omitempty"`
	SourceExtension string   `yaml:"source_extension,omitempty"`
	Exclude         []string `yaml:"exclude,omitempty"`

	// StrictResources turns missing resource files into an error.
	StrictResources bool `yaml:"strict_resources,omitempty"`

	// Groups maps directories to navigator groups. Omitted, one group is
	// derived per directory; an empty list keeps every file in the main
	// group.
	Groups    []pbxproj.Mapping  `yaml:"groups"`
	Resources []pbxproj.Resource `yaml:"resources,omitempty"`
	Packages  []pbxproj.Package  `yaml:"packages,omitempty"`

	BuildSettings BuildSettings `yaml:"build_settings,omitempty"`
}

// BuildSettings are layered: Base applies to both configurations and
// Debug or Release override it.
type BuildSettings struct {
	Base    map[string]any `yaml:"base,omitempty"`
	Debug   map[string]any `yaml:"debug,omitempty"`
	Release map[string]any `yaml:"release,omitempty"`
}

// Load reads the configuration at path. A missing file yields Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// MarshalYAML writes groups only when set, so that an omitted list and
// an explicit empty one both survive a Save and Load.
func (c Config) MarshalYAML() (any, error) {
	type plain Config
	var node yaml.Node
	if err := node.Encode(plain(c)); err != nil {
		return nil, err
	}
	if c.Groups == nil && node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "groups" {
				node.Content = append(node.Content[:i], node.Content[i+2:]...)
				break
			}
		}
	}
	return &node, nil
}

// Save writes cfg as YAML, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(c.Name) == "" {
		result = multierror.Append(result, errors.New("name is required"))
	}
	if strings.ContainsAny(c.Name, `/\`) {
		result = multierror.Append(result, fmt.Errorf("name %q must not contain a path separator", c.Name))
	}
	if c.BundleID == "" {
		result = multierror.Append(result, errors.New("bundle_id is required"))
	}
	if c.DeploymentTarget != "" && !semver.IsValid("v"+c.DeploymentTarget) {
		result = multierror.Append(result, fmt.Errorf("deployment_target %q is not a version", c.DeploymentTarget))
	}
	if c.SourceExtension != "" && !strings.HasPrefix(c.SourceExtension, ".") {
		result = multierror.Append(result, fmt.Errorf("source_extension %q must start with a dot", c.SourceExtension))
	}
	if err := pbxproj.ValidateMappings(c.Groups); err != nil {
		result = multierror.Append(result, err)
	}
	for _, r := range c.Resources {
		if r.Path == "" || filepath.IsAbs(r.Path) {
			result = multierror.Append(result, fmt.Errorf("resource path %q must be relative", r.Path))
		}
	}

	names := map[string]bool{}
	for _, p := range c.Packages {
		if p.URL == "" {
			result = multierror.Append(result, errors.New("package url is required"))
			continue
		}
		if !semver.IsValid("v" + p.MinVersion) {
			result = multierror.Append(result, fmt.Errorf("package %s: min_version %q is not a semantic version", p.DisplayName(), p.MinVersion))
		}
		if names[p.DisplayName()] {
			result = multierror.Append(result, fmt.Errorf("package %s listed twice", p.DisplayName()))
		}
		names[p.DisplayName()] = true
	}

	for layer, settings := range map[string]map[string]any{
		"base":    c.BuildSettings.Base,
		"debug":   c.BuildSettings.Debug,
		"release": c.BuildSettings.Release,
	} {
		if _, err := pbxproj.NormalizeSettings(settings); err != nil {
			result = multierror.Append(result, fmt.Errorf("build_settings.%s: %w", layer, err))
		}
	}

	return result.ErrorOrNil()
}

// OutputPath returns the project file path relative to the project root.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return filepath.Join(c.Name+".xcodeproj", "project.pbxproj")
}

// Extension returns the source extension, defaulting to .swift.
func (c *Config) Extension() string {
	if c.SourceExtension != "" {
		return c.SourceExtension
	}
	return ".swift"
}

// Options converts the configuration into synthesizer options. The
// identity fields (bundle_id, team, deployment_target) override the base
// settings of the same name.
func (c *Config) Options() (pbxproj.Options, error) {
	base, err := pbxproj.NormalizeSettings(c.BuildSettings.Base)
	if err != nil {
		return pbxproj.Options{}, fmt.Errorf("build_settings.base: %w", err)
	}
	debug, err := pbxproj.NormalizeSettings(c.BuildSettings.Debug)
	if err != nil {
		return pbxproj.Options{}, fmt.Errorf("build_settings.debug: %w", err)
	}
	release, err := pbxproj.NormalizeSettings(c.BuildSettings.Release)
	if err != nil {
		return pbxproj.Options{}, fmt.Errorf("build_settings.release: %w", err)
	}

	identity := pbxproj.Settings{"PRODUCT_BUNDLE_IDENTIFIER": c.BundleID}
	if c.Team != "" {
		identity["DEVELOPMENT_TEAM"] = c.Team
	}
	if c.DeploymentTarget != "" {
		identity["IPHONEOS_DEPLOYMENT_TARGET"] = c.DeploymentTarget
	}

	return pbxproj.Options{
		Name:      c.Name,
		Groups:    c.Groups,
		Resources: c.Resources,
		Packages:  c.Packages,
		Base:      base.Merge(identity),
		Debug:     debug,
		Release:   release,
	}, nil
}
