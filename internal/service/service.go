// Package service wires configuration, discovery, synthesis and icon
// generation together for the CLI and the MCP server.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/moasq/pbxgen/internal/config"
	"github.com/moasq/pbxgen/internal/discover"
	"github.com/moasq/pbxgen/internal/iconset"
	"github.com/moasq/pbxgen/internal/logging"
	"github.com/moasq/pbxgen/internal/pbxproj"
)

// ErrMissingResource is returned in strict mode when a configured
// resource does not exist on disk.
var ErrMissingResource = errors.New("resource not found")

// Service runs pbxgen operations against one project root.
type Service struct {
	config *config.Config
	root   string
	logger *slog.Logger
	ids    pbxproj.IDGenerator
}

// ServiceOpts holds optional configuration for the service.
type ServiceOpts struct {
	Logger *slog.Logger
	// IDs overrides the identifier generator, mainly for tests.
	IDs pbxproj.IDGenerator
}

// NewService creates a service for the project rooted at root.
func NewService(cfg *config.Config, root string, opts ...ServiceOpts) *Service {
	s := &Service{
		config: cfg,
		root:   root,
		logger: logging.Discard(),
		ids:    pbxproj.XIDGenerator{},
	}
	if len(opts) > 0 {
		if opts[0].Logger != nil {
			s.logger = opts[0].Logger
		}
		if opts[0].IDs != nil {
			s.ids = opts[0].IDs
		}
	}
	return s
}

// Config returns the configuration the service runs with.
func (s *Service) Config() *config.Config {
	return s.config
}

// Root returns the project root.
func (s *Service) Root() string {
	return s.root
}

// GenerateOptions controls GenerateProject.
type GenerateOptions struct {
	// Output overrides the configured project file path. Relative paths
	// are resolved against the project root.
	Output string
	// Strict turns missing resources into an error, in addition to the
	// strict_resources config setting.
	Strict bool
	// DryRun skips writing and fills GenerateResult.Outline instead.
	DryRun bool
}

// GenerateResult summarizes a generated project.
type GenerateResult struct {
	Path             string
	SourceFiles      int
	Groups           int
	Objects          int
	MissingResources []string
	Outline          string
	Written          bool
}

// GenerateProject scans the root for sources, synthesizes the project
// file, verifies the encoded bytes and writes them atomically.
func (s *Service) GenerateProject(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	files, err := discover.Sources(s.root, discover.Options{
		Extension: s.config.Extension(),
		Exclude:   s.config.Exclude,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("scanned sources", "root", s.root, "files", len(files))
	if len(files) == 0 {
		s.logger.Warn("no source files found", "root", s.root, "extension", s.config.Extension())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	missing, err := s.checkResources(opts.Strict || s.config.StrictResources)
	if err != nil {
		return nil, err
	}

	synthOpts, err := s.config.Options()
	if err != nil {
		return nil, err
	}
	m, err := pbxproj.Synthesize(files, synthOpts, s.ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build project: %w", err)
	}
	data, err := m.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	report, err := pbxproj.Verify(data)
	if err != nil {
		return nil, fmt.Errorf("generated project does not parse back: %w", err)
	}
	s.logger.Debug("verified project", "objects", report.Objects, "references", report.References)

	result := &GenerateResult{
		Path:             s.outputPath(opts.Output),
		SourceFiles:      len(m.SourceFiles),
		Groups:           len(m.Groups()),
		Objects:          report.Objects,
		MissingResources: missing,
	}
	if opts.DryRun {
		result.Outline = pbxproj.Outline(m)
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := pbxproj.WriteFile(result.Path, m); err != nil {
		return nil, err
	}
	result.Written = true
	s.logger.Info("wrote project", "path", result.Path, "sources", result.SourceFiles)
	return result, nil
}

func (s *Service) outputPath(override string) string {
	p := override
	if p == "" {
		p = s.config.OutputPath()
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.root, p)
}

// checkResources returns the configured resources missing from disk. In
// strict mode any missing resource is an error.
func (s *Service) checkResources(strict bool) ([]string, error) {
	var (
		missing []string
		result  *multierror.Error
	)
	for _, r := range s.config.Resources {
		_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(r.Path)))
		if err == nil {
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to check resource %s: %w", r.Path, err)
		}
		missing = append(missing, r.Path)
		if strict {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrMissingResource, r.Path))
		} else {
			s.logger.Warn("resource not found, referencing anyway", "path", r.Path)
		}
	}
	return missing, result.ErrorOrNil()
}

// IconOptions controls GenerateIcons.
type IconOptions struct {
	Source string
	// OutDir defaults to the app icon set inside the project root.
	OutDir     string
	AllowSmall bool
}

// IconResult lists the icon files written.
type IconResult struct {
	Dir     string
	Files   []iconset.Result
	Warning string
}

// GenerateIcons validates the source image and renders every icon size.
// Files written before a failure are still reported.
func (s *Service) GenerateIcons(ctx context.Context, opts IconOptions) (*IconResult, error) {
	policy := iconset.PolicyFail
	if opts.AllowSmall {
		policy = iconset.PolicyWarn
	}
	src, err := iconset.Validate(opts.Source, policy)
	if err != nil {
		return nil, err
	}
	if src.Warning != "" {
		s.logger.Warn(src.Warning)
	}

	dir := opts.OutDir
	if dir == "" {
		dir = filepath.Join(s.root, filepath.FromSlash(iconset.DefaultDir))
	}
	s.logger.Debug("generating icons", "source", src.Path, "format", src.Format, "size", src.Size, "dir", dir)

	files, err := iconset.Generate(ctx, src, dir)
	result := &IconResult{Dir: dir, Files: files, Warning: src.Warning}
	if err != nil {
		return result, fmt.Errorf("failed to generate icons: %w", err)
	}
	for _, f := range files {
		s.logger.Debug("wrote icon", "file", f.Icon.Filename, "size", f.HumanSize())
	}
	return result, nil
}

// CheckProject parses an existing project file and checks that every
// reference resolves. An empty path checks the configured output.
func (s *Service) CheckProject(path string) (*pbxproj.Report, error) {
	path = s.outputPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}
	report, err := pbxproj.Verify(data)
	if err != nil {
		return report, fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Debug("checked project", "path", path, "objects", report.Objects)
	return report, nil
}
