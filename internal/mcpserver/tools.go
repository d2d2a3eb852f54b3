package mcpserver

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/moasq/pbxgen/internal/service"
)

type textOutput struct {
	Message string `json:"message"`
}

type tools struct {
	open Opener
}

func (t *tools) project(root string) (*service.Service, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	return t.open(root)
}

// generateProjectInput is the input for the generate_project tool.
type generateProjectInput struct {
	Root   string `json:"root,omitempty" jsonschema:"Project root holding the app sources. Defaults to the working directory."`
	Strict bool   `json:"strict,omitempty" jsonschema:"Fail when a configured resource such as Info.plist is missing"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"Return an outline of the project instead of writing it"`
}

func (t *tools) generateProject(ctx context.Context, req *mcp.CallToolRequest, input generateProjectInput) (*mcp.CallToolResult, textOutput, error) {
	svc, err := t.project(input.Root)
	if err != nil {
		return nil, textOutput{}, err
	}
	res, err := svc.GenerateProject(ctx, service.GenerateOptions{Strict: input.Strict, DryRun: input.DryRun})
	if err != nil {
		return nil, textOutput{}, err
	}

	var b strings.Builder
	if res.Written {
		fmt.Fprintf(&b, "Wrote %s with %d source files in %d groups.", res.Path, res.SourceFiles, res.Groups)
	} else {
		fmt.Fprintf(&b, "Dry run for %s (%d source files, %d groups):\n%s", res.Path, res.SourceFiles, res.Groups, res.Outline)
	}
	if len(res.MissingResources) > 0 {
		fmt.Fprintf(&b, "\nMissing resources: %s", strings.Join(res.MissingResources, ", "))
	}
	return nil, textOutput{Message: b.String()}, nil
}

// generateIconsInput is the input for the generate_icons tool.
type generateIconsInput struct {
	Source     string `json:"source" jsonschema:"Path to the square source image (PNG, JPEG or WebP)"`
	Root       string `json:"root,omitempty" jsonschema:"Project root. Defaults to the working directory."`
	OutDir     string `json:"out_dir,omitempty" jsonschema:"Output directory. Defaults to Assets.xcassets/AppIcon.appiconset under the root."`
	AllowSmall bool   `json:"allow_small,omitempty" jsonschema:"Accept sources smaller than 1024x1024 with a warning"`
}

func (t *tools) generateIcons(ctx context.Context, req *mcp.CallToolRequest, input generateIconsInput) (*mcp.CallToolResult, textOutput, error) {
	if input.Source == "" {
		return nil, textOutput{}, fmt.Errorf("source is required")
	}
	svc, err := t.project(input.Root)
	if err != nil {
		return nil, textOutput{}, err
	}
	res, err := svc.GenerateIcons(ctx, service.IconOptions{
		Source:     input.Source,
		OutDir:     input.OutDir,
		AllowSmall: input.AllowSmall,
	})
	if err != nil {
		return nil, textOutput{}, err
	}

	var total int64
	for _, f := range res.Files {
		total += f.Bytes
	}
	msg := fmt.Sprintf("Wrote %d icons (%s) to %s.", len(res.Files), humanize.Bytes(uint64(total)), res.Dir)
	if res.Warning != "" {
		msg += "\nWarning: " + res.Warning
	}
	return nil, textOutput{Message: msg}, nil
}

// checkProjectInput is the input for the check_project tool.
type checkProjectInput struct {
	Path string `json:"path,omitempty" jsonschema:"Path to project.pbxproj. Defaults to the configured output under the root."`
	Root string `json:"root,omitempty" jsonschema:"Project root. Defaults to the working directory."`
}

func (t *tools) checkProject(ctx context.Context, req *mcp.CallToolRequest, input checkProjectInput) (*mcp.CallToolResult, textOutput, error) {
	svc, err := t.project(input.Root)
	if err != nil {
		return nil, textOutput{}, err
	}
	report, err := svc.CheckProject(input.Path)
	if err != nil {
		return nil, textOutput{}, err
	}

	kinds := make([]string, 0, len(report.Kinds))
	for k, n := range report.Kinds {
		kinds = append(kinds, fmt.Sprintf("%s=%d", k, n))
	}
	sort.Strings(kinds)
	return nil, textOutput{Message: fmt.Sprintf("OK: %d objects, %d references resolved (%s)",
		report.Objects, report.References, strings.Join(kinds, ", "))}, nil
}
