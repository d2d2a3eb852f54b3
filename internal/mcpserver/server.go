// Package mcpserver exposes pbxgen operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/moasq/pbxgen/internal/config"
	"github.com/moasq/pbxgen/internal/service"
)

// Opener builds a service for the project rooted at root.
type Opener func(root string) (*service.Service, error)

// OpenProject loads root/pbxgen.yml (or the defaults) and returns a
// service logging to logger.
func OpenProject(logger *slog.Logger) Opener {
	return func(root string) (*service.Service, error) {
		cfg, err := config.Load(filepath.Join(root, config.DefaultFile))
		if err != nil {
			return nil, err
		}
		return service.NewService(cfg, root, service.ServiceOpts{Logger: logger}), nil
	}
}

// Run starts the pbxgen MCP server over stdio.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, open Opener) error {
	return NewServer(version, open).Run(ctx, &mcp.StdioTransport{})
}

// NewServer registers every pbxgen tool on a new MCP server.
func NewServer(version string, open Opener) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pbxgen",
			Version: version,
		},
		nil,
	)
	t := &tools{open: open}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_project",
		Description: "Generate the Xcode project file for an iOS app from its source tree and pbxgen.yml. Scans for source files, groups them by directory, and writes Name.xcodeproj/project.pbxproj atomically. Use dry_run to preview the group tree and build phases without writing.",
	}, t.generateProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_icons",
		Description: "Render every iOS app icon size from one square source image (1024x1024 or larger) into Assets.xcassets/AppIcon.appiconset, including Contents.json.",
	}, t.generateIcons)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_project",
		Description: "Parse an existing project.pbxproj and report whether every object reference resolves. Read-only.",
	}, t.checkProject)

	return server
}
