package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/moasq/pbxgen/internal/config"
	"github.com/moasq/pbxgen/internal/service"
	"github.com/moasq/pbxgen/internal/terminal"
)

func configPath() string {
	if configFlag != "" {
		return configFlag
	}
	return filepath.Join(rootFlag, config.DefaultFile)
}

// loadProjectService loads the config for --root and returns a service
// logging through the default logger.
func loadProjectService() (*service.Service, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded config", "path", configPath(), "name", cfg.Name)
	return service.NewService(cfg, rootFlag, service.ServiceOpts{Logger: slog.Default()}), nil
}

// rootService returns a service for --root with the default config. It
// serves commands that need the project root but no project settings.
func rootService() *service.Service {
	return service.NewService(config.Default(), rootFlag, service.ServiceOpts{Logger: slog.Default()})
}

// reportErrors prints each problem of an aggregated error on its own line
// and returns a short summary in its place.
func reportErrors(what string, err error) error {
	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) < 2 {
		return err
	}
	for _, e := range merr.Errors {
		terminal.Error(e.Error())
	}
	return fmt.Errorf("%s: %d problems", what, len(merr.Errors))
}
