package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moasq/pbxgen/internal/config"
	"github.com/moasq/pbxgen/internal/terminal"
)

var forceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter pbxgen.yml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !forceFlag {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}

		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
		terminal.Success(fmt.Sprintf("Wrote %s", path))
		terminal.Info("Edit name, bundle_id and groups, then run `pbxgen generate`.")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config")
}
