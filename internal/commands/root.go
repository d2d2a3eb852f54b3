package commands

import (
	"github.com/spf13/cobra"

	"github.com/moasq/pbxgen/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "pbxgen",
	Short:         "Xcode project and app icon generator",
	Long:          "pbxgen writes the project.pbxproj of an iOS app from its source tree and renders its app icon set from a single image.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verboseFlag)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var (
	verboseFlag bool
	rootFlag    string
	configFlag  string
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log every step to stderr")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".", "Project root holding the app sources")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default <root>/pbxgen.yml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(mcpCmd)
}
