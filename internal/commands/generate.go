package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moasq/pbxgen/internal/service"
	"github.com/moasq/pbxgen/internal/terminal"
)

var (
	outputFlag string
	strictFlag bool
	dryRunFlag bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the Xcode project file",
	Long:  "Scan the project root for sources and write Name.xcodeproj/project.pbxproj, grouping files by the directory mappings in pbxgen.yml.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadProjectService()
		if err != nil {
			return err
		}

		res, err := svc.GenerateProject(cmd.Context(), service.GenerateOptions{
			Output: outputFlag,
			Strict: strictFlag,
			DryRun: dryRunFlag,
		})
		if err != nil {
			return reportErrors("generate failed", err)
		}

		for _, r := range res.MissingResources {
			terminal.Warning(fmt.Sprintf("Resource %s does not exist yet", r))
		}
		if dryRunFlag {
			terminal.Header("Project outline")
			terminal.Block(res.Outline)
			terminal.Divider()
			terminal.Info(fmt.Sprintf("Dry run: %s not written", res.Path))
			return nil
		}

		terminal.Success(fmt.Sprintf("Wrote %s", res.Path))
		terminal.Detail("Sources", fmt.Sprintf("%d", res.SourceFiles))
		terminal.Detail("Groups", fmt.Sprintf("%d", res.Groups))
		terminal.Detail("Objects", fmt.Sprintf("%d", res.Objects))
		if len(res.MissingResources) > 0 {
			terminal.Detail("Missing", strings.Join(res.MissingResources, ", "))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Project file to write (default <name>.xcodeproj/project.pbxproj)")
	generateCmd.Flags().BoolVar(&strictFlag, "strict", false, "Fail when a configured resource is missing")
	generateCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Print the project outline without writing")
}
