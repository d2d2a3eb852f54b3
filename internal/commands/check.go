package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/moasq/pbxgen/internal/terminal"
)

var checkCmd = &cobra.Command{
	Use:   "check [project.pbxproj]",
	Short: "Check that a project file parses and its references resolve",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadProjectService()
		if err != nil {
			return err
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		}
		report, err := svc.CheckProject(path)
		if err != nil {
			return reportErrors("check failed", err)
		}

		terminal.Success(fmt.Sprintf("%d objects, %d references resolved", report.Objects, report.References))
		kinds := make([]string, 0, len(report.Kinds))
		for k := range report.Kinds {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			terminal.Detail(k, fmt.Sprintf("%d", report.Kinds[k]))
		}
		return nil
	},
}
