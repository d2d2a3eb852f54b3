package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moasq/pbxgen/internal/iconset"
	"github.com/moasq/pbxgen/internal/service"
	"github.com/moasq/pbxgen/internal/terminal"
)

var (
	iconsOutFlag   string
	allowSmallFlag bool
)

var iconsCmd = &cobra.Command{
	Use:   "icons <image>",
	Short: "Render the app icon set from one image",
	Long:  fmt.Sprintf("Resize a square source image (at least %dx%d) into every iOS app icon size and write them with Contents.json into %s.", iconset.MinSourcePixels, iconset.MinSourcePixels, iconset.DefaultDir),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := rootService()

		spinner := terminal.NewSpinner(fmt.Sprintf("Generating %d icons...", len(iconset.Icons)))
		spinner.Start()
		res, err := svc.GenerateIcons(cmd.Context(), service.IconOptions{
			Source:     args[0],
			OutDir:     iconsOutFlag,
			AllowSmall: allowSmallFlag,
		})
		spinner.Stop()

		if res != nil {
			if res.Warning != "" {
				terminal.Warning(res.Warning)
			}
			for _, f := range res.Files {
				terminal.Detail(f.Icon.Filename, fmt.Sprintf("%dx%d, %s", f.Icon.Pixels, f.Icon.Pixels, f.HumanSize()))
			}
		}
		if err != nil {
			return err
		}
		terminal.Success(fmt.Sprintf("Wrote %d icons to %s", len(res.Files), res.Dir))
		return nil
	},
}

func init() {
	iconsCmd.Flags().StringVar(&iconsOutFlag, "out", "", "Output directory (default <root>/"+iconset.DefaultDir+")")
	iconsCmd.Flags().BoolVar(&allowSmallFlag, "allow-small", false, "Accept a source smaller than 1024x1024 with a warning")
}
