package cmd

import (
	"github.com/spf13/cobra"

	"foliogen/internal/builder"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command loads Markdown entries from './content/', validates
their metadata, applies templates from './layouts/' (including partials),
copies static assets from './static/', and generates the site in the
configured output directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return builder.New(appConfig, siteChrome, ".").Run()
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
