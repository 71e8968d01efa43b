package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "landdeals",
	Short: "Land deals payments from the command line",
	Long: `landdeals records and reviews the payments of land deals against the
land-deals backend.

Log in once with "landdeals login"; the session is kept in your user config
directory until you log out or the backend rejects it.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("api", "", "Backend base URL (default from API_BASE_URL)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log backend calls to stderr")
}
