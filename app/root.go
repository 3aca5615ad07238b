// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "udo-story",
	Short: "udo-story is the website and admin panel for the Udo Juergens tribute show",
	Long: `udo-story serves the public website of the touring show
(tour dates, gallery, reviews, press and contact pages) together with an
admin panel for managing its content.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
