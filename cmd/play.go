package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session",
	Long: `Open the quiz. This is what running surfmath with no subcommand does;
--no-intro skips the sunrise splash and starts on the beach.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("no-intro", false, "Skip the splash screen")
}
