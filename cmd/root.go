package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "odautofill",
	Short: "odautofill finds the lectures an on-duty event takes students out of",
	Long: `odautofill checks an event window against class timetables, fills the
conflicting lectures and their students, and serves an api for OD requests`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// classification flags shared by the one-off commands
func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().String("course", "", "course of the class, for example B.Tech")
	cmd.Flags().String("program", "", "program of the class, for example IT")
	cmd.Flags().String("semester", "", "semester of the class (1-8)")
	cmd.Flags().String("section", "", "section of the class (A-E)")
}
