/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// appCmd represents the app command
var appCmd = &cobra.Command{
	Use:   "app",
	Short: "used to run the odautofill service",
	Long: `The odautofill service is a json server for timetables, class drafts
and OD requests (this command is not ran directly)`,
}

func init() {
	rootCmd.AddCommand(appCmd)
}
