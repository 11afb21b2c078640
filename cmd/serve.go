/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log/slog"
	"os"

	"github.com/Pjt727/odautofill/data"
	"github.com/Pjt727/odautofill/server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the api service",
	Long: `Runs the api service. Stores are picked with TIMETABLE_SOURCE and
REQUEST_SOURCE (memory, postgres or remote for timetables)`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := data.LoadConfig()
		if err != nil {
			slog.Error("Invalid configuration", "err", err)
			os.Exit(1)
		}
		if err := server.Serve(cfg); err != nil {
			slog.Error("Server stopped", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	appCmd.AddCommand(serveCmd)
}
