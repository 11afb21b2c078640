/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/Pjt727/odautofill/roster"
	"github.com/Pjt727/odautofill/roster/source"
	"github.com/Pjt727/odautofill/timetable"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rosterCmd represents the roster command
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Prints the students of one class from a student list",
	Long: `Reads a csv or xlsx student list and prints the "name enrollment" lines
of the students in the given course, program, semester and section`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.WithFields(log.Fields{
			"job": "roster",
		})
		path, _ := cmd.Flags().GetString("file")
		key := keyFromFlags(cmd, timetable.Key{})

		students, err := readRoster(path)
		if err != nil {
			logger.Error("Could not read roster: ", err)
			return
		}
		logger = logger.WithFields(log.Fields{
			"class":    key.String(),
			"students": len(students),
		})
		blob, outcome := roster.Fill(students, key)
		if outcome != roster.OutcomeFilled {
			logger.Warn("No students filled: ", outcome)
			return
		}
		fmt.Println(blob)
	},
}

func readRoster(path string) ([]roster.StudentRecord, error) {
	format, err := source.FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return source.Read(format, f)
}

func init() {
	rootCmd.AddCommand(rosterCmd)
	rosterCmd.Flags().String("file", "", "csv or xlsx student list")
	addKeyFlags(rosterCmd)
	rosterCmd.MarkFlagRequired("file")
}
