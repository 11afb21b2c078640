/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Pjt727/odautofill/autofill"
	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/timetable"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// autofillCmd represents the autofill command
var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Prints the lectures an event conflicts with",
	Long: `Checks one event window against a class timetable and prints the lectures
that would be filled into an OD request. The timetable comes from --timetable
(a json file) or the built in defaults. With --roster the students are filled too.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := log.WithFields(log.Fields{
			"job": "autofill",
		})
		timetablePath, _ := cmd.Flags().GetString("timetable")
		rosterPath, _ := cmd.Flags().GetString("roster")
		dateInput, _ := cmd.Flags().GetString("date")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		date, err := time.Parse(time.DateOnly, dateInput)
		if err != nil {
			logger.Error("Date must be YYYY-MM-DD: ", err)
			return
		}
		ev := autofill.Event{
			Date:   date,
			Window: timetable.Interval{From: timetable.TimeOfDay(from), To: timetable.TimeOfDay(to)},
		}

		store := timetable.NewMemoryStore()
		var key timetable.Key
		if timetablePath != "" {
			tt, err := readTimetable(timetablePath)
			if err != nil {
				logger.Error("Could not read timetable: ", err)
				return
			}
			if err := store.Save(context.Background(), tt); err != nil {
				logger.Error("Could not load timetable: ", err)
				return
			}
			key = tt.Key
		}
		key = keyFromFlags(cmd, key)

		d := draft.New()
		d.Classify(key)
		service := autofill.NewService(timetable.WithDefaults(store), slog.Default())
		report := service.Lectures(context.Background(), &d, ev)
		logger = logger.WithFields(log.Fields{
			"class":   key.String(),
			"outcome": report.Outcome.String(),
		})
		if !report.Outcome.Filled() {
			logger.Warn(report.Message())
			return
		}
		logger.Info(report.Message())

		if rosterPath != "" {
			students, err := readRoster(rosterPath)
			if err != nil {
				logger.Error("Could not read roster: ", err)
				return
			}
			studentReport, err := service.Students(&d, students, "")
			if err != nil {
				logger.Error("Could not fill students: ", err)
				return
			}
			logger.WithField("students", studentReport.Outcome.String()).Info(studentReport.Message())
		}

		out, err := json.MarshalIndent(d.Lectures, "", "  ")
		if err != nil {
			logger.Error("Could not marshal lectures: ", err)
			return
		}
		fmt.Println(string(out))
	},
}

func readTimetable(path string) (timetable.Timetable, error) {
	var tt timetable.Timetable
	b, err := os.ReadFile(path)
	if err != nil {
		return tt, err
	}
	if err := json.Unmarshal(b, &tt); err != nil {
		return tt, err
	}
	return tt, tt.Validate()
}

// keyFromFlags overrides the parts of k given on the command line
func keyFromFlags(cmd *cobra.Command, k timetable.Key) timetable.Key {
	for flag, part := range map[string]*string{
		"course":   &k.Course,
		"program":  &k.Program,
		"semester": &k.Semester,
		"section":  &k.Section,
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*part = v
		}
	}
	return k
}

func init() {
	rootCmd.AddCommand(autofillCmd)
	autofillCmd.Flags().String("timetable", "", "json file holding one class timetable")
	autofillCmd.Flags().String("roster", "", "csv or xlsx student list")
	autofillCmd.Flags().String("date", "", "event date as YYYY-MM-DD")
	autofillCmd.Flags().String("from", "", "event start as HH:MM")
	autofillCmd.Flags().String("to", "", "event end as HH:MM")
	addKeyFlags(autofillCmd)
	autofillCmd.MarkFlagRequired("date")
	autofillCmd.MarkFlagRequired("from")
	autofillCmd.MarkFlagRequired("to")
}
