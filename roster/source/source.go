// Package source reads uploaded student lists into roster records.
// Rows missing any required value are dropped, a missing column empties the roster.
package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Pjt727/odautofill/roster"
)

var ErrUnsupportedFormat = errors.New("unsupported roster format")

var requiredColumns = []string{"name", "enrollment", "course", "program", "semester", "section"}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatOf guesses the format from a file name
func FormatOf(filename string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

func Read(format Format, r io.Reader) ([]roster.StudentRecord, error) {
	switch format {
	case FormatCSV:
		return FromCSV(r)
	case FormatXLSX:
		return FromXLSX(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// headerIndex maps each required column to its position, ok is false if one is absent
func headerIndex(header []string) (map[string]int, bool) {
	idx := make(map[string]int, len(requiredColumns))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, false
		}
	}
	return idx, true
}

// fromRows turns a header row plus data rows into records
func fromRows(rows [][]string) []roster.StudentRecord {
	if len(rows) == 0 {
		return nil
	}
	idx, ok := headerIndex(rows[0])
	if !ok {
		return nil
	}
	var students []roster.StudentRecord
	for _, row := range rows[1:] {
		values := make(map[string]string, len(requiredColumns))
		complete := true
		for _, col := range requiredColumns {
			i := idx[col]
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				complete = false
				break
			}
			values[col] = strings.TrimSpace(row[i])
		}
		if !complete {
			continue
		}
		students = append(students, roster.StudentRecord{
			Name:       values["name"],
			Enrollment: values["enrollment"],
			Course:     values["course"],
			Program:    values["program"],
			Semester:   values["semester"],
			Section:    strings.ToUpper(values["section"]),
		})
	}
	return students
}
