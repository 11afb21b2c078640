// Package roster picks the students of a class out of an uploaded student list.
package roster

import (
	"strings"

	"github.com/Pjt727/odautofill/timetable"
)

type StudentRecord struct {
	Name       string `json:"name"`
	Enrollment string `json:"enrollment"`
	Course     string `json:"course"`
	Program    string `json:"program"`
	Semester   string `json:"semester"`
	Section    string `json:"section"`
}

type Outcome int

const (
	OutcomeFilled Outcome = iota
	OutcomeMissingClassification
	OutcomeNoRoster
	OutcomeNoMatches
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFilled:
		return "filled"
	case OutcomeMissingClassification:
		return "missing_classification"
	case OutcomeNoRoster:
		return "no_roster_loaded"
	case OutcomeNoMatches:
		return "no_matching_students"
	}
	return "unknown"
}

// Match keeps roster order. Sections compare uppercased, course and program
// ignore case, semester must match exactly ("1" is not "01").
func Match(students []StudentRecord, k timetable.Key) []StudentRecord {
	section := strings.ToUpper(k.Section)
	var matched []StudentRecord
	for _, s := range students {
		if strings.ToUpper(s.Section) != section {
			continue
		}
		if !strings.EqualFold(s.Course, k.Course) || !strings.EqualFold(s.Program, k.Program) {
			continue
		}
		if s.Semester != k.Semester {
			continue
		}
		matched = append(matched, s)
	}
	return matched
}

// Format writes one "name enrollment" line per student
func Format(students []StudentRecord) string {
	lines := make([]string, len(students))
	for i, s := range students {
		lines[i] = s.Name + " " + s.Enrollment
	}
	return strings.Join(lines, "\n")
}

// Fill formats the students of k. Preconditions are checked in order:
// classification, then a loaded roster, then at least one match.
func Fill(students []StudentRecord, k timetable.Key) (string, Outcome) {
	if !k.Complete() {
		return "", OutcomeMissingClassification
	}
	if len(students) == 0 {
		return "", OutcomeNoRoster
	}
	matched := Match(students, k)
	if len(matched) == 0 {
		return "", OutcomeNoMatches
	}
	return Format(matched), OutcomeFilled
}
