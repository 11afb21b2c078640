// Package conflict finds the timetabled lectures an event takes students away from.
package conflict

import (
	"strings"
	"time"

	"github.com/Pjt727/odautofill/timetable"
)

// overlaps shorter than this do not need on-duty cover
const MinOverlapMinutes = 15

// subject names containing these are placeholders, never lectures
var placeholderSubjects = []string{"LIBRARY", "CCA"}

type Status int

const (
	StatusConflicts Status = iota
	StatusNoConflicts
	// the schedule has nothing on the event's weekday
	StatusNoLecturesThatDay
)

func (s Status) String() string {
	switch s {
	case StatusConflicts:
		return "conflicts"
	case StatusNoConflicts:
		return "no_conflicts"
	case StatusNoLecturesThatDay:
		return "no_lectures_that_day"
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Conflict is one lecture the event overlaps. Split slots yield one per assignment.
type Conflict struct {
	SlotID string `json:"slotId"`
	timetable.Interval
	timetable.Assignment
	Overlap int `json:"overlapMinutes"`
}

type Result struct {
	Weekday   timetable.Weekday `json:"weekday"`
	Status    Status            `json:"status"`
	Conflicts []Conflict        `json:"conflicts"`
}

// Excluded reports whether a slot can never conflict: it is missing times or a
// subject, or it is a library/CCA placeholder
func Excluded(slot timetable.LectureSlot) bool {
	if slot.Interval.Incomplete() || slot.Primary.SubjectName == "" {
		return true
	}
	subject := strings.ToUpper(slot.Primary.SubjectName)
	for _, placeholder := range placeholderSubjects {
		if strings.Contains(subject, placeholder) {
			return true
		}
	}
	return false
}

// Resolve lists, in slot order, the lectures on date's weekday that overlap
// window by at least MinOverlapMinutes
func Resolve(date time.Time, window timetable.Interval, schedule timetable.Schedule) Result {
	result := Result{Weekday: timetable.WeekdayOf(date)}

	day := schedule[result.Weekday]
	if len(day) == 0 {
		result.Status = StatusNoLecturesThatDay
		return result
	}

	for _, slot := range day {
		if Excluded(slot) {
			continue
		}
		overlap := timetable.OverlapMinutes(window, slot.Interval)
		if overlap < MinOverlapMinutes {
			continue
		}
		for _, assignment := range slot.Assignments() {
			result.Conflicts = append(result.Conflicts, Conflict{
				SlotID:     slot.ID,
				Interval:   slot.Interval,
				Assignment: assignment,
				Overlap:    overlap,
			})
		}
	}

	if len(result.Conflicts) == 0 {
		result.Status = StatusNoConflicts
	} else {
		result.Status = StatusConflicts
	}
	return result
}
