package conflict

import (
	"testing"
	"time"

	"github.com/Pjt727/odautofill/timetable"
)

// 2025-03-04 is a Tuesday
var tuesday = time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

func single(id string, from, to timetable.TimeOfDay, subject string) timetable.LectureSlot {
	return timetable.LectureSlot{
		ID:       id,
		Interval: timetable.Interval{From: from, To: to},
		Primary:  timetable.Assignment{SubjectName: subject, SubjectCode: "C1", FacultyName: "Dr. X"},
	}
}

func TestExampleScenario(t *testing.T) {
	schedule := timetable.Schedule{
		timetable.Tuesday: {
			{
				ID:       "L2",
				Interval: timetable.Interval{From: "10:15", To: "11:10"},
				Primary:  timetable.Assignment{SubjectName: "Python Programming", SubjectCode: "CSE302", FacultyName: "Dr. X"},
			},
			single("L3", "11:15", "12:10", "Data Structures"),
		},
	}
	result := Resolve(tuesday, timetable.Interval{From: "10:00", To: "11:00"}, schedule)
	if result.Status != StatusConflicts || result.Weekday != timetable.Tuesday {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected one conflict got %d", len(result.Conflicts))
	}
	c := result.Conflicts[0]
	if c.SlotID != "L2" || c.Overlap != 45 || c.From != "10:15" || c.To != "11:10" {
		t.Errorf("unexpected conflict %+v", c)
	}
}

func TestThresholdBoundary(t *testing.T) {
	tests := []struct {
		name   string
		window timetable.Interval
		want   int
	}{
		{"14 minutes", timetable.Interval{From: "09:00", To: "10:29"}, 0},
		{"15 minutes", timetable.Interval{From: "09:00", To: "10:30"}, 1},
		{"contains slot", timetable.Interval{From: "10:00", To: "12:00"}, 1},
		{"zero length", timetable.Interval{From: "10:30", To: "10:30"}, 0},
	}
	schedule := timetable.Schedule{timetable.Tuesday: {single("L2", "10:15", "11:10", "Python")}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Resolve(tuesday, test.window, schedule)
			if len(got.Conflicts) != test.want {
				t.Errorf("expected %d conflicts got %d", test.want, len(got.Conflicts))
			}
			if test.want == 0 && got.Status != StatusNoConflicts {
				t.Errorf("expected no conflicts status got %s", got.Status)
			}
		})
	}
}

func TestPlaceholdersExcluded(t *testing.T) {
	schedule := timetable.Schedule{timetable.Tuesday: {
		single("L1", "09:15", "10:10", "Library"),
		single("L2", "10:15", "11:10", "library session"),
		single("L3", "11:15", "12:10", "CCA Activity"),
		single("L4", "12:15", "13:10", ""),
		single("L5", "13:15", "", "Maths"),
	}}
	result := Resolve(tuesday, timetable.Interval{From: "09:00", To: "17:00"}, schedule)
	if len(result.Conflicts) != 0 {
		t.Errorf("placeholders must never conflict, got %+v", result.Conflicts)
	}
	if result.Status != StatusNoConflicts {
		t.Errorf("expected no conflicts got %s", result.Status)
	}
}

func TestSplitExpansion(t *testing.T) {
	split := single("L2", "10:15", "11:10", "PPS Lab")
	split.Secondary = &timetable.Assignment{SubjectName: "Chemistry Lab", SubjectCode: "CHE 121", FacultyName: "Dr. Y"}
	schedule := timetable.Schedule{timetable.Tuesday: {
		split,
		single("L3", "11:15", "12:10", "Maths"),
	}}
	result := Resolve(tuesday, timetable.Interval{From: "10:00", To: "12:10"}, schedule)
	if len(result.Conflicts) != 3 {
		t.Fatalf("expected 3 conflicts got %d", len(result.Conflicts))
	}
	first, second := result.Conflicts[0], result.Conflicts[1]
	if first.SubjectName != "PPS Lab" || second.SubjectName != "Chemistry Lab" {
		t.Errorf("split order wrong: %s then %s", first.SubjectName, second.SubjectName)
	}
	if first.Interval != second.Interval {
		t.Errorf("split entries must share an interval: %v %v", first.Interval, second.Interval)
	}
	if result.Conflicts[2].SubjectName != "Maths" {
		t.Errorf("slot order not preserved")
	}
}

func TestNoLecturesThatDay(t *testing.T) {
	sunday := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	schedule := timetable.Schedule{
		timetable.Tuesday: {single("L1", "09:15", "10:10", "Maths")},
		timetable.Sunday:  {},
	}
	result := Resolve(sunday, timetable.Interval{From: "09:00", To: "17:00"}, schedule)
	if result.Status != StatusNoLecturesThatDay || result.Weekday != timetable.Sunday {
		t.Errorf("unexpected result %+v", result)
	}

	monday := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	result = Resolve(monday, timetable.Interval{From: "09:00", To: "17:00"}, schedule)
	if result.Status != StatusNoLecturesThatDay || result.Weekday != timetable.Monday {
		t.Errorf("missing day should report no lectures, got %+v", result)
	}
}

func TestDefaultTimetableTuesdayMorning(t *testing.T) {
	tt := timetable.DefaultTimetables()[0]
	result := Resolve(tuesday, timetable.Interval{From: "09:00", To: "12:20"}, tt.Schedule)
	if len(result.Conflicts) != 3 {
		t.Fatalf("expected L1 to L3 got %d conflicts", len(result.Conflicts))
	}
	if result.Conflicts[0].SlotID != "L1" || result.Conflicts[2].SlotID != "L3" {
		t.Errorf("unexpected slots %+v", result.Conflicts)
	}
}
