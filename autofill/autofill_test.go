package autofill

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/roster"
	"github.com/Pjt727/odautofill/timetable"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type unavailableStore struct {
	timetable.Store
}

func (unavailableStore) Get(context.Context, timetable.Key) (timetable.Timetable, error) {
	return timetable.Timetable{}, errors.Join(timetable.ErrStoreUnavailable, errors.New("connection refused"))
}

var pythonKey = timetable.Key{Course: "B.Tech", Program: "CSE", Semester: "3", Section: "A"}

func pythonStore() timetable.Store {
	return timetable.WithDefaults(timetable.NewMemoryStore(timetable.Timetable{
		Key: pythonKey,
		Schedule: timetable.Schedule{
			timetable.Tuesday: {
				{
					ID:       "L2",
					Interval: timetable.Interval{From: "10:15", To: "11:10"},
					Primary:  timetable.Assignment{SubjectName: "Python Programming", SubjectCode: "CSE302", FacultyName: "Dr. X"},
				},
				{
					ID:       "L3",
					Interval: timetable.Interval{From: "11:15", To: "12:10"},
					Primary:  timetable.Assignment{SubjectName: "Operating Systems", SubjectCode: "CSE303", FacultyName: "Dr. Y"},
				},
			},
		},
	}))
}

func tuesdayEvent(from, to timetable.TimeOfDay) Event {
	return Event{
		Date:   time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC),
		Window: timetable.Interval{From: from, To: to},
	}
}

func classifiedDraft(k timetable.Key) draft.ClassDraft {
	d := draft.New()
	d.Classify(k)
	return d
}

func TestLecturesExampleScenario(t *testing.T) {
	s := NewService(pythonStore(), testLogger)
	d := classifiedDraft(pythonKey)
	d.AddLecture(draft.LectureRecord{Subject: "manual edit"})

	report := s.Lectures(context.Background(), &d, tuesdayEvent("10:00", "11:00"))
	if report.Outcome != OutcomeLecturesFilled || report.Lectures != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(d.Lectures) != 1 {
		t.Fatalf("autofill should replace existing lectures, got %d", len(d.Lectures))
	}
	l := d.Lectures[0]
	if l.Subject != "Python Programming | CSE302" || l.Faculty != "Dr. X" || l.FromTime != "10:15" || l.ToTime != "11:10" || l.Students != "" {
		t.Errorf("unexpected lecture %+v", l)
	}
	if l.Section != "A" {
		t.Errorf("lecture should inherit the section got %q", l.Section)
	}
	if report.Message() != "1 conflicting lectures have been added." {
		t.Errorf("unexpected message %q", report.Message())
	}
}

func TestLecturesOutcomes(t *testing.T) {
	tests := []struct {
		name  string
		store timetable.Store
		key   timetable.Key
		event Event
		want  Outcome
	}{
		{"missing class details", pythonStore(), timetable.Key{Course: "B.Tech"}, tuesdayEvent("10:00", "11:00"), OutcomeMissingClassDetails},
		{"missing class details before event", pythonStore(), timetable.Key{}, Event{}, OutcomeMissingClassDetails},
		{"missing event details", pythonStore(), pythonKey, tuesdayEvent("10:00", ""), OutcomeMissingEventDetails},
		{"missing event date", pythonStore(), pythonKey, Event{Window: timetable.Interval{From: "10:00", To: "11:00"}}, OutcomeMissingEventDetails},
		{"timetable not found", pythonStore(), timetable.Key{Course: "BCA", Program: "CS", Semester: "5", Section: "A"}, tuesdayEvent("10:00", "11:00"), OutcomeTimetableNotFound},
		{"store unavailable", unavailableStore{}, pythonKey, tuesdayEvent("10:00", "11:00"), OutcomeStoreUnavailable},
		{"no conflicts", pythonStore(), pythonKey, tuesdayEvent("12:15", "13:00"), OutcomeNoConflicts},
		{"no lectures that day", pythonStore(), pythonKey, Event{
			Date:   time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
			Window: timetable.Interval{From: "10:00", To: "11:00"},
		}, OutcomeNoLecturesThatDay},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := NewService(test.store, testLogger)
			d := classifiedDraft(test.key)
			existing := d.AddLecture(draft.LectureRecord{Subject: "kept"})

			report := s.Lectures(context.Background(), &d, test.event)
			if report.Outcome != test.want {
				t.Fatalf("expected %s got %s", test.want, report.Outcome)
			}
			if len(d.Lectures) != 1 || d.Lectures[0].ID != existing.ID {
				t.Error("a non filling outcome must leave the draft alone")
			}
			if report.Outcome.Title() == "" || report.Message() == "" {
				t.Error("every outcome needs user facing text")
			}
		})
	}
}

func TestStoreUnavailableKeepsCause(t *testing.T) {
	s := NewService(unavailableStore{}, testLogger)
	d := classifiedDraft(pythonKey)
	report := s.Lectures(context.Background(), &d, tuesdayEvent("10:00", "11:00"))
	if !errors.Is(report.Err, timetable.ErrStoreUnavailable) {
		t.Errorf("expected the store error to be kept got %v", report.Err)
	}
}

func TestDefaultTimetableAutofill(t *testing.T) {
	s := NewService(timetable.WithDefaults(timetable.NewMemoryStore()), testLogger)
	d := classifiedDraft(timetable.Key{Course: "B.Tech", Program: "IT", Semester: "1", Section: "A"})
	// Monday 15:00-17:10 covers French and the library slot
	report := s.Lectures(context.Background(), &d, Event{
		Date:   time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		Window: timetable.Interval{From: "15:00", To: "17:10"},
	})
	if report.Outcome != OutcomeLecturesFilled || len(d.Lectures) != 1 {
		t.Fatalf("expected only French, got %+v %+v", report, d.Lectures)
	}
	if d.Lectures[0].Subject != "French - I | FLU 144" || d.Lectures[0].Faculty != "Mr. Balkishan | BLK" {
		t.Errorf("unexpected lecture %+v", d.Lectures[0])
	}
}

var students = []roster.StudentRecord{
	{Name: "Asha Verma", Enrollment: "A001", Course: "B.Tech", Program: "CSE", Semester: "3", Section: "A"},
	{Name: "Ravi Kumar", Enrollment: "A002", Course: "B.Tech", Program: "CSE", Semester: "3", Section: "B"},
	{Name: "Kiran Rao", Enrollment: "A006", Course: "b.tech", Program: "cse", Semester: "3", Section: "a"},
}

func TestStudentsBulkAndSingle(t *testing.T) {
	s := NewService(pythonStore(), testLogger)
	d := classifiedDraft(pythonKey)
	first := d.AddLecture(draft.LectureRecord{Subject: "one"})
	d.AddLecture(draft.LectureRecord{Subject: "two"})

	report, err := s.Students(&d, students, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if report.Outcome != OutcomeStudentsFilled || report.Students != 2 || report.Lectures != 1 {
		t.Errorf("unexpected report %+v", report)
	}
	if d.Lectures[0].Students != "Asha Verma A001\nKiran Rao A006" || d.Lectures[1].Students != "" {
		t.Errorf("single mode wrote the wrong lectures %+v", d.Lectures)
	}

	report, err = s.Students(&d, students, "")
	if err != nil {
		t.Fatal(err)
	}
	if report.Lectures != 2 || d.Lectures[1].Students != d.Lectures[0].Students {
		t.Errorf("bulk mode should fill every lecture %+v", d.Lectures)
	}

	if _, err := s.Students(&d, students, "missing"); !errors.Is(err, draft.ErrLectureNotFound) {
		t.Errorf("expected ErrLectureNotFound got %v", err)
	}
}

func TestStudentsOutcomes(t *testing.T) {
	s := NewService(pythonStore(), testLogger)
	tests := []struct {
		name     string
		key      timetable.Key
		students []roster.StudentRecord
		want     Outcome
	}{
		{"classification", timetable.Key{Course: "B.Tech"}, nil, OutcomeNoClassificationForRoster},
		{"roster", pythonKey, nil, OutcomeNoRosterLoaded},
		{"matches", timetable.Key{Course: "BCA", Program: "CS", Semester: "5", Section: "A"}, students, OutcomeNoMatchingStudents},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := classifiedDraft(test.key)
			d.AddLecture(draft.LectureRecord{Students: "untouched"})
			report, err := s.Students(&d, test.students, "")
			if err != nil {
				t.Fatal(err)
			}
			if report.Outcome != test.want {
				t.Errorf("expected %s got %s", test.want, report.Outcome)
			}
			if d.Lectures[0].Students != "untouched" {
				t.Error("a failed fill must not change students")
			}
		})
	}
}

func TestLecturesForAll(t *testing.T) {
	s := NewService(pythonStore(), testLogger)
	registry := draft.NewRegistry()
	var ids []string
	for _, k := range []timetable.Key{pythonKey, {Course: "BCA", Program: "CS", Semester: "5", Section: "A"}, pythonKey} {
		d := registry.Create()
		registry.Update(d.ID, func(d *draft.ClassDraft) error {
			d.Classify(k)
			return nil
		})
		ids = append(ids, d.ID)
	}
	ids = append(ids, "missing")

	reports, err := s.LecturesForAll(context.Background(), registry, ids, tuesdayEvent("10:00", "12:00"))
	if !errors.Is(err, draft.ErrDraftNotFound) {
		t.Errorf("expected the missing draft to be reported got %v", err)
	}
	want := []Outcome{OutcomeLecturesFilled, OutcomeTimetableNotFound, OutcomeLecturesFilled, OutcomeDraftNotFound}
	for i, report := range reports {
		if report.DraftID != ids[i] || report.Outcome != want[i] {
			t.Errorf("report %d: expected %s for %s got %+v", i, want[i], ids[i], report)
		}
	}
	d, _ := registry.Get(ids[0])
	if len(d.Lectures) != 2 {
		t.Errorf("expected both lectures written to the registry got %d", len(d.Lectures))
	}
}
