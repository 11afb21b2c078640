package autofill

import "fmt"

// Outcome is what an autofill attempt tells the coordinator. None of them are failures
// of the service itself.
type Outcome int

const (
	OutcomeLecturesFilled Outcome = iota
	OutcomeMissingClassDetails
	OutcomeMissingEventDetails
	OutcomeTimetableNotFound
	OutcomeStoreUnavailable
	OutcomeNoLecturesThatDay
	OutcomeNoConflicts
	OutcomeStudentsFilled
	OutcomeNoClassificationForRoster
	OutcomeNoRosterLoaded
	OutcomeNoMatchingStudents
	OutcomeDraftNotFound
)

var outcomeNames = map[Outcome]string{
	OutcomeLecturesFilled:            "lectures_filled",
	OutcomeMissingClassDetails:       "missing_class_details",
	OutcomeMissingEventDetails:       "missing_event_details",
	OutcomeTimetableNotFound:         "timetable_not_found",
	OutcomeStoreUnavailable:          "store_unavailable",
	OutcomeNoLecturesThatDay:         "no_lectures_that_day",
	OutcomeNoConflicts:               "no_conflicts",
	OutcomeStudentsFilled:            "students_filled",
	OutcomeNoClassificationForRoster: "no_classification_for_roster",
	OutcomeNoRosterLoaded:            "no_roster_loaded",
	OutcomeNoMatchingStudents:        "no_matching_students",
	OutcomeDraftNotFound:             "draft_not_found",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Filled is true when the draft was changed
func (o Outcome) Filled() bool {
	return o == OutcomeLecturesFilled || o == OutcomeStudentsFilled
}

// Problem is true for outcomes that need the coordinator to fix something first
func (o Outcome) Problem() bool {
	switch o {
	case OutcomeLecturesFilled, OutcomeStudentsFilled, OutcomeNoConflicts, OutcomeNoLecturesThatDay:
		return false
	}
	return true
}

func (o Outcome) Title() string {
	switch o {
	case OutcomeLecturesFilled:
		return "Lectures Autofilled"
	case OutcomeMissingClassDetails:
		return "Missing Class Details"
	case OutcomeMissingEventDetails:
		return "Missing Event Details"
	case OutcomeTimetableNotFound:
		return "No Timetable Found"
	case OutcomeStoreUnavailable:
		return "Timetable Unavailable"
	case OutcomeNoLecturesThatDay:
		return "No Lectures That Day"
	case OutcomeNoConflicts:
		return "No Conflicts"
	case OutcomeStudentsFilled:
		return "Students Autofilled"
	case OutcomeNoClassificationForRoster:
		return "Missing Class Details"
	case OutcomeNoRosterLoaded:
		return "No Student List"
	case OutcomeNoMatchingStudents:
		return "No Matching Students"
	case OutcomeDraftNotFound:
		return "Class Not Found"
	}
	return o.String()
}

// Message is the longer explanation shown under the title
func (r Report) Message() string {
	switch r.Outcome {
	case OutcomeLecturesFilled:
		return fmt.Sprintf("%d conflicting lectures have been added.", r.Lectures)
	case OutcomeMissingClassDetails:
		return "Please select course, program, semester, and section."
	case OutcomeMissingEventDetails:
		return "Please provide the event date and time."
	case OutcomeTimetableNotFound:
		return "A timetable for this class and section has not been created yet."
	case OutcomeStoreUnavailable:
		return "The timetable could not be loaded. Please try again."
	case OutcomeNoLecturesThatDay:
		return fmt.Sprintf("This class has no lectures on %s.", r.Weekday)
	case OutcomeNoConflicts:
		return "No lectures conflict with the specified event time for 15 minutes or more."
	case OutcomeStudentsFilled:
		return fmt.Sprintf("%d students have been added.", r.Students)
	case OutcomeNoClassificationForRoster:
		return "Select course, program, semester, and section before filling students."
	case OutcomeNoRosterLoaded:
		return "Upload a student list before filling students."
	case OutcomeNoMatchingStudents:
		return "No students in the uploaded list match this class."
	case OutcomeDraftNotFound:
		return "This class is no longer being edited."
	}
	return ""
}
