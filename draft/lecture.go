package draft

import (
	"github.com/Pjt727/odautofill/conflict"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/google/uuid"
)

// LectureRecord is a lecture students will miss, as written into an OD request
type LectureRecord struct {
	ID       string              `json:"id" validate:"required"`
	Subject  string              `json:"subject" validate:"required"`
	Faculty  string              `json:"faculty" validate:"required"`
	FromTime timetable.TimeOfDay `json:"fromTime" validate:"required"`
	ToTime   timetable.TimeOfDay `json:"toTime" validate:"required"`
	// newline separated "name enrollment" lines
	Students string `json:"students" validate:"required"`
	Section  string `json:"section,omitempty"`
}

// Synthesize turns conflicts into fresh lecture records with empty rosters.
// Every call mints new ids, otherwise the output depends only on its arguments.
func Synthesize(conflicts []conflict.Conflict, section string) []LectureRecord {
	records := make([]LectureRecord, 0, len(conflicts))
	for _, c := range conflicts {
		records = append(records, LectureRecord{
			ID:       uuid.NewString(),
			Subject:  c.Assignment.Subject(),
			Faculty:  c.Assignment.Faculty(),
			FromTime: c.From,
			ToTime:   c.To,
			Students: "",
			Section:  section,
		})
	}
	return records
}

// NewManualLecture is a blank lecture starting at from and lasting the standard length
func NewManualLecture(from timetable.TimeOfDay, section string) LectureRecord {
	l := LectureRecord{ID: uuid.NewString(), Section: section}
	if from != "" {
		l.FromTime = from
		l.ToTime = timetable.DefaultLectureEnd(from)
	}
	return l
}
