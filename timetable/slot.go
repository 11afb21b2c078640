package timetable

import (
	"encoding/json"

	"github.com/Pjt727/odautofill/internal/validation"
)

// Assignment is one subject taught by one faculty member
type Assignment struct {
	SubjectName string `json:"subjectName" validate:"required"`
	SubjectCode string `json:"subjectCode" validate:"required"`
	FacultyName string `json:"facultyName" validate:"required"`
	FacultyCode string `json:"facultyCode"`
}

// Subject renders "Name | Code"
func (a Assignment) Subject() string {
	return a.SubjectName + " | " + a.SubjectCode
}

// Faculty renders "Name | Code", dropping the code segment when there is none
func (a Assignment) Faculty() string {
	if a.FacultyCode == "" {
		return a.FacultyName
	}
	return a.FacultyName + " | " + a.FacultyCode
}

// ValidateAssignment checks an edited slot. The faculty code is optional.
func ValidateAssignment(a Assignment) error {
	return validation.Struct(a)
}

// LectureSlot is a timetable entry. A split slot hosts a second assignment in
// the same interval (two lab groups sharing a slot).
type LectureSlot struct {
	ID string
	Interval
	Primary   Assignment
	Secondary *Assignment
}

func (s LectureSlot) IsSplit() bool {
	return s.Secondary != nil
}

// Assignments lists the primary assignment followed by the secondary one for split slots
func (s LectureSlot) Assignments() []Assignment {
	if s.Secondary == nil {
		return []Assignment{s.Primary}
	}
	return []Assignment{s.Primary, *s.Secondary}
}

// the stored shape keeps the second pair flat next to an isSplit flag
type slotJSON struct {
	ID           string    `json:"id"`
	FromTime     TimeOfDay `json:"fromTime"`
	ToTime       TimeOfDay `json:"toTime"`
	SubjectName  string    `json:"subjectName,omitempty"`
	SubjectCode  string    `json:"subjectCode,omitempty"`
	FacultyName  string    `json:"facultyName,omitempty"`
	FacultyCode  string    `json:"facultyCode,omitempty"`
	IsSplit      bool      `json:"isSplit,omitempty"`
	SubjectName2 string    `json:"subjectName2,omitempty"`
	SubjectCode2 string    `json:"subjectCode2,omitempty"`
	FacultyName2 string    `json:"facultyName2,omitempty"`
	FacultyCode2 string    `json:"facultyCode2,omitempty"`
}

func (s LectureSlot) MarshalJSON() ([]byte, error) {
	out := slotJSON{
		ID:          s.ID,
		FromTime:    s.From,
		ToTime:      s.To,
		SubjectName: s.Primary.SubjectName,
		SubjectCode: s.Primary.SubjectCode,
		FacultyName: s.Primary.FacultyName,
		FacultyCode: s.Primary.FacultyCode,
	}
	if s.Secondary != nil {
		out.IsSplit = true
		out.SubjectName2 = s.Secondary.SubjectName
		out.SubjectCode2 = s.Secondary.SubjectCode
		out.FacultyName2 = s.Secondary.FacultyName
		out.FacultyCode2 = s.Secondary.FacultyCode
	}
	return json.Marshal(out)
}

// UnmarshalJSON only treats a slot as split when the flag is set and a second subject exists
func (s *LectureSlot) UnmarshalJSON(b []byte) error {
	var in slotJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*s = LectureSlot{
		ID:       in.ID,
		Interval: Interval{From: in.FromTime, To: in.ToTime},
		Primary: Assignment{
			SubjectName: in.SubjectName,
			SubjectCode: in.SubjectCode,
			FacultyName: in.FacultyName,
			FacultyCode: in.FacultyCode,
		},
	}
	if in.IsSplit && in.SubjectName2 != "" {
		s.Secondary = &Assignment{
			SubjectName: in.SubjectName2,
			SubjectCode: in.SubjectCode2,
			FacultyName: in.FacultyName2,
			FacultyCode: in.FacultyCode2,
		}
	}
	return nil
}
