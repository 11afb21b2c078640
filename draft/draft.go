// Package draft holds the class being assembled for an OD request and the
// lectures its students will miss.
package draft

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Pjt727/odautofill/internal/validation"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/google/uuid"
)

var (
	// committing needs at least one lecture, autofill is the usual fix
	ErrNoLecturesOnCommit = errors.New("no lectures added")
	ErrLectureNotFound    = errors.New("lecture not found")
)

const DefaultSection = "A"

type ClassDraft struct {
	ID       string          `json:"id" validate:"required"`
	Course   string          `json:"course" validate:"required"`
	Program  string          `json:"program" validate:"required"`
	Semester string          `json:"semester" validate:"required,oneof=1 2 3 4 5 6 7 8"`
	Section  string          `json:"section" validate:"required,oneof=A B C D E"`
	Lectures []LectureRecord `json:"lectures" validate:"dive"`
}

func New() ClassDraft {
	return ClassDraft{
		ID:       uuid.NewString(),
		Section:  DefaultSection,
		Lectures: []LectureRecord{},
	}
}

func (d *ClassDraft) Key() timetable.Key {
	return timetable.Key{
		Course:   d.Course,
		Program:  d.Program,
		Semester: d.Semester,
		Section:  d.Section,
	}
}

// HasClassDetails must hold before anything looks the class up
func (d *ClassDraft) HasClassDetails() bool {
	return d.ID != "" && d.Key().Complete()
}

// Classify sets the class key. Existing lectures are left alone.
func (d *ClassDraft) Classify(k timetable.Key) {
	d.Course = k.Course
	d.Program = k.Program
	d.Semester = k.Semester
	d.Section = k.Section
}

func (d ClassDraft) Clone() ClassDraft {
	d.Lectures = slices.Clone(d.Lectures)
	if d.Lectures == nil {
		d.Lectures = []LectureRecord{}
	}
	return d
}

func (d *ClassDraft) indexOf(lectureID string) int {
	return slices.IndexFunc(d.Lectures, func(l LectureRecord) bool { return l.ID == lectureID })
}

// AddLecture appends l, minting an id when it has none
func (d *ClassDraft) AddLecture(l LectureRecord) LectureRecord {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Section == "" {
		l.Section = d.Section
	}
	d.Lectures = append(d.Lectures, l)
	return l
}

// UpdateLecture replaces the lecture with the given id, keeping that id
func (d *ClassDraft) UpdateLecture(lectureID string, l LectureRecord) error {
	i := d.indexOf(lectureID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLectureNotFound, lectureID)
	}
	l.ID = lectureID
	d.Lectures[i] = l
	return nil
}

func (d *ClassDraft) RemoveLecture(lectureID string) error {
	i := d.indexOf(lectureID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLectureNotFound, lectureID)
	}
	d.Lectures = slices.Delete(d.Lectures, i, i+1)
	return nil
}

// ReplaceLectures discards every current lecture, manual edits included, and
// uses records instead. Autofill always replaces so lecture ids do not survive a rerun.
func (d *ClassDraft) ReplaceLectures(records []LectureRecord) {
	d.Lectures = slices.Clone(records)
	if d.Lectures == nil {
		d.Lectures = []LectureRecord{}
	}
}

// ApplyStudentsToAll writes the same roster blob to every lecture
func (d *ClassDraft) ApplyStudentsToAll(students string) {
	for i := range d.Lectures {
		d.Lectures[i].Students = students
	}
}

func (d *ClassDraft) ApplyStudents(lectureID, students string) error {
	i := d.indexOf(lectureID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLectureNotFound, lectureID)
	}
	d.Lectures[i].Students = students
	return nil
}

// CopyStudentsFromFirst gives every lecture the first lecture's students.
// It reports false when there is nothing to copy to.
func (d *ClassDraft) CopyStudentsFromFirst() bool {
	if len(d.Lectures) < 2 {
		return false
	}
	d.ApplyStudentsToAll(d.Lectures[0].Students)
	return true
}

// Commit checks the draft is ready to join an OD request. An empty draft gives
// ErrNoLecturesOnCommit, anything else a *validation.Error naming the fields.
func (d *ClassDraft) Commit() error {
	if len(d.Lectures) == 0 {
		return ErrNoLecturesOnCommit
	}
	return validation.Struct(d)
}
