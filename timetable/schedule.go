package timetable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Pjt727/odautofill/internal/validation"
)

var ErrSlotNotFound = errors.New("slot not found")

// Schedule is the weekly set of slots for one class, in slot order per day
type Schedule map[Weekday][]LectureSlot

func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for day, slots := range s {
		copied := make([]LectureSlot, len(slots))
		for i, slot := range slots {
			copied[i] = slot
			if slot.Secondary != nil {
				secondary := *slot.Secondary
				copied[i].Secondary = &secondary
			}
		}
		out[day] = copied
	}
	return out
}

// Key classifies a class. It is both the timetable lookup key and the roster filter.
type Key struct {
	Course   string `json:"course" validate:"required"`
	Program  string `json:"program" validate:"required"`
	Semester string `json:"semester" validate:"required,oneof=1 2 3 4 5 6 7 8"`
	Section  string `json:"section" validate:"required,oneof=A B C D E"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s-%s-%s-%s", k.Course, k.Program, k.Semester, k.Section)
}

// Complete reports whether every part of the key is set
func (k Key) Complete() bool {
	return k.Course != "" && k.Program != "" && k.Semester != "" && k.Section != ""
}

// ParseKey reverses String. Semester and section never hold a dash so they are
// taken from the right and anything extra is kept in the program.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, "-")
	if len(parts) < 4 {
		return Key{}, fmt.Errorf("invalid timetable key %q", s)
	}
	n := len(parts)
	k := Key{
		Course:   parts[0],
		Program:  strings.Join(parts[1:n-2], "-"),
		Semester: parts[n-2],
		Section:  parts[n-1],
	}
	if !k.Complete() {
		return Key{}, fmt.Errorf("invalid timetable key %q", s)
	}
	return k, nil
}

type Timetable struct {
	Key
	Schedule Schedule `json:"schedule"`
}

func (t Timetable) Validate() error {
	return validation.Struct(t.Key)
}

func (t Timetable) Clone() Timetable {
	return Timetable{Key: t.Key, Schedule: t.Schedule.Clone()}
}

// SetSlot replaces the subjects of one slot keeping its id and times
func (t *Timetable) SetSlot(day Weekday, slotID string, primary Assignment, secondary *Assignment) error {
	if err := ValidateAssignment(primary); err != nil {
		return err
	}
	if secondary != nil {
		if err := ValidateAssignment(*secondary); err != nil {
			return err
		}
	}
	slots := t.Schedule[day]
	for i := range slots {
		if slots[i].ID != slotID {
			continue
		}
		slots[i].Primary = primary
		slots[i].Secondary = secondary
		return nil
	}
	return fmt.Errorf("%w: %s %s", ErrSlotNotFound, day, slotID)
}
