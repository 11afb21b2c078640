package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minutesPerDay = 24 * 60

	// manual lectures default to this length
	LectureMinutes = 55
)

// TimeOfDay is a 24 hour "HH:MM" wall clock time
type TimeOfDay string

// standard slot starts offered when a lecture is added by hand
var LectureStartTimes = []TimeOfDay{"09:15", "10:15", "11:15", "12:15", "13:15", "14:15", "15:15", "16:15"}

// ToMinutes converts t to minutes since midnight.
// Parsing is lenient: empty, malformed or out of range times are treated as midnight.
func ToMinutes(t TimeOfDay) int {
	hours, minutes, ok := split(t)
	if !ok {
		return 0
	}
	return hours*60 + minutes
}

func (t TimeOfDay) Minutes() int {
	return ToMinutes(t)
}

// Valid is the strict form of parsing used where input comes from a client
func (t TimeOfDay) Valid() bool {
	_, _, ok := split(t)
	return ok
}

func split(t TimeOfDay) (int, int, bool) {
	h, m, found := strings.Cut(string(t), ":")
	if !found {
		return 0, 0, false
	}
	// "HH:MM:SS" keeps its hours and minutes
	m, _, _ = strings.Cut(m, ":")
	hours, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, false
	}
	return hours, minutes, true
}

// FromMinutes formats minutes since midnight, wrapping past midnight
func FromMinutes(minutes int) TimeOfDay {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return TimeOfDay(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

func AddMinutes(t TimeOfDay, n int) TimeOfDay {
	return FromMinutes(ToMinutes(t) + n)
}

func DefaultLectureEnd(from TimeOfDay) TimeOfDay {
	return AddMinutes(from, LectureMinutes)
}

// Interval is a span within one day. To >= From is assumed, not enforced.
type Interval struct {
	From TimeOfDay `json:"fromTime"`
	To   TimeOfDay `json:"toTime"`
}

// Incomplete when either bound is missing
func (i Interval) Incomplete() bool {
	return i.From == "" || i.To == ""
}

// OverlapMinutes may be zero or negative for disjoint intervals, both mean no overlap
func OverlapMinutes(a, b Interval) int {
	end := min(ToMinutes(a.To), ToMinutes(b.To))
	start := max(ToMinutes(a.From), ToMinutes(b.From))
	return end - start
}
