package timetable

import (
	"testing"
	"time"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		in   TimeOfDay
		want int
	}{
		{"00:00", 0},
		{"09:15", 555},
		{"23:59", 1439},
		{"9:05", 545},
		{"10:15:30", 615},
		{"", 0},
		{"1015", 0},
		{"ab:cd", 0},
		{"24:00", 0},
		{"12:60", 0},
	}
	for _, test := range tests {
		if got := ToMinutes(test.in); got != test.want {
			t.Errorf("ToMinutes(%q) = %d, want %d", test.in, got, test.want)
		}
	}
}

func TestValid(t *testing.T) {
	if !TimeOfDay("16:15").Valid() {
		t.Error("16:15 should be valid")
	}
	for _, bad := range []TimeOfDay{"", "16", "25:00", "x:10"} {
		if bad.Valid() {
			t.Errorf("%q should be invalid", bad)
		}
	}
}

func TestOverlapSymmetry(t *testing.T) {
	intervals := []Interval{
		{"10:00", "11:00"},
		{"10:15", "11:10"},
		{"11:15", "12:10"},
		{"09:00", "17:00"},
		{"10:30", "10:30"},
		{"", ""},
	}
	for _, a := range intervals {
		for _, b := range intervals {
			if OverlapMinutes(a, b) != OverlapMinutes(b, a) {
				t.Errorf("overlap of %v and %v is not symmetric", a, b)
			}
		}
	}
}

func TestOverlapMinutes(t *testing.T) {
	event := Interval{"10:00", "11:00"}
	if got := OverlapMinutes(event, Interval{"10:15", "11:10"}); got != 45 {
		t.Errorf("expected 45 got %d", got)
	}
	if got := OverlapMinutes(event, Interval{"11:15", "12:10"}); got != -15 {
		t.Errorf("expected -15 got %d", got)
	}
	if got := OverlapMinutes(Interval{"10:30", "10:30"}, Interval{"10:15", "11:10"}); got > 0 {
		t.Errorf("zero length window should not overlap, got %d", got)
	}
}

func TestDefaultLectureEnd(t *testing.T) {
	tests := map[TimeOfDay]TimeOfDay{
		"09:15": "10:10",
		"16:15": "17:10",
		"23:30": "00:25",
	}
	for from, want := range tests {
		if got := DefaultLectureEnd(from); got != want {
			t.Errorf("DefaultLectureEnd(%s) = %s, want %s", from, got, want)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date string
		want Weekday
	}{
		{"2025-03-02", Sunday},
		{"2025-03-03", Monday},
		{"2025-03-04", Tuesday},
		{"2025-03-08", Saturday},
	}
	for _, test := range tests {
		date, err := time.Parse(time.DateOnly, test.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := WeekdayOf(date); got != test.want {
			t.Errorf("WeekdayOf(%s) = %s, want %s", test.date, got, test.want)
		}
	}
	if Sunday != 6 || Monday != 0 {
		t.Error("weekdays must count from Monday = 0")
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("tuesday")
	if err != nil || d != Tuesday {
		t.Errorf("expected Tuesday got %v %v", d, err)
	}
	if _, err := ParseWeekday("Funday"); err == nil {
		t.Error("expected error for unknown day")
	}
}
