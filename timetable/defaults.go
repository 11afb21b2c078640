package timetable

type SlotTiming struct {
	ID string
	Interval
}

const lunchSlotID = "LUNCH"

var (
	defaultTimings = []SlotTiming{
		{"L1", Interval{"09:15", "10:10"}},
		{"L2", Interval{"10:15", "11:10"}},
		{"L3", Interval{"11:15", "12:10"}},
		{"L4", Interval{"12:15", "13:10"}},
		{lunchSlotID, Interval{"13:10", "14:10"}},
		{"L5", Interval{"14:15", "15:10"}},
		{"L6", Interval{"15:15", "16:10"}},
		{"L7", Interval{"16:15", "17:10"}},
	}
	semesterOneTimings = []SlotTiming{
		{"L1", Interval{"09:15", "10:10"}},
		{"L2", Interval{"10:15", "11:10"}},
		{"L3", Interval{"11:15", "12:10"}},
		{lunchSlotID, Interval{"12:15", "13:10"}},
		{"L4", Interval{"13:15", "14:10"}},
		{"L5", Interval{"14:15", "15:10"}},
		{"L6", Interval{"15:15", "16:10"}},
		{"L7", Interval{"16:15", "17:10"}},
	}
	bcaSemesterFiveTimings = []SlotTiming{
		{"L1", Interval{"09:15", "10:10"}},
		{"L2", Interval{"10:15", "11:10"}},
		{"L3", Interval{"11:15", "12:10"}},
		{lunchSlotID, Interval{"12:15", "13:15"}},
		{"L4", Interval{"13:15", "14:10"}},
		{"L5", Interval{"14:15", "15:10"}},
		{"L6", Interval{"15:15", "16:10"}},
		{"L7", Interval{"16:15", "17:10"}},
	}
)

// TimingsFor picks the bell schedule a class follows
func TimingsFor(k Key) []SlotTiming {
	if k.Course == "BCA" && k.Semester == "5" {
		return bcaSemesterFiveTimings
	}
	if k.Semester == "1" {
		return semesterOneTimings
	}
	return defaultTimings
}

// BlankSchedule builds an empty weekday schedule on the class's bell timings.
// Slot ids are prefixed by day ("Monday-L1").
func BlankSchedule(k Key) Schedule {
	timings := TimingsFor(k)
	schedule := make(Schedule, len(ScheduledDays))
	for _, day := range ScheduledDays {
		slots := make([]LectureSlot, len(timings))
		for i, timing := range timings {
			slots[i] = LectureSlot{
				ID:       day.String() + "-" + timing.ID,
				Interval: timing.Interval,
			}
		}
		schedule[day] = slots
	}
	return schedule
}

func slot(id string, from, to TimeOfDay, subject, code, faculty, facultyCode string) LectureSlot {
	return LectureSlot{
		ID:       id,
		Interval: Interval{From: from, To: to},
		Primary: Assignment{
			SubjectName: subject,
			SubjectCode: code,
			FacultyName: faculty,
			FacultyCode: facultyCode,
		},
	}
}

func lunch(id string, from, to TimeOfDay) LectureSlot {
	return slot(id, from, to, "LUNCH", "LUNCH", "", "")
}

func libraryCCA(id string, from, to TimeOfDay) LectureSlot {
	return slot(id, from, to, "LIBRARY/CCA", "LIBRARY/CCA", "", "")
}

// DefaultTimetables are served when nothing has been stored for a class
func DefaultTimetables() []Timetable {
	return []Timetable{btechIT1A()}
}

func btechIT1A() Timetable {
	return Timetable{
		Key: Key{Course: "B.Tech", Program: "IT", Semester: "1", Section: "A"},
		Schedule: Schedule{
			Monday: {
				slot("L1", "09:15", "10:10", "Applied Mathematics - I", "MAT 101", "Dr. Ram Kumar", "RMK"),
				slot("L2", "10:15", "11:10", "Applied Chemistry", "CHE-101", "Dr Rachana Kathal", "RCH"),
				slot("L3", "11:15", "12:10", "Programming for Problem Solving", "CSE 104", "Dr. Ganesh Gupta", "GGP"),
				lunch("L4", "12:15", "13:10"),
				slot("L5", "13:15", "14:10", "Environmental Studies - I", "EVS 142", "Dr Rwitabrata M", "RWM"),
				slot("L6", "14:15", "15:10", "Basic Mechanical Engineering", "BME 101", "Dr. Nasir Khan", "NSR"),
				slot("L7", "15:15", "16:10", "French - I", "FLU 144", "Mr. Balkishan", "BLK"),
				libraryCCA("L8", "16:15", "17:10"),
			},
			Tuesday: {
				slot("L1", "09:15", "10:10", "Applied Chemistry", "CHE-101", "Dr Rachana Kathal", "RCH"),
				slot("L2", "10:15", "11:10", "Workshop/Manufacturing Practices Lab / PPS Lab", "BME 124 / CSE 124", "", ""),
				slot("L3", "11:15", "12:10", "Workshop/Manufacturing Practices Lab / PPS Lab", "BME 124 / CSE 124", "", ""),
				lunch("L4", "12:15", "13:10"),
				slot("L5", "13:15", "14:10", "Environmental Studies - I", "EVS 142", "Dr Rwitabrata M", "RWM"),
				slot("L6", "14:15", "15:10", "Applied Mathematics - I", "MAT 101", "Dr. Ram Kumar", "RMK"),
				libraryCCA("L7", "15:15", "16:10"),
				slot("L8", "16:15", "17:10", "Basic Civil Engineering_Applied Mechanics", "CIV 101", "Mr. Sachin Tiwari", "SCH"),
			},
			Wednesday: {
				slot("L1", "09:15", "10:10", "Applied Chemistry", "CHE-101", "Dr Rachana Kathal", "RCH"),
				slot("L2", "10:15", "11:10", "PPS Lab / Applied Chemistry Lab", "CSE 124 / CHE 121", "", ""),
				slot("L3", "11:15", "12:10", "PPS Lab / Applied Chemistry Lab", "CSE 124 / CHE 121", "", ""),
				lunch("L4", "12:15", "13:10"),
				slot("L5", "13:15", "14:10", "Applied Mathematics - I", "MAT 101", "Dr. Ram Kumar", "RMK"),
				slot("L6", "14:15", "15:10", "Communication Skills - I", "BCU 141", "Dr. Sonia Srivastav", "SSV"),
				libraryCCA("L7", "15:15", "16:10"),
				libraryCCA("L8", "16:15", "17:10"),
			},
			Thursday: {
				slot("L1", "09:15", "10:10", "Programming for Problem Solving", "CSE 104", "Dr. Ganesh Gupta", "GGP"),
				slot("L2", "10:15", "11:10", "Basic Mechanical Engineering", "BME 101", "Dr. Nasir Khan", "NSR"),
				slot("L3", "11:15", "12:10", "Behavioural Science - I", "BSU 143", "Dr. Shubhangi Gup", "SHG"),
				lunch("L4", "12:15", "13:10"),
				slot("L5", "13:15", "14:10", "Basic Civil Engineering_Applied Mechanics", "CIV 101", "Mr. Sachin Tiwari", "SCH"),
				slot("L6", "14:15", "15:10", "Communication Skills - I", "BCU 141", "Dr. Sonia Srivastav", "SSV"),
				libraryCCA("L7", "15:15", "16:10"),
				libraryCCA("L8", "16:15", "17:10"),
			},
			Friday: {
				slot("L1", "09:15", "10:10", "Basic Mechanical Engineering", "BME 101", "Dr. Nasir Khan", "NSR"),
				slot("L2", "10:15", "11:10", "Applied Chemistry Lab / Workshop/Manufacturing Practices Lab", "CHE 121 / BME 124", "", ""),
				slot("L3", "11:15", "12:10", "Applied Chemistry Lab / Workshop/Manufacturing Practices Lab", "CHE 121 / BME 124", "", ""),
				lunch("L4", "12:15", "13:10"),
				slot("L5", "13:15", "14:10", "Programming for Problem Solving", "CSE 104", "Dr. Ganesh Gupta", "GGP"),
				slot("L6", "14:15", "15:10", "Applied Mathematics - I", "MAT 101", "Dr. Ram Kumar", "RMK"),
				slot("L7", "15:15", "16:10", "Applied Chemistry", "CHE-101", "Dr Rachana Kathal", "RCH"),
				libraryCCA("L8", "16:15", "17:10"),
			},
			Saturday: {},
			Sunday:   {},
		},
	}
}
