package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/odrequest"
	"github.com/Pjt727/odautofill/roster"
	"github.com/Pjt727/odautofill/server"
	serverrequests "github.com/Pjt727/odautofill/server/requests"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/gorilla/websocket"
)

const rosterCSV = `Name,Enrollment,Course,Program,Semester,Section
Asha Verma,A001,B.Tech,IT,1,a
Ravi Singh,A002,b.tech,it,1,A
Meera Das,A003,B.Tech,CSE,1,A
`

type outcomeBody struct {
	Outcome string           `json:"outcome"`
	Title   string           `json:"title"`
	Problem bool             `json:"problem"`
	Draft   draft.ClassDraft `json:"draft"`
}

type testServer struct {
	t   *testing.T
	srv *httptest.Server
	hub *serverrequests.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := serverrequests.NewHub(logger)
	srv := httptest.NewServer(server.NewRouter(server.Deps{
		Timetables:     timetable.WithDefaults(timetable.NewMemoryStore()),
		Drafts:         draft.NewRegistry(),
		Roster:         roster.NewBook(),
		Requests:       odrequest.NewMemoryStore(),
		Hub:            hub,
		AllowedOrigins: []string{"*"},
		Logger:         logger,
	}))
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv, hub: hub}
}

// do sends body as json and decodes the answer into out when out is not nil
func (s *testServer) do(method, path string, body any, wantStatus int, out any) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	if err != nil {
		s.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		s.t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		s.t.Fatalf("%s %s: expected %d got %d: %s", method, path, wantStatus, resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			s.t.Fatalf("%s %s: could not decode %s: %v", method, path, raw, err)
		}
	}
}

func (s *testServer) uploadRoster(filename, content string) {
	s.t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		s.t.Fatal(err)
	}
	part.Write([]byte(content))
	form.Close()

	resp, err := http.Post(s.srv.URL+"/roster", form.FormDataContentType(), &body)
	if err != nil {
		s.t.Fatal(err)
	}
	defer resp.Body.Close()
	var summary roster.Summary
	json.NewDecoder(resp.Body).Decode(&summary)
	if resp.StatusCode != http.StatusOK || summary.Students != 3 {
		s.t.Fatalf("roster upload got %d with %d students", resp.StatusCode, summary.Students)
	}
}

// classifiedDraft creates a draft for B.Tech IT semester 1 section A
func (s *testServer) classifiedDraft() draft.ClassDraft {
	s.t.Helper()
	var d draft.ClassDraft
	s.do("POST", "/drafts", nil, http.StatusCreated, &d)
	s.do("PATCH", "/drafts/"+d.ID, map[string]string{
		"course":   "B.Tech",
		"program":  "IT",
		"semester": "1",
		"section":  "A",
	}, http.StatusOK, &d)
	return d
}

func TestAutofillToRequestFlow(t *testing.T) {
	s := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(s.srv.URL, "http") + "/requests/watch"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	for deadline := time.Now().Add(2 * time.Second); s.hub.Watchers() == 0; {
		if time.Now().After(deadline) {
			t.Fatal("watcher never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	d := s.classifiedDraft()

	// 2025-03-03 is a Monday, L1 to L3 are plain lectures
	var filled outcomeBody
	s.do("POST", "/drafts/"+d.ID+"/autofill", map[string]string{
		"date":     "2025-03-03",
		"fromTime": "09:00",
		"toTime":   "12:10",
	}, http.StatusOK, &filled)
	if filled.Outcome != "lectures_filled" || len(filled.Draft.Lectures) != 3 {
		t.Fatalf("expected 3 autofilled lectures got %+v", filled)
	}
	if filled.Draft.Lectures[0].Subject != "Applied Mathematics - I | MAT 101" {
		t.Errorf("unexpected first lecture %+v", filled.Draft.Lectures[0])
	}

	var noRoster outcomeBody
	s.do("POST", "/drafts/"+d.ID+"/students", nil, http.StatusOK, &noRoster)
	if noRoster.Outcome != "no_roster_loaded" || !noRoster.Problem {
		t.Errorf("expected no_roster_loaded got %+v", noRoster)
	}

	s.uploadRoster("students.csv", rosterCSV)
	var students outcomeBody
	s.do("POST", "/drafts/"+d.ID+"/students", nil, http.StatusOK, &students)
	if students.Outcome != "students_filled" {
		t.Fatalf("expected students_filled got %+v", students)
	}
	for _, l := range students.Draft.Lectures {
		if l.Students != "Asha Verma A001\nRavi Singh A002" {
			t.Errorf("unexpected students %q", l.Students)
		}
	}

	var req odrequest.Request
	s.do("POST", "/requests", map[string]any{
		"coordinatorName":  "Dr. Coordinator",
		"coordinatorEmail": "coordinator@example.edu",
		"eventName":        "Hackathon",
		"date":             "2025-03-03",
		"fromTime":         "09:00",
		"toTime":           "12:10",
		"draftIds":         []string{d.ID},
	}, http.StatusCreated, &req)
	if req.Status != odrequest.StatusPending || req.Event.Day != timetable.Monday || len(req.Classes) != 1 {
		t.Fatalf("unexpected request %+v", req)
	}
	s.do("GET", "/drafts/"+d.ID, nil, http.StatusNotFound, nil)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var message struct {
		Kind    string            `json:"kind"`
		Request odrequest.Request `json:"request"`
	}
	if err := conn.ReadJSON(&message); err != nil {
		t.Fatal(err)
	}
	if message.Kind != "submitted" || message.Request.ID != req.ID {
		t.Errorf("unexpected watch message %+v", message)
	}

	s.do("DELETE", "/requests/"+req.ID, nil, http.StatusConflict, nil)
	s.do("PATCH", "/requests/"+req.ID+"/status", map[string]string{"status": "Pending"}, http.StatusBadRequest, nil)
	s.do("PATCH", "/requests/"+req.ID+"/status", map[string]string{"status": "Rejected"}, http.StatusOK, &req)
	if req.Status != odrequest.StatusRejected {
		t.Errorf("expected Rejected got %s", req.Status)
	}

	var summary map[string]int
	s.do("GET", "/requests/summary", nil, http.StatusOK, &summary)
	if summary["Rejected"] != 1 || summary["Pending"] != 0 {
		t.Errorf("unexpected summary %v", summary)
	}

	s.do("DELETE", "/requests/"+req.ID, nil, http.StatusNoContent, nil)
	s.do("GET", "/requests/"+req.ID, nil, http.StatusNotFound, nil)
}

func TestSubmitEmptyDraftKeepsDraft(t *testing.T) {
	s := newTestServer(t)
	d := s.classifiedDraft()

	s.do("POST", "/requests", map[string]any{
		"coordinatorName":  "Dr. Coordinator",
		"coordinatorEmail": "coordinator@example.edu",
		"eventName":        "Hackathon",
		"date":             "2025-03-03",
		"fromTime":         "09:00",
		"toTime":           "12:10",
		"draftIds":         []string{d.ID},
	}, http.StatusUnprocessableEntity, nil)

	var kept draft.ClassDraft
	s.do("GET", "/drafts/"+d.ID, nil, http.StatusOK, &kept)
	if kept.ID != d.ID {
		t.Errorf("expected the draft to be restored")
	}
}

func TestSubmitUnfilledLectureNamesFields(t *testing.T) {
	s := newTestServer(t)
	d := s.classifiedDraft()
	s.do("POST", "/drafts/"+d.ID+"/lectures", map[string]string{"fromTime": "10:00"}, http.StatusCreated, &d)
	if d.Lectures[0].ToTime != "10:55" {
		t.Errorf("expected the default end time got %s", d.Lectures[0].ToTime)
	}

	var body struct {
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	s.do("POST", "/requests", map[string]any{
		"coordinatorName":  "Dr. Coordinator",
		"coordinatorEmail": "coordinator@example.edu",
		"eventName":        "Hackathon",
		"date":             "2025-03-03",
		"fromTime":         "09:00",
		"toTime":           "12:10",
		"draftIds":         []string{d.ID},
	}, http.StatusBadRequest, &body)
	fields := map[string]bool{}
	for _, f := range body.Fields {
		fields[f.Field] = true
	}
	if !fields["lectures[0].subject"] || !fields["lectures[0].students"] {
		t.Errorf("expected lecture fields to be named got %+v", body.Fields)
	}
}

func TestAutofillOutcomes(t *testing.T) {
	s := newTestServer(t)

	var unclassified draft.ClassDraft
	s.do("POST", "/drafts", nil, http.StatusCreated, &unclassified)
	var out outcomeBody
	s.do("POST", "/drafts/"+unclassified.ID+"/autofill", map[string]string{
		"date": "2025-03-03", "fromTime": "09:00", "toTime": "10:00",
	}, http.StatusOK, &out)
	if out.Outcome != "missing_class_details" {
		t.Errorf("expected missing_class_details got %s", out.Outcome)
	}

	d := s.classifiedDraft()
	s.do("POST", "/drafts/"+d.ID+"/autofill", map[string]string{}, http.StatusOK, &out)
	if out.Outcome != "missing_event_details" {
		t.Errorf("expected missing_event_details got %s", out.Outcome)
	}
	s.do("POST", "/drafts/"+d.ID+"/autofill", map[string]string{
		"date": "03/03/2025", "fromTime": "09:00", "toTime": "10:00",
	}, http.StatusBadRequest, nil)

	// 2025-03-08 is a Saturday
	s.do("POST", "/drafts/"+d.ID+"/autofill", map[string]string{
		"date": "2025-03-08", "fromTime": "09:00", "toTime": "10:00",
	}, http.StatusOK, &out)
	if out.Outcome != "no_lectures_that_day" {
		t.Errorf("expected no_lectures_that_day got %s", out.Outcome)
	}

	s.do("PATCH", "/drafts/"+d.ID, map[string]string{"program": "CSE"}, http.StatusOK, nil)
	s.do("POST", "/drafts/"+d.ID+"/autofill", map[string]string{
		"date": "2025-03-03", "fromTime": "09:00", "toTime": "10:00",
	}, http.StatusOK, &out)
	if out.Outcome != "timetable_not_found" {
		t.Errorf("expected timetable_not_found got %s", out.Outcome)
	}

	s.do("PATCH", "/drafts/"+d.ID, map[string]string{"section": "Z"}, http.StatusBadRequest, nil)
	s.do("POST", "/drafts/missing/autofill", map[string]string{}, http.StatusNotFound, nil)
}

func TestBatchAutofill(t *testing.T) {
	s := newTestServer(t)
	first := s.classifiedDraft()
	second := s.classifiedDraft()

	var reports []struct {
		DraftID string `json:"draftId"`
		Outcome string `json:"outcome"`
	}
	s.do("POST", "/drafts/autofill", map[string]any{
		"draftIds": []string{first.ID, "missing", second.ID},
		"date":     "2025-03-03",
		"fromTime": "10:00",
		"toTime":   "11:00",
	}, http.StatusOK, &reports)
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports got %d", len(reports))
	}
	want := []string{"lectures_filled", "draft_not_found", "lectures_filled"}
	for i, report := range reports {
		if report.Outcome != want[i] {
			t.Errorf("report %d: expected %s got %s", i, want[i], report.Outcome)
		}
	}

	var d draft.ClassDraft
	s.do("GET", "/drafts/"+second.ID, nil, http.StatusOK, &d)
	if len(d.Lectures) != 1 || d.Lectures[0].Subject != "Applied Chemistry | CHE-101" {
		t.Errorf("unexpected lectures %+v", d.Lectures)
	}
}

func TestTimetableRoutes(t *testing.T) {
	s := newTestServer(t)

	var keys []timetable.Key
	s.do("GET", "/timetables", nil, http.StatusOK, &keys)
	if len(keys) != 1 || keys[0].String() != "B.Tech-IT-1-A" {
		t.Errorf("expected the default timetable got %v", keys)
	}

	var blank timetable.Timetable
	s.do("GET", "/timetables/blank?course=BCA&program=General&semester=5&section=B", nil, http.StatusOK, &blank)
	if len(blank.Schedule[timetable.Friday]) != 8 || blank.Schedule[timetable.Friday][0].ID != "Friday-L1" {
		t.Errorf("unexpected blank schedule %+v", blank.Schedule[timetable.Friday])
	}
	s.do("GET", "/timetables/blank?course=BCA&program=General&semester=9&section=B", nil, http.StatusBadRequest, nil)

	s.do("PUT", "/timetables/BCA-General-5-B", blank, http.StatusOK, nil)
	s.do("PUT", "/timetables/BCA-General-5-B/slots/friday/Friday-L2", map[string]any{
		"subjectName": "Java Lab",
		"subjectCode": "BCA 521",
		"facultyName": "Ms. Iyer",
		"secondary": map[string]string{
			"subjectName": "Python Lab",
			"subjectCode": "BCA 522",
			"facultyName": "Mr. Rao",
		},
	}, http.StatusOK, nil)
	s.do("PUT", "/timetables/BCA-General-5-B/slots/Friday/Friday-L2", map[string]string{
		"subjectName": "Java Lab",
	}, http.StatusBadRequest, nil)
	s.do("PUT", "/timetables/BCA-General-5-B/slots/Friday/Friday-L9", map[string]string{
		"subjectName": "Java Lab", "subjectCode": "BCA 521", "facultyName": "Ms. Iyer",
	}, http.StatusNotFound, nil)

	var stored timetable.Timetable
	s.do("GET", "/timetables/BCA-General-5-B", nil, http.StatusOK, &stored)
	slot := stored.Schedule[timetable.Friday][1]
	if !slot.IsSplit() || slot.Secondary.SubjectName != "Python Lab" {
		t.Errorf("expected a split slot got %+v", slot)
	}

	s.do("GET", "/timetables/nonsense", nil, http.StatusBadRequest, nil)
	s.do("GET", "/timetables/MBA-Finance-2-A", nil, http.StatusNotFound, nil)
}

func TestRosterUploadRejectsUnknownFormat(t *testing.T) {
	s := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, _ := form.CreateFormFile("file", "students.txt")
	part.Write([]byte(rosterCSV))
	form.Close()

	resp, err := http.Post(s.srv.URL+"/roster", form.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415 got %d", resp.StatusCode)
	}

	resp, err = http.Post(s.srv.URL+"/roster", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415 for a json body got %d", resp.StatusCode)
	}

	var summary roster.Summary
	s.do("GET", "/roster", nil, http.StatusOK, &summary)
	if summary.Students != 0 {
		t.Errorf("expected an empty roster got %d students", summary.Students)
	}
}
