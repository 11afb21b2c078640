package serverdrafts

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Pjt727/odautofill/autofill"
	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/internal/validation"
	"github.com/Pjt727/odautofill/roster"
	"github.com/Pjt727/odautofill/server/respond"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/go-chi/chi/v5"
)

type draftHandler struct {
	drafts  *draft.Registry
	book    *roster.Book
	service *autofill.Service
	logger  *slog.Logger
}

// outcomeResponse is what every autofill action answers with, the draft is
// always the stored one after the action
type outcomeResponse struct {
	Outcome autofill.Outcome `json:"outcome"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Problem bool             `json:"problem"`
	Draft   draft.ClassDraft `json:"draft"`
}

func newOutcomeResponse(report autofill.Report, d draft.ClassDraft) outcomeResponse {
	return outcomeResponse{
		Outcome: report.Outcome,
		Title:   report.Outcome.Title(),
		Message: report.Message(),
		Problem: report.Outcome.Problem(),
		Draft:   d,
	}
}

func draftID(r *http.Request) string {
	return r.Context().Value(draftIDContextKey).(string)
}

func (h *draftHandler) update(w http.ResponseWriter, r *http.Request, fn func(*draft.ClassDraft) error) (draft.ClassDraft, bool) {
	d, err := h.drafts.Update(draftID(r), fn)
	switch {
	case err == nil:
		return d, true
	case errors.Is(err, draft.ErrDraftNotFound), errors.Is(err, draft.ErrLectureNotFound):
		respond.Error(w, h.logger, http.StatusNotFound, err.Error())
	default:
		respond.Invalid(w, h.logger, err)
	}
	return d, false
}

func (h *draftHandler) createDraft(w http.ResponseWriter, r *http.Request) {
	d := h.drafts.Create()
	h.logger.Info("Created draft", "draft", d.ID)
	respond.JSON(w, h.logger, http.StatusCreated, d)
}

func (h *draftHandler) getDraft(w http.ResponseWriter, r *http.Request) {
	d, err := h.drafts.Get(draftID(r))
	if err != nil {
		respond.Error(w, h.logger, http.StatusNotFound, err.Error())
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, d)
}

func (h *draftHandler) deleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.drafts.Delete(draftID(r)); err != nil {
		respond.Error(w, h.logger, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// classification can be partial while the coordinator is still choosing
type classification struct {
	Course   string `json:"course"`
	Program  string `json:"program"`
	Semester string `json:"semester" validate:"omitempty,oneof=1 2 3 4 5 6 7 8"`
	Section  string `json:"section" validate:"omitempty,oneof=A B C D E"`
}

// merge keeps the parts of k that the body leaves empty
func (c classification) merge(k timetable.Key) timetable.Key {
	for _, part := range []struct{ from, to *string }{
		{&c.Course, &k.Course},
		{&c.Program, &k.Program},
		{&c.Semester, &k.Semester},
		{&c.Section, &k.Section},
	} {
		if *part.from != "" {
			*part.to = *part.from
		}
	}
	return k
}

func (h *draftHandler) classifyDraft(w http.ResponseWriter, r *http.Request) {
	var body classification
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "invalid classification body")
		return
	}
	if err := validation.Struct(body); err != nil {
		respond.Invalid(w, h.logger, err)
		return
	}
	d, ok := h.update(w, r, func(d *draft.ClassDraft) error {
		d.Classify(body.merge(d.Key()))
		return nil
	})
	if !ok {
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, d)
}

type newLecture struct {
	FromTime timetable.TimeOfDay `json:"fromTime"`
}

func (h *draftHandler) addLecture(w http.ResponseWriter, r *http.Request) {
	var body newLecture
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "invalid lecture body")
		return
	}
	if body.FromTime != "" && !body.FromTime.Valid() {
		respond.Error(w, h.logger, http.StatusBadRequest, "fromTime must be HH:MM")
		return
	}
	d, ok := h.update(w, r, func(d *draft.ClassDraft) error {
		d.AddLecture(draft.NewManualLecture(body.FromTime, d.Section))
		return nil
	})
	if !ok {
		return
	}
	respond.JSON(w, h.logger, http.StatusCreated, d)
}

func (h *draftHandler) updateLecture(w http.ResponseWriter, r *http.Request) {
	var body draft.LectureRecord
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "invalid lecture body")
		return
	}
	d, ok := h.update(w, r, func(d *draft.ClassDraft) error {
		return d.UpdateLecture(chi.URLParam(r, "lectureID"), body)
	})
	if !ok {
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, d)
}

func (h *draftHandler) removeLecture(w http.ResponseWriter, r *http.Request) {
	d, ok := h.update(w, r, func(d *draft.ClassDraft) error {
		return d.RemoveLecture(chi.URLParam(r, "lectureID"))
	})
	if !ok {
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, d)
}

type eventBody struct {
	Date     string              `json:"date"`
	FromTime timetable.TimeOfDay `json:"fromTime"`
	ToTime   timetable.TimeOfDay `json:"toTime"`
}

// event parses the body. Missing values give an incomplete event, which is an
// autofill outcome rather than a bad request.
func (b eventBody) event() (autofill.Event, error) {
	ev := autofill.Event{Window: timetable.Interval{From: b.FromTime, To: b.ToTime}}
	if b.Date != "" {
		date, err := time.Parse(time.DateOnly, b.Date)
		if err != nil {
			return ev, errors.New("date must be YYYY-MM-DD")
		}
		ev.Date = date
	}
	for _, t := range []timetable.TimeOfDay{b.FromTime, b.ToTime} {
		if t != "" && !t.Valid() {
			return ev, errors.New("event times must be HH:MM")
		}
	}
	return ev, nil
}

func (h *draftHandler) autofillLectures(w http.ResponseWriter, r *http.Request) {
	var body eventBody
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "invalid event body")
		return
	}
	ev, err := body.event()
	if err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	var report autofill.Report
	d, ok := h.update(w, r, func(d *draft.ClassDraft) error {
		report = h.service.Lectures(r.Context(), d, ev)
		return nil
	})
	if !ok {
		return
	}
	if report.Err != nil {
		h.logger.Warn("Autofill could not reach the timetable store", "draft", d.ID, "err", report.Err)
	}
	respond.JSON(w, h.logger, http.StatusOK, newOutcomeResponse(report, d))
}

// serves both the whole draft and the single lecture route
func (h *draftHandler) autofillStudents(w http.ResponseWriter, r *http.Request) {
	students := h.book.Students()
	lectureID := chi.URLParam(r, "lectureID")

	var report autofill.Report
	d, ok := h.update(w, r, func(d *draft.ClassDraft) error {
		var err error
		report, err = h.service.Students(d, students, lectureID)
		return err
	})
	if !ok {
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, newOutcomeResponse(report, d))
}

type copyResponse struct {
	Copied bool             `json:"copied"`
	Draft  draft.ClassDraft `json:"draft"`
}

func (h *draftHandler) copyStudents(w http.ResponseWriter, r *http.Request) {
	var copied bool
	d, ok := h.update(w, r, func(d *draft.ClassDraft) error {
		copied = d.CopyStudentsFromFirst()
		return nil
	})
	if !ok {
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, copyResponse{Copied: copied, Draft: d})
}

type batchBody struct {
	DraftIDs []string `json:"draftIds"`
	eventBody
}

type batchReport struct {
	DraftID string           `json:"draftId"`
	Outcome autofill.Outcome `json:"outcome"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Problem bool             `json:"problem"`
}

// autofillMany runs the same event against several drafts. Drafts that are gone
// are reported per draft and do not fail the batch.
func (h *draftHandler) autofillMany(w http.ResponseWriter, r *http.Request) {
	var body batchBody
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "invalid batch body")
		return
	}
	if len(body.DraftIDs) == 0 {
		respond.Error(w, h.logger, http.StatusBadRequest, "draftIds is required")
		return
	}
	ev, err := body.event()
	if err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	reports, err := h.service.LecturesForAll(r.Context(), h.drafts, body.DraftIDs, ev)
	if err != nil {
		h.logger.Warn("Batch autofill skipped drafts", "err", err)
	}
	out := make([]batchReport, len(reports))
	for i, report := range reports {
		out[i] = batchReport{
			DraftID: report.DraftID,
			Outcome: report.Outcome,
			Title:   report.Outcome.Title(),
			Message: report.Message(),
			Problem: report.Outcome.Problem(),
		}
	}
	respond.JSON(w, h.logger, http.StatusOK, out)
}
