// Package autofill fills a class draft's lectures from its timetable and its
// students from the uploaded roster.
package autofill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Pjt727/odautofill/conflict"
	logginghelpers "github.com/Pjt727/odautofill/data/logging-helpers"
	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/roster"
	"github.com/Pjt727/odautofill/timetable"
	"golang.org/x/sync/errgroup"
)

// drafts autofilled at once by LecturesForAll
const batchLimit = 4

type Event struct {
	Date   time.Time          `json:"date"`
	Window timetable.Interval `json:"window"`
}

func (e Event) Complete() bool {
	return !e.Date.IsZero() && !e.Window.Incomplete()
}

type Report struct {
	DraftID  string            `json:"draftId"`
	Outcome  Outcome           `json:"outcome"`
	Weekday  timetable.Weekday `json:"weekday"`
	Lectures int               `json:"lectures"`
	Students int               `json:"students"`
	// transport detail when the timetable could not be loaded
	Err error `json:"-"`
}

type Service struct {
	store  timetable.Store
	logger *slog.Logger
}

func NewService(store timetable.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Lectures replaces d's lectures with the ones the event conflicts with.
// The draft is only changed when the outcome is OutcomeLecturesFilled.
func (s *Service) Lectures(ctx context.Context, d *draft.ClassDraft, ev Event) Report {
	report := Report{DraftID: d.ID}
	if !d.HasClassDetails() {
		report.Outcome = OutcomeMissingClassDetails
		return report
	}
	if !ev.Complete() {
		report.Outcome = OutcomeMissingEventDetails
		return report
	}

	key := d.Key()
	s.logger.Log(ctx, logginghelpers.LevelReportIO, "Looking up timetable", "key", key.String())
	tt, err := s.store.Get(ctx, key)
	if errors.Is(err, timetable.ErrTimetableNotFound) {
		report.Outcome = OutcomeTimetableNotFound
		return report
	}
	if err != nil {
		s.logger.Warn("Could not load timetable", "key", key.String(), "err", err)
		report.Outcome = OutcomeStoreUnavailable
		report.Err = err
		return report
	}

	result := conflict.Resolve(ev.Date, ev.Window, tt.Schedule)
	report.Weekday = result.Weekday
	switch result.Status {
	case conflict.StatusNoLecturesThatDay:
		report.Outcome = OutcomeNoLecturesThatDay
		return report
	case conflict.StatusNoConflicts:
		report.Outcome = OutcomeNoConflicts
		return report
	}

	d.ReplaceLectures(draft.Synthesize(result.Conflicts, d.Section))
	report.Outcome = OutcomeLecturesFilled
	report.Lectures = len(d.Lectures)
	s.logger.Info("Autofilled lectures", "draft", d.ID, "key", key.String(), "weekday", result.Weekday.String(), "lectures", report.Lectures)
	return report
}

// Students fills the roster of every lecture, or only lectureID when it is set.
// The error is only for a lecture id the draft does not have.
func (s *Service) Students(d *draft.ClassDraft, students []roster.StudentRecord, lectureID string) (Report, error) {
	report := Report{DraftID: d.ID}
	if lectureID != "" && !slices.ContainsFunc(d.Lectures, func(l draft.LectureRecord) bool { return l.ID == lectureID }) {
		return report, fmt.Errorf("%w: %s", draft.ErrLectureNotFound, lectureID)
	}

	blob, outcome := roster.Fill(students, d.Key())
	switch outcome {
	case roster.OutcomeMissingClassification:
		report.Outcome = OutcomeNoClassificationForRoster
		return report, nil
	case roster.OutcomeNoRoster:
		report.Outcome = OutcomeNoRosterLoaded
		return report, nil
	case roster.OutcomeNoMatches:
		report.Outcome = OutcomeNoMatchingStudents
		return report, nil
	}

	if lectureID == "" {
		d.ApplyStudentsToAll(blob)
		report.Lectures = len(d.Lectures)
	} else {
		if err := d.ApplyStudents(lectureID, blob); err != nil {
			return report, err
		}
		report.Lectures = 1
	}
	report.Outcome = OutcomeStudentsFilled
	report.Students = strings.Count(blob, "\n") + 1
	return report, nil
}

// Updater applies fn to one draft while holding that draft exclusively
type Updater interface {
	Update(id string, fn func(*draft.ClassDraft) error) (draft.ClassDraft, error)
}

// LecturesForAll autofills several drafts concurrently. Reports follow the order
// of ids, drafts that could not be found are reported in the joined error.
func (s *Service) LecturesForAll(ctx context.Context, drafts Updater, ids []string, ev Event) ([]Report, error) {
	reports := make([]Report, len(ids))
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(batchLimit)
	for i, id := range ids {
		g.Go(func() error {
			_, err := drafts.Update(id, func(d *draft.ClassDraft) error {
				reports[i] = s.Lectures(ctx, d, ev)
				return nil
			})
			if err != nil {
				reports[i] = Report{DraftID: id, Outcome: OutcomeDraftNotFound}
				errs[i] = err
			}
			return nil
		})
	}
	g.Wait()
	return reports, errors.Join(errs...)
}
