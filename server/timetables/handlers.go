package servertimetables

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Pjt727/odautofill/internal/validation"
	"github.com/Pjt727/odautofill/server/respond"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/go-chi/chi/v5"
)

type timetableHandler struct {
	store  timetable.Store
	logger *slog.Logger
}

func (h *timetableHandler) listTimetables(w http.ResponseWriter, r *http.Request) {
	keys, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("Could not list timetables", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	if keys == nil {
		keys = []timetable.Key{}
	}
	respond.JSON(w, h.logger, http.StatusOK, keys)
}

func (h *timetableHandler) blankTimetable(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	key := timetable.Key{
		Course:   query.Get("course"),
		Program:  query.Get("program"),
		Semester: query.Get("semester"),
		Section:  query.Get("section"),
	}
	if err := validation.Struct(key); err != nil {
		respond.Invalid(w, h.logger, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, timetable.Timetable{
		Key:      key,
		Schedule: timetable.BlankSchedule(key),
	})
}

func (h *timetableHandler) getTimetable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := ctx.Value(keyContextKey).(timetable.Key)
	tt, err := h.store.Get(ctx, key)
	if errors.Is(err, timetable.ErrTimetableNotFound) {
		respond.Error(w, h.logger, http.StatusNotFound, "no timetable for "+key.String())
		return
	}
	if err != nil {
		h.logger.Error("Could not get timetable", "key", key.String(), "err", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, tt)
}

// the key in the url wins over any key in the body
func (h *timetableHandler) saveTimetable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var tt timetable.Timetable
	if err := respond.Decode(r, &tt); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "invalid timetable body")
		return
	}
	tt.Key = ctx.Value(keyContextKey).(timetable.Key)
	if tt.Schedule == nil {
		tt.Schedule = timetable.Schedule{}
	}
	if err := tt.Validate(); err != nil {
		respond.Invalid(w, h.logger, err)
		return
	}
	if err := h.store.Save(ctx, tt); err != nil {
		h.logger.Error("Could not save timetable", "key", tt.Key.String(), "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	h.logger.Info("Saved timetable", "key", tt.Key.String())
	respond.JSON(w, h.logger, http.StatusOK, tt)
}

type slotEdit struct {
	timetable.Assignment
	Secondary *timetable.Assignment `json:"secondary"`
}

func (h *timetableHandler) editSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := ctx.Value(keyContextKey).(timetable.Key)
	day, err := timetable.ParseWeekday(chi.URLParam(r, "day"))
	if err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	var edit slotEdit
	if err := respond.Decode(r, &edit); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "invalid slot body")
		return
	}

	tt, err := h.store.Get(ctx, key)
	if errors.Is(err, timetable.ErrTimetableNotFound) {
		tt = timetable.Timetable{Key: key, Schedule: timetable.BlankSchedule(key)}
	} else if err != nil {
		h.logger.Error("Could not get timetable", "key", key.String(), "err", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	err = tt.SetSlot(day, chi.URLParam(r, "slotID"), edit.Assignment, edit.Secondary)
	if errors.Is(err, timetable.ErrSlotNotFound) {
		respond.Error(w, h.logger, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respond.Invalid(w, h.logger, err)
		return
	}
	if err := h.store.Save(ctx, tt); err != nil {
		h.logger.Error("Could not save timetable", "key", key.String(), "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, tt)
}
