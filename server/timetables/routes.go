package servertimetables

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Pjt727/odautofill/server/respond"
	"github.com/Pjt727/odautofill/timetable"
	"github.com/go-chi/chi/v5"
)

type contextKey int

const keyContextKey contextKey = iota

func PopulateTimetableRoutes(r *chi.Router, store timetable.Store, logger *slog.Logger) {
	h := timetableHandler{
		store:  store,
		logger: logger,
	}

	(*r).Get("/", h.listTimetables)
	(*r).Get("/blank", h.blankTimetable)
	(*r).Route("/{timetableKey}", func(r chi.Router) {
		r.Use(h.verifyKey)
		r.Get("/", h.getTimetable)
		r.Put("/", h.saveTimetable)
		r.Put("/slots/{day}/{slotID}", h.editSlot)
	})
}

// verifyKey parses the "{course}-{program}-{semester}-{section}" url segment
func (h *timetableHandler) verifyKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, err := timetable.ParseKey(chi.URLParam(r, "timetableKey"))
		if err != nil {
			respond.Error(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
		ctx := context.WithValue(r.Context(), keyContextKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
