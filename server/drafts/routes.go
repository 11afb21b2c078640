package serverdrafts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Pjt727/odautofill/autofill"
	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/roster"
	"github.com/Pjt727/odautofill/server/respond"
	"github.com/go-chi/chi/v5"
)

type contextKey int

const draftIDContextKey contextKey = iota

func PopulateDraftRoutes(
	r *chi.Router,
	drafts *draft.Registry,
	book *roster.Book,
	service *autofill.Service,
	logger *slog.Logger,
) {
	h := draftHandler{
		drafts:  drafts,
		book:    book,
		service: service,
		logger:  logger,
	}

	(*r).Post("/", h.createDraft)
	(*r).Post("/autofill", h.autofillMany)
	(*r).Route("/{draftID}", func(r chi.Router) {
		r.Use(h.verifyDraft)
		r.Get("/", h.getDraft)
		r.Patch("/", h.classifyDraft)
		r.Delete("/", h.deleteDraft)
		r.Post("/autofill", h.autofillLectures)
		r.Post("/students", h.autofillStudents)
		r.Post("/copy-students", h.copyStudents)
		r.Route("/lectures", func(r chi.Router) {
			r.Post("/", h.addLecture)
			r.Put("/{lectureID}", h.updateLecture)
			r.Delete("/{lectureID}", h.removeLecture)
			r.Post("/{lectureID}/students", h.autofillStudents)
		})
	})
}

func (h *draftHandler) verifyDraft(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		draftID := chi.URLParam(r, "draftID")
		_, err := h.drafts.Get(draftID)
		if errors.Is(err, draft.ErrDraftNotFound) {
			respond.Error(w, h.logger, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			h.logger.Error("Could not get draft", "draft", draftID, "err", err)
			http.Error(w, http.StatusText(500), 500)
			return
		}
		ctx := context.WithValue(r.Context(), draftIDContextKey, draftID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
