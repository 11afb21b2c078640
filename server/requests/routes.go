package serverrequests

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/odrequest"
	"github.com/go-chi/chi/v5"
)

type contextKey int

const requestIDContextKey contextKey = iota

type requestHandler struct {
	requests *odrequest.Service
	drafts   *draft.Registry
	hub      *Hub
	logger   *slog.Logger
}

func PopulateRequestRoutes(
	r *chi.Router,
	requests *odrequest.Service,
	drafts *draft.Registry,
	hub *Hub,
	logger *slog.Logger,
) {
	h := requestHandler{
		requests: requests,
		drafts:   drafts,
		hub:      hub,
		logger:   logger,
	}

	(*r).Post("/", h.submit)
	(*r).Get("/", h.list)
	(*r).Get("/summary", h.summary)
	(*r).Get("/watch", hub.watch)
	(*r).Route("/{requestID}", func(r chi.Router) {
		r.Use(verifyRequestID)
		r.Get("/", h.get)
		r.Patch("/status", h.decide)
		r.Delete("/", h.delete)
	})
}

func verifyRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), requestIDContextKey, chi.URLParam(r, "requestID"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
