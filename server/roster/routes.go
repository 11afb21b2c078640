package serverroster

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Pjt727/odautofill/roster"
	"github.com/Pjt727/odautofill/roster/source"
	"github.com/Pjt727/odautofill/server/respond"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxUploadBytes = 10 << 20

type rosterHandler struct {
	book   *roster.Book
	logger *slog.Logger
}

func PopulateRosterRoutes(r *chi.Router, book *roster.Book, logger *slog.Logger) {
	h := rosterHandler{
		book:   book,
		logger: logger,
	}
	(*r).Get("/", h.summary)
	(*r).With(middleware.AllowContentType("multipart/form-data")).Post("/", h.upload)
}

func (h *rosterHandler) summary(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, h.logger, http.StatusOK, h.book.Summary())
}

// upload replaces the roster with the "file" form field, csv or xlsx
func (h *rosterHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "expected a multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	format, err := source.FormatOf(header.Filename)
	if err != nil {
		respond.Error(w, h.logger, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	students, err := source.Read(format, file)
	if errors.Is(err, source.ErrUnsupportedFormat) {
		respond.Error(w, h.logger, http.StatusUnsupportedMediaType, err.Error())
		return
	}
	if err != nil {
		h.logger.Warn("Could not read roster", "file", header.Filename, "err", err)
		respond.Error(w, h.logger, http.StatusBadRequest, "could not read "+header.Filename)
		return
	}

	summary := h.book.Load(header.Filename, students)
	h.logger.Info("Loaded roster", "file", header.Filename, "students", summary.Students)
	respond.JSON(w, h.logger, http.StatusOK, summary)
}
