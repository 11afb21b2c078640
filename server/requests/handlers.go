package serverrequests

import (
	"errors"
	"net/http"

	"github.com/Pjt727/odautofill/draft"
	"github.com/Pjt727/odautofill/internal/validation"
	"github.com/Pjt727/odautofill/odrequest"
	"github.com/Pjt727/odautofill/server/respond"
	"github.com/Pjt727/odautofill/timetable"
)

type submitBody struct {
	CoordinatorName  string              `json:"coordinatorName"`
	CoordinatorEmail string              `json:"coordinatorEmail"`
	EventName        string              `json:"eventName"`
	Date             string              `json:"date"`
	FromTime         timetable.TimeOfDay `json:"fromTime"`
	ToTime           timetable.TimeOfDay `json:"toTime"`
	DraftIDs         []string            `json:"draftIds"`
}

func requestID(r *http.Request) string {
	return r.Context().Value(requestIDContextKey).(string)
}

// writeError maps request errors onto status codes, anything unknown is the store's fault
func (h *requestHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, odrequest.ErrNotFound), errors.Is(err, draft.ErrDraftNotFound):
		respond.Error(w, h.logger, http.StatusNotFound, err.Error())
	case errors.Is(err, odrequest.ErrNotRejected):
		respond.Error(w, h.logger, http.StatusConflict, err.Error())
	case errors.Is(err, draft.ErrNoLecturesOnCommit):
		respond.Error(w, h.logger, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, odrequest.ErrInvalidStatus),
		errors.Is(err, odrequest.ErrInvalidRequest),
		errors.Is(err, odrequest.ErrNoClasses):
		respond.Error(w, h.logger, http.StatusBadRequest, err.Error())
	default:
		var verr *validation.Error
		if errors.As(err, &verr) {
			respond.Invalid(w, h.logger, err)
			return
		}
		h.logger.Error("Could not handle od request", "err", err)
		http.Error(w, http.StatusText(500), 500)
	}
}

// submit turns drafts into one request. The drafts are taken out of the registry
// and put back if the request is not saved.
func (h *requestHandler) submit(w http.ResponseWriter, r *http.Request) {
	var body submitBody
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}
	classes, err := h.drafts.Take(body.DraftIDs...)
	if err != nil {
		h.writeError(w, err)
		return
	}

	req, err := h.requests.Submit(r.Context(), odrequest.Submission{
		CoordinatorName:  body.CoordinatorName,
		CoordinatorEmail: body.CoordinatorEmail,
		EventName:        body.EventName,
		Date:             body.Date,
		Window:           timetable.Interval{From: body.FromTime, To: body.ToTime},
		Classes:          classes,
	})
	if err != nil {
		h.drafts.Restore(classes...)
		h.writeError(w, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusCreated, req)
}

func (h *requestHandler) list(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if filter := r.URL.Query().Get("status"); filter != "" {
		status, err := odrequest.ParseStatus(filter)
		if err != nil {
			h.writeError(w, err)
			return
		}
		filtered := requests[:0]
		for _, req := range requests {
			if req.Status == status {
				filtered = append(filtered, req)
			}
		}
		requests = filtered
	}
	if requests == nil {
		requests = []odrequest.Request{}
	}
	respond.JSON(w, h.logger, http.StatusOK, requests)
}

func (h *requestHandler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.requests.Summary(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, summary)
}

func (h *requestHandler) get(w http.ResponseWriter, r *http.Request) {
	req, err := h.requests.Get(r.Context(), requestID(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, req)
}

type statusBody struct {
	Status string `json:"status"`
}

func (h *requestHandler) decide(w http.ResponseWriter, r *http.Request) {
	var body statusBody
	if err := respond.Decode(r, &body); err != nil {
		respond.Error(w, h.logger, http.StatusBadRequest, "invalid status body")
		return
	}
	status, err := odrequest.ParseStatus(body.Status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	req, err := h.requests.Decide(r.Context(), requestID(r), status)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, req)
}

func (h *requestHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.requests.Delete(r.Context(), requestID(r)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
