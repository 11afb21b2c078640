// Package respond writes the json bodies shared by every route group.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Pjt727/odautofill/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("Could not marshal response", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func Error(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	JSON(w, logger, status, errorBody{Error: message})
}

// Invalid reports a bad request, listing fields when err came from validation
func Invalid(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		JSON(w, logger, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: verr.Fields})
		return
	}
	Error(w, logger, http.StatusBadRequest, err.Error())
}

// Decode reads a json body into v. An empty body leaves v untouched.
func Decode(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
