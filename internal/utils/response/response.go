// Package response provides helpers for writing consistent HTTP responses.
//
// Every handler in this application sends JSON back to the client, except
// the import error log, which is plain text. Rather than repeating the same
// three lines (set header, set status, encode) in every handler, we
// centralise them here, together with the mapping from domain errors to
// HTTP status codes.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aanand-mishra/students-roster/internal/apperr"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a student, a list, a
// summary…). Error responses always look like:
//
//	{ "status": "error", "error": "nim is required", "fields": { "nim": "nim is required" } }
//
// "fields" is only present for validation failures and holds the first
// error per form field, so the UI can show it next to the input.
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string            `json:"status"`           // "ok" or "error"
	Error  string            `json:"error"`            // human-readable error detail
	Fields map[string]string `json:"fields,omitempty"` // per-field messages
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteText writes a plain-text body, used for the downloadable import log.
func WriteText(w http.ResponseWriter, status int, filename, text string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(status)
	_, err := io.WriteString(w, text)
	return err
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for unexpected errors (storage failures, decode errors, etc.)
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError turns the per-field errors of a form submission into a
// Response carrying both the joined message and the field map.
func ValidationError(errs apperr.List) Response {
	return Response{
		Status: StatusError,
		Error:  errs.Error(),
		Fields: errs.Fields(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// StatusFor maps an error to its HTTP status:
//
//	apperr.List / *apperr.Error  → 400 Bad Request
//	apperr.ErrDuplicate          → 409 Conflict
//	apperr.ErrNotFound           → 404 Not Found
//	anything else                → 500 Internal Server Error
//
// ─────────────────────────────────────────────────────────────────────────────
func StatusFor(err error) int {
	var list apperr.List
	var field *apperr.Error

	switch {
	case errors.As(err, &list), errors.As(err, &field):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err with the status chosen by StatusFor. Validation
// errors carry their field map.
func WriteError(w http.ResponseWriter, err error) error {
	status := StatusFor(err)

	var list apperr.List
	if errors.As(err, &list) {
		return WriteJSON(w, status, ValidationError(list))
	}
	var field *apperr.Error
	if errors.As(err, &field) {
		return WriteJSON(w, status, ValidationError(apperr.List{field}))
	}
	return WriteJSON(w, status, GeneralError(err))
}
