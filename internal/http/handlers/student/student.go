// Package student contains all HTTP handlers for the student roster.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN
// ────────────────────────────────────────────────────────────
// The router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// To inject dependencies (the store, the validator, the normalizer, the
// import reconciler) each handler is built by a factory that receives them
// once at startup and returns the function the router calls per request:
//
//	router.HandleFunc("POST /api/students", student.New(roster, v, n))
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aanand-mishra/students-roster/internal/normalize"
	"github.com/aanand-mishra/students-roster/internal/store"
	"github.com/aanand-mishra/students-roster/internal/types"
	"github.com/aanand-mishra/students-roster/internal/utils/response"
	"github.com/aanand-mishra/students-roster/internal/validation"
)

// maxBodyBytes bounds JSON request bodies. Photos may arrive inline as
// data URIs.
const maxBodyBytes = 5 << 20

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Validates, normalizes and stores one student from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Andi Saputra", "nim": "d121231038", "address": "Makassar", "gpa": 3.75 }
//
// Success response (201 Created): the stored student, with id, program and
// cohortYear filled in from the NIM.
//
// Error responses:
//
//	400 Bad Request : empty body, malformed JSON, or failed validation
//	409 Conflict    : another student already has this NIM
//	500 Internal    : storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(roster *store.Store, v *validation.Validator, n *normalize.Normalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r, v, n)
		if !ok {
			return
		}

		created, err := roster.Add(student)
		if err != nil {
			slog.Error("error creating student",
				slog.String("nim", student.StudentID),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// Error responses:
//
//	400 Bad Request : id is not a valid integer
//	404 Not Found   : no student with this id
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(roster *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		student, err := roster.Get(id)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students?search=&cohort=&sort=
// Returns the roster filtered by keyword and cohort, optionally sorted
// (sort is one of name-asc, name-desc, nim-asc, nim-desc, cohort-asc,
// cohort-desc, program-asc, program-desc).
//
// Returns an empty array [] (not null) when nothing matches.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(roster *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		slog.Info("listing students",
			slog.String("search", q.Get("search")),
			slog.String("cohort", q.Get("cohort")),
			slog.String("sort", q.Get("sort")))

		sortKey, err := store.ParseSortKey(q.Get("sort"))
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		students := roster.Query(store.Query{
			Search: q.Get("search"),
			Cohort: q.Get("cohort"),
			Sort:   sortKey,
		})
		if students == nil {
			students = []types.Student{}
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces every field of an existing student; id and position are kept.
//
// Error responses:
//
//	400 Bad Request : invalid id, empty body, or validation failure
//	404 Not Found   : no student with this id
//	409 Conflict    : another student already has this NIM
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(roster *store.Store, v *validation.Validator, n *normalize.Normalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		student, ok := decodeStudent(w, r, v, n)
		if !ok {
			return
		}

		updated, err := roster.Update(id, student)
		if err != nil {
			slog.Error("error updating student",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/students/{id}.
func Delete(roster *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		if err := roster.Delete(id); err != nil {
			slog.Error("error deleting student",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// ─────────────────────────────────────────────────────────────────────────────
// DeleteMany handles POST /api/students/bulk-delete
//
// Request body (JSON):
//
//	{ "ids": [1, 4, 7] }
//
// Unknown ids are ignored. Success response: { "deleted": 2 }
// ─────────────────────────────────────────────────────────────────────────────
func DeleteMany(roster *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkDeleteRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if len(req.IDs) == 0 {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("ids must not be empty")))
			return
		}
		slog.Info("deleting students", slog.Int("requested", len(req.IDs)))

		n, err := roster.DeleteMany(req.IDs)
		if err != nil {
			slog.Error("error deleting students", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("students deleted", slog.Int("deleted", n))
		response.WriteJSON(w, http.StatusOK, map[string]int{"deleted": n})
	}
}

// DeleteAll handles DELETE /api/students and empties the roster.
func DeleteAll(roster *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("deleting all students")

		n, err := roster.DeleteAll()
		if err != nil {
			slog.Error("error deleting all students", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("roster emptied", slog.Int("deleted", n))
		response.WriteJSON(w, http.StatusOK, map[string]int{"deleted": n})
	}
}

// Cohorts handles GET /api/cohorts: the distinct cohort years on the
// roster, newest first.
func Cohorts(roster *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cohorts := roster.Cohorts()
		if cohorts == nil {
			cohorts = []string{}
		}
		response.WriteJSON(w, http.StatusOK, cohorts)
	}
}

// pathID parses {id}. On failure it writes a 400 and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be a positive integer")))
		return 0, false
	}
	return id, true
}

// decodeJSON reads the request body into dst. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}
	return true
}

// decodeStudent runs the form submission path: decode, trim the required
// text fields, validate every field (first error per field), then normalize. On failure it writes the
// error response and returns false.
func decodeStudent(w http.ResponseWriter, r *http.Request, v *validation.Validator, n *normalize.Normalizer) (types.Student, bool) {
	var student types.Student
	if !decodeJSON(w, r, &student) {
		return types.Student{}, false
	}
	student.ID = 0
	student.Name = strings.TrimSpace(student.Name)
	student.Address = strings.TrimSpace(student.Address)

	if err := v.Struct(student); err != nil {
		response.WriteError(w, err)
		return types.Student{}, false
	}

	normalized, err := n.Normalize(student)
	if err != nil {
		response.WriteError(w, err)
		return types.Student{}, false
	}
	return normalized, true
}
