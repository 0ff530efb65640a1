package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-roster/internal/apperr"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"list", apperr.List{apperr.Required("name")}, http.StatusBadRequest},
		{"field error", apperr.Format("nim", "bad"), http.StatusBadRequest},
		{"wrapped field error", fmt.Errorf("ctx: %w", apperr.Range("gpa", "too high")), http.StatusBadRequest},
		{"duplicate", fmt.Errorf("store.Add: %w", apperr.ErrDuplicate), http.StatusConflict},
		{"not found", fmt.Errorf("store.Get: %w", apperr.ErrNotFound), http.StatusNotFound},
		{"other", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestWriteError_Fields(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, apperr.List{apperr.Required("name"), apperr.Format("nim", "bad nim")}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, StatusError, body.Status)
	assert.Equal(t, "name is required, bad nim", body.Error)
	assert.Equal(t, map[string]string{"name": "name is required", "nim": "bad nim"}, body.Fields)
}

func TestWriteError_Single(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, apperr.Consistency("program", "program mismatch")))

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, map[string]string{"program": "program mismatch"}, body.Fields)
}

func TestWriteError_General(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, apperr.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "fields")
}

func TestWriteText(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteText(rec, http.StatusOK, "import.log", "hello\n"))

	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="import.log"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "hello\n", rec.Body.String())
}
