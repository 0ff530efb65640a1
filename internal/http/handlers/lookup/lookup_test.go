package lookup

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-roster/internal/nim"
)

func get(t *testing.T, h http.Handler, target string, dst any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

func TestNIM(t *testing.T) {
	router := http.NewServeMux()
	router.HandleFunc("GET /api/nim/{nim}", NIM(nim.Default))

	t.Run("valid", func(t *testing.T) {
		var body NIMResponse
		get(t, router, "/api/nim/d121231038", &body)

		assert.True(t, body.Valid)
		assert.Equal(t, "D121231038", body.NormalizedID)
		assert.Equal(t, "Teknik Informatika", body.Department)
		assert.Equal(t, "2023", body.CohortYear)
		assert.Equal(t, "Teknik Informatika - Cohort 2023", body.Summary)
		require.NotNil(t, body.Info)
		assert.Equal(t, "1038", body.Info.Sequence)
		assert.Empty(t, body.Error)
	})

	t.Run("invalid", func(t *testing.T) {
		var body NIMResponse
		get(t, router, "/api/nim/D999231038", &body)

		assert.False(t, body.Valid)
		assert.Contains(t, body.Error, "'999'")
		assert.Equal(t, nim.NotAvailable, body.Department)
		assert.Equal(t, nim.NotAvailable, body.CohortYear)
		assert.Nil(t, body.Info)
	})

	t.Run("custom pivot", func(t *testing.T) {
		r := http.NewServeMux()
		r.HandleFunc("GET /api/nim/{nim}", NIM(nim.New(20)))

		var body NIMResponse
		get(t, r, "/api/nim/D121231038", &body)
		assert.Equal(t, "1923", body.CohortYear)
	})
}

func TestDepartments(t *testing.T) {
	var body []nim.Department
	get(t, Departments(), "/api/departments", &body)

	require.Len(t, body, 23)
	assert.Equal(t, nim.Department{Code: "011", Name: "Teknik Sipil"}, body[0])
}
