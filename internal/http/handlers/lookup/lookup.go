// Package lookup serves the read-only reference endpoints used for live
// input feedback: NIM decoding and the department table.
package lookup

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/students-roster/internal/nim"
	"github.com/aanand-mishra/students-roster/internal/utils/response"
)

// NIMResponse is the body of GET /api/nim/{nim}. Department and
// CohortYear are "N/A" for an invalid NIM.
type NIMResponse struct {
	Input        string    `json:"input"`
	Valid        bool      `json:"valid"`
	NormalizedID string    `json:"normalizedId,omitempty"`
	Error        string    `json:"error,omitempty"`
	Department   string    `json:"department"`
	CohortYear   string    `json:"cohortYear"`
	Summary      string    `json:"summary"`
	Info         *nim.Info `json:"info,omitempty"`
}

// NIM handles GET /api/nim/{nim}. It always answers 200; validity is part
// of the body.
func NIM(codec *nim.Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.PathValue("nim")
		slog.Debug("decoding nim", slog.String("nim", raw))

		res := codec.Validate(raw)
		body := NIMResponse{
			Input:        raw,
			Valid:        res.Valid,
			NormalizedID: res.NormalizedID,
			Error:        res.Reason(),
			Department:   codec.DecodeDepartment(raw),
			CohortYear:   codec.DecodeCohortYear(raw),
			Summary:      codec.Describe(res),
		}
		if res.Valid {
			info := res.Info
			body.Info = &info
		}

		response.WriteJSON(w, http.StatusOK, body)
	}
}

// Departments handles GET /api/departments.
func Departments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, nim.Departments())
	}
}
