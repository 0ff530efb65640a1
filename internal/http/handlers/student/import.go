package student

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/aanand-mishra/students-roster/internal/importer"
	"github.com/aanand-mishra/students-roster/internal/rows"
	"github.com/aanand-mishra/students-roster/internal/utils/response"
)

// maxImportBytes bounds an uploaded import file.
const maxImportBytes = 10 << 20

// importResponse is the JSON body of a finished import. Errors is capped at
// the configured limit, with a trailing "+K more" entry.
type importResponse struct {
	importer.Summary
	Report string   `json:"report"`
	Errors []string `json:"errors"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Import handles POST /api/students/import?format=csv|json|yaml
//
// The file is sent either as the raw request body, or as the "file" field
// of a multipart form. The format comes from ?format=, falling back to the
// uploaded file name's extension and then the Content-Type.
//
// With "Accept: text/plain" the response is the full error log as a
// download; otherwise it is the JSON summary:
//
//	{ "batchId": "…", "total": 3, "imported": 2, "duplicate": 1, "invalid": 0,
//	  "report": "Import finished: …", "errors": [] }
//
// Row problems never fail the request; only an unreadable file (400) or a
// failed save (500) does.
// ─────────────────────────────────────────────────────────────────────────────
func Import(reconciler *importer.Reconciler, errorLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, name, err := importSource(w, r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		defer body.Close()

		format, err := importFormat(r, name)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("importing students", slog.String("format", string(format)), slog.String("file", name))

		parsed, err := rows.Decode(format, body)
		if err != nil {
			slog.Error("error reading import file", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(fmt.Errorf("cannot read %s file: %w", format, err)))
			return
		}

		summary, err := reconciler.Reconcile(parsed)
		if err != nil {
			slog.Error("error importing students", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}
		summary.Source = name

		if wantsText(r) {
			response.WriteText(w, http.StatusOK,
				fmt.Sprintf("import-%s.log", summary.BatchID), summary.ErrorLog())
			return
		}

		errs := summary.Details(errorLimit)
		if errs == nil {
			errs = []string{}
		}
		response.WriteJSON(w, http.StatusOK, importResponse{
			Summary: summary,
			Report:  summary.Report(errorLimit),
			Errors:  errs,
		})
	}
}

// importSource returns the uploaded file and its name ("" for a raw body).
func importSource(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, "", nil
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("missing \"file\" form field: %w", err)
	}
	return file, header.Filename, nil
}

func importFormat(r *http.Request, filename string) (rows.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return rows.ParseFormat(f)
	}
	if filename != "" {
		return rows.FormatForFile(filename)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "text/csv":
		return rows.FormatCSV, nil
	case "application/json":
		return rows.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return rows.FormatYAML, nil
	}
	return "", errors.New("import format is unknown: pass ?format=csv|json|yaml")
}

func wantsText(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/plain")
}
