package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Summary is the outcome of one import batch.
type Summary struct {
	BatchID    uuid.UUID `json:"batchId"`
	Source     string    `json:"source,omitempty"`
	FinishedAt time.Time `json:"finishedAt"`

	Total     int `json:"total"`
	Imported  int `json:"imported"`
	Duplicate int `json:"duplicate"`
	Invalid   int `json:"invalid"`

	// Errors holds one line per rejected row, in input order.
	Errors []string `json:"-"`
}

// Details returns at most limit error lines, followed by a "+K more" line
// when some were left out. A limit of 0 or less means no cap.
func (s Summary) Details(limit int) []string {
	if limit <= 0 || len(s.Errors) <= limit {
		return append([]string(nil), s.Errors...)
	}
	out := make([]string, 0, limit+1)
	out = append(out, s.Errors[:limit]...)
	out = append(out, fmt.Sprintf("+%d more", len(s.Errors)-limit))
	return out
}

// Report renders the short human-readable result shown after an import.
func (s Summary) Report(limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Import finished: %d imported, %d duplicate, %d invalid", s.Imported, s.Duplicate, s.Invalid)
	if len(s.Errors) > 0 {
		b.WriteString("\n\nErrors:")
		for _, line := range s.Details(limit) {
			b.WriteString("\n- ")
			b.WriteString(line)
		}
	}
	return b.String()
}

// ErrorLog renders the full plain-text log offered for download: a header
// with the batch id and counts, then every error line.
func (s Summary) ErrorLog() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Import batch %s\n", s.BatchID)
	if s.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", s.Source)
	}
	if !s.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "Finished: %s\n", s.FinishedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Rows: %d, imported: %d, duplicate: %d, invalid: %d\n",
		s.Total, s.Imported, s.Duplicate, s.Invalid)

	if len(s.Errors) == 0 {
		b.WriteString("\nNo errors.\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, line := range s.Errors {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
