// Package nim validates and decodes student identifiers (NIM) issued by the
// Faculty of Engineering.
//
// A NIM is ten characters long:
//
//	D 121 23 1038
//	│  │   │   └── sequence number (4 digits)
//	│  │   └────── enrollment year code (2 digits)
//	│  └────────── department code (3 characters, see Departments)
//	└───────────── faculty letter
//
// All functions are pure; a Codec only carries the cohort pivot.
package nim

import (
	"fmt"
	"strings"

	"github.com/aanand-mishra/students-roster/internal/apperr"
)

const (
	// FacultyLetter is the prefix every engineering NIM starts with.
	FacultyLetter = 'D'
	// FacultyName is reported in decoded results.
	FacultyName = "Fakultas Teknik"
	// Length is the exact NIM length.
	Length = 10
	// DefaultPivot maps year codes 56–99 to 19xx and 00–55 to 20xx.
	// The campus was founded in 1956.
	DefaultPivot = 56
	// NotAvailable is returned by the decode helpers for invalid input.
	NotAvailable = "N/A"
)

// Field is the name used in errors raised for the NIM.
const Field = "nim"

// Info is the decoded content of a valid NIM.
type Info struct {
	Faculty        string `json:"faculty"`
	DepartmentCode string `json:"departmentCode"`
	Department     string `json:"department"`
	YearCode       string `json:"yearCode"`
	Sequence       string `json:"sequence"`
}

// Result is the outcome of Validate. When Valid is false, Err holds an
// *apperr.Error of kind KindFormat and the other fields are zero.
type Result struct {
	Valid        bool
	NormalizedID string
	Info         Info
	Err          error
}

// Reason returns the failure message, or "" for a valid result.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Codec validates NIMs and converts year codes using a pivot.
type Codec struct {
	pivot int
}

// New returns a Codec using the given pivot. Pivots outside 0–100 fall
// back to DefaultPivot.
func New(pivot int) *Codec {
	if pivot < 0 || pivot > 100 {
		pivot = DefaultPivot
	}
	return &Codec{pivot: pivot}
}

// Default is the codec used by the package-level helpers.
var Default = New(DefaultPivot)

// Validate checks raw against the NIM grammar using the default codec.
func Validate(raw string) Result { return Default.Validate(raw) }

// DecodeDepartment returns the department name for raw, or "N/A".
func DecodeDepartment(raw string) string { return Default.DecodeDepartment(raw) }

// DecodeCohortYear returns the 4-digit cohort year for raw, or "N/A".
func DecodeCohortYear(raw string) string { return Default.DecodeCohortYear(raw) }

// Pivot returns the year-code pivot of the codec.
func (c *Codec) Pivot() int { return c.pivot }

// Validate checks raw in a fixed order: emptiness, faculty prefix, length,
// department code, year digits, sequence digits. The first failing rule
// decides the reported error, so a short string with the wrong prefix is
// reported as a prefix error rather than a length error.
func (c *Codec) Validate(raw string) Result {
	if raw == "" {
		return invalid("NIM must not be empty")
	}

	id := strings.ToUpper(raw)

	if id[0] != FacultyLetter {
		return invalid("NIM must start with the faculty prefix '%c' (upper or lower case)", FacultyLetter)
	}

	chars := []rune(id)
	if len(chars) != Length {
		return invalid("NIM must be exactly %d characters", Length)
	}

	deptCode := string(chars[1:4])
	yearCode := string(chars[4:6])
	sequence := string(chars[6:10])

	dept, ok := departments[deptCode]
	if !ok {
		return invalid("department code '%s' (characters 2-4 of the NIM) is not a valid engineering department", deptCode)
	}

	if !allDigits(yearCode) {
		return invalid("year code '%s' (characters 5-6 of the NIM) must be 2 digits, e.g. '23' for the 2023 cohort", yearCode)
	}

	if !allDigits(sequence) {
		return invalid("sequence number '%s' (characters 7-10 of the NIM) must be 4 digits, e.g. '0045'", sequence)
	}

	return Result{
		Valid:        true,
		NormalizedID: id,
		Info: Info{
			Faculty:        FacultyName,
			DepartmentCode: deptCode,
			Department:     dept,
			YearCode:       yearCode,
			Sequence:       sequence,
		},
	}
}

// DecodeDepartment re-runs validation and returns the department name, or
// NotAvailable when raw is not a valid NIM.
func (c *Codec) DecodeDepartment(raw string) string {
	res := c.Validate(raw)
	if !res.Valid {
		return NotAvailable
	}
	return res.Info.Department
}

// DecodeCohortYear re-runs validation and returns the 4-digit cohort year,
// or NotAvailable when raw is not a valid NIM.
func (c *Codec) DecodeCohortYear(raw string) string {
	res := c.Validate(raw)
	if !res.Valid {
		return NotAvailable
	}
	return c.CohortYear(res.Info.YearCode)
}

// CohortYear converts a two-digit year code with the pivot rule: codes at
// or above the pivot belong to the 1900s, the rest to the 2000s.
func (c *Codec) CohortYear(yearCode string) string {
	if len(yearCode) != 2 || !allDigits(yearCode) {
		return NotAvailable
	}
	n := int(yearCode[0]-'0')*10 + int(yearCode[1]-'0')
	if n >= c.pivot {
		return "19" + yearCode
	}
	return "20" + yearCode
}

func invalid(format string, args ...any) Result {
	return Result{Err: apperr.Format(Field, format, args...)}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Describe renders a result in the short form shown next to the NIM input,
// e.g. "Teknik Informatika - Cohort 2023".
func (c *Codec) Describe(res Result) string {
	if !res.Valid {
		return res.Reason()
	}
	return fmt.Sprintf("%s - Cohort %s", res.Info.Department, c.CohortYear(res.Info.YearCode))
}
