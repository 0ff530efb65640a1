// Package normalize canonicalizes student records before they enter the
// store: NIM casing, gender synonyms, photo placeholder, GPA rounding, notes
// length, and program/cohort derived from the NIM.
//
// Normalize is idempotent: feeding its output back in yields the same
// record.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/aanand-mishra/students-roster/internal/apperr"
	"github.com/aanand-mishra/students-roster/internal/nim"
	"github.com/aanand-mishra/students-roster/internal/types"
)

const (
	MinGPA = 0.0
	MaxGPA = 4.0
)

// plainDecimal is the only GPA shape accepted: digits with at most one
// "." or "," separator. Exponents, hex floats, Inf and NaN are rejected.
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+([.,]\d*)?|[.,]\d+)$`)

var genderSynonyms = map[string]types.Gender{
	"pria":      types.GenderMale,
	"laki-laki": types.GenderMale,
	"laki laki": types.GenderMale,
	"lakilaki":  types.GenderMale,
	"l":         types.GenderMale,
	"male":      types.GenderMale,
	"m":         types.GenderMale,
	"man":       types.GenderMale,
	"wanita":    types.GenderFemale,
	"perempuan": types.GenderFemale,
	"p":         types.GenderFemale,
	"female":    types.GenderFemale,
	"f":         types.GenderFemale,
	"woman":     types.GenderFemale,
}

// Placeholder avatars used by earlier versions of the roster. Records that
// still point at them are rewritten to types.DefaultPhoto.
var legacyPlaceholders = map[string]struct{}{
	"https://via.placeholder.com/150":          {},
	"https://via.placeholder.com/150x150":      {},
	"https://placehold.co/150x150":             {},
	"../assets/default-avatar.png":             {},
	"./assets/default-avatar.png":              {},
	"https://www.gravatar.com/avatar/?d=mp":    {},
	"https://ui-avatars.com/api/?name=student": {},
}

// Normalizer derives program and cohort through a NIM codec.
type Normalizer struct {
	codec *nim.Codec
}

// New returns a Normalizer backed by codec. A nil codec means nim.Default.
func New(codec *nim.Codec) *Normalizer {
	if codec == nil {
		codec = nim.Default
	}
	return &Normalizer{codec: codec}
}

// Codec returns the codec used for NIM decoding.
func (n *Normalizer) Codec() *nim.Codec { return n.codec }

// Normalize returns the canonical form of rec. A name or address that is
// blank after trimming is reported as an apperr.List of KindRequired errors.
// Otherwise the error is an *apperr.Error: KindFormat for a bad NIM,
// KindRange for a GPA outside [0, 4], KindConsistency when a declared
// program or cohort year disagrees with the NIM. Declared values are never
// silently overwritten.
func (n *Normalizer) Normalize(rec types.Student) (types.Student, error) {
	out := rec.Clone()

	out.Name = strings.TrimSpace(out.Name)
	out.Address = strings.TrimSpace(out.Address)
	out.Email = strings.TrimSpace(out.Email)
	out.Notes = Notes(out.Notes)
	out.Gender = Gender(string(out.Gender))
	out.Photo = Photo(out.Photo)

	var missing apperr.List
	if out.Name == "" {
		missing = missing.Add(apperr.Required("name"))
	}
	if out.Address == "" {
		missing = missing.Add(apperr.Required("address"))
	}
	if err := missing.OrNil(); err != nil {
		return types.Student{}, err
	}

	res := n.codec.Validate(strings.TrimSpace(out.StudentID))
	if !res.Valid {
		return types.Student{}, res.Err
	}
	out.StudentID = res.NormalizedID

	if out.GPA != nil {
		gpa, err := CheckGPA(*out.GPA)
		if err != nil {
			return types.Student{}, err
		}
		out.GPA = &gpa
	}

	program, cohort, err := n.derive(res, out.Program, out.CohortYear)
	if err != nil {
		return types.Student{}, err
	}
	out.Program = program
	out.CohortYear = cohort

	return out, nil
}

// derive falls back to the NIM-decoded program/cohort for blank values and
// rejects declared values that differ from them.
func (n *Normalizer) derive(res nim.Result, program, cohort string) (string, string, error) {
	program = strings.TrimSpace(program)
	cohort = strings.TrimSpace(cohort)

	if err := n.CheckProgram(res, program); err != nil {
		return "", "", err
	}
	if err := n.CheckCohort(res, cohort); err != nil {
		return "", "", err
	}

	if program == "" {
		program = res.Info.Department
	}
	if cohort == "" {
		cohort = n.codec.CohortYear(res.Info.YearCode)
	}
	return program, cohort, nil
}

// CheckProgram returns a consistency error when a declared program differs
// from the department decoded from a valid NIM. A blank program passes.
func (n *Normalizer) CheckProgram(res nim.Result, program string) error {
	if program == "" || program == res.Info.Department {
		return nil
	}
	return apperr.Consistency("program",
		"program '%s' does not match NIM %s (%s)", program, res.NormalizedID, res.Info.Department)
}

// CheckCohort returns a consistency error when a declared cohort year
// differs from the year decoded from a valid NIM. A blank cohort passes.
func (n *Normalizer) CheckCohort(res nim.Result, cohort string) error {
	decoded := n.codec.CohortYear(res.Info.YearCode)
	if cohort == "" || decoded == nim.NotAvailable || cohort == decoded {
		return nil
	}
	return apperr.Consistency("cohortYear",
		"cohort year '%s' does not match NIM %s (%s)", cohort, res.NormalizedID, decoded)
}

// Gender maps raw onto Male/Female using the synonym table. Unknown values
// normalize to unset.
func Gender(raw string) types.Gender {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return types.GenderUnset
	}
	if g, ok := genderSynonyms[key]; ok {
		return g
	}
	return types.GenderUnset
}

// Photo collapses empty, "-" and legacy placeholder references to
// types.DefaultPhoto. Anything else, data URIs included, is kept.
func Photo(raw string) string {
	ref := strings.TrimSpace(raw)
	switch ref {
	case "", "-", types.DefaultPhoto:
		return types.DefaultPhoto
	}
	if _, ok := legacyPlaceholders[strings.ToLower(ref)]; ok {
		return types.DefaultPhoto
	}
	return ref
}

// Notes trims raw and bounds it to types.MaxNotesLength characters.
func Notes(raw string) string {
	notes := strings.TrimSpace(raw)
	runes := []rune(notes)
	if len(runes) > types.MaxNotesLength {
		notes = strings.TrimSpace(string(runes[:types.MaxNotesLength]))
	}
	return notes
}

// CheckGPA range-checks v and rounds it to 2 decimals.
func CheckGPA(v float64) (float64, error) {
	if math.IsNaN(v) || v < MinGPA || v > MaxGPA {
		return 0, apperr.Range("gpa", "GPA %s is outside the range %.2f-%.2f", formatGPA(v), MinGPA, MaxGPA)
	}
	return math.Round(v*100) / 100, nil
}

// ParseGPA is the strict parser used by the importer. A blank value is
// unset; a comma decimal separator ("3,75") is accepted; anything that is
// not a plain decimal number is a format error.
func ParseGPA(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	if !plainDecimal.MatchString(s) {
		return nil, apperr.Format("gpa", "GPA '%s' is not a number", s)
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return nil, apperr.Format("gpa", "GPA '%s' is not a number", s)
	}
	gpa, err := CheckGPA(v)
	if err != nil {
		return nil, err
	}
	return &gpa, nil
}

// CoerceGPA is the lenient parser used for free-form input: blank or
// unparseable values become unset, parsed values are still range-checked.
func CoerceGPA(raw string) (*float64, error) {
	gpa, err := ParseGPA(raw)
	if apperr.IsKind(err, apperr.KindFormat) {
		return nil, nil
	}
	return gpa, err
}

func formatGPA(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
