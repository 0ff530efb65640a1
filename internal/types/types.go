// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the codec, normalizer, store, importer and handlers can all import
// types without depending on each other.
package types

// Gender is the canonical gender value of a student. The zero value means
// "unset".
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// DefaultPhoto marks a record that should be rendered with the placeholder
// avatar.
const DefaultPhoto = "default"

// MaxNotesLength bounds Student.Notes, counted in characters (runes).
const MaxNotesLength = 1000

// Student represents a student record in our system.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  controls how the field appears when encoded to JSON,
//     both in API responses and in the persisted roster blob.
//
//  2. validate:"..." rules checked by the go-playground/validator
//     package. "nim" is a custom tag registered by package validation.
type Student struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"               validate:"required"`
	StudentID  string   `json:"nim"                validate:"required,nim"`
	Program    string   `json:"program"`
	CohortYear string   `json:"cohortYear"`
	Address    string   `json:"address"            validate:"required"`
	Email      string   `json:"email,omitempty"    validate:"omitempty,email"`
	GPA        *float64 `json:"gpa,omitempty"      validate:"omitempty,gte=0,lte=4"`
	Notes      string   `json:"notes,omitempty"`
	Gender     Gender   `json:"gender,omitempty"`
	Photo      string   `json:"photo,omitempty"`
}

// Clone returns a deep copy; GPA is the only pointer field.
func (s Student) Clone() Student {
	if s.GPA != nil {
		gpa := *s.GPA
		s.GPA = &gpa
	}
	return s
}
