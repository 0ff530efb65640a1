// Package apperr defines the error taxonomy shared by the codec, the
// normalizer, the importer and the HTTP layer.
//
// Validation failures are returned as values, never panics, so a batch
// import can record a bad row and move on to the next one.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a validation failure.
type Kind int

const (
	// KindFormat: malformed NIM (prefix, length, department, digits) or
	// an unparseable value.
	KindFormat Kind = iota + 1
	// KindRequired: a mandatory field (name, NIM, address) is missing.
	KindRequired
	// KindRange: GPA or cohort year outside the allowed bounds.
	KindRange
	// KindConsistency: declared program/cohort disagrees with the NIM.
	KindConsistency
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindRequired:
		return "required"
	case KindRange:
		return "range"
	case KindConsistency:
		return "consistency"
	default:
		return "unknown"
	}
}

// Sentinels for outcomes that are not field validation failures.
var (
	// ErrDuplicate is returned when a record collides with an existing NIM.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrNotFound is returned when a record id does not exist in the store.
	ErrNotFound = errors.New("record not found")
)

// Error is a single field-level validation failure.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Format builds a KindFormat error.
func Format(field, format string, args ...any) *Error {
	return &Error{Kind: KindFormat, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Required builds a KindRequired error with the standard message.
func Required(field string) *Error {
	return &Error{Kind: KindRequired, Field: field, Message: fmt.Sprintf("%s is required", field)}
}

// Range builds a KindRange error.
func Range(field, format string, args ...any) *Error {
	return &Error{Kind: KindRange, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Consistency builds a KindConsistency error.
func Consistency(field, format string, args ...any) *Error {
	return &Error{Kind: KindConsistency, Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err (or anything it wraps) is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	var list List
	if errors.As(err, &list) {
		for _, item := range list {
			if item.Kind == k {
				return true
			}
		}
	}
	return false
}

// List holds the first error encountered for each field of a form
// submission, in field order.
type List []*Error

func (l List) Error() string {
	msgs := make([]string, 0, len(l))
	for _, e := range l {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, ", ")
}

// Add appends e unless the field already has an error.
func (l List) Add(e *Error) List {
	for _, existing := range l {
		if existing.Field == e.Field {
			return l
		}
	}
	return append(l, e)
}

// Fields maps field name to message.
func (l List) Fields() map[string]string {
	out := make(map[string]string, len(l))
	for _, e := range l {
		out[e.Field] = e.Message
	}
	return out
}

// OrNil returns nil for an empty list so callers can `return list.OrNil()`.
func (l List) OrNil() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
