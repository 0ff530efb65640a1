// Package validation wires go-playground/validator to the roster's rules.
//
// It registers a custom "nim" tag backed by the NIM codec and converts the
// validator's ValidationErrors into an apperr.List holding the first error
// per field, which is what the form submission shows to the user.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-roster/internal/apperr"
	"github.com/aanand-mishra/students-roster/internal/nim"
)

// Validator checks request structs against their validate:"..." tags.
type Validator struct {
	validate *validator.Validate
	codec    *nim.Codec
}

// New returns a Validator whose "nim" tag uses codec (nim.Default if nil).
func New(codec *nim.Codec) *Validator {
	if codec == nil {
		codec = nim.Default
	}

	v := validator.New()

	// Report fields by their JSON names so API clients see "nim", not
	// "StudentID".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// The registration can only fail for an empty tag or nil func.
	_ = v.RegisterValidation("nim", func(fl validator.FieldLevel) bool {
		return codec.Validate(strings.TrimSpace(fl.Field().String())).Valid
	})

	return &Validator{validate: v, codec: codec}
}

// Struct validates s. It returns nil, an apperr.List, or the validator's
// own error for values it cannot inspect (e.g. a nil pointer).
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var list apperr.List
	for _, fe := range verrs {
		list = list.Add(v.toAppErr(fe))
	}
	return list.OrNil()
}

func (v *Validator) toAppErr(fe validator.FieldError) *apperr.Error {
	field := fe.Field()

	switch fe.ActualTag() {
	case "required":
		return apperr.Required(field)
	case "nim":
		res := v.codec.Validate(strings.TrimSpace(fmt.Sprint(fe.Value())))
		return apperr.Format(field, "%s", res.Reason())
	case "email":
		return apperr.Format(field, "%s must be a valid email address", field)
	case "gte", "min":
		return apperr.Range(field, "%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return apperr.Range(field, "%s must be at most %s", field, fe.Param())
	default:
		return apperr.Format(field, "%s is invalid", field)
	}
}
