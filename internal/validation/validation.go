// Package validation performs presence checks on decoded request payloads.
//
// Typed fields use `validate:"required"`. Untyped (`any`) fields use
// `validate:"present"`, which looks through the interface at the decoded
// value. Either way a field is absent when it is missing from the JSON body or
// holds a zero value (empty string, 0, false or null).
package validation

import (
	"reflect"
	"strings"
	"sync"

	"carwash-backend/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("present", present, true)
	})
	return validate
}

// present reports whether the field, after unwrapping interfaces and
// pointers, holds a non-zero value.
func present(fl validator.FieldLevel) bool {
	v := fl.Field()
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	return v.IsValid() && !v.IsZero()
}

// Required checks payload and returns a 400 HTTPError carrying message and the
// list of missing fields, or nil when everything is present.
func Required(payload any, message string) error {
	err := instance().Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate payload")
	}

	fields := make([]errs.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errs.FieldError{
			Field: fe.Field(),
			Error: "is required",
		})
	}
	return errs.NewValidationError(message, fields)
}
