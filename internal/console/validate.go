package console

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Field error messages.
const (
	MsgRequired = "Required field"
	MsgURL      = "Must be a valid http(s) URL"
)

// FieldErrors maps a form field name to its error message.
type FieldErrors map[string]string

// Error implements error.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// AsFieldErrors unwraps err into FieldErrors.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks v's `validate` tags and returns nil when v is valid.
// Field names come from the `form` tag.
func Validate(v any) FieldErrors {
	err := formValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fieldName(fe)
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(fe)
	}
	return out
}

// fieldName strips the struct prefix and collapses slice elements onto their
// field: "TrustAnchorValues.entityTypes[0]" becomes "entityTypes".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	if i := strings.IndexByte(ns, '['); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "min":
		if fe.Kind() == reflect.Slice && fe.Param() == "1" {
			return MsgRequired
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "http_url", "url":
		return MsgURL
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "unique":
		return "Values must be unique"
	case "gte":
		return fmt.Sprintf("Must be %s or greater", fe.Param())
	case "email":
		return "Must be a valid email address"
	default:
		return fmt.Sprintf("Failed %q validation", fe.Tag())
	}
}
