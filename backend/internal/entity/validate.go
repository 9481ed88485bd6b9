package entity

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
)

// ValidationError is a client-caused failure. Its message names the offending
// field and is safe to return to the caller as-is.
type ValidationError struct {
	Field string
	Value any
	msg   string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, msg: "Missing required field: " + field}
}

func illegalValue(c Constraint, value any) *ValidationError {
	return &ValidationError{Field: c.Field, Value: value, msg: constraintMessage(c)}
}

// MissingPathParam is returned when a request lacks the path component of a key.
func MissingPathParam(field string) *ValidationError {
	return &ValidationError{Field: field, msg: "Missing required path parameter: " + field}
}

// MissingQueryParam is returned when a composite-key request lacks its sort component.
func MissingQueryParam(field string) *ValidationError {
	return &ValidationError{Field: field, msg: "Missing required query parameter: " + field}
}

// constraintMessage renders "Status must be either PENDING or COMPLETED" for two
// values and "Status must be one of A, B, C" for more.
func constraintMessage(c Constraint) string {
	subject := strcase.ToCamel(c.Field)
	switch len(c.Values) {
	case 1:
		return fmt.Sprintf("%s must be %s", subject, c.Values[0])
	case 2:
		return fmt.Sprintf("%s must be either %s or %s", subject, c.Values[0], c.Values[1])
	default:
		return fmt.Sprintf("%s must be one of %s", subject, strings.Join(c.Values, ", "))
	}
}

// Validate checks raw against s and returns the record to be written, using the
// current time for timestamp defaults.
func Validate(s *Schema, raw Record) (Record, error) {
	return ValidateAt(s, raw, time.Now())
}

// ValidateAt is Validate with an explicit write time.
//
// Required fields are checked first in declaration order, then enumerated
// constraints. The output holds exactly the declared fields; unknown input
// fields are dropped. raw is never modified.
func ValidateAt(s *Schema, raw Record, now time.Time) (Record, error) {
	for _, field := range s.Required {
		if IsBlank(raw[field]) {
			return nil, missingField(field)
		}
	}

	for _, c := range s.Constraints {
		v := raw[c.Field]
		if IsBlank(v) {
			continue
		}
		str, ok := v.(string)
		if !ok || !slices.Contains(c.Values, str) {
			return nil, illegalValue(c, v)
		}
	}

	out := make(Record, len(s.Required)+len(s.Optional))
	for _, field := range s.Required {
		out[field] = raw[field]
	}
	for _, opt := range s.Optional {
		if v := raw[opt.Field]; !IsBlank(v) {
			out[opt.Field] = v
			continue
		}
		out[opt.Field] = opt.Default(now)
	}
	return out, nil
}

// IsBlank reports whether v counts as absent: nil, "", false or numeric zero.
func IsBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	default:
		return false
	}
}

// Merge returns a copy of base with every entry of over applied on top.
func Merge(base Record, over map[string]string) Record {
	out := make(Record, len(base)+len(over))
	maps.Copy(out, base)
	for k, v := range over {
		out[k] = v
	}
	return out
}
