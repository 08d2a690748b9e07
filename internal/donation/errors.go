package donation

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError locates one failed constraint. Loc follows the request layout,
// e.g. ["body", "email"] or ["query", "limit"].
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError is returned when an inbound payload breaks a constraint.
type ValidationError struct {
	Fields []FieldError
	err    error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, strings.Join(f.Loc, ".")+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return e.err }

// Validate checks d against its binding tags.
func Validate(d *Donation) error {
	if err := binding.Validator.ValidateStruct(d); err != nil {
		return NewValidationError("body", err)
	}
	return nil
}

// NewValidationError converts a bind or validation failure into a
// ValidationError with per-field details under the given location.
func NewValidationError(loc string, err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	out := &ValidationError{err: err}

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{
				Loc:  []string{loc, strings.ToLower(fe.Field())},
				Msg:  fieldMessage(fe),
				Type: "value_error." + fe.Tag(),
			})
		}
	case errors.As(err, &typeErr):
		out.Fields = append(out.Fields, FieldError{
			Loc:  []string{loc, typeErr.Field},
			Msg:  "expected " + typeErr.Type.String() + ", got " + typeErr.Value,
			Type: "type_error",
		})
	case errors.Is(err, io.EOF):
		out.Fields = append(out.Fields, FieldError{Loc: []string{loc}, Msg: "field required", Type: "value_error.missing"})
	default:
		out.Fields = append(out.Fields, FieldError{Loc: []string{loc}, Msg: err.Error(), Type: "value_error"})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "gt":
		return "ensure this value is greater than " + fe.Param()
	case "min":
		return "ensure this value is greater than or equal to " + fe.Param()
	default:
		return "failed on the '" + fe.Tag() + "' constraint"
	}
}
