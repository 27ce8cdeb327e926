package brewxml

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one constraint a value object violated.
type FieldError struct {
	Field string // wire-independent field name (json tag)
	Rule  string
	Param string
	Value any
}

// ValidationError is returned when a Recipe or addition breaks a rule
// registered through Options.Constraints. The decoder recovers from it by
// skipping the offending element; the encoder wraps it in an EncodeError.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Param != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s (got %v)", f.Field, f.Rule, f.Param, f.Value))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s (got %v)", f.Field, f.Rule, f.Value))
		}
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// newValidator builds a validator that reports fields by their json name.
// *validator.Validate is safe for concurrent use once configured.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func checkStruct(v *validator.Validate, entity string, value any) error {
	err := v.Struct(value)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Entity: entity, Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		})
	}
	return out
}
