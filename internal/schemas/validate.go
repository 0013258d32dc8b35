// Package schemas holds the request payloads accepted by the API and the
// rules each of them must satisfy before a handler touches the database.
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload, path or query parameter is malformed.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Invalid builds a single-field ValidationError.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// Payload is implemented by every request body.
type Payload interface {
	Validate() error
}

// Decode reads a JSON body into dst and validates it.
func Decode(r io.Reader, dst Payload) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return decodeError(err)
	}
	return dst.Validate()
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return Invalid("body", "request body is required")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return Invalid(field, fmt.Sprintf("must be of type %s", jsonKind(typeErr.Type)))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return Invalid("body", "invalid JSON body")
	case errors.As(err, &maxBytesErr):
		return Invalid("body", "request body too large")
	default:
		return Invalid("body", err.Error())
	}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Bool:
		return "boolean"
	default:
		return t.Kind().String()
	}
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{Field: fe.Field(), Message: ruleMessage(fe.Tag(), fe.Param())})
	}
	return out
}

func ruleMessage(tag, param string) string {
	switch tag {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", param)
	case "max":
		return fmt.Sprintf("must be at most %s characters", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	default:
		return fmt.Sprintf("failed on the '%s' rule", tag)
	}
}

// collector accumulates field errors for payloads validated by hand.
type collector struct {
	errs []FieldError
}

func (c *collector) add(field, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: message})
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: c.errs}
}

// text checks a PATCH string field against the given validator rules.
func (c *collector) text(field string, o Optional[string], nullable bool, rules string) {
	if !o.Set {
		return
	}
	if o.Null {
		if !nullable {
			c.add(field, "may not be null")
		}
		return
	}
	if err := validate.Var(o.Value, rules); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			c.add(field, ruleMessage(verrs[0].Tag(), verrs[0].Param()))
			return
		}
		c.add(field, err.Error())
	}
}
