// Package forms turns posted browser input into domain values.
package forms

import (
	"net/url"

	"github.com/go-faster/errors"
	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
)

var (
	decoder  = form.NewDecoder()
	validate = validator.New()
)

// ValidationError is a user-facing message about rejected input. Only one
// is reported at a time.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// Message returns the text of a *ValidationError inside err, or "".
func Message(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	return ""
}

// Status is the lifecycle of the add-employee form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
)

func decode(dst any, values url.Values) error {
	if err := decoder.Decode(dst, values); err != nil {
		return errors.Wrap(err, "decode form")
	}
	return nil
}
