package employeeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"github.com/brunotome93/white-flywire-exercise/internal/domain"
)

// APIError is a non-success answer of the employee service.
type APIError struct {
	StatusCode int
	// Message is the "message" field of a JSON error body, if any.
	Message string
	// Body is the raw response body, trimmed.
	Body string
}

func newAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	e := &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(raw)),
	}
	var structured struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &structured) == nil {
		e.Message = strings.TrimSpace(structured.Message)
	}
	var quoted string
	if json.Unmarshal(raw, &quoted) == nil {
		e.Body = strings.TrimSpace(quoted)
	}
	return e
}

// Text is the most specific human-readable description available.
func (e *APIError) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Body
}

func (e *APIError) Error() string {
	if t := e.Text(); t != "" {
		return fmt.Sprintf("employee service: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), t)
	}
	return fmt.Sprintf("employee service: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap lets errors.Is(err, domain.ErrNotFound) see 404 answers.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

// UserMessage picks the message shown after a failed mutation: the
// structured server message, else the raw server body, else fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if t := apiErr.Text(); t != "" {
			return t
		}
	}
	return fallback
}
