package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyID is returned when a lookup is attempted without an identifier.
var ErrEmptyID = errors.New("game id is empty")

// ErrEmptyTitle is returned when a title lookup is attempted without a title.
var ErrEmptyTitle = errors.New("game title is empty")

// APIError is an application-level failure: the server answered with a
// non-success status. Message is the server-supplied text, verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d %s", e.Status, http.StatusText(e.Status))
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// UserMessage returns the text shown to the user for err. Application errors
// surface the server message unchanged; transport errors their error string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}
