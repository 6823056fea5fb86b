package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMonthSelected rejects a fetch before any network call is
	// made. Callers distinguish it from transport failures to show an
	// inline warning instead of a generic error banner.
	ErrNoMonthSelected = errors.New("no month selected")

	ErrInvalidPlotID = errors.New("invalid plot id")
	ErrInvalidValue  = errors.New("invalid value")
)

// APIError carries a structured message returned by the O3as API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %v): %v", e.StatusCode, e.Message)
}

// ErrorMessage extracts the message to surface to users: the API's
// structured message when present, the plain error text otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
