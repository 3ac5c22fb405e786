package gopaginate

import (
	"errors"
	"net/http"
	"strings"
)

// ErrMisconfigured is matched by every *ConfigError. It reports a defect in
// the calling service's Config, not in the client request.
var ErrMisconfigured = errors.New("pagination is misconfigured")

// ConfigError describes an invalid Config.
type ConfigError struct {
	// Field is the offending Config field, if known.
	Field   string
	Message string
	Err     error
}

func newConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMisconfigured) hold for every *ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMisconfigured
}

// StatusCode returns the HTTP status a misconfiguration maps to.
func (e *ConfigError) StatusCode() int {
	return http.StatusServiceUnavailable
}

// StatusCode maps a paginator error to an HTTP status: 503 for
// misconfiguration, 500 for anything else.
func StatusCode(err error) int {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}

	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show to a client for err.
func PublicMessage(err error) string {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Message
	}

	return strings.ToLower(http.StatusText(http.StatusInternalServerError))
}
