package gemini

import (
	"errors"
	"fmt"
)

// ConfigurationError means the client cannot make a call at all: the key is
// missing or still the placeholder, or no endpoint is configured.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "gemini configuration: " + e.Reason
}

// UpstreamError covers transport failures, timeouts and non-2xx responses.
// StatusCode is 0 when no response was received.
type UpstreamError struct {
	StatusCode int
	Body       string
	Cause      error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("gemini http %d", e.StatusCode)
	case e.Cause != nil:
		return "gemini request failed: " + e.Cause.Error()
	default:
		return "gemini request failed"
	}
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

func (e *UpstreamError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

func IsUpstreamError(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr)
}
