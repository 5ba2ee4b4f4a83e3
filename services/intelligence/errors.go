package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ConfigurationError means the gateway cannot talk to the model at all.
// It is raised before any network call and is not retryable.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "model gateway misconfigured: " + e.Reason
}

// TransientError wraps any failure of a single remote turn: transport errors,
// timeouts, malformed responses and unknown action names. The handle it
// belonged to has already been discarded when this is returned.
type TransientError struct {
	Op  string
	Err error
	// ModelUnavailable is set when the API reported the model itself as missing.
	ModelUnavailable bool
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

var (
	ErrMissingAPIKey   = &ConfigurationError{Reason: "GEMINI_API_KEY is not set"}
	errEmptyResponse   = errors.New("response has no candidates")
	errEmptyCandidate  = errors.New("candidate has no content")
	errUnknownFunction = errors.New("unknown function call")
)

func newTransientError(op string, err error) *TransientError {
	return &TransientError{Op: op, Err: err, ModelUnavailable: isModelNotFound(err)}
}

func isModelNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "404") || strings.Contains(msg, "not found")
}
