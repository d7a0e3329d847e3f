package ocpay

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds for gateway failures. APIError unwraps to one of these, so
// callers dispatch with errors.Is:
//
//	if errors.Is(err, ocpay.ErrLinkExpired) { ... }
//
// Retry guidance: ErrValidationFailed and ErrLinkExpired are terminal and
// never worth retrying; whether anything else is retried is the caller's
// decision, the SDK never retries on its own.
var (
	ErrValidationFailed = errors.New("ocpay: request rejected by gateway validation")
	ErrUnauthorized     = errors.New("ocpay: access token rejected")
	ErrNotFound         = errors.New("ocpay: payment link not found")
	ErrLinkExpired      = errors.New("ocpay: payment link expired")
)

// ValidationError is a local, pre-network constraint violation. It names the
// offending field and value so corrected input can be re-validated field by
// field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ocpay: invalid %s: %s (got %v)", e.Field, e.Message, e.Value)
}

// APIError is any failure originating from the gateway or the transport.
// StatusCode is 0 when no HTTP response was received at all. ErrorData holds
// the full decoded error body for caller introspection, when one existed.
type APIError struct {
	Message    string
	RequestID  string
	StatusCode int
	ErrorData  map[string]any

	kind  error
	cause error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("ocpay: api error: %s (status %d)", e.Message, e.StatusCode)
	if e.RequestID != "" {
		msg += fmt.Sprintf(" [requestId %s]", e.RequestID)
	}
	return msg
}

// Unwrap exposes the sentinel kind plus the underlying transport error when
// one exists, so errors.Is reaches both (e.g. ErrLinkExpired, or
// context.DeadlineExceeded on a timed-out call).
func (e *APIError) Unwrap() []error {
	var errs []error
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// newAPIError builds an APIError whose kind follows the gateway's HTTP status.
// Statuses outside the mapped set, including 0 for "no response", stay generic.
func newAPIError(statusCode int, message, requestID string, errorData map[string]any) *APIError {
	return &APIError{
		Message:    message,
		RequestID:  requestID,
		StatusCode: statusCode,
		ErrorData:  errorData,
		kind:       kindForStatus(statusCode),
	}
}

func kindForStatus(statusCode int) error {
	switch statusCode {
	case http.StatusBadRequest:
		return ErrValidationFailed
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusGone:
		return ErrLinkExpired
	}
	return nil
}
