package mutation

import (
	"errors"
	"fmt"

	"reviewdesk/internal/client"
	"reviewdesk/internal/types"
)

// GenericFailureMessage is shown for failures the operator cannot act on.
const GenericFailureMessage = "Something went wrong. Please try again."

var (
	// ErrBusy is returned by Begin while the same trigger has a request in
	// flight. It is never notified.
	ErrBusy = errors.New("action already in progress")
	// ErrNotListed is returned when the targeted item is no longer rendered.
	ErrNotListed = errors.New("item is no longer listed")
)

// ValidationError is a local rejection; the network is never contacted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// RequestFailure means the service answered and said no, either with
// success=false or a non-2xx status.
type RequestFailure struct {
	Resource   string
	Action     types.Action
	StatusCode int
	Message    string
}

func (e *RequestFailure) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s failed (%d): %s", e.Resource, e.Action, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Resource, e.Action, e.Message)
}

// TransportError wraps a network or decoding failure.
type TransportError struct {
	Resource string
	Action   types.Action
	Err      error
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Resource, e.Action, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// classify turns a transport-level error into RequestFailure or
// TransportError. fallback is used when the service sent no message.
func classify(resource string, action types.Action, fallback string, err error) error {
	if err == nil {
		return nil
	}
	var failure *RequestFailure
	if errors.As(err, &failure) {
		return failure
	}
	if apiErr := client.AsAPIError(err); apiErr != nil {
		message := apiErr.Message
		if message == "" {
			message = fallback
		}
		return &RequestFailure{Resource: resource, Action: action, StatusCode: apiErr.StatusCode, Message: message}
	}
	return &TransportError{Resource: resource, Action: action, Err: err}
}

// UserMessage is the text surfaced to the operator for err.
func UserMessage(err error) string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	var failure *RequestFailure
	if errors.As(err, &failure) {
		return failure.Message
	}
	return GenericFailureMessage
}
