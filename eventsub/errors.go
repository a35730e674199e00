package eventsub

import (
	"errors"
	"fmt"
)

// ErrBodyTooLarge is returned when a webhook body exceeds MaxBodySize.
var ErrBodyTooLarge = errors.New("eventsub: webhook body too large")

// UnrecognizedEventError is returned by Registry.Lookup for a (type,
// version) pair the registry does not know. Parsing never fails with it; it
// produces an UnrecognizedEvent instead.
type UnrecognizedEventError struct {
	Key Key
}

// Error implements the error interface.
func (e *UnrecognizedEventError) Error() string {
	return fmt.Sprintf("eventsub: unrecognized event %s", e.Key)
}

// SignatureVerificationError means a webhook request failed authentication.
// The body must be rejected without being decoded.
type SignatureVerificationError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *SignatureVerificationError) Error() string {
	msg := "eventsub: signature verification failed: " + e.Reason
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

// Unwrap implements errors.Unwrap.
func (e *SignatureVerificationError) Unwrap() error {
	return e.Err
}

// DeserializeError means a message body did not have the expected shape.
// Body holds the raw text for diagnosis.
type DeserializeError struct {
	Key  Key
	Body string
	Err  error
}

// Error implements the error interface.
func (e *DeserializeError) Error() string {
	if e.Key.Type != "" {
		return fmt.Sprintf("eventsub: decode %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("eventsub: decode message: %v", e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *DeserializeError) Unwrap() error {
	return e.Err
}
