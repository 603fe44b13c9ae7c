// Package chat implements the conversation engine: bounded context
// windows, running-summary compaction, and orchestration of the model
// round trip against the document store.
package chat

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound means the referenced conversation does not exist at the
	// time of the operation, including deletion mid-flight.
	ErrNotFound = errors.New("conversation not found")

	// ErrNoAPIKey means no API key is configured. SendMessage checks this
	// only after the user message is durably saved, so hitting it never
	// loses user input.
	ErrNoAPIKey = errors.New("no API key configured: add your key in settings")
)

// ErrorKind classifies model-client failures for caller-side message
// selection ("check your key" vs "try again later").
type ErrorKind string

const (
	KindAuthentication    ErrorKind = "authentication"
	KindRateLimited       ErrorKind = "rate_limited"
	KindBadRequest        ErrorKind = "bad_request"
	KindServerUnavailable ErrorKind = "server_unavailable"
	KindUnknown           ErrorKind = "unknown"
)

// ModelError wraps a model-client failure, preserving its classification.
// The core never retries these; retry policy belongs to the caller.
type ModelError struct {
	Kind       ErrorKind
	StatusCode int // HTTP status if known, 0 otherwise
	Message    string
	Err        error
}

func (e *ModelError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("model error (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("model error (%s)", e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// UserMessage returns remediation text suitable for direct display.
func (e *ModelError) UserMessage() string {
	switch e.Kind {
	case KindAuthentication:
		return "Invalid API key. Please check your key in Settings."
	case KindRateLimited:
		return "Rate limited. Please wait a moment and try again."
	case KindBadRequest:
		if e.Message != "" {
			return e.Message
		}
		return "Bad request. Please try a shorter message."
	case KindServerUnavailable:
		return "The model API is temporarily unavailable. Please try again later."
	default:
		if e.Message != "" {
			return fmt.Sprintf("API error: %s", e.Message)
		}
		return "Something went wrong talking to the model. Please try again."
	}
}

// ClassifyStatus maps an HTTP status code onto an ErrorKind.
func ClassifyStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthentication
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusNotFound:
		return KindBadRequest
	}
	if status >= 500 {
		return KindServerUnavailable
	}
	return KindUnknown
}
