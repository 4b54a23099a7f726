package services

import (
	"errors"
	"fmt"
)

// FailureKind classifies why an AI call produced no result.
type FailureKind string

const (
	// FailureTransport covers network errors, service errors, timeouts and
	// panics raised inside the client library.
	FailureTransport FailureKind = "transport"
	// FailureMalformed means the reply was not a JSON object at all.
	FailureMalformed FailureKind = "malformed_response"
	// FailureSchema means the reply parsed but broke the declared schema.
	FailureSchema FailureKind = "schema_violation"
)

// AdapterFailure is the only error type returned by AIAdapter operations.
type AdapterFailure struct {
	Op   string
	Kind FailureKind
	Err  error
}

func (f *AdapterFailure) Error() string {
	return fmt.Sprintf("%s: %s: %v", f.Op, f.Kind, f.Err)
}

func (f *AdapterFailure) Unwrap() error {
	return f.Err
}

// Retryable reports whether the client should offer an immediate retry.
// A generative backend may answer correctly on the next attempt.
func (f *AdapterFailure) Retryable() bool {
	return f.Kind != FailureTransport
}

// UserMessage is the text shown to the user for this failure.
func (f *AdapterFailure) UserMessage() string {
	if f.Kind == FailureTransport {
		return "The AI service could not be reached. Check your connection and try again."
	}
	return "Couldn't understand the AI response. Please try again."
}

// FailureKindOf returns the kind of an AdapterFailure anywhere in err's chain.
func FailureKindOf(err error) (FailureKind, bool) {
	var failure *AdapterFailure
	if errors.As(err, &failure) {
		return failure.Kind, true
	}
	return "", false
}

var (
	ErrInvalidStage          = errors.New("invalid stage")
	ErrMissingJobDescription = errors.New("application has no job description")
	ErrEmptyResume           = errors.New("resume has no content")
	ErrIndexDisabled         = errors.New("resume index is not configured")
	ErrPanelBusy             = errors.New("an analysis is already running for this panel")
	ErrRunnerStopped         = errors.New("analysis runner is not running")
	ErrAnalysisNotFound      = errors.New("analysis not found")

	// ErrEmptyCompletion means the service answered without any text, e.g.
	// a candidate stopped for SAFETY or RECITATION.
	ErrEmptyCompletion = errors.New("model returned no text")
)
