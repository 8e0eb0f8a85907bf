package extraction

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable is the failure reason when the process started
// without a usable model handle.
var ErrModelUnavailable = errors.New("model handle is not initialized")

// InputError means the project details were missing, empty, or not a string.
// No API call is made for such input.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// APICallError represents an error from the Gemini API (network, quota,
// blocked prompt, empty candidate).
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError means the model reply was not valid JSON.
type ParseError struct {
	Response string
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: model reply is not valid JSON: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SchemaError means the reply was JSON but not {"skills": [string, ...]}.
type SchemaError struct {
	Response string
	Cause    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %v", e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
