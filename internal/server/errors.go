package server

import (
	"fmt"
	"net/http"

	"github.com/visiocraft/visiocraft-ai/internal/types"
)

// Public error messages. Callers match on these strings, so they are fixed.
const (
	MsgMissingProjectDetails = "Missing 'project_details' in request body"
	MsgServiceUnavailable    = "Le service AI n'est pas disponible. Vérifiez la configuration de l'API."
	msgInternal              = "Internal server error"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrServiceUnavailable indicates the model handle is not initialized.
type ErrServiceUnavailable struct{}

func (e *ErrServiceUnavailable) Error() string {
	return "AI service is not available: model handle is not initialized"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody maps err to the body clients see. Internal detail stays in the logs.
func errorBody(err error) types.ErrorResponse {
	switch err.(type) {
	case *ErrValidation:
		return types.ErrorResponse{Error: MsgMissingProjectDetails}
	case *ErrServiceUnavailable:
		return types.ErrorResponse{Error: MsgServiceUnavailable}
	default:
		return types.ErrorResponse{Error: msgInternal}
	}
}
