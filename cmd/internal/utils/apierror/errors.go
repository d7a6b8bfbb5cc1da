package apierror

import (
	"fmt"
	"net/http"

	"devjournal/cmd/internal/contract"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is anything rendered as an API error body with its own
// HTTP status.
type ErrorResponse interface {
	Code() int
}

// Write sends apierr as the JSON response of c.
func Write(c echo.Context, apierr ErrorResponse) error {
	return c.JSON(apierr.Code(), apierr)
}

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeDatabase         = "DATABASE_ERROR"
	CodeMalformedBody    = "MALFORMED_BODY"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeBadRequest       = "BAD_REQUEST"
	CodeInternal         = "INTERNAL_ERROR"
)

type APIError struct {
	contract.ErrorEnvelope
	Status int `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

var (
	MalformedBodyError  = NewSimple(http.StatusBadRequest, CodeMalformedBody, "Malformed JSON body")
	InternalServerError = NewSimple(http.StatusInternalServerError, CodeInternal, "Internal server error")

	EntryNotFoundError = NewSimple(http.StatusNotFound, CodeNotFound, "Entry not found")
)

func NewSimple(status int, code, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	return &APIError{
		Status: status,
		ErrorEnvelope: contract.ErrorEnvelope{
			Error: contract.ErrorBody{Message: msg, Code: code},
		},
	}
}

func NewValidation(details []contract.FieldError) *APIError {
	apierr := NewSimple(http.StatusBadRequest, CodeValidation, "Validation failed")
	apierr.Error.Details = details
	return apierr
}

// NewDatabase builds the generic store failure for one route, e.g.
// NewDatabase("update entry") renders "Failed to update entry".
func NewDatabase(action string) *APIError {
	return NewSimple(http.StatusInternalServerError, CodeDatabase, "Failed to %s", action)
}

// FromStatus renders framework level failures (unknown route, wrong
// method, oversized body) in the same envelope as domain errors.
func FromStatus(status int) *APIError {
	switch status {
	case http.StatusNotFound:
		return NewSimple(status, CodeNotFound, "Not found")
	case http.StatusMethodNotAllowed:
		return NewSimple(status, CodeMethodNotAllowed, "Method not allowed")
	case http.StatusRequestEntityTooLarge:
		return NewSimple(status, CodePayloadTooLarge, "Request body too large")
	}

	if status >= http.StatusInternalServerError {
		return NewSimple(status, CodeInternal, "Internal server error")
	}
	return NewSimple(status, CodeBadRequest, http.StatusText(status))
}
