package service

import (
	"errors"
	"fmt"
	"strings"

	"devjournal/cmd/internal/contract"
	"github.com/go-playground/validator/v10"
)

var entryMessages = map[string]string{
	"Title.required":   "Title is required",
	"Title.max":        fmt.Sprintf("Title must be %d characters or less", contract.MaxTitleLength),
	"Content.required": "Content is required",
	"Content.max":      "Content must be 50,000 characters or less",
}

// NewValidator returns the validator shared by every service.
func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validateEntry runs the struct tags of req and collects every failure.
// The validator stops at the first failing tag of a field, so each field
// reports at most one detail.
func (s *EntryService) validateEntry(req *contract.EntryRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	details := make([]contract.FieldError, 0, len(ve))
	for _, fe := range ve {
		msg, ok := entryMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value provided"
		}

		details = append(details, contract.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: msg,
		})
	}
	return &ValidationError{Details: details}
}
