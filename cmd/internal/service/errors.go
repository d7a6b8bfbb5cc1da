package service

import (
	"errors"
	"strings"

	"devjournal/cmd/internal/contract"
)

// ErrNotFound is returned when no entry carries the requested id.
var ErrNotFound = errors.New("entry not found")

// Store operations, as reported by StoreError.Op.
const (
	OpList   = "retrieve entries"
	OpGet    = "retrieve entry"
	OpCreate = "create entry"
	OpUpdate = "update entry"
	OpDelete = "delete entry"
)

// ValidationError carries one detail per offending field, title first.
type ValidationError struct {
	Details []contract.FieldError
}

func (v *ValidationError) Error() string {
	msgs := make([]string, len(v.Details))
	for i, d := range v.Details {
		msgs[i] = d.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// StoreError wraps a failure of the underlying store. It is never retried.
type StoreError struct {
	Op  string
	Err error
}

func (s *StoreError) Error() string {
	return "failed to " + s.Op + ": " + s.Err.Error()
}

func (s *StoreError) Unwrap() error {
	return s.Err
}
