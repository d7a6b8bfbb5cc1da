package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"devjournal/cmd/internal/client"
	"devjournal/cmd/internal/contract"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the API refused or failed the request
	ExitCommandError = 2 // bad flags, unreadable input, unreachable config
)

// ExitError carries the process exit code. Its message has already been
// shown to the user when a command returns it.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Returns ExitCommandError if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Color     bool
}

// CLIResponse is the JSON document printed by every command in json mode.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Details []contract.FieldError `json:"details,omitempty"`
}

func (f *OutputFormatter) JSON() bool {
	return f.Format == "json"
}

// Success prints data as JSON, or calls text for human readable output.
func (f *OutputFormatter) Success(data any, text func(w io.Writer)) error {
	if f.JSON() {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}

	text(f.Writer)
	return nil
}

// Failure reports err and returns the ExitError the command should return.
// fallback is shown when the server gave no user facing message.
func (f *OutputFormatter) Failure(err error, fallback string) error {
	cliErr := describe(err, fallback)
	f.Report(cliErr, err)
	return &ExitError{Code: exitCodeFor(err), Message: cliErr.Message, Err: err}
}

// Report prints one failure without deciding how the command ends.
func (f *OutputFormatter) Report(cliErr *CLIError, cause error) {
	if f.JSON() {
		_ = json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "error", Error: cliErr})
		return
	}

	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}

	fmt.Fprintf(w, "%s %s\n", paint(f.Color, ansiRed, "Error:"), cliErr.Message)
	for _, d := range cliErr.Details {
		fmt.Fprintf(w, "  %s: %s\n", d.Field, d.Message)
	}

	if cause != nil && len(cliErr.Details) == 0 && cause.Error() != cliErr.Message {
		fmt.Fprintf(w, "  %s\n", paint(f.Color, ansiDim, cause.Error()))
	}
}

// Notice prints an informational line to the error stream in text mode.
func (f *OutputFormatter) Notice(format string, args ...any) {
	if f.JSON() {
		return
	}

	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// describe turns a client error into what the user sees. Validation and
// not-found answers keep the server's wording; anything else shows fallback.
func describe(err error, fallback string) *CLIError {
	var apierr *client.APIError
	if !errors.As(err, &apierr) {
		return &CLIError{Code: "REQUEST_FAILED", Message: fallback}
	}

	switch apierr.Code {
	case "VALIDATION_ERROR", "MALFORMED_BODY", "NOT_FOUND":
		return &CLIError{Code: apierr.Code, Message: apierr.Message, Details: apierr.Details}
	}

	code := apierr.Code
	if code == "" {
		code = "HTTP_" + strconv.Itoa(apierr.Status)
	}
	return &CLIError{Code: code, Message: fallback}
}

func exitCodeFor(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
