package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit statuses.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // input rejected by the analysis or a scenario failed
	ExitCommandError = 2 // unreadable paths, bad flags, store errors
)

// ExitError carries the process exit status out of a command. A command that
// returns one has already reported the failure to the user.
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

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the status carried by err, or ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter renders panels, run records and failures either as text or
// as a JSON envelope. Verbose progress lines go to ErrWriter so that stdout
// stays parseable in json mode.
type OutputFormatter struct {
	Format    string // "text" or "json"
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// Envelope wraps every json-mode reply.
type Envelope struct {
	Status string         `json:"status"` // "ok" or "error"
	Data   any            `json:"data,omitempty"`
	Error  *EnvelopeError `json:"error,omitempty"`
}

// EnvelopeError is the failure half of an Envelope. Details holds the
// offending field and the analysis error context when they are known.
type EnvelopeError struct {
	Code    string `json:"code"` // E0xx command codes, E1xx analysis codes
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Envelope{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Envelope{
			Status: "error",
			Error:  &EnvelopeError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog prints a progress line when --verbose is set.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Fail reports err in the configured format and returns it as an ExitError
// with exitCode. The code comes from err when it carries one, otherwise
// fallback is used.
func (f *OutputFormatter) Fail(exitCode int, fallback string, err error) error {
	var details any
	if d := errorDetails(err); d != nil {
		details = d
	}
	if outErr := f.Error(errorCode(err, fallback), errorMessage(err), details); outErr != nil {
		return outErr
	}
	return WrapExitError(exitCode, errorMessage(err), err)
}

// ReportUnhandled writes err to w unless a command already reported it.
// Commands report their own failures through Fail and return an ExitError;
// anything else (flag parsing, argument counts) is printed here.
func ReportUnhandled(w io.Writer, err error) {
	var exitErr *ExitError
	if err == nil || errors.As(err, &exitErr) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
