// Package response provides helpers for writing consistent outcome
// messages to the console.
//
// Every shell action ends by telling the user what happened. Rather than
// repeating fmt.Fprintf calls with slightly different wording in every
// action, we centralise the shapes here — the user always knows what a
// success and an error look like.
package response

import (
	"fmt"
	"io"
	"strings"

	"github.com/aanand-mishra/roster/internal/types"
	"github.com/go-playground/validator/v10"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope for an action's outcome.
//
// Rendered by Write as:
//
//	Student added with ID 3.
//	Error: field Age must be a number
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status  string // StatusOK or StatusError
	Message string // human-readable detail
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// OK wraps a success message.
func OK(format string, args ...any) Response {
	return Response{
		Status:  StatusOK,
		Message: fmt.Sprintf(format, args...),
	}
}

// Fail wraps an expected, non-exceptional failure such as "not found".
func Fail(format string, args ...any) Response {
	return Response{
		Status:  StatusError,
		Message: fmt.Sprintf(format, args...),
	}
}

// GeneralError wraps any Go error into a Response.
// Use this for unexpected errors (I/O failures, etc.)
func GeneralError(err error) Response {
	return Response{
		Status:  StatusError,
		Message: err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// The go-playground/validator package returns one FieldError per failing
// struct field. We convert each to a plain English sentence and join them
// with ", " so the user sees one line.
//
// Example output:
//
//	Error: field ID is required, field Age must be a number
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "numeric", "number":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a number", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status:  StatusError,
		Message: strings.Join(errMessages, ", "),
	}
}

// Write prints r as a single line. Errors get an "Error: " prefix.
func Write(w io.Writer, r Response) error {
	if r.Status == StatusError {
		_, err := fmt.Fprintf(w, "Error: %s\n", r.Message)
		return err
	}
	_, err := fmt.Fprintln(w, r.Message)
	return err
}

// WriteStudents prints one student per line, or empty when there are none.
func WriteStudents(w io.Writer, students []types.Student, empty string) error {
	if len(students) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}

	for _, st := range students {
		if _, err := fmt.Fprintln(w, st); err != nil {
			return err
		}
	}

	return nil
}
