// Package apperr defines the error taxonomy shared by the pipeline, the
// report renderer and the HTTP service.
//
// Only InvalidInput and AssemblyFailure ever reach a request boundary.
// ImageUnavailable and EmbedFailure are row-level and are converted into
// placeholder cells before a document is written.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error class.
type Code string

const (
	CodeInvalidInput     Code = "INVALID_INPUT"
	CodeImageUnavailable Code = "IMAGE_UNAVAILABLE"
	CodeEmbedFailure     Code = "EMBED_FAILURE"
	CodeAssemblyFailure  Code = "ASSEMBLY_FAILURE"
	CodeInternal         Code = "INTERNAL"
)

var (
	// ErrImageUnavailable is the root of every fetch, decode, normalize and
	// placement failure for a single swatch.
	ErrImageUnavailable = errors.New("image unavailable")

	// ErrEmbedFailure is returned by a document sink that rejects an image buffer.
	ErrEmbedFailure = errors.New("embed failure")
)

// Error is a structured request-level error.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidInput reports a request that cannot produce a document.
func InvalidInput(msg string) *Error {
	return &Error{Code: CodeInvalidInput, Message: msg}
}

// AssemblyFailure reports a failure while building or serializing the document.
func AssemblyFailure(msg string, err error) *Error {
	return &Error{Code: CodeAssemblyFailure, Message: msg, Err: err}
}

// CodeOf classifies err. Unknown errors map to CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	switch {
	case err == nil:
		return ""
	case errors.As(err, &e):
		return e.Code
	case errors.Is(err, ErrEmbedFailure):
		return CodeEmbedFailure
	case errors.Is(err, ErrImageUnavailable):
		return CodeImageUnavailable
	default:
		return CodeInternal
	}
}

// Message returns the user-facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
