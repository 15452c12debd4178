// Package apierrors defines the AppError taxonomy used across
// bravesearchd: a small closed set of error kinds, each with a stable
// code string, rendered into a ToolErrorEnvelope for the MCP client.
package apierrors

import (
	"fmt"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

// Kind is the closed set of error categories a tool call can fail with.
type Kind int

const (
	KindInvalidArgument Kind = iota
	KindMissingAPIKey
	KindCancelled
	KindUpstream
	KindParse
	KindInternal
)

// AppError is the error type every pipeline operation returns on failure.
type AppError struct {
	kind    Kind
	message string
	details any
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code(), e.message)
}

// Code returns the stable, client-facing error code for this error.
func (e *AppError) Code() string {
	switch e.kind {
	case KindInvalidArgument:
		return bravetypes.ErrorInvalidArgument
	case KindMissingAPIKey:
		return bravetypes.ErrorMissingAPIKey
	case KindCancelled:
		return bravetypes.ErrorCancelled
	case KindUpstream:
		return bravetypes.ErrorUpstream
	case KindParse:
		return bravetypes.ErrorParse
	default:
		return bravetypes.ErrorInternal
	}
}

// Kind returns the error's category.
func (e *AppError) Kind() Kind { return e.kind }

// Details returns the structured detail payload attached to invalid-argument
// errors, or nil for every other kind.
func (e *AppError) Details() any {
	if e.kind == KindInvalidArgument {
		return e.details
	}
	return nil
}

// Message returns the human-readable message for this error.
func (e *AppError) Message() string {
	if e.kind == KindMissingAPIKey {
		return "Missing BRAVE_SEARCH_API_KEY/BRAVE_API_KEY. Configure env vars for MCP launch."
	}
	if e.kind == KindCancelled {
		return "Search cancelled."
	}
	return e.message
}

// ToEnvelope renders the error into the stable JSON shape sent back over
// the MCP transport on tool failure.
func (e *AppError) ToEnvelope(serverVersion, traceID string) bravetypes.ToolErrorEnvelope {
	return bravetypes.ToolErrorEnvelope{
		APIVersion: bravetypes.APIVersion,
		Error: bravetypes.ToolErrorInfo{
			Code:    e.Code(),
			Message: e.Message(),
			Details: e.Details(),
		},
		Meta: bravetypes.ErrorMeta{
			Provider:      bravetypes.ProviderName,
			ServerVersion: serverVersion,
			TraceID:       traceID,
		},
	}
}

// InvalidArgument builds a plain invalid-argument error.
func InvalidArgument(message string) *AppError {
	return &AppError{kind: KindInvalidArgument, message: message}
}

// InvalidArgumentWithDetails attaches a structured detail payload (typically
// {"field": ..., "value": ...}) to an invalid-argument error.
func InvalidArgumentWithDetails(message string, details any) *AppError {
	return &AppError{kind: KindInvalidArgument, message: message, details: details}
}

// MissingAPIKey indicates neither BRAVE_SEARCH_API_KEY nor BRAVE_API_KEY was set.
func MissingAPIKey() *AppError {
	return &AppError{kind: KindMissingAPIKey}
}

// Cancelled indicates the call's context was cancelled mid-flight.
func Cancelled() *AppError {
	return &AppError{kind: KindCancelled}
}

// Upstream wraps a Brave API/network failure.
func Upstream(message string) *AppError {
	return &AppError{kind: KindUpstream, message: message}
}

// Parse wraps an unexpected provider payload shape.
func Parse(message string) *AppError {
	return &AppError{kind: KindParse, message: message}
}

// Internal wraps an unexpected server failure.
func Internal(message string) *AppError {
	return &AppError{kind: KindInternal, message: message}
}

// IsCancelled reports whether err is a Cancelled AppError.
func IsCancelled(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.kind == KindCancelled
}
