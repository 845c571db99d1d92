package importer

import (
	"errors"
	"fmt"

	"classdraw/diagram"
)

// ErrorCode is a stable identifier for a deserialization failure.
type ErrorCode string

const (
	// UnknownTag means no decoder is registered for the record's tag.
	UnknownTag ErrorCode = "UNKNOWN_TAG"
	// MissingTag means the record has no tag at all.
	MissingTag ErrorCode = "MISSING_TAG"
	// UnresolvedReference means a record points at a shape that was never
	// decoded, even after the retry pass.
	UnresolvedReference ErrorCode = "UNRESOLVED_REFERENCE"
	// MalformedRecord means the record's fields could not be decoded.
	MalformedRecord ErrorCode = "MALFORMED_RECORD"
	// UnsupportedVersion means the save file was written by a newer format.
	UnsupportedVersion ErrorCode = "UNSUPPORTED_VERSION"
)

// DeserializationError describes why one record could not be decoded.
type DeserializationError struct {
	Code  ErrorCode `json:"code"`
	Tag   string    `json:"tag,omitempty"`
	Index int       `json:"index"`
	cause error     // underlying decoder error, not exported to JSON
}

func newError(code ErrorCode, tag string, index int, cause error) *DeserializationError {
	return &DeserializationError{Code: code, Tag: tag, Index: index, cause: cause}
}

// Error implements the error interface.
func (e *DeserializationError) Error() string {
	msg := fmt.Sprintf("[%s] record %d", e.Code, e.Index)
	if e.Tag != "" {
		msg += fmt.Sprintf(" (%s)", e.Tag)
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DeserializationError) Unwrap() error {
	return e.cause
}

// Retryable reports whether a later pass, with more decoded elements, may
// succeed.
func (e *DeserializationError) Retryable() bool {
	return e.Code == UnresolvedReference
}

// classify turns a decoder error into a DeserializationError.
func classify(err error, tag string, index int) *DeserializationError {
	var de *DeserializationError
	if errors.As(err, &de) {
		de.Index = index
		return de
	}
	if errors.Is(err, diagram.ErrUnresolved) {
		return newError(UnresolvedReference, tag, index, err)
	}
	return newError(MalformedRecord, tag, index, err)
}
