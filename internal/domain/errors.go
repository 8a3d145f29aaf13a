package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Quiz generation errors. All three are terminal for the call that
	// produced them; the client offers a manual retry instead.
	CodeUpstreamFailure      ErrorCode = "UPSTREAM_FAILURE"
	CodeUnparsableResponse   ErrorCode = "UNPARSABLE_RESPONSE"
	CodeInvalidQuestionShape ErrorCode = "INVALID_QUESTION_SHAPE"

	// Course search errors
	CodeCourseSourceFailure ErrorCode = "COURSE_SOURCE_FAILURE"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

// NewUpstreamFailureError wraps a failed call to the generative API. The
// original topic and difficulty travel in the message so the client can
// offer a like-for-like retry.
func NewUpstreamFailureError(topic, difficulty string, err error) *DomainError {
	return NewError(CodeUpstreamFailure,
		fmt.Sprintf("generative API call failed for topic %q (difficulty %s)", topic, difficulty), err)
}

// NewUnparsableResponseError reports model output that contained no usable
// JSON array. The same prompt may succeed on retry.
func NewUnparsableResponseError(topic, difficulty string, err error) *DomainError {
	return NewError(CodeUnparsableResponse,
		fmt.Sprintf("could not parse questions for topic %q (difficulty %s), please try again", topic, difficulty), err)
}

// NewInvalidQuestionShapeError rejects a whole generated batch because the
// element at index failed structural validation.
func NewInvalidQuestionShapeError(index int, reason string) *DomainError {
	return NewError(CodeInvalidQuestionShape,
		fmt.Sprintf("generated question at index %d is malformed: %s", index, reason), nil)
}

func NewCourseSourceError(err error) *DomainError {
	return NewError(CodeCourseSourceFailure, "failed to fetch courses from provider", err)
}
