package condir

import (
	"errors"
	"fmt"
)

// Error is returned when a filter mapping or condition tree cannot be
// turned into a predicate.
//
// There is no partial result: any Error means the whole translation failed.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Field is the offending field name (leaf errors).
	Field string

	// Tag is the offending operator tag (leaf errors).
	Tag string

	// Depth is the nesting level at which the error was detected.
	Depth int
}

// ErrorCode categorizes translation errors.
type ErrorCode string

const (
	// ErrCodeTooDeep indicates nesting beyond MaxDepth, including a mapping
	// that contains itself.
	ErrCodeTooDeep ErrorCode = "TOO_DEEP_OR_CYCLIC"

	// ErrCodeUnknownOperator indicates a tag that is not in the operator table.
	ErrCodeUnknownOperator ErrorCode = "UNKNOWN_OPERATOR"

	// ErrCodeArityMismatch indicates a value count that does not fit the operator.
	ErrCodeArityMismatch ErrorCode = "ARITY_MISMATCH"

	// ErrCodeEmptyGroup indicates a group with no conditions.
	ErrCodeEmptyGroup ErrorCode = "EMPTY_GROUP"

	// ErrCodeInvalidField indicates an empty field name.
	ErrCodeInvalidField ErrorCode = "INVALID_FIELD"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" && e.Tag != "" {
		return fmt.Sprintf("%s: %s (field=%s, tag=%s)", e.Code, e.Message, e.Field, e.Tag)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewTooDeepError creates an Error for nesting beyond MaxDepth.
func NewTooDeepError(depth int) *Error {
	return &Error{
		Code:    ErrCodeTooDeep,
		Message: fmt.Sprintf("nested too deep or cyclic (depth %d > %d)", depth, MaxDepth),
		Depth:   depth,
	}
}

// NewUnknownOperatorError creates an Error for an unregistered tag.
func NewUnknownOperatorError(key, tag string) *Error {
	return &Error{
		Code:    ErrCodeUnknownOperator,
		Message: fmt.Sprintf("unknown operator tag %q", tag),
		Field:   key,
		Tag:     tag,
	}
}

// NewArityError creates an Error for a value count the operator cannot bind.
func NewArityError(field, tag, want string, got int) *Error {
	return &Error{
		Code:    ErrCodeArityMismatch,
		Message: fmt.Sprintf("operator expects %s value(s), got %d", want, got),
		Field:   field,
		Tag:     tag,
	}
}

// NewEmptyGroupError creates an Error for a group with no children.
func NewEmptyGroupError(connective Connective, depth int) *Error {
	return &Error{
		Code:    ErrCodeEmptyGroup,
		Message: fmt.Sprintf("%s group has no conditions", connective),
		Depth:   depth,
	}
}

// NewInvalidFieldError creates an Error for a key with no field name.
func NewInvalidFieldError(key string) *Error {
	return &Error{
		Code:    ErrCodeInvalidField,
		Message: fmt.Sprintf("key %q has an empty field name", key),
	}
}

// CodeOf returns the ErrorCode carried by err, if any.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) (ErrorCode, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code, true
	}
	return "", false
}

// IsTooDeep returns true if err is a depth/cycle error.
func IsTooDeep(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrCodeTooDeep
}

// IsUnknownOperator returns true if err is an unknown-tag error.
func IsUnknownOperator(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrCodeUnknownOperator
}

// IsArityMismatch returns true if err is an arity error.
func IsArityMismatch(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrCodeArityMismatch
}

// IsEmptyGroup returns true if err is an empty-group error.
func IsEmptyGroup(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrCodeEmptyGroup
}

// IsInvalidField returns true if err is an empty-field error.
func IsInvalidField(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == ErrCodeInvalidField
}
