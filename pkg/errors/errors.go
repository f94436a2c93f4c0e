package errors

import (
	"errors"
	"fmt"
)

// Error codes surfaced to API clients
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeSelfReaction  = "SELF_REACTION_FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodePostExpired   = "POST_EXPIRED"
	CodeConflict      = "CONFLICT"
	CodeStoreFailure  = "STORE_FAILURE"
	CodeInternalError = "INTERNAL_ERROR"
)

// Common errors
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrSelfReaction = errors.New("self reaction forbidden")
	ErrNotFound     = errors.New("not found")
	ErrPostExpired  = errors.New("post expired")
	ErrConflict     = errors.New("conflict")
	ErrStoreFailure = errors.New("store failure")
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) error {
	return WrapWithCode(ErrValidation, CodeValidation, message)
}

func Unauthorized(message string) error {
	return WrapWithCode(ErrUnauthorized, CodeUnauthorized, message)
}

func SelfReaction(message string) error {
	return WrapWithCode(ErrSelfReaction, CodeSelfReaction, message)
}

func NotFound(message string) error {
	return WrapWithCode(ErrNotFound, CodeNotFound, message)
}

func PostExpired(message string) error {
	return WrapWithCode(ErrPostExpired, CodePostExpired, message)
}

func Conflict(message string) error {
	return WrapWithCode(ErrConflict, CodeConflict, message)
}

// StoreFailure marks err as a persistence failure while keeping the cause in the chain.
func StoreFailure(err error, message string) error {
	if err == nil {
		return nil
	}
	return WrapWithCode(errors.Join(ErrStoreFailure, err), CodeStoreFailure, message)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsDomain reports whether err already carries a code from this package.
func IsDomain(err error) bool {
	return GetCode(err) != ""
}

// IsNotFound returns true if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized returns true if the error is an unauthorized error
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation returns true if the error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsSelfReaction returns true if the caller tried to react to their own post
func IsSelfReaction(err error) bool {
	return errors.Is(err, ErrSelfReaction)
}

// IsPostExpired returns true if the action targeted a post that is no longer live
func IsPostExpired(err error) bool {
	return errors.Is(err, ErrPostExpired)
}

// IsConflict returns true if the error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsStoreFailure returns true if the error came from the persistence layer
func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}
