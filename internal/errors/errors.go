package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	// ErrTypeValidation marks user-correctable input errors. Handlers
	// surface these on the page's error-message slot.
	ErrTypeValidation ErrorType = "VALIDATION"

	// ErrTypeTransport marks network or decode failures talking to the
	// jobs backend or the places API. Not user-correctable and never
	// retried here.
	ErrTypeTransport ErrorType = "TRANSPORT"

	// ErrTypeInvariant marks data-integrity defects (empty job id, nil
	// map). These abort the triggering request instead of degrading.
	ErrTypeInvariant ErrorType = "INVARIANT"

	ErrTypeNotFound ErrorType = "NOT_FOUND"
	ErrTypeInternal ErrorType = "INTERNAL"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(message string, err error) *DomainError {
	return New(ErrTypeValidation, message, err)
}

func Transport(message string, err error) *DomainError {
	return New(ErrTypeTransport, message, err)
}

func Invariant(message string, err error) *DomainError {
	return New(ErrTypeInvariant, message, err)
}

func NotFound(message string, err error) *DomainError {
	return New(ErrTypeNotFound, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

// TypeOf reports the ErrorType carried by err, or ErrTypeInternal when err
// is not a DomainError.
func TypeOf(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrTypeInternal
}

func IsValidation(err error) bool {
	return TypeOf(err) == ErrTypeValidation
}

func IsTransport(err error) bool {
	return TypeOf(err) == ErrTypeTransport
}

func IsInvariant(err error) bool {
	return TypeOf(err) == ErrTypeInvariant
}
