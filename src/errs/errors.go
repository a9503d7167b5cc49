// Package errs holds the error taxonomy shared by services and controllers.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrPortalClosed     = errors.New("portal is closed")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrAIServiceFailure = errors.New("ai service failure")
	ErrUnknownClass     = errors.New("unknown class")
	ErrDuplicateClass   = errors.New("class already exists")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidCode      = errors.New("invalid confirmation code")
	ErrBadCredentials   = errors.New("invalid email or password")
)

// IncompleteAnswersError is returned by intake when required answers are missing.
type IncompleteAnswersError struct {
	Missing    int
	MissingIDs []string
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("incomplete answers: %d required question(s) unanswered", e.Missing)
}

// Store wraps a driver error as ErrStoreUnavailable while keeping the cause in
// the message.
func Store(err error, op string) error {
	if err == nil {
		return nil
	}
	return &storeError{op: op, cause: err}
}

type storeError struct {
	op    string
	cause error
}

func (e *storeError) Error() string { return e.op + ": " + ErrStoreUnavailable.Error() + ": " + e.cause.Error() }

func (e *storeError) Is(target error) bool { return target == ErrStoreUnavailable }

func (e *storeError) Unwrap() error { return e.cause }

// Invalid builds a validation error with a user-facing message.
func Invalid(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrInvalidInput }

// AI wraps a generative-AI failure.
func AI(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrAIServiceFailure, "%s: %v", op, err)
}
