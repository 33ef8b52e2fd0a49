package errors

import (
	"errors"
	"fmt"
)

// New returns an error with the given message. It's a thin wrapper around the
// standard library so that callers only need to import this package.
func New(msg string) error {
	return errors.New(msg)
}

// contextError annotates an error with a short description of what was being
// attempted when it occurred.
type contextError struct {
	err     error
	context string
}

// WithContext wraps err with context. The resulting message is
// "context: err". A nil err stays nil.
func WithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return contextError{err: err, context: context}
}

func (err contextError) Error() string {
	return fmt.Sprintf("%s: %s", err.context, err.err)
}

func (err contextError) Unwrap() error {
	return err.err
}

// RootCause strips all context from err and returns the error that was
// originally wrapped.
func RootCause(err error) error {
	for {
		ctxErr, ok := err.(contextError)
		if !ok {
			return err
		}
		err = ctxErr.err
	}
}

// FriendlyError is an error whose message is suitable for showing directly to
// users. The CLI prints FriendlyMessage instead of the raw context chain.
type FriendlyError interface {
	error
	FriendlyMessage() string
}

type friendlyError struct {
	msgTemplate string
	args        []interface{}
}

// NewFriendlyError creates a FriendlyError. The message is formatted lazily
// with fmt.Sprintf.
func NewFriendlyError(msgTemplate string, args ...interface{}) error {
	return friendlyError{msgTemplate, args}
}

func (err friendlyError) Error() string {
	return err.FriendlyMessage()
}

func (err friendlyError) FriendlyMessage() string {
	return fmt.Sprintf(err.msgTemplate, err.args...)
}
