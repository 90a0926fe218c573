// Package failure tags errors that an admin form shows back to the user.
package failure

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUpload Kind = iota + 1
	KindSave
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the text shown above the form.
func (e *Error) Message() string {
	switch e.Kind {
	case KindUpload:
		return "Image upload failed: " + Cause(e.Err)
	default:
		return "Save failed: " + Cause(e.Err)
	}
}

func Upload(err error) error {
	return &Error{Kind: KindUpload, Err: err}
}

func Save(err error) error {
	return &Error{Kind: KindSave, Err: err}
}

// Savef wraps a message built on the spot as a save failure.
func Savef(format string, args ...any) error {
	return Save(fmt.Errorf(format, args...))
}

// As reports whether err carries a form failure.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}

	return nil, false
}

// Cause returns the message of the innermost error, without the op prefixes
// every layer adds while wrapping.
func Cause(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
