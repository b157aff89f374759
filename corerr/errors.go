// Package corerr defines the typed errors the value core raises:
// InvalidCallback, VisibilityError, and the internal-only
// InlineObjectComparison signal.
package corerr

import (
	"errors"
	"fmt"
)

// Kind discriminates the typed errors this package defines.
type Kind int

const (
	KindInvalidCallback Kind = iota
	KindVisibilityError
	KindInlineObjectComparison
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCallback:
		return "InvalidCallback"
	case KindVisibilityError:
		return "VisibilityError"
	case KindInlineObjectComparison:
		return "InlineObjectComparison"
	default:
		return "Unknown"
	}
}

// CoreError is the shared shape of every typed error this module raises.
type CoreError struct {
	Kind    Kind
	Message string
}

func (e *CoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewInvalidCallback builds the error raised by the callback resolver
// when a value cannot be resolved to any of the known callable shapes.
func NewInvalidCallback(msg string) *CoreError {
	return &CoreError{Kind: KindInvalidCallback, Message: msg}
}

// NewVisibilityError builds the error raised when a method lookup finds a
// method the caller's context may not invoke: the host's class subsystem
// may raise it, and callback.checkVisibility raises it for the minimal
// private/protected rule the callback resolver enforces itself.
func NewVisibilityError(msg string) *CoreError {
	return &CoreError{Kind: KindVisibilityError, Message: msg}
}

// ErrInlineObjectComparison names the internal signal an object's custom
// comparator gives to ask for default (class + attribute) comparison.
// values.Object.Comparer gives that signal by returning ok=false rather
// than this error value, and package compare never returns it to a
// caller.
var ErrInlineObjectComparison = &CoreError{Kind: KindInlineObjectComparison, Message: "inline comparison requested"}

// PlainMessage strips the "<Kind>: " prefix Error() adds, returning just
// the message text — used wherever a caller formats the failure into its
// own sentence (e.g. the callback resolver's parameter warning).
func PlainMessage(err error) string {
	if ce, ok := err.(*CoreError); ok {
		return ce.Message
	}
	return err.Error()
}

// IsInvalidCallback reports whether err is (or wraps) an InvalidCallback.
func IsInvalidCallback(err error) bool {
	var ce *CoreError
	return errors.As(err, &ce) && ce.Kind == KindInvalidCallback
}

// IsVisibilityError reports whether err is (or wraps) a VisibilityError.
func IsVisibilityError(err error) bool {
	var ce *CoreError
	return errors.As(err, &ce) && ce.Kind == KindVisibilityError
}
