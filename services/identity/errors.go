package identity

import (
	"errors"
	"fmt"
)

// Kind classifies identity-provider failures into a closed set so that
// callers never branch on a specific provider's literal error strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindAlreadyExists
	KindInvalidCredential
	KindInvalidParameter
	KindNotFound
	KindNotConfirmed
	KindNotAuthorized
	KindRateLimited
)

// Error is a classified identity-provider failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified error wrapping the provider's raw error.
func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the classification from an error chain. Unclassified
// errors report KindUnknown.
func KindOf(err error) Kind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return KindUnknown
}
