package api

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthExpired is returned when the server answers 401. By the time a
	// caller sees it, both token tiers have been cleared and every
	// OnAuthExpired subscriber has been notified.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrNotAuthenticated indicates an operation that needs a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForeignOrigin is returned for a URL outside the API origin. No
	// request is made.
	ErrForeignOrigin = errors.New("url outside api origin")
)

// genericFailure is the message used when the server gives none.
const genericFailure = "API call failed"

// FetchError is a failed data call: a non-2xx status other than 401, an
// unreadable response, or a transport failure.
type FetchError struct {
	// Op names the call, e.g. "fetch departments".
	Op string

	// Status is the HTTP status, 0 for transport failures.
	Status int

	// Message is the server's message, or a generic one.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// CredentialError is returned by Login when the server rejects the
// credentials or cannot be reached. Message is fit to show the user.
type CredentialError struct {
	Status  int
	Message string
	Err     error
}

func (e *CredentialError) Error() string {
	return e.Message
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a FetchError for a 404.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == 404
}
