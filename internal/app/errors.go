package app

import (
	"errors"
	"net/http"
)

// Error is an outcome the caller should see as-is: an HTTP status plus the
// {"error", "message"} pair written in the response body.
type Error struct {
	Status  int
	Title   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(status int, message string) *Error {
	return &Error{Status: status, Title: http.StatusText(status), Message: message}
}

var (
	ErrUserNotFound        = newError(http.StatusNotFound, "User does not exist")
	ErrMissingCreateValues = newError(http.StatusBadRequest, "Missing values to create user")
	ErrMissingUpdateValues = newError(http.StatusBadRequest, "Missing values to update user")
	ErrMalformedBody       = newError(http.StatusBadRequest, "The browser (or proxy) sent a request that this server could not understand.")
	ErrRouteNotFound       = newError(http.StatusNotFound, "The requested URL was not found on the server. If you entered the URL manually please check your spelling and try again.")
	ErrMethodNotAllowed    = newError(http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
)

const internalMessage = "The server encountered an internal error and was unable to complete your request. Either the server is overloaded or there is an error in the application."

// Internal wraps an unexpected failure, usually from the store.
func Internal(err error) *Error {
	e := newError(http.StatusInternalServerError, internalMessage)
	e.Err = err
	return e
}

// AsError returns err as an *Error, treating anything unrecognized as internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
