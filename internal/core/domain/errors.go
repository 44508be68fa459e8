package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuthentication = errors.New("login failed")
	ErrRegistration   = errors.New("registration failed")

	ErrUnreachable = errors.New("backend unreachable")
	ErrTimeout     = errors.New("backend request timed out")
	ErrDecode      = errors.New("malformed backend response")
	ErrTooLarge    = errors.New("backend response too large")

	ErrRouteNotFound = errors.New("route not found")
	ErrRedirectLoop  = errors.New("too many navigation redirects")
)

// DefaultRequestErrorMessage is used when a failed response carries no message.
const DefaultRequestErrorMessage = "Request failed"

// RequestError is a non-success API response.
type RequestError struct {
	Status  int
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return DefaultRequestErrorMessage
	}
	return e.Message
}

// String includes the HTTP status for logs.
func (e *RequestError) String() string {
	return fmt.Sprintf("%d %s", e.Status, e.Error())
}
