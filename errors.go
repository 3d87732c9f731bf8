package taskflow

import (
	"errors"
	"fmt"
)

var (
	// ErrStatusCode is returned in case the response from the API contains a status code that the client
	// can't handle, i.e., anything but 2xx.
	ErrStatusCode = errors.New("unhandled status code")

	// ErrNetwork is wrapped by transport failures: the server could not be reached or the connection broke.
	ErrNetwork = errors.New("network error")

	// ErrNotFound is returned when looking up a todo that is not in the local collection.
	ErrNotFound = errors.New("todo not found")
)

// RequestError is implemented by every error the client returns for a failed API call. Message is what
// gets stored in State.Error and shown to users.
type RequestError interface {
	error
	Message() string
}

// HTTPError is returned when the server answers with a non-2xx status.
type HTTPError struct {
	Op         string
	StatusCode int
	Text       string // Response body, possibly empty.
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: %d: %v", e.Op, e.StatusCode, ErrStatusCode)
}

func (e *HTTPError) Unwrap() error {
	return ErrStatusCode
}

func (e *HTTPError) Message() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// NetworkError is returned when the request could not complete at the transport level.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrNetwork, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

func (e *NetworkError) Message() string {
	return "Network error"
}

// DecodeError is returned when a 2xx response body is not what the API contract promises.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s, decode: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Message() string {
	return "Unexpected response from server"
}

// ValidationError reports a user-supplied field that can't be sent to the server. It is detected before any
// request is made and never reaches the store.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// errorMessage extracts the human-readable message stored in State.Error for a failed fetch.
func errorMessage(err error) string {
	var re RequestError
	if errors.As(err, &re) {
		return re.Message()
	}
	if err == nil || err.Error() == "" {
		return "request failed"
	}
	return err.Error()
}
