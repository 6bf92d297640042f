package api

import "fmt"

// TransportMessage is shown for every network-level failure.
const TransportMessage = "Network error or server unavailable. Please try again later."

// ServerError is a non-2xx response. Message is the server's "error" field,
// or the caller's fallback text when the field is missing.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// TransportError wraps failures to reach the server or read its reply.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return TransportMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Detail returns the underlying cause for logs.
func (e *TransportError) Detail() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}
