package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend call.
type Kind int

const (
	// KindAuthExpired is an HTTP 401: the token is missing, invalid or expired.
	KindAuthExpired Kind = iota + 1
	// KindServer is any other non-2xx response.
	KindServer
	// KindNetwork means no response was received.
	KindNetwork
	// KindRequest means the request could not be built.
	KindRequest
	// KindDecode means a 2xx response body could not be decoded.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindAuthExpired:
		return "auth_expired"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	case KindRequest:
		return "request"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

const (
	MsgSessionExpired = "Session expired, please login again"
	MsgServerError    = "An error occurred"
	MsgNetworkError   = "Network error, please check your connection"
	MsgRequestFailed  = "Request failed"
	MsgDecodeFailed   = "Unexpected response from server"
)

// ErrAuthExpired matches any *Error of KindAuthExpired via errors.Is.
var ErrAuthExpired = errors.New("authentication expired")

// Error is the only error type returned by API calls.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when there was no response
	Message string // user-facing message
	Err     error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api %s error (%d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api %s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("api %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrAuthExpired && e.Kind == KindAuthExpired
}

// AsError extracts the *Error from err.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Message returns the user-facing message for err. Errors that did not come
// from the API client get the generic request failure message.
func Message(err error) string {
	if apiErr, ok := AsError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgRequestFailed
}
