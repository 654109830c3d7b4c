package pushstatus

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResponse means no usable HTTP response was obtained.
	ErrInvalidResponse = errors.New("invalid response")
	// ErrDecodeFailed means the body is not an object with a results array of objects.
	ErrDecodeFailed = errors.New("decode failed")

	ErrUnknownAuthHeader = errors.New("unknown auth header")
)

// HTTPStatusError reports a response outside the 2xx range.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}

// Describe turns a fetch or decode error into a sentence for the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *HTTPStatusError
	switch {
	case errors.Is(err, ErrInvalidResponse):
		return "The server response was invalid."
	case errors.As(err, &statusErr):
		return fmt.Sprintf("The server returned HTTP status %d.", statusErr.StatusCode)
	case errors.Is(err, ErrDecodeFailed):
		return "The response could not be decoded."
	default:
		return err.Error()
	}
}
