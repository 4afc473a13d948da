package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery indicates a listing request with an unknown sort key,
	// a non-positive limit or a non-positive depth.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrCircuitOpen indicates requests are being short-circuited after
	// repeated upstream failures.
	ErrCircuitOpen = errors.New("upstream temporarily unavailable")
)

// RemoteError reports a failed API call: a transport failure or an
// unexpected HTTP status.
type RemoteError struct {
	Op     string // e.g. "list posts"
	Status int    // 0 when the request never produced a response
	Body   string // Truncated response body, if any
	Err    error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
