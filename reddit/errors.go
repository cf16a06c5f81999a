package reddit

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrPostNotFound covers both an upstream 404 and a listing in which no post
// or comment could be located.
var ErrPostNotFound = errors.New("post not found")

// StatusError is a non-2xx response from reddit's JSON API.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("reddit returned %d: %s", e.StatusCode, e.Status)
}
