package backend

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a 401 from the backend. The realm's stored
// credentials have already been cleared by the time callers see it; there is
// no retry, the session is over.
var ErrUnauthorized = errors.New("backend rejected credentials")

// APIError carries a backend rejection (4xx/5xx) with the backend-supplied
// message when one was present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

const genericErrorMessage = "something went wrong, please try again"
