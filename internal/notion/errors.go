package notion

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is matched by API errors with status 401 or 403.
var ErrUnauthorized = errors.New("notion: unauthorized")

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("notion API error: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("notion API error: %d %s: %s", e.Status, e.Code, e.Message)
}

// Is reports whether target is ErrUnauthorized and e is an auth failure.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}
