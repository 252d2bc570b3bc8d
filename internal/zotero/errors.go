package zotero

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is matched by API errors with status 401 or 403,
	// which Zotero returns for a bad key or a key without library access.
	ErrUnauthorized = errors.New("zotero: unauthorized")

	// ErrInvalidLibraryType is returned for library types other than
	// "user" and "group".
	ErrInvalidLibraryType = errors.New("zotero: library type must be user or group")
)

// APIError is a non-2xx response from the Zotero API. Zotero answers errors
// with a plain-text body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zotero API error: %d %s", e.StatusCode, e.Message)
}

// Is reports whether target is ErrUnauthorized and e is an auth failure.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}
