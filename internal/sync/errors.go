package sync

import "errors"

var (
	// ErrMissingSourceKey is returned when a database page has no Zotero key.
	// zotion only supports databases whose pages it created.
	ErrMissingSourceKey = errors.New("page has no Zotero key")

	// ErrDuplicateSourceKey is returned when two pages carry the same
	// Zotero key.
	ErrDuplicateSourceKey = errors.New("duplicate Zotero key")
)
