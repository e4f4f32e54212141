package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrContentNotFound indicates the catalogue has no entry for the
	// requested content id/type.
	ErrContentNotFound = errors.New("content not found in catalogue")

	// ErrAlreadyInList indicates the (user, content) pair already exists.
	ErrAlreadyInList = errors.New("content already in list")

	// ErrNotInList indicates a remove matched no row.
	ErrNotInList = errors.New("content not in list")

	// ErrInvalidCursor indicates a pagination token that cannot be decoded.
	ErrInvalidCursor = errors.New("invalid pagination cursor")

	// ErrLimitOutOfRange indicates a page limit outside 1..100.
	ErrLimitOutOfRange = errors.New("limit out of range")

	// ErrInvalidContentType indicates an unknown content type string.
	ErrInvalidContentType = errors.New("invalid content type")
)
