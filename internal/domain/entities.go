package domain

import (
	"fmt"
	"time"
)

// ContentType distinguishes catalogue content kinds.
type ContentType string

const (
	ContentTypeMovie ContentType = "Movie"
	ContentTypeShow  ContentType = "Show"
)

// ParseContentType validates a caller-supplied content type string.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentTypeMovie, ContentTypeShow:
		return ContentType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidContentType, s)
	}
}

// ListItem is one entry in a user's list. Items are immutable once created;
// add and remove are the only lifecycle transitions.
type ListItem struct {
	UserID      string      `json:"userId"`
	ContentID   string      `json:"contentId"`
	ContentType ContentType `json:"contentType"`
	Title       string      `json:"title"`
	Genres      []string    `json:"genres"`
	AddedAt     time.Time   `json:"addedAt"` // UTC, millisecond precision
}

// ListPage is one page of a user's list plus the continuation token for the
// next page. NextCursor is empty when the end of the list has been reached.
type ListPage struct {
	Items      []ListItem `json:"items"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// ListPosition identifies a row's place in the (AddedAt DESC, ContentID DESC)
// total order. A page query bounded by a position returns only rows strictly
// after it.
type ListPosition struct {
	AddedAt   time.Time
	ContentID string
}

// CatalogueEntry holds the canonical metadata resolved for a piece of content
// at add time.
type CatalogueEntry struct {
	ContentID   string      `json:"contentId"`
	ContentType ContentType `json:"contentType"`
	Title       string      `json:"title"`
	Genres      []string    `json:"genres"`
}
