package domain

import "context"

// ListRepository: persistence operations over a user's list rows.
// The uniqueness of (UserID, ContentID) is enforced here, at write time, not
// recomputed by callers; concurrent inserts of the same pair must resolve to
// exactly one success and one ErrAlreadyInList.
type ListRepository interface {
	// Insert stores a new item. Returns ErrAlreadyInList when the
	// (UserID, ContentID) pair already exists.
	Insert(ctx context.Context, item ListItem) error

	// Delete removes the item matching (userID, contentID). Returns
	// ErrNotInList when no row matched.
	Delete(ctx context.Context, userID, contentID string) error

	// Page returns up to limit rows owned by userID, ordered by
	// (AddedAt DESC, ContentID DESC), restricted to rows strictly after
	// the given position when after is non-nil.
	Page(ctx context.Context, userID string, limit int, after *ListPosition) ([]ListItem, error)

	// All returns every row owned by userID in the same order as Page.
	All(ctx context.Context, userID string) ([]ListItem, error)
}

// CatalogueRepository: canonical content metadata lookup.
type CatalogueRepository interface {
	// FindContent resolves title and genres for a content id/type pair.
	// Returns ErrContentNotFound when the catalogue has no such entry.
	FindContent(ctx context.Context, contentID string, contentType ContentType) (*CatalogueEntry, error)
}
