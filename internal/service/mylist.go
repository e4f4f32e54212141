package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reelist/reelist/internal/cache"
	"github.com/reelist/reelist/internal/cursor"
	"github.com/reelist/reelist/internal/domain"
)

// Page limits accepted by List.
const (
	MinPageLimit     = 1
	MaxPageLimit     = 100
	DefaultPageLimit = 20
)

// MyListService manages a user's personal content list with page caching.
//
// Reads go through the page cache; any successful mutation clears the whole
// cache before returning. Clearing everything trades cross-user cache
// efficiency for a guarantee that no page can serve stale rows.
type MyListService struct {
	repo      domain.ListRepository
	catalogue domain.CatalogueRepository
	pages     *cache.Cache[domain.ListPage]
	logger    *slog.Logger

	now func() time.Time // overridable for tests
}

// NewMyListService creates a new list service.
func NewMyListService(repo domain.ListRepository, catalogue domain.CatalogueRepository, pages *cache.Cache[domain.ListPage], logger *slog.Logger) *MyListService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MyListService{
		repo:      repo,
		catalogue: catalogue,
		pages:     pages,
		logger:    logger,
		now:       time.Now,
	}
}

// Add resolves the content's canonical metadata from the catalogue and
// creates the list item. The (user, content) uniqueness invariant is enforced
// by the repository at write time. The page cache is cleared only after the
// insert succeeds.
func (s *MyListService) Add(ctx context.Context, userID, contentID string, contentType domain.ContentType) (*domain.ListItem, error) {
	entry, err := s.catalogue.FindContent(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}

	item := domain.ListItem{
		UserID:      userID,
		ContentID:   contentID,
		ContentType: contentType,
		Title:       entry.Title,
		Genres:      entry.Genres,
		AddedAt:     s.now().UTC().Truncate(time.Millisecond),
	}
	if item.Genres == nil {
		item.Genres = []string{}
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, err
	}

	s.pages.Clear()
	s.logger.Info("added to list", "userID", userID, "contentID", contentID, "contentType", contentType)
	return &item, nil
}

// Remove deletes the matching item and clears the page cache. A miss leaves
// the cache untouched.
func (s *MyListService) Remove(ctx context.Context, userID, contentID string) error {
	if err := s.repo.Delete(ctx, userID, contentID); err != nil {
		return err
	}

	s.pages.Clear()
	s.logger.Info("removed from list", "userID", userID, "contentID", contentID)
	return nil
}

// List returns one page of the user's list, newest first, bounded by the
// optional cursor token. Pages are served from the cache when possible; a
// cached page is returned verbatim without re-validation.
func (s *MyListService) List(ctx context.Context, userID string, limit int, cursorToken string) (*domain.ListPage, error) {
	if limit < MinPageLimit || limit > MaxPageLimit {
		return nil, fmt.Errorf("%w: %d", domain.ErrLimitOutOfRange, limit)
	}

	var cur *cursor.Payload
	if cursorToken != "" {
		p, err := cursor.Decode(cursorToken)
		if err != nil {
			return nil, err
		}
		cur = &p
	}

	key := listPageKey(userID, limit, cur)
	if page, ok := s.pages.Get(key); ok {
		return &page, nil
	}

	var after *domain.ListPosition
	if cur != nil {
		pos := cur.Position()
		after = &pos
	}

	// Fetch one row beyond the page to learn whether more rows exist.
	rows, err := s.repo.Page(ctx, userID, limit+1, after)
	if err != nil {
		return nil, err
	}

	page := domain.ListPage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[len(page.Items)-1]
		page.NextCursor = cursor.Encode(cursor.New(domain.ListPosition{
			AddedAt:   last.AddedAt,
			ContentID: last.ContentID,
		}))
	}
	if page.Items == nil {
		page.Items = []domain.ListItem{}
	}

	s.pages.Set(key, page)
	return &page, nil
}
