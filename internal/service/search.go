package service

import (
	"context"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/reelist/reelist/internal/domain"
)

// Search fuzzy-matches the query against the titles in the user's list and
// returns matching items, best match first. Results are computed from the
// repository directly; search bypasses the page cache.
func (s *MyListService) Search(ctx context.Context, userID, query string) ([]domain.ListItem, error) {
	items, err := s.repo.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return items, nil
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	matched := make([]domain.ListItem, 0, len(ranks))
	for _, r := range ranks {
		matched = append(matched, items[r.OriginalIndex])
	}
	return matched, nil
}
