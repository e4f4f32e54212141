package service

import (
	"fmt"

	"github.com/reelist/reelist/internal/cursor"
)

// PrefixListPage is the cache key prefix for list page results.
const PrefixListPage = "list:"

// listPageKey derives the page-cache key from (user, limit, cursor). Keys are
// built positionally from the cursor's fields rather than by serializing the
// payload, so two logically identical cursors always map to the same entry.
func listPageKey(userID string, limit int, cur *cursor.Payload) string {
	if cur == nil {
		return fmt.Sprintf("%s%s:limit=%d:cursor=none", PrefixListPage, userID, limit)
	}
	return fmt.Sprintf("%s%s:limit=%d:cursor=%s|%s", PrefixListPage, userID, limit, cur.AddedAt, cur.ContentID)
}
