package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reelist/reelist/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var _ domain.ListRepository = (*Store)(nil)

// Insert stores a new list row. The existence check and the writes to the
// row bucket and the time index share one transaction, so a race between two
// inserts of the same (user, content) pair resolves to exactly one success.
func (s *Store) Insert(ctx context.Context, item domain.ListItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		user, err := tx.Bucket(bucketLists).CreateBucketIfNotExists([]byte(item.UserID))
		if err != nil {
			return err
		}
		items, err := user.CreateBucketIfNotExists(bucketItems)
		if err != nil {
			return err
		}
		index, err := user.CreateBucketIfNotExists(bucketIndex)
		if err != nil {
			return err
		}

		if items.Get([]byte(item.ContentID)) != nil {
			return domain.ErrAlreadyInList
		}
		if err := items.Put([]byte(item.ContentID), data); err != nil {
			return err
		}
		return index.Put(indexKey(item.AddedAt, item.ContentID), []byte(item.ContentID))
	})
}

// Delete removes the row matching (userID, contentID) and its index entry.
func (s *Store) Delete(ctx context.Context, userID, contentID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		user := userBucket(tx, userID)
		if user == nil {
			return domain.ErrNotInList
		}
		items := user.Bucket(bucketItems)
		index := user.Bucket(bucketIndex)
		if items == nil || index == nil {
			return domain.ErrNotInList
		}

		data := items.Get([]byte(contentID))
		if data == nil {
			return domain.ErrNotInList
		}

		var item domain.ListItem
		if err := json.Unmarshal(data, &item); err != nil {
			return fmt.Errorf("corrupt list row %s/%s: %w", userID, contentID, err)
		}

		if err := items.Delete([]byte(contentID)); err != nil {
			return err
		}
		return index.Delete(indexKey(item.AddedAt, item.ContentID))
	})
}

// Page returns up to limit rows ordered (addedAt DESC, contentId DESC),
// restricted to rows strictly after the given position when after is
// non-nil.
func (s *Store) Page(ctx context.Context, userID string, limit int, after *domain.ListPosition) ([]domain.ListItem, error) {
	items := make([]domain.ListItem, 0, limit)

	err := s.db.View(func(tx *bolt.Tx) error {
		user := userBucket(tx, userID)
		if user == nil {
			return nil
		}
		rows := user.Bucket(bucketItems)
		index := user.Bucket(bucketIndex)
		if rows == nil || index == nil {
			return nil
		}

		c := index.Cursor()

		var k, v []byte
		if after != nil {
			// Position on the largest key strictly below the boundary.
			boundary := indexKey(after.AddedAt, after.ContentID)
			k, v = c.Seek(boundary)
			if k == nil {
				k, v = c.Last()
			} else {
				k, v = c.Prev()
			}
		} else {
			k, v = c.Last()
		}

		for ; k != nil && len(items) < limit; k, v = c.Prev() {
			data := rows.Get(v)
			if data == nil {
				return fmt.Errorf("dangling index entry %s/%s", userID, v)
			}
			var item domain.ListItem
			if err := json.Unmarshal(data, &item); err != nil {
				return fmt.Errorf("corrupt list row %s/%s: %w", userID, v, err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// All returns every row owned by userID, newest first.
func (s *Store) All(ctx context.Context, userID string) ([]domain.ListItem, error) {
	var items []domain.ListItem

	err := s.db.View(func(tx *bolt.Tx) error {
		user := userBucket(tx, userID)
		if user == nil {
			return nil
		}
		rows := user.Bucket(bucketItems)
		index := user.Bucket(bucketIndex)
		if rows == nil || index == nil {
			return nil
		}

		c := index.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			data := rows.Get(v)
			if data == nil {
				continue
			}
			var item domain.ListItem
			if err := json.Unmarshal(data, &item); err != nil {
				return fmt.Errorf("corrupt list row %s/%s: %w", userID, v, err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
