package store

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketLists     = []byte("lists")
	bucketCatalogue = []byte("catalogue")

	// Per-user sub-buckets under "lists"
	bucketItems = []byte("items") // contentID -> JSON row
	bucketIndex = []byte("index") // addedAt-millis + contentID -> contentID
)

// Store implements domain.ListRepository and domain.CatalogueRepository
// using BoltDB. List rows live in a per-user bucket keyed by content id,
// which makes the (user, content) uniqueness check part of the insert
// transaction. A secondary index keyed by big-endian added-at milliseconds
// plus content id gives the ordered range scan: reverse iteration over that
// index is exactly (addedAt DESC, contentId DESC).
type Store struct {
	db *bolt.DB
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketLists, bucketCatalogue} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// indexKey orders rows by added-at time, then content id. Both components
// compare bytewise, so reverse bucket iteration yields the composite
// descending order.
func indexKey(addedAt time.Time, contentID string) []byte {
	key := make([]byte, 8+len(contentID))
	binary.BigEndian.PutUint64(key, uint64(addedAt.UnixMilli()))
	copy(key[8:], contentID)
	return key
}

func userBucket(tx *bolt.Tx, userID string) *bolt.Bucket {
	lists := tx.Bucket(bucketLists)
	if lists == nil {
		return nil
	}
	return lists.Bucket([]byte(userID))
}
