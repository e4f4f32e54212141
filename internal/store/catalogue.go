package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/reelist/reelist/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var _ domain.CatalogueRepository = (*Store)(nil)

func catalogueKey(contentID string, contentType domain.ContentType) []byte {
	return []byte(string(contentType) + ":" + contentID)
}

// FindContent resolves canonical title/genres for a content id/type pair.
func (s *Store) FindContent(ctx context.Context, contentID string, contentType domain.ContentType) (*domain.CatalogueEntry, error) {
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketCatalogue).Get(catalogueKey(contentID, contentType)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, domain.ErrContentNotFound
	}

	var entry domain.CatalogueEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("corrupt catalogue entry %s: %w", contentID, err)
	}
	return &entry, nil
}

// PutCatalogueEntry inserts or overwrites a catalogue entry.
func (s *Store) PutCatalogueEntry(ctx context.Context, entry domain.CatalogueEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCatalogue).Put(catalogueKey(entry.ContentID, entry.ContentType), data)
	})
}

// SeedCatalogue upserts every entry from a JSON seed file (an array of
// catalogue entries). Missing file is not an error; a fresh deployment may
// run without seed data.
func (s *Store) SeedCatalogue(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read catalogue seed: %w", err)
	}

	var entries []domain.CatalogueEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("failed to parse catalogue seed: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketCatalogue)
		for _, entry := range entries {
			if _, err := domain.ParseContentType(string(entry.ContentType)); err != nil {
				return fmt.Errorf("seed entry %s: %w", entry.ContentID, err)
			}
			data, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			if err := bucket.Put(catalogueKey(entry.ContentID, entry.ContentType), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
