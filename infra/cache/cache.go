// Package cache persists the viewer's liked/saved post id lists in a
// local badger store with a TTL. It replaces ad-hoc browser-local storage
// with an explicit cache object: entries expire on their own and are
// dropped outright when the viewer identity changes.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// DefaultTTL bounds how long a viewer's lists are trusted without a
// server refresh.
const DefaultTTL = 10 * time.Minute

// Store is a viewer-scoped TTL cache. It implements interact.Cache.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open creates or opens the cache at dir.
func Open(dir string, ttl time.Duration) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening cache at %s: %w", dir, err)
	}
	return newStore(db, ttl), nil
}

// OpenInMemory opens a throwaway cache. Used by tests and as a fallback
// when the on-disk cache cannot be opened.
func OpenInMemory(ttl time.Duration) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory cache: %w", err)
	}
	return newStore(db, ttl), nil
}

func newStore(db *badger.DB, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{db: db, ttl: ttl}
}

// Close flushes and closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

// LikedPosts returns the cached liked post ids for the viewer.
func (s *Store) LikedPosts(viewerID string) ([]string, bool) {
	return s.get(likedKey(viewerID))
}

// SavedPosts returns the cached saved post ids for the viewer.
func (s *Store) SavedPosts(viewerID string) ([]string, bool) {
	return s.get(savedKey(viewerID))
}

// SetLikedPosts stores the viewer's liked post ids.
func (s *Store) SetLikedPosts(viewerID string, ids []string) error {
	return s.set(likedKey(viewerID), ids)
}

// SetSavedPosts stores the viewer's saved post ids.
func (s *Store) SetSavedPosts(viewerID string, ids []string) error {
	return s.set(savedKey(viewerID), ids)
}

// InvalidateViewer drops every entry for the viewer.
func (s *Store) InvalidateViewer(viewerID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(likedKey(viewerID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Delete(savedKey(viewerID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidating viewer %s: %w", viewerID, err)
	}
	return nil
}

func (s *Store) get(key []byte) ([]string, bool) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &ids)
		})
	})
	if err != nil {
		return nil, false
	}
	return ids, true
}

func (s *Store) set(key []byte, ids []string) error {
	val, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, val).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

func likedKey(viewerID string) []byte { return []byte("liked/" + viewerID) }
func savedKey(viewerID string) []byte { return []byte("saved/" + viewerID) }
