// Package store implements the durable CRUD backend for bookmarks on top of
// a key-value persistence collaborator. It is the single owner of the
// persisted blob and the only component shared between controllers.
package store

import (
	"context"
	"fmt"
	"sync"

	"hoard/internal/kv"
	"hoard/internal/logger"
	"hoard/internal/model"
)

const bookmarksKey = "bookmarks"

// Repository is the contract the controllers depend on.
type Repository interface {
	List(ctx context.Context) ([]model.Bookmark, error)
	Get(ctx context.Context, id string) (model.Bookmark, bool, error)
	Add(ctx context.Context, bookmark model.Bookmark) error
	Update(ctx context.Context, bookmark model.Bookmark) error
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// BookmarkStore keeps the list in memory and writes the encoded blob
// through to the KV collaborator on every mutation. All operations are
// serialized by a single mutex so concurrent controllers cannot interleave
// a read-modify-write.
type BookmarkStore struct {
	mu        sync.Mutex
	kv        kv.Store
	log       logger.Logger
	bookmarks []model.Bookmark
	loaded    bool
}

// New creates a BookmarkStore backed by the given KV store.
func New(kvStore kv.Store, log logger.Logger) *BookmarkStore {
	return &BookmarkStore{
		kv:        kvStore,
		log:       log,
		bookmarks: []model.Bookmark{},
	}
}

// List reads the persisted blob, refreshes the in-memory cache and returns
// a defensive copy. A missing, unreadable or corrupt blob is treated as an
// empty list rather than an error.
func (s *BookmarkStore) List(ctx context.Context) ([]model.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reload(ctx)
	return s.copyLocked(), nil
}

// reload replaces the cache from the blob, failing open to empty on any
// read or decode problem. Caller must hold the mutex.
func (s *BookmarkStore) reload(ctx context.Context) {
	blob, ok, err := s.kv.Get(ctx, bookmarksKey)
	if err != nil {
		s.log.Warn("failed to read bookmark blob, treating as empty", logger.Error(err))
		s.bookmarks = []model.Bookmark{}
		s.loaded = true
		return
	}
	if !ok {
		s.bookmarks = []model.Bookmark{}
		s.loaded = true
		return
	}

	bookmarks, err := model.DecodeBookmarks(blob)
	if err != nil {
		s.log.Warn("corrupt bookmark blob, treating as empty", logger.Error(err))
		s.bookmarks = []model.Bookmark{}
		s.loaded = true
		return
	}

	s.bookmarks = bookmarks
	s.loaded = true
}

// ensureLoaded fills the cache from the blob on first use, so a mutation on
// a fresh store works against the persisted list instead of an empty one.
// Caller must hold the mutex.
func (s *BookmarkStore) ensureLoaded(ctx context.Context) {
	if !s.loaded {
		s.reload(ctx)
	}
}

// Get returns the bookmark with the given id, or false if absent.
func (s *BookmarkStore) Get(ctx context.Context, id string) (model.Bookmark, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded(ctx)

	for _, b := range s.bookmarks {
		if b.ID == id {
			return b, true, nil
		}
	}
	return model.Bookmark{}, false, nil
}

// Add appends the bookmark and persists. An existing entry with the same id
// is replaced in place rather than duplicated.
func (s *BookmarkStore) Add(ctx context.Context, bookmark model.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded(ctx)

	replaced := false
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == bookmark.ID {
			s.bookmarks[i] = bookmark
			replaced = true
			break
		}
	}
	if !replaced {
		s.bookmarks = append(s.bookmarks, bookmark)
	}

	return s.persist(ctx)
}

// Update replaces the first entry whose id matches. Silently a no-op when
// there is no match.
func (s *BookmarkStore) Update(ctx context.Context, bookmark model.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded(ctx)

	for i := range s.bookmarks {
		if s.bookmarks[i].ID == bookmark.ID {
			s.bookmarks[i] = bookmark
			return s.persist(ctx)
		}
	}
	return nil
}

// Delete removes all entries matching id. Deleting a nonexistent id is a
// no-op, not an error.
func (s *BookmarkStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded(ctx)

	kept := s.bookmarks[:0]
	removed := false
	for _, b := range s.bookmarks {
		if b.ID == id {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	s.bookmarks = kept

	if !removed {
		return nil
	}
	return s.persist(ctx)
}

// Clear empties the list and persists.
func (s *BookmarkStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookmarks = []model.Bookmark{}
	return s.persist(ctx)
}

// persist writes the encoded list through to the KV store. Caller must hold
// the mutex. A failed write is surfaced so callers can show a save error;
// the cache stays ahead of the blob until the next List reloads it.
func (s *BookmarkStore) persist(ctx context.Context) error {
	blob := model.EncodeBookmarks(s.bookmarks)
	if err := s.kv.Put(ctx, bookmarksKey, blob); err != nil {
		s.log.Error("failed to persist bookmarks", logger.Error(err), logger.Int("count", len(s.bookmarks)))
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

func (s *BookmarkStore) copyLocked() []model.Bookmark {
	out := make([]model.Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}
