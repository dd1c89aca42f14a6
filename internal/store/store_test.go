package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hoard/internal/logger"
	"hoard/internal/model"
	"hoard/internal/store"
)

// memKV is an in-memory KV store with switchable failure modes.
type memKV struct {
	mu      sync.Mutex
	values  map[string]string
	failGet bool
	failPut bool
}

func newMemKV() *memKV {
	return &memKV{values: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return "", false, errors.New("kv read failure")
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("kv write failure")
	}
	m.values[key] = value
	return nil
}

func testBookmark(id, title string) model.Bookmark {
	return model.Bookmark{
		ID:        id,
		Title:     title,
		URL:       "https://example.com/" + id,
		CreatedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestStore_AddAndList(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	if err := s.Add(ctx, testBookmark("b1", "GitHub")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	bookmarks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(bookmarks))
	}
	if bookmarks[0].Title != "GitHub" {
		t.Errorf("expected title %q, got %q", "GitHub", bookmarks[0].Title)
	}
}

func TestStore_ListReturnsDefensiveCopy(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	if err := s.Add(ctx, testBookmark("b1", "Original")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	first, _ := s.List(ctx)
	first[0].Title = "Mutated"

	second, _ := s.List(ctx)
	if second[0].Title != "Original" {
		t.Errorf("caller mutation leaked into store: got %q", second[0].Title)
	}
}

func TestStore_ListPreservesInsertionOrder(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	for _, id := range []string{"b1", "b2", "b3"} {
		if err := s.Add(ctx, testBookmark(id, id)); err != nil {
			t.Fatalf("failed to add %s: %v", id, err)
		}
	}

	bookmarks, _ := s.List(ctx)
	for i, want := range []string{"b1", "b2", "b3"} {
		if bookmarks[i].ID != want {
			t.Errorf("position %d: expected %q, got %q", i, want, bookmarks[i].ID)
		}
	}
}

func TestStore_Get(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	if err := s.Add(ctx, testBookmark("b1", "GitHub")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	got, ok, err := s.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if !ok {
		t.Fatal("expected bookmark to be found")
	}
	if got.Title != "GitHub" {
		t.Errorf("expected title %q, got %q", "GitHub", got.Title)
	}

	_, ok, err = s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing id")
	}
}

func TestStore_GetLoadsPersistedBlob(t *testing.T) {
	kvStore := newMemKV()
	ctx := context.Background()

	seed := store.New(kvStore, logger.Nop())
	if err := seed.Add(ctx, testBookmark("b1", "Persisted")); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	// A fresh store over the same KV must see the blob without a prior List.
	fresh := store.New(kvStore, logger.Nop())
	got, ok, err := fresh.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if !ok || got.Title != "Persisted" {
		t.Errorf("expected persisted bookmark, got %+v (ok=%v)", got, ok)
	}
}

func TestStore_AddOnFreshStoreKeepsPersistedBookmarks(t *testing.T) {
	kvStore := newMemKV()
	ctx := context.Background()

	seed := store.New(kvStore, logger.Nop())
	if err := seed.Add(ctx, testBookmark("old", "Already there")); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	// First call on the fresh store is a mutation, no List before it.
	fresh := store.New(kvStore, logger.Nop())
	if err := fresh.Add(ctx, testBookmark("new", "New")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	bookmarks, err := fresh.List(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d: %+v", len(bookmarks), bookmarks)
	}
	if bookmarks[0].ID != "old" || bookmarks[1].ID != "new" {
		t.Errorf("expected [old new], got [%s %s]", bookmarks[0].ID, bookmarks[1].ID)
	}
}

func TestStore_UpdateOnFreshStoreSeesPersistedBookmarks(t *testing.T) {
	kvStore := newMemKV()
	ctx := context.Background()

	seed := store.New(kvStore, logger.Nop())
	if err := seed.Add(ctx, testBookmark("b1", "Before")); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	fresh := store.New(kvStore, logger.Nop())
	if err := fresh.Update(ctx, testBookmark("b1", "After")); err != nil {
		t.Fatalf("failed to update: %v", err)
	}

	got, ok, _ := fresh.Get(ctx, "b1")
	if !ok || got.Title != "After" {
		t.Errorf("expected update to hit the persisted record, got %+v (ok=%v)", got, ok)
	}
}

func TestStore_DeleteOnFreshStoreSeesPersistedBookmarks(t *testing.T) {
	kvStore := newMemKV()
	ctx := context.Background()

	seed := store.New(kvStore, logger.Nop())
	if err := seed.Add(ctx, testBookmark("b1", "Doomed")); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	fresh := store.New(kvStore, logger.Nop())
	if err := fresh.Delete(ctx, "b1"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	bookmarks, _ := fresh.List(ctx)
	if len(bookmarks) != 0 {
		t.Errorf("expected persisted record to be deleted, got %+v", bookmarks)
	}
}

func TestStore_AddSameIDReplaces(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	if err := s.Add(ctx, testBookmark("b1", "First")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if err := s.Add(ctx, testBookmark("b1", "Second")); err != nil {
		t.Fatalf("failed to re-add: %v", err)
	}

	bookmarks, _ := s.List(ctx)
	if len(bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark after duplicate add, got %d", len(bookmarks))
	}
	if bookmarks[0].Title != "Second" {
		t.Errorf("expected replacement title %q, got %q", "Second", bookmarks[0].Title)
	}
}

func TestStore_Update(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	if err := s.Add(ctx, testBookmark("b1", "Before")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	updated := testBookmark("b1", "After")
	updated.Notes = "now with notes"
	if err := s.Update(ctx, updated); err != nil {
		t.Fatalf("failed to update: %v", err)
	}

	got, _, _ := s.Get(ctx, "b1")
	if got.Title != "After" || got.Notes != "now with notes" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestStore_UpdateNonexistentIsNoop(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	if err := s.Add(ctx, testBookmark("b1", "Kept")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	if err := s.Update(ctx, testBookmark("ghost", "Nope")); err != nil {
		t.Fatalf("expected silent no-op, got: %v", err)
	}

	bookmarks, _ := s.List(ctx)
	if len(bookmarks) != 1 || bookmarks[0].Title != "Kept" {
		t.Errorf("store changed by no-op update: %+v", bookmarks)
	}
}

func TestStore_Delete(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	if err := s.Add(ctx, testBookmark("b1", "Doomed")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if err := s.Delete(ctx, "b1"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	bookmarks, _ := s.List(ctx)
	if len(bookmarks) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(bookmarks))
	}
}

func TestStore_DeleteNonexistentIsNoop(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	if err := s.Add(ctx, testBookmark("b1", "Kept")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	if err := s.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("expected no error deleting nonexistent id, got: %v", err)
	}

	bookmarks, _ := s.List(ctx)
	if len(bookmarks) != 1 {
		t.Errorf("store changed by no-op delete: %+v", bookmarks)
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	if err := s.Add(ctx, testBookmark("b1", "Gone")); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.Clear(ctx); err != nil {
			t.Fatalf("clear %d failed: %v", i, err)
		}
		bookmarks, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list after clear %d failed: %v", i, err)
		}
		if len(bookmarks) != 0 {
			t.Errorf("clear %d: expected empty list, got %d", i, len(bookmarks))
		}
	}
}

func TestStore_ListFailsOpenOnReadError(t *testing.T) {
	kvStore := newMemKV()
	kvStore.failGet = true
	s := store.New(kvStore, logger.Nop())

	bookmarks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("expected fail-open list, got error: %v", err)
	}
	if len(bookmarks) != 0 {
		t.Errorf("expected empty list on read failure, got %d", len(bookmarks))
	}
}

func TestStore_ListFailsOpenOnCorruptBlob(t *testing.T) {
	kvStore := newMemKV()
	kvStore.values["bookmarks"] = "this is not the format"
	s := store.New(kvStore, logger.Nop())

	bookmarks, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("expected fail-open list, got error: %v", err)
	}
	if len(bookmarks) != 0 {
		t.Errorf("expected empty list on corrupt blob, got %d", len(bookmarks))
	}
}

func TestStore_WriteFailureIsSurfaced(t *testing.T) {
	kvStore := newMemKV()
	s := store.New(kvStore, logger.Nop())
	ctx := context.Background()

	kvStore.failPut = true
	if err := s.Add(ctx, testBookmark("b1", "T")); err == nil {
		t.Error("expected add to surface the write failure")
	}

	// Next List re-reads the blob, so the failed add does not stick.
	kvStore.failPut = false
	bookmarks, _ := s.List(ctx)
	if len(bookmarks) != 0 {
		t.Errorf("expected failed write to be dropped on reload, got %d", len(bookmarks))
	}
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s := store.New(newMemKV(), logger.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			_ = s.Add(ctx, testBookmark(id, id))
		}(i)
	}
	wg.Wait()

	bookmarks, err := s.List(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(bookmarks) != 20 {
		t.Errorf("expected 20 bookmarks after concurrent adds, got %d", len(bookmarks))
	}
}
