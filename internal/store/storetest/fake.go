// Package storetest provides an in-memory Repository double with
// switchable failure modes for controller tests.
package storetest

import (
	"context"
	"errors"
	"sync"

	"hoard/internal/model"
)

// FakeRepository implements store.Repository in memory.
type FakeRepository struct {
	mu        sync.Mutex
	bookmarks []model.Bookmark

	FailList   bool
	FailGet    bool
	FailMutate bool
}

// NewFakeRepository creates an empty FakeRepository.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{bookmarks: []model.Bookmark{}}
}

// Seed replaces the contents without going through Add.
func (f *FakeRepository) Seed(bookmarks ...model.Bookmark) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookmarks = append([]model.Bookmark{}, bookmarks...)
}

// Count returns the number of stored bookmarks.
func (f *FakeRepository) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookmarks)
}

func (f *FakeRepository) List(_ context.Context) ([]model.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailList {
		return nil, errors.New("list failure")
	}
	out := make([]model.Bookmark, len(f.bookmarks))
	copy(out, f.bookmarks)
	return out, nil
}

func (f *FakeRepository) Get(_ context.Context, id string) (model.Bookmark, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailGet {
		return model.Bookmark{}, false, errors.New("get failure")
	}
	for _, b := range f.bookmarks {
		if b.ID == id {
			return b, true, nil
		}
	}
	return model.Bookmark{}, false, nil
}

func (f *FakeRepository) Add(_ context.Context, bookmark model.Bookmark) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailMutate {
		return errors.New("add failure")
	}
	f.bookmarks = append(f.bookmarks, bookmark)
	return nil
}

func (f *FakeRepository) Update(_ context.Context, bookmark model.Bookmark) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailMutate {
		return errors.New("update failure")
	}
	for i := range f.bookmarks {
		if f.bookmarks[i].ID == bookmark.ID {
			f.bookmarks[i] = bookmark
			return nil
		}
	}
	return nil
}

func (f *FakeRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailMutate {
		return errors.New("delete failure")
	}
	kept := f.bookmarks[:0]
	for _, b := range f.bookmarks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	f.bookmarks = kept
	return nil
}

func (f *FakeRepository) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailMutate {
		return errors.New("clear failure")
	}
	f.bookmarks = []model.Bookmark{}
	return nil
}
