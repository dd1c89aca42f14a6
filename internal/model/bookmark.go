package model

import "time"

// Bookmark represents a saved URL with metadata.
// The ID is immutable after creation; every other field may be
// replaced wholesale through an update.
type Bookmark struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title string
	URL   string
	Notes string
}

// NewBookmark creates a Bookmark with generated UUID and creation timestamp.
func NewBookmark(params NewBookmarkParams) Bookmark {
	return Bookmark{
		ID:        GenerateUUID(),
		Title:     params.Title,
		URL:       params.URL,
		Notes:     params.Notes,
		CreatedAt: time.Now(),
	}
}
