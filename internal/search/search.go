package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"hoard/internal/model"
)

// Filter returns the subsequence of bookmarks whose title or URL contains
// the query case-insensitively, preserving order. An empty query means no
// filter: the full list is returned.
func Filter(bookmarks []model.Bookmark, query string) []model.Bookmark {
	if query == "" {
		return bookmarks
	}

	q := strings.ToLower(query)
	result := []model.Bookmark{}
	for _, b := range bookmarks {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.URL), q) {
			result = append(result, b)
		}
	}
	return result
}

// Result represents a fuzzy search match.
type Result struct {
	Bookmark       model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkTitles implements fuzzy.Source for a bookmark slice.
type bookmarkTitles []model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// Fuzzy searches bookmarks by title using fuzzy matching.
// Returns results sorted by match score (best first).
func Fuzzy(bookmarks []model.Bookmark, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, bookmarkTitles(bookmarks))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
