package search_test

import (
	"testing"
	"time"

	"hoard/internal/model"
	"hoard/internal/search"
)

func bm(id, title, url string) model.Bookmark {
	return model.Bookmark{ID: id, Title: title, URL: url, CreatedAt: time.Now()}
}

func TestFilter_MatchesTitleSubstring(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("b1", "Kotlin", "https://kotlinlang.org"),
		bm("b2", "Google", "https://google.com"),
	}

	got := search.Filter(bookmarks, "kot")

	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Title != "Kotlin" {
		t.Errorf("expected Kotlin, got %s", got[0].Title)
	}
}

func TestFilter_MatchesURLSubstring(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("b1", "Search", "https://google.com"),
		bm("b2", "News", "https://news.ycombinator.com"),
	}

	got := search.Filter(bookmarks, "ycombinator")

	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].ID != "b2" {
		t.Errorf("expected b2, got %s", got[0].ID)
	}
}

func TestFilter_CaseInsensitive(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("b1", "GitHub", "https://github.com"),
	}

	for _, query := range []string{"github", "GITHUB", "GitH"} {
		if got := search.Filter(bookmarks, query); len(got) != 1 {
			t.Errorf("query %q: expected 1 match, got %d", query, len(got))
		}
	}
}

func TestFilter_EmptyQueryReturnsAllInOrder(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("b1", "First", "https://a.example"),
		bm("b2", "Second", "https://b.example"),
		bm("b3", "Third", "https://c.example"),
	}

	got := search.Filter(bookmarks, "")

	if len(got) != 3 {
		t.Fatalf("expected full list, got %d", len(got))
	}
	for i, want := range []string{"b1", "b2", "b3"} {
		if got[i].ID != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got[i].ID)
		}
	}
}

func TestFilter_NoMatch(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("b1", "GitHub", "https://github.com"),
	}

	if got := search.Filter(bookmarks, "xyz123"); len(got) != 0 {
		t.Errorf("expected 0 matches, got %d", len(got))
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("b1", "Go by Example", "https://gobyexample.com"),
		bm("b2", "Rust Book", "https://doc.rust-lang.org"),
		bm("b3", "Go Blog", "https://go.dev/blog"),
	}

	got := search.Filter(bookmarks, "go")

	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != "b1" || got[1].ID != "b3" {
		t.Errorf("expected order [b1 b3], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestFuzzy_EmptyQuery(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("b1", "GitHub", "https://github.com"),
	}

	if got := search.Fuzzy(bookmarks, ""); len(got) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(got))
	}
}

func TestFuzzy_RanksBetterMatchFirst(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("b1", "React Router Documentation", "https://reactrouter.com"),
		bm("b2", "Router", "https://router.example.com"),
	}

	got := search.Fuzzy(bookmarks, "router")

	if len(got) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(got))
	}
	if got[0].Bookmark.Title != "Router" {
		t.Errorf("expected 'Router' as first result, got %s", got[0].Bookmark.Title)
	}
}

func TestFuzzy_SubsequenceMatch(t *testing.T) {
	bookmarks := []model.Bookmark{
		bm("b1", "TanStack Router", "https://tanstack.com/router"),
		bm("b2", "React Router", "https://reactrouter.com"),
	}

	got := search.Fuzzy(bookmarks, "tanrou")

	if len(got) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(got))
	}
	if got[0].Bookmark.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router first, got %s", got[0].Bookmark.Title)
	}
}
