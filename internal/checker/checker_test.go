package checker

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hoard/internal/model"
)

func TestCheckURLs_Statuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	bookmarks := []model.Bookmark{
		{ID: "b1", Title: "OK", URL: srv.URL + "/ok"},
		{ID: "b2", Title: "Gone", URL: srv.URL + "/gone"},
		{ID: "b3", Title: "Broken", URL: srv.URL + "/error"},
	}

	results := CheckURLs(bookmarks, Params{Concurrency: 2, Timeout: 5 * time.Second})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Status != Healthy {
		t.Errorf("expected healthy, got %v (%s)", results[0].Status, results[0].Error)
	}
	if results[1].Status != Dead {
		t.Errorf("expected dead, got %v", results[1].Status)
	}
	if results[2].Status != Unreachable {
		t.Errorf("expected unreachable for 500, got %v", results[2].Status)
	}

	// Results stay in bookmark order regardless of which worker ran them.
	for i, want := range []string{"b1", "b2", "b3"} {
		if results[i].Bookmark.ID != want {
			t.Errorf("result %d: expected %s, got %s", i, want, results[i].Bookmark.ID)
		}
	}
}

func TestCheckURLs_ConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.NotFoundHandler())
	deadURL := srv.URL
	srv.Close()

	results := CheckURLs([]model.Bookmark{{ID: "b1", URL: deadURL}}, Params{
		Concurrency: 1,
		Timeout:     2 * time.Second,
	})

	if results[0].Status != Unreachable {
		t.Errorf("expected unreachable, got %v", results[0].Status)
	}
	if results[0].Error != "Connection refused" {
		t.Errorf("expected normalized error, got %q", results[0].Error)
	}
}

func TestCheckURLs_ExcludedDomain404(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	host := srv.Listener.Addr().String()
	results := CheckURLs([]model.Bookmark{{ID: "b1", URL: srv.URL}}, Params{
		Concurrency:    1,
		Timeout:        5 * time.Second,
		ExcludeDomains: []string{host},
	})

	if results[0].Status != Unreachable {
		t.Errorf("expected unreachable for excluded domain 404, got %v", results[0].Status)
	}
}

func TestCheckURLs_Progress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bookmarks := []model.Bookmark{
		{ID: "b1", URL: srv.URL},
		{ID: "b2", URL: srv.URL},
	}

	var calls int
	CheckURLs(bookmarks, Params{
		Concurrency: 1,
		Timeout:     5 * time.Second,
		OnProgress: func(completed, total int) {
			calls++
			if total != 2 {
				t.Errorf("expected total 2, got %d", total)
			}
		},
	})

	if calls != 2 {
		t.Errorf("expected 2 progress calls, got %d", calls)
	}
}

func TestCheckURLs_Empty(t *testing.T) {
	if got := CheckURLs(nil, Params{}); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
