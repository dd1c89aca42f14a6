package intake_test

import (
	"testing"
	"time"

	"hoard/internal/intake"
	"hoard/internal/logger"
)

func TestQueue_AtMostOnePendingShare(t *testing.T) {
	q := intake.NewQueue(logger.Nop())

	q.PublishShare("A")
	q.PublishShare("B")

	if got := q.Share().Get(); got != "B" {
		t.Errorf("expected latest value %q, got %q", "B", got)
	}

	q.ConsumeShare()
	if got := q.Share().Get(); got != "" {
		t.Errorf("expected empty slot after consume, got %q", got)
	}
}

func TestQueue_AtMostOnePendingDeeplink(t *testing.T) {
	q := intake.NewQueue(logger.Nop())

	q.PublishDeeplink("id-1")
	q.PublishDeeplink("id-2")

	if got := q.Deeplink().Get(); got != "id-2" {
		t.Errorf("expected latest value %q, got %q", "id-2", got)
	}

	q.ConsumeDeeplink()
	if got := q.Deeplink().Get(); got != "" {
		t.Errorf("expected empty slot after consume, got %q", got)
	}
}

func TestQueue_EmptyPayloadIgnored(t *testing.T) {
	q := intake.NewQueue(logger.Nop())

	q.PublishShare("kept")
	q.PublishShare("")
	if got := q.Share().Get(); got != "kept" {
		t.Errorf("empty publish overwrote slot: got %q", got)
	}

	q.PublishDeeplink("")
	if got := q.Deeplink().Get(); got != "" {
		t.Errorf("expected deeplink slot to stay empty, got %q", got)
	}
}

func TestQueue_SlotIsObservable(t *testing.T) {
	q := intake.NewQueue(logger.Nop())

	ch, cancel := q.Share().Subscribe()
	defer cancel()

	q.PublishShare("shared text")

	select {
	case got := <-ch:
		if got != "shared text" {
			t.Errorf("expected %q, got %q", "shared text", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for slot change")
	}
}

func TestExtractShared(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantTitle string
		wantURL   string
	}{
		{
			name:      "title then url",
			text:      "Go Blog https://go.dev/blog",
			wantTitle: "Go Blog",
			wantURL:   "https://go.dev/blog",
		},
		{
			name:      "url then title",
			text:      "https://go.dev/blog Go Blog",
			wantTitle: "Go Blog",
			wantURL:   "https://go.dev/blog",
		},
		{
			name:      "bare url falls back to host",
			text:      "https://www.example.com/some/page",
			wantTitle: "example.com",
			wantURL:   "https://www.example.com/some/page",
		},
		{
			name:      "no url at all",
			text:      "just a note to self",
			wantTitle: "just a note to self",
			wantURL:   "",
		},
		{
			name:      "whitespace padding",
			text:      "  Padded \t https://example.com  ",
			wantTitle: "Padded",
			wantURL:   "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intake.ExtractShared(tt.text)
			if got.Title != tt.wantTitle {
				t.Errorf("expected title %q, got %q", tt.wantTitle, got.Title)
			}
			if got.URL != tt.wantURL {
				t.Errorf("expected url %q, got %q", tt.wantURL, got.URL)
			}
		})
	}
}
