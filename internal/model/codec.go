package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The bookmark list persists as a flat, field-labeled UTF-8 text blob.
// One record per bookmark, records separated by blank lines, every value
// quoted so titles and notes may contain newlines or any unicode:
//
//	hoard-bookmarks/1
//
//	id: "b1"
//	title: "Kotlin"
//	url: "https://kotlinlang.org"
//	notes: ""
//	created_at: "2025-01-15T10:30:00Z"
//
// Encode then Decode reproduces the list field-for-field.

const codecHeader = "hoard-bookmarks/1"

// EncodeBookmarks serializes a bookmark list into the flat text format.
func EncodeBookmarks(bookmarks []Bookmark) string {
	var b strings.Builder
	b.WriteString(codecHeader)
	b.WriteString("\n")

	for _, bm := range bookmarks {
		b.WriteString("\n")
		writeField(&b, "id", bm.ID)
		writeField(&b, "title", bm.Title)
		writeField(&b, "url", bm.URL)
		writeField(&b, "notes", bm.Notes)
		writeField(&b, "created_at", bm.CreatedAt.Format(time.RFC3339Nano))
	}

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(strconv.Quote(value))
	b.WriteString("\n")
}

// DecodeBookmarks parses the flat text format back into a bookmark list.
// An empty blob decodes to an empty list. Any malformed line is an error;
// callers that want fail-open behavior handle it themselves.
func DecodeBookmarks(blob string) ([]Bookmark, error) {
	if strings.TrimSpace(blob) == "" {
		return []Bookmark{}, nil
	}

	lines := strings.Split(blob, "\n")
	if strings.TrimSpace(lines[0]) != codecHeader {
		return nil, fmt.Errorf("unrecognized header %q", lines[0])
	}

	bookmarks := []Bookmark{}
	var current map[string]string

	flush := func() error {
		if current == nil {
			return nil
		}
		bm, err := bookmarkFromFields(current)
		if err != nil {
			return err
		}
		bookmarks = append(bookmarks, bm)
		current = nil
		return nil
	}

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		label, raw, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("malformed line %q", line)
		}
		value, err := strconv.Unquote(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("malformed value for %q: %w", label, err)
		}

		if current == nil {
			current = map[string]string{}
		}
		current[label] = value
	}

	if err := flush(); err != nil {
		return nil, err
	}

	return bookmarks, nil
}

func bookmarkFromFields(fields map[string]string) (Bookmark, error) {
	id, ok := fields["id"]
	if !ok {
		return Bookmark{}, fmt.Errorf("record missing id field")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return Bookmark{}, fmt.Errorf("record %s: bad created_at: %w", id, err)
	}

	return Bookmark{
		ID:        id,
		Title:     fields["title"],
		URL:       fields["url"],
		Notes:     fields["notes"],
		CreatedAt: createdAt,
	}, nil
}
