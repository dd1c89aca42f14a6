package intake

import (
	"net/url"
	"strings"
)

// SharedContent is the title/URL pair derived from a raw shared text
// payload.
type SharedContent struct {
	Title string
	URL   string
}

// ExtractShared splits a shared text payload into a title and a URL.
// Browsers typically share "Page Title https://example.com/page"; bare URLs
// fall back to their host as the title, and text without any URL becomes a
// title-only bookmark.
func ExtractShared(text string) SharedContent {
	fields := strings.Fields(text)

	var urlStr string
	var titleParts []string
	for _, f := range fields {
		if urlStr == "" && isHTTPURL(f) {
			urlStr = f
			continue
		}
		titleParts = append(titleParts, f)
	}

	title := strings.Join(titleParts, " ")
	if title == "" && urlStr != "" {
		title = hostOf(urlStr)
	}

	return SharedContent{Title: title, URL: urlStr}
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// hostOf returns the host of a URL without a leading "www.", or the raw
// string when it does not parse.
func hostOf(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}
	return strings.TrimPrefix(u.Host, "www.")
}
