package feed

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// ArticleID derives the stable article identifier from its link (or
// title when the link is missing). The hash runs over UTF-16 code
// units so identifiers stay stable for titles with emoji or other
// non-ASCII text.
func ArticleID(s string) string {
	var hash int32
	for _, unit := range utf16.Encode([]rune(s)) {
		hash = (hash << 5) - hash + int32(unit)
	}

	n := int64(hash)
	if n < 0 {
		n = -n
	}
	return "n" + strconv.FormatInt(n, 36)
}

// StripHTML reduces an HTML fragment to its text content. Malformed
// markup falls back to the raw string.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

// ParseDate parses the assorted date formats the sources emit. An
// unparseable date becomes the zero time, which sorts last.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
