package curate

import (
	"time"

	"github.com/vecsift/vecsift/metadata"
)

// dateLayouts are tried in order against string date fields. Upstream
// feeds are inconsistent about timestamp formats, so parsing is
// best-effort: an unrecognized value simply ranks the row as undated.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123,
	time.RFC822,
}

func parseDate(v metadata.Value) (time.Time, bool) {
	s, ok := v.AsString()
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
