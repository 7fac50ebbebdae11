package markdown

import (
	"path"
	"strings"
)

// DateLayout is the canonical rendering of typed front matter dates. It is the
// only form for which lexical order equals chronological order.
const DateLayout = "2006-01-02"

// ArticleFallbackDate is assigned to articles without a date. It sorts ahead
// of every real date under the descending manifest order.
const ArticleFallbackDate = "2099-12-31"

// NormalizeDate resolves the date of an entry: a typed date is formatted with
// DateLayout, a non-empty string is used verbatim, anything else yields fallback.
func NormalizeDate(fm FrontMatter, fallback string) string {
	if ts, ok := fm.Time(dateKey); ok {
		return ts.Format(DateLayout)
	}
	if value, ok := fm.String(dateKey); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// BaseName returns the file name of p without its extension.
func BaseName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
