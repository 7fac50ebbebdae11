package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-slug"
)

const (
	summaryMinRunes      = 50
	summaryMaxRunes      = 300
	summaryFallbackRunes = 200
	tagsKey              = "tags"
	urlKey               = "url"
)

var titlePattern = regexp.MustCompile(`(?m)^# (.+)$`)

// ArticleID derives the public identifier of an article from its path.
func ArticleID(p string) string {
	return BaseName(p)
}

// IsSlugID reports whether id already satisfies the slug rules used for
// routes. Non-slug ids are still accepted.
func IsSlugID(id string) bool {
	return slug.IsValid(id)
}

// InferTitle returns the text of the first level-1 heading, or fallback.
func InferTitle(body, fallback string) string {
	match := titlePattern.FindStringSubmatch(body)
	if match == nil {
		return fallback
	}
	title := strings.TrimSpace(match[1])
	if title == "" {
		return fallback
	}
	return title
}

// InferSummary returns the first line of 50 to 300 characters that does not
// start with a heading marker. When no line qualifies the first 200
// characters of the body are used.
func InferSummary(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n := utf8.RuneCountInString(line)
		if n >= summaryMinRunes && n <= summaryMaxRunes {
			return line
		}
	}
	return truncateRunes(body, summaryFallbackRunes)
}

// Tags returns the front matter tags, never nil.
func Tags(fm FrontMatter) []string {
	tags := fm.Strings(tagsKey)
	if tags == nil {
		return []string{}
	}
	return tags
}

// SourceURL returns the optional link to the summarized article.
func SourceURL(fm FrontMatter) string {
	value, _ := fm.String(urlKey)
	return strings.TrimSpace(value)
}

func truncateRunes(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	count := 0
	for i := range value {
		if count == limit {
			return value[:i]
		}
		count++
	}
	return value
}
