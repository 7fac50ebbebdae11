package interfaces

// LogEntry is one day's work log derived from a single markdown file.
type LogEntry struct {
	// Date is the normalized date string used for ordering (YYYY-MM-DD when
	// the front matter carried a typed date, verbatim otherwise).
	Date string `json:"date"`
	// File is the slash separated path of the source relative to the content root.
	File string `json:"file"`
	// Content is the trimmed markdown body with front matter removed.
	Content string `json:"content"`
}

// LogManifest is the aggregate document consumed by the log pages.
type LogManifest struct {
	LastUpdated string     `json:"lastUpdated"`
	Logs        []LogEntry `json:"logs"`
}

// ArticleEntry is the listing projection of an article summary.
type ArticleEntry struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
}

// ArticleManifest is the aggregate document consumed by the article index.
type ArticleManifest struct {
	LastUpdated string         `json:"lastUpdated"`
	Articles    []ArticleEntry `json:"articles"`
}

// ArticleContent is the per-article document written as <id>.json.
type ArticleContent struct {
	Date    string `json:"date"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

// ArticleBuild carries the result of an article build before anything is
// written: the aggregate manifest and the per-article documents keyed by id.
type ArticleBuild struct {
	Manifest *ArticleManifest
	Contents map[string]ArticleContent
}

// LogSection is a titled block of a log body, rendered to HTML.
type LogSection struct {
	Title   string `json:"title"`
	Icon    string `json:"icon"`
	Content string `json:"content"`
}

// MonthGroup buckets log entries that share a calendar month.
type MonthGroup struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Key   string     `json:"key"`
	Logs  []LogEntry `json:"logs"`
}

// Converter turns a markdown fragment into an HTML fragment.
// Implementations must be safe for concurrent use.
type Converter interface {
	Convert(markdown string) (string, error)
}
