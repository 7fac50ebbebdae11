package markdown

import (
	"fmt"
	"io/fs"
)

// Document is a parsed markdown source.
type Document struct {
	// Path is the slash separated location relative to the content root.
	Path        string
	FrontMatter FrontMatter
	// Body is the trimmed markdown without the front matter block.
	Body string
}

// BuildDocument parses raw file content read from path.
func BuildDocument(path string, source []byte) (*Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}
	return &Document{
		Path:        path,
		FrontMatter: fm,
		Body:        body,
	}, nil
}

// LoadDocument reads and parses a single markdown file from fsys.
func LoadDocument(fsys fs.FS, path string) (*Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("markdown read %s: %w", path, err)
	}
	return BuildDocument(path, data)
}

// LogDate resolves the log pipeline date, falling back to the file name.
func (d *Document) LogDate() string {
	return NormalizeDate(d.FrontMatter, BaseName(d.Path))
}

// ArticleDate resolves the article pipeline date, falling back to fallback
// or ArticleFallbackDate when fallback is empty.
func (d *Document) ArticleDate(fallback string) string {
	if fallback == "" {
		fallback = ArticleFallbackDate
	}
	return NormalizeDate(d.FrontMatter, fallback)
}
