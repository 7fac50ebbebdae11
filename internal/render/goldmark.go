package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-worklog/pkg/interfaces"
)

// GoldmarkOptions tunes the goldmark engine.
type GoldmarkOptions struct {
	// Extensions names goldmark extensions to enable (gfm, table, strikethrough,
	// linkify, tasklist, definition, footnote). Empty selects gfm.
	Extensions []string
	HardWraps  bool
	// SafeMode drops raw HTML from the output.
	SafeMode bool
	// Highlight renders fenced code with chroma using HighlightStyle
	// ("github" when empty).
	Highlight      bool
	HighlightStyle string
	TabWidth       int
}

// GoldmarkConverter renders markdown with goldmark. A single engine is built
// up front and reused; goldmark engines are safe for concurrent use.
type GoldmarkConverter struct {
	engine goldmark.Markdown
}

var _ interfaces.Converter = (*GoldmarkConverter)(nil)

// NewGoldmarkConverter constructs a converter for the supplied options.
func NewGoldmarkConverter(opts GoldmarkOptions) *GoldmarkConverter {
	return &GoldmarkConverter{engine: newGoldmarkEngine(opts)}
}

// Convert satisfies interfaces.Converter.
func (c *GoldmarkConverter) Convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("goldmark convert: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func newGoldmarkEngine(opts GoldmarkOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	if opts.Highlight {
		highlighter := newCodeHighlighter(opts.HighlightStyle, opts.TabWidth)
		rendererOptions = append(rendererOptions, renderer.WithNodeRenderers(util.Prioritized(highlighter, highlightPriority)))
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}
