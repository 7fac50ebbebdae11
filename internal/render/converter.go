package render

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-worklog/pkg/interfaces"
)

// ParagraphMode selects how loose text lines become paragraphs.
type ParagraphMode int

const (
	// ParagraphBlocks wraps each blank-line separated run of text in one <p>.
	ParagraphBlocks ParagraphMode = iota
	// ParagraphLines wraps every text line in its own <p>.
	ParagraphLines
)

const (
	fenceMarker = "```"
	htmlPrefix  = "<"
)

var (
	headingPattern    = regexp.MustCompile(`^(#{1,4}) (.+)$`)
	separatorPattern  = regexp.MustCompile(`^\|[-|:\s]+\|$`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern     = regexp.MustCompile(`\*([^*]+)\*`)
)

// LiteOption configures a LiteConverter.
type LiteOption func(*LiteConverter)

// WithParagraphMode overrides the paragraph grouping (ParagraphBlocks by default).
func WithParagraphMode(mode ParagraphMode) LiteOption {
	return func(c *LiteConverter) {
		c.paragraphs = mode
	}
}

// LiteConverter renders headers, emphasis, inline and fenced code, pipe
// tables, dash lists and paragraphs. It is stateless and safe for concurrent use.
type LiteConverter struct {
	paragraphs ParagraphMode
}

var _ interfaces.Converter = (*LiteConverter)(nil)

// NewLiteConverter constructs a converter with the supplied options.
func NewLiteConverter(opts ...LiteOption) *LiteConverter {
	c := &LiteConverter{paragraphs: ParagraphBlocks}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Convert satisfies interfaces.Converter. It never fails.
func (c *LiteConverter) Convert(markdown string) (string, error) {
	return c.ToHTML(markdown), nil
}

// ToHTML renders markdown into an HTML fragment.
func (c *LiteConverter) ToHTML(markdown string) string {
	w := &blockWriter{mode: c.paragraphs}
	lines := strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if w.inFence {
			if strings.HasPrefix(trimmed, fenceMarker) {
				w.closeFence()
				continue
			}
			w.code = append(w.code, line)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, fenceMarker):
			w.flush()
			w.inFence = true
		case trimmed == "":
			w.flush()
		case startsTable(lines, i):
			w.flush()
			i = w.table(lines, i) - 1
		case headingPattern.MatchString(line):
			w.flush()
			m := headingPattern.FindStringSubmatch(line)
			level := strconv.Itoa(len(m[1]))
			w.emit("<h" + level + ">" + renderInline(strings.TrimSpace(m[2])) + "</h" + level + ">")
		case isListItem(line):
			w.flushParagraph()
			w.items = append(w.items, renderInline(strings.TrimSpace(line[2:])))
		default:
			w.flushList()
			w.text(trimmed)
		}
	}

	if w.inFence {
		w.closeFence()
	}
	w.flush()
	return strings.Join(w.out, "\n")
}

// MarkdownToHTML renders a whole document with paragraph blocks.
func MarkdownToHTML(markdown string) string {
	return defaultConverter.ToHTML(markdown)
}

var (
	defaultConverter = NewLiteConverter()
	sectionConverter = NewLiteConverter(WithParagraphMode(ParagraphLines))
)

type blockWriter struct {
	mode    ParagraphMode
	out     []string
	para    []string
	items   []string
	code    []string
	inFence bool
}

func (w *blockWriter) emit(block string) {
	w.out = append(w.out, block)
}

// text collects loose text. Lines that already open with a tag are raw HTML
// and are never wrapped in a paragraph.
func (w *blockWriter) text(line string) {
	if w.mode == ParagraphLines {
		if strings.HasPrefix(line, htmlPrefix) {
			w.emit(line)
			return
		}
		w.emit("<p>" + renderInline(line) + "</p>")
		return
	}
	w.para = append(w.para, line)
}

func (w *blockWriter) flush() {
	w.flushParagraph()
	w.flushList()
}

func (w *blockWriter) flushParagraph() {
	if len(w.para) == 0 {
		return
	}
	block := strings.Join(w.para, "\n")
	if strings.HasPrefix(block, htmlPrefix) {
		w.emit(block)
	} else {
		w.emit("<p>" + renderInline(block) + "</p>")
	}
	w.para = nil
}

func (w *blockWriter) flushList() {
	if len(w.items) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range w.items {
		b.WriteString("<li>")
		b.WriteString(item)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	w.emit(b.String())
	w.items = nil
}

func (w *blockWriter) closeFence() {
	w.emit("<pre><code>" + html.EscapeString(strings.Join(w.code, "\n")) + "</code></pre>")
	w.code = nil
	w.inFence = false
}

// table consumes the table starting at lines[start] and returns the index of
// the first line after it.
func (w *blockWriter) table(lines []string, start int) int {
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, cell := range splitCells(lines[start]) {
		b.WriteString("<th>" + renderInline(cell) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")

	i := start + 2
	for ; i < len(lines) && isTableRow(lines[i]); i++ {
		b.WriteString("<tr>")
		for _, cell := range splitCells(lines[i]) {
			b.WriteString("<td>" + renderInline(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	w.emit(b.String())
	return i
}

func startsTable(lines []string, i int) bool {
	if i+2 >= len(lines) {
		return false
	}
	return isTableRow(lines[i]) &&
		separatorPattern.MatchString(strings.TrimSpace(lines[i+1])) &&
		isTableRow(lines[i+2])
}

func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return len(trimmed) >= 2 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

func splitCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "|"), "|")
	// Empty cells are dropped, so "|A||B|" is a two column row.
	cells := make([]string, 0, strings.Count(trimmed, "|")+1)
	for _, cell := range strings.Split(trimmed, "|") {
		if cell = strings.TrimSpace(cell); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

func isListItem(line string) bool {
	return strings.HasPrefix(line, "- ") && strings.TrimSpace(line[2:]) != ""
}

// renderInline applies code spans first so their contents are never touched
// by the emphasis rules.
func renderInline(text string) string {
	matches := inlineCodePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return renderEmphasis(text)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(renderEmphasis(text[last:m[0]]))
		b.WriteString("<code>")
		b.WriteString(html.EscapeString(text[m[2]:m[3]]))
		b.WriteString("</code>")
		last = m[1]
	}
	b.WriteString(renderEmphasis(text[last:]))
	return b.String()
}

func renderEmphasis(text string) string {
	text = boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
	return italicPattern.ReplaceAllString(text, "<em>$1</em>")
}
