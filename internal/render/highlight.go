package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

const (
	defaultHighlightStyle = "github"
	defaultTabWidth       = 4
	// Registered after goldmark's HTML renderer (priority 1000) so the fenced
	// code func replaces the default one.
	highlightPriority = 200
)

// codeHighlighter renders fenced code blocks through chroma. Output uses CSS
// classes, so pages ship the stylesheet from HighlightCSS.
type codeHighlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func newCodeHighlighter(styleName string, tabWidth int) *codeHighlighter {
	if strings.TrimSpace(styleName) == "" {
		styleName = defaultHighlightStyle
	}
	if tabWidth <= 0 {
		tabWidth = defaultTabWidth
	}
	return &codeHighlighter{
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(tabWidth)),
		style:     styles.Get(styleName),
	}
}

func (h *codeHighlighter) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, h.renderFencedCode)
}

func (h *codeHighlighter) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	block, ok := node.(*ast.FencedCodeBlock)
	if !ok {
		return ast.WalkContinue, nil
	}

	var code bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		code.Write(segment.Value(source))
	}
	if err := h.highlight(w, string(block.Language(source)), code.String()); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

func (h *codeHighlighter) highlight(w io.Writer, lang, code string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	tokens, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("highlight %q: %w", lang, err)
	}
	return h.formatter.Format(w, h.style, tokens)
}

// HighlightCSS returns the stylesheet matching highlighted code blocks for
// the named chroma style. An empty name selects the default style.
func HighlightCSS(styleName string) (string, error) {
	h := newCodeHighlighter(styleName, 0)
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("highlight css: %w", err)
	}
	return buf.String(), nil
}
