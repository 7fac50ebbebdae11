package render

import (
	"strings"
	"testing"
)

func TestMarkdownToHTML_Constructs(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "table",
			input: "|A|B|\n|-|-|\n|1|2|\n",
			want:  "<table><thead><tr><th>A</th><th>B</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>",
		},
		{
			name:  "headings",
			input: "# One\n## Two\n### Three\n#### Four",
			want:  "<h1>One</h1>\n<h2>Two</h2>\n<h3>Three</h3>\n<h4>Four</h4>",
		},
		{
			name:  "fifth level is text",
			input: "##### Five",
			want:  "<p>##### Five</p>",
		},
		{
			name:  "emphasis",
			input: "a **bold** and *italic* word",
			want:  "<p>a <strong>bold</strong> and <em>italic</em> word</p>",
		},
		{
			name:  "inline code protects emphasis",
			input: "run `a*b*c` now",
			want:  "<p>run <code>a*b*c</code> now</p>",
		},
		{
			name:  "fenced code is literal",
			input: "```go\nx := *p\n**not bold** `tick` <b>\n```",
			want:  "<pre><code>x := *p\n**not bold** `tick` &lt;b&gt;</code></pre>",
		},
		{
			name:  "unclosed fence runs to end",
			input: "```\n- not a list",
			want:  "<pre><code>- not a list</code></pre>",
		},
		{
			name:  "list",
			input: "- one\n- **two**",
			want:  "<ul><li>one</li><li><strong>two</strong></li></ul>",
		},
		{
			name:  "blank line splits lists",
			input: "- one\n\n- two",
			want:  "<ul><li>one</li></ul>\n<ul><li>two</li></ul>",
		},
		{
			name:  "paragraph blocks",
			input: "first line\nsecond line\n\nnext block",
			want:  "<p>first line\nsecond line</p>\n<p>next block</p>",
		},
		{
			name:  "pipe line without separator is text",
			input: "|just|pipes|",
			want:  "<p>|just|pipes|</p>",
		},
		{
			name:  "empty cells dropped",
			input: "|A||B|\n|-|-|-|\n|1||2|",
			want:  "<table><thead><tr><th>A</th><th>B</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>",
		},
		{
			name:  "raw html block is not wrapped",
			input: "<details><summary>x</summary>",
			want:  "<details><summary>x</summary>",
		},
		{
			name:  "raw html between paragraphs",
			input: "intro\n\n<div>\ninside\n</div>\n\noutro",
			want:  "<p>intro</p>\n<div>\ninside\n</div>\n<p>outro</p>",
		},
		{
			name:  "empty",
			input: "   \n\n",
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MarkdownToHTML(tc.input); got != tc.want {
				t.Fatalf("unexpected html\nwant: %q\ngot:  %q", tc.want, got)
			}
		})
	}
}

func TestLiteConverter_ParagraphLines(t *testing.T) {
	conv := NewLiteConverter(WithParagraphMode(ParagraphLines))

	got, err := conv.Convert("first\nsecond\n- item\nthird")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "<p>first</p>\n<p>second</p>\n<ul><li>item</li></ul>\n<p>third</p>"
	if got != want {
		t.Fatalf("unexpected html\nwant: %q\ngot:  %q", want, got)
	}
}

func TestMarkdownToHTML_TableBetweenParagraphs(t *testing.T) {
	input := "intro\n| Task | Hours |\n| --- | :---: |\n| review | 2 |\n| deploy | 1 |\noutro"
	got := MarkdownToHTML(input)

	if !strings.HasPrefix(got, "<p>intro</p>\n<table>") {
		t.Fatalf("expected paragraph before table, got %q", got)
	}
	if strings.Count(got, "<tr>") != 3 {
		t.Fatalf("expected header and two body rows, got %q", got)
	}
	if !strings.HasSuffix(got, "</table>\n<p>outro</p>") {
		t.Fatalf("expected paragraph after table, got %q", got)
	}
}

func TestMarkdownToHTML_CRLF(t *testing.T) {
	if got := MarkdownToHTML("# Title\r\n\r\ntext"); got != "<h1>Title</h1>\n<p>text</p>" {
		t.Fatalf("unexpected html %q", got)
	}
}
