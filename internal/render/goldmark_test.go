package render

import (
	"strings"
	"testing"
)

func TestGoldmarkConverter_GFMTable(t *testing.T) {
	conv := NewGoldmarkConverter(GoldmarkOptions{})

	got, err := conv.Convert("|A|B|\n|-|-|\n|1|2|\n")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<th>A</th>") || !strings.Contains(got, "<td>2</td>") {
		t.Fatalf("expected rendered table, got %q", got)
	}
}

func TestGoldmarkConverter_SafeMode(t *testing.T) {
	conv := NewGoldmarkConverter(GoldmarkOptions{SafeMode: true})

	got, err := conv.Convert("<script>alert(1)</script>\n\ntext")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected raw html to be omitted, got %q", got)
	}
}

func TestGoldmarkConverter_SectionSplitting(t *testing.T) {
	sections, err := SplitSections("## 工作情况\n- task A\n- task B", NewGoldmarkConverter(GoldmarkOptions{}))
	if err != nil {
		t.Fatalf("SplitSections: %v", err)
	}
	if len(sections) != 1 || strings.Count(sections[0].Content, "<li>") != 2 {
		t.Fatalf("unexpected sections %#v", sections)
	}
}

func TestCollectExtensions(t *testing.T) {
	if got := collectExtensions(nil); len(got) != 1 {
		t.Fatalf("expected gfm default, got %d", len(got))
	}
	if got := collectExtensions([]string{"table", "TABLE", "unknown", " "}); len(got) != 1 {
		t.Fatalf("expected deduplicated known extensions, got %d", len(got))
	}
}

func TestGoldmarkConverter_HighlightsFencedCode(t *testing.T) {
	source := "```go\nfunc main() {}\n```"

	plain, err := NewGoldmarkConverter(GoldmarkOptions{}).Convert(source)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(plain, `<code class="language-go">`) {
		t.Fatalf("expected plain fenced code without highlighting, got %q", plain)
	}

	highlighted, err := NewGoldmarkConverter(GoldmarkOptions{Highlight: true}).Convert(source)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(highlighted, `class="chroma"`) {
		t.Fatalf("expected chroma markup, got %q", highlighted)
	}
	if strings.Contains(highlighted, "language-go") {
		t.Fatalf("expected default fenced renderer to be replaced, got %q", highlighted)
	}
	if !strings.Contains(highlighted, "main") {
		t.Fatalf("expected code text to survive, got %q", highlighted)
	}
}

func TestHighlightCSS(t *testing.T) {
	css, err := HighlightCSS("")
	if err != nil {
		t.Fatalf("HighlightCSS: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Fatalf("expected chroma classes, got %q", css)
	}
}
