package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-worklog/pkg/interfaces"
)

const (
	sectionMarker      = "## "
	defaultSectionIcon = "📋"
)

var sectionIcons = map[string]string{
	"工作情况": "✅",
	"详细记录": "📝",
	"备注":   "📌",
}

// IconFor returns the glyph shown next to a section title.
func IconFor(title string) string {
	if icon, ok := sectionIcons[title]; ok {
		return icon
	}
	return defaultSectionIcon
}

// SplitSections partitions a log body on level-2 headings and renders each
// section body with conv. Text before the first heading is dropped and a body
// without headings yields no sections. Headings inside fenced code do not
// start a section.
func SplitSections(body string, conv interfaces.Converter) ([]interfaces.LogSection, error) {
	if conv == nil {
		conv = sectionConverter
	}

	sections := []interfaces.LogSection{}
	var (
		title   string
		content []string
		open    bool
		inFence bool
	)

	closeSection := func() error {
		if !open {
			return nil
		}
		text := strings.Trim(strings.Join(content, "\n"), "\n")
		if title == "" && strings.TrimSpace(text) == "" {
			return nil
		}
		rendered, err := conv.Convert(text)
		if err != nil {
			return fmt.Errorf("render section %q: %w", title, err)
		}
		sections = append(sections, interfaces.LogSection{
			Title:   title,
			Icon:    IconFor(title),
			Content: rendered,
		})
		return nil
	}

	for _, line := range strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			inFence = !inFence
		}
		if !inFence && strings.HasPrefix(line, sectionMarker) {
			if err := closeSection(); err != nil {
				return nil, err
			}
			title = strings.TrimSpace(line[len(sectionMarker):])
			content = nil
			open = true
			continue
		}
		if open {
			content = append(content, line)
		}
	}
	if err := closeSection(); err != nil {
		return nil, err
	}
	return sections, nil
}

// ParseLogContent splits and renders a log body with the bespoke converter,
// one paragraph per text line.
func ParseLogContent(body string) []interfaces.LogSection {
	sections, _ := SplitSections(body, sectionConverter)
	return sections
}
