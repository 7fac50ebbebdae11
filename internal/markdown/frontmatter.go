package markdown

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

const (
	byteOrderMark        = "\ufeff"
	frontMatterDelimiter = "---"
	dateKey              = "date"
	timestampTag         = "!!timestamp"
)

// yamlTimestamp matches the YAML 1.1 timestamp forms: a zero padded date, or
// a date-time with optional fraction and zone.
var yamlTimestamp = regexp.MustCompile(`^(?:[0-9]{4}-[0-9]{2}-[0-9]{2}|[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}(?:[Tt]|[ \t]+)[0-9]{1,2}:[0-9]{2}:[0-9]{2}(?:\.[0-9]*)?(?:[ \t]*Z|[-+][0-9]{1,2}(?::[0-9]{2})?)?)$`)

var delimitedFormat = frontmatter.NewFormat(frontMatterDelimiter, frontMatterDelimiter, decodeFrontMatter)

// FrontMatter holds metadata extracted from a document header. Values are
// strings, string slices (for sequences), or time.Time for a typed date.
type FrontMatter map[string]any

// Has reports whether key is present.
func (fm FrontMatter) Has(key string) bool {
	_, ok := fm[key]
	return ok
}

// String returns the scalar value stored under key.
func (fm FrontMatter) String(key string) (string, bool) {
	value, ok := fm[key].(string)
	return value, ok
}

// Strings returns the sequence stored under key. A scalar is promoted to a
// one element slice.
func (fm FrontMatter) Strings(key string) []string {
	switch value := fm[key].(type) {
	case []string:
		return append([]string(nil), value...)
	case string:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return []string{value}
	default:
		return nil
	}
}

// Time returns the typed date stored under key.
func (fm FrontMatter) Time(key string) (time.Time, bool) {
	value, ok := fm[key].(time.Time)
	return value, ok
}

// ParseFrontMatter splits source into front matter and a trimmed body. The
// block must open on the first line, after an optional byte order mark; any
// other document is returned whole as the body with empty metadata. Lines
// without a separator are skipped and the remaining metadata is still decoded
// as YAML. Metadata that stays undecodable falls back to a line scan of
// "key: value" pairs.
func ParseFrontMatter(source []byte) (FrontMatter, string, error) {
	source = bytes.TrimPrefix(source, []byte(byteOrderMark))
	if !opensBlock(source) {
		return FrontMatter{}, strings.TrimSpace(string(source)), nil
	}

	meta := FrontMatter{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, delimitedFormat)
	if err != nil {
		return FrontMatter{}, strings.TrimSpace(string(source)), nil
	}
	return meta, strings.TrimSpace(string(body)), nil
}

func opensBlock(source []byte) bool {
	first, _, _ := bytes.Cut(source, []byte("\n"))
	return string(bytes.TrimRight(first, "\r")) == frontMatterDelimiter
}

func decodeFrontMatter(data []byte, v any) error {
	target, ok := v.(*FrontMatter)
	if !ok || target == nil {
		return nil
	}
	if *target == nil {
		*target = FrontMatter{}
	}
	if decodeYAML(data, *target) {
		return nil
	}
	if cleaned, dropped := dropMalformedLines(data); dropped && decodeYAML(cleaned, *target) {
		return nil
	}
	scanLines(data, *target)
	return nil
}

// dropMalformedLines removes top level lines that can not belong to a YAML
// mapping: no key separator, not a sequence item, not indented, not a comment.
func dropMalformedLines(data []byte) ([]byte, bool) {
	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "",
			strings.Contains(line, ":"),
			strings.HasPrefix(line, " "), strings.HasPrefix(line, "\t"),
			strings.HasPrefix(trimmed, "- "), trimmed == "-",
			strings.HasPrefix(trimmed, "#"):
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return data, false
	}
	return []byte(strings.Join(kept, "\n")), true
}

func decodeYAML(data []byte, out FrontMatter) bool {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	if doc.Kind == 0 {
		return true
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return false
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return false
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := strings.TrimSpace(mapping.Content[i].Value)
		if key == "" {
			continue
		}
		value := mapping.Content[i+1]
		switch value.Kind {
		case yaml.ScalarNode:
			if key == dateKey {
				if ts, ok := decodeTimestamp(value); ok {
					out[key] = ts
					continue
				}
			}
			out[key] = value.Value
		case yaml.SequenceNode:
			items := make([]string, 0, len(value.Content))
			for _, item := range value.Content {
				if item.Kind == yaml.ScalarNode {
					items = append(items, item.Value)
				}
			}
			out[key] = items
		case yaml.AliasNode:
			if value.Alias != nil && value.Alias.Kind == yaml.ScalarNode {
				out[key] = value.Alias.Value
			}
		}
	}
	return true
}

func decodeTimestamp(node *yaml.Node) (time.Time, bool) {
	if node.ShortTag() != timestampTag {
		return time.Time{}, false
	}
	if !yamlTimestamp.MatchString(node.Value) {
		return time.Time{}, false
	}
	var ts time.Time
	if err := node.Decode(&ts); err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func scanLines(data []byte, out FrontMatter) {
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
}
