package frontmatter

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
	"gopkg.in/yaml.v3"
)

const marker = "---"

var bom = []byte{0xEF, 0xBB, 0xBF}

// yamlLine extracts the line number yaml.v3 embeds in its error messages.
var yamlLine = regexp.MustCompile(`line (\d+):`)

// Split parses the frontmatter block of content and returns the decoded
// mapping together with the body that follows the closing marker.
// path is used only for error reporting.
func Split(content []byte, path string) (map[string]any, []byte, error) {
	content = bytes.TrimPrefix(content, bom)

	first, rest, _ := cutLine(content)
	if !isMarker(first) {
		return nil, nil, &blogsmith.ParseError{
			FilePath: path,
			Line:     1,
			Message:  "missing opening frontmatter marker",
			Hint:     "The first line of a post must be exactly ---",
		}
	}

	start := len(content) - len(rest)
	for offset := start; offset < len(content); {
		line, next, _ := cutLine(content[offset:])
		if isMarker(line) {
			meta, err := decode(content[start:offset], path)
			if err != nil {
				return nil, nil, err
			}
			return meta, next, nil
		}
		offset = len(content) - len(next)
	}

	return nil, nil, &blogsmith.ParseError{
		FilePath: path,
		Line:     1,
		Message:  "missing closing frontmatter marker",
		Hint:     "End the metadata block with a line containing only ---",
	}
}

// cutLine splits s at the first LF. The returned line keeps any trailing CR.
func cutLine(s []byte) (line, rest []byte, found bool) {
	if i := bytes.IndexByte(s, '\n'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, nil, false
}

func isMarker(line []byte) bool {
	return string(bytes.TrimRight(line, " \t\r")) == marker
}

func decode(block []byte, path string) (map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return nil, yamlError(err, path)
	}

	meta := map[string]any{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return meta, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &blogsmith.ParseError{
			FilePath: path,
			Line:     root.Line + 1,
			Message:  fmt.Sprintf("frontmatter must be a mapping of keys to values, found %s", kindName(root.Kind)),
			Hint:     "Write one key: value pair per line, e.g. title: \"My post\"",
		}
	}

	if err := root.Decode(&meta); err != nil {
		return nil, yamlError(err, path)
	}
	return meta, nil
}

func yamlError(err error, path string) *blogsmith.ParseError {
	pe := &blogsmith.ParseError{
		FilePath: path,
		Message:  "invalid YAML in frontmatter: " + err.Error(),
		Hint:     "Quote values that contain a colon, and indent list items consistently",
	}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			// yaml counts from the first line after the opening marker.
			pe.Line = n + 1
		}
	}
	return pe
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return "a single value"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "an unsupported node"
	}
}

// Write renders meta as a frontmatter block followed by body.
// meta is typically a struct with yaml tags so that key order is stable.
func Write(meta any, body []byte) ([]byte, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(marker + "\n")
	buf.Write(raw)
	buf.WriteString(marker + "\n")
	buf.Write(body)
	return buf.Bytes(), nil
}
