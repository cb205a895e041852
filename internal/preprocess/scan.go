// Package preprocess expands inline documentation tags in source files.
package preprocess

import (
	"bytes"
	"log/slog"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/cubahno/restdoc/pkg/taglet"
)

var tagOpen = []byte("{@")

// Occurrence is an inline tag {@name text} found in a file.
// Start and End are the byte offsets of the opening and one past the closing brace.
type Occurrence struct {
	TagName string
	Body    string
	Pos     taglet.Position
	Start   int
	End     int
}

func (o Occurrence) Name() string {
	return o.TagName
}

func (o Occurrence) Text() string {
	return o.Body
}

func (o Occurrence) Position() taglet.Position {
	return o.Pos
}

// Scan finds the inline tags named names in content, in order.
// Braces inside the tag text must balance. Tags without a closing brace are skipped with a warning.
func Scan(file string, content []byte, names ...string) []Occurrence {
	var res []Occurrence

	offset := 0
	for {
		i := bytes.Index(content[offset:], tagOpen)
		if i < 0 {
			return res
		}
		start := offset + i
		offset = start + len(tagOpen)

		nameEnd := offset
		for nameEnd < len(content) && content[nameEnd] != '}' && !isSpace(content[nameEnd]) {
			nameEnd++
		}
		name := string(content[offset:nameEnd])
		if !slices.Contains(names, name) {
			continue
		}

		closing := matchBrace(content, start)
		if closing < 0 {
			slog.Warn("Unterminated tag", "tag", name, "position", position(file, content, start).String())
			continue
		}

		res = append(res, Occurrence{
			TagName: name,
			Body:    string(bytes.TrimSpace(content[nameEnd:closing])),
			Pos:     position(file, content, start),
			Start:   start,
			End:     closing + 1,
		})
		offset = closing + 1
	}
}

// matchBrace returns the index of the brace closing the one at start, or -1.
func matchBrace(content []byte, start int) int {
	depth := 0
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// position returns the 1-based line and column of offset. Columns count runes.
func position(file string, content []byte, offset int) taglet.Position {
	before := content[:offset]
	lineStart := bytes.LastIndexByte(before, '\n') + 1

	return taglet.Position{
		File:   file,
		Line:   bytes.Count(before, []byte{'\n'}) + 1,
		Column: utf8.RuneCount(before[lineStart:]) + 1,
	}
}

func isSpace(b byte) bool {
	return b < utf8.RuneSelf && unicode.IsSpace(rune(b))
}
