package retrieval

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultChunkSize is the soft cap, in runes, for a passage.
const DefaultChunkSize = 500

var markdown = goldmark.New()

// SplitParagraphs breaks text into chunks of at most maxLen runes.
// Each non-blank source line is a unit; units are joined with a
// space while they fit. A unit longer than maxLen is split at word boundaries.
func SplitParagraphs(src string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultChunkSize
	}

	var chunks []string
	var buf string
	flush := func() {
		if buf != "" {
			chunks = append(chunks, buf)
			buf = ""
		}
	}

	for _, unit := range paragraphUnits(src) {
		if utf8.RuneCountInString(unit) > maxLen {
			flush()
			chunks = append(chunks, splitWords(unit, maxLen)...)
			continue
		}
		if buf == "" {
			buf = unit
			continue
		}
		if utf8.RuneCountInString(buf)+1+utf8.RuneCountInString(unit) <= maxLen {
			buf += " " + unit
			continue
		}
		flush()
		buf = unit
	}
	flush()
	return chunks
}

// paragraphUnits returns one trimmed unit per non-blank source line. Lines
// inside a markdown block contribute the block's text with markers removed;
// lines no block claims, such as link definitions and rules, are kept as-is.
func paragraphUnits(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	if strings.TrimSpace(src) == "" {
		return nil
	}

	content := []byte(src)
	starts := lineStarts(content)
	parsed := make([]string, len(starts))
	covered := make([]bool, len(starts))

	doc := markdown.Parser().Parse(text.NewReader(content))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := n.Lines()
		if lines == nil || lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := sort.Search(len(starts), func(k int) bool { return starts[k] > seg.Start }) - 1
			if line < 0 {
				continue
			}
			covered[line] = true
			parsed[line] += string(seg.Value(content))
		}
		return ast.WalkSkipChildren, nil
	})

	var units []string
	for i, start := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		line := string(content[start:end])
		if covered[i] {
			line = parsed[i]
		}
		if line = strings.TrimSpace(line); line != "" {
			units = append(units, line)
		}
	}
	return units
}

// lineStarts returns the byte offset of every line in content.
func lineStarts(content []byte) []int {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// splitWords packs words into pieces of at most maxLen runes, hard-cutting
// any single word that is longer.
func splitWords(unit string, maxLen int) []string {
	var pieces []string
	var buf []rune
	for _, word := range strings.Fields(unit) {
		w := []rune(word)
		for len(w) > maxLen {
			if len(buf) > 0 {
				pieces = append(pieces, string(buf))
				buf = nil
			}
			pieces = append(pieces, string(w[:maxLen]))
			w = w[maxLen:]
		}
		if len(w) == 0 {
			continue
		}
		switch {
		case len(buf) == 0:
			buf = w
		case len(buf)+1+len(w) <= maxLen:
			buf = append(append(buf, ' '), w...)
		default:
			pieces = append(pieces, string(buf))
			buf = w
		}
	}
	if len(buf) > 0 {
		pieces = append(pieces, string(buf))
	}
	return pieces
}
