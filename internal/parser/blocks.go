package parser

import (
	"strings"

	"forgelsp/internal/lexer"
)

// blockMarker introduces an embedded script body: code: `...`
const blockMarker = "code:"

// Blocks is the ForgeScript buffer extracted from a host document.
type Blocks struct {
	Code   string // тела всех блоков, склеенные через "\n"
	Offset int    // смещение тела первого блока в исходном документе
	Count  int
}

// ExtractBlocks finds every `code:` marker followed by a backtick-delimited
// body. A body ends at the next unescaped backtick; a body that is never
// closed is not a block. ok is false when there are no bodies at all.
//
// Offsets of the joined buffer map back to the document through the first
// body's offset only, so spans from the second and later bodies land in the
// wrong place.
func ExtractBlocks(doc string) (b Blocks, ok bool) {
	var bodies []string
	pos := 0
	for pos < len(doc) {
		i := strings.Index(doc[pos:], blockMarker)
		if i < 0 {
			break
		}
		p := pos + i + len(blockMarker)
		for p < len(doc) && isSpace(doc[p]) {
			p++
		}
		if p >= len(doc) || doc[p] != '`' {
			pos = pos + i + len(blockMarker)
			continue
		}
		start := p + 1
		end := closingBacktick(doc, start)
		if end < 0 {
			break
		}
		if len(bodies) == 0 {
			b.Offset = start
		}
		bodies = append(bodies, doc[start:end])
		pos = end + 1
	}
	if len(bodies) == 0 {
		return Blocks{}, false
	}
	b.Count = len(bodies)
	b.Code = strings.Join(bodies, "\n")
	return b, true
}

func closingBacktick(doc string, from int) int {
	for i := from; i < len(doc); i++ {
		if doc[i] == '`' && !lexer.IsEscaped(doc, i) {
			return i
		}
	}
	return -1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
