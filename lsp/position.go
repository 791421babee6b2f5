package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/esparse/js/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// document converts parser positions, whose columns count UTF-8 bytes, to
// LSP positions, whose characters count UTF-16 code units. Lines break
// where the parser breaks them: LF, CR, CRLF, U+2028 and U+2029.
type document struct {
	content    string
	lineStarts []int
}

func newDocument(content []byte) *document {
	d := &document{content: string(content), lineStarts: []int{0}}
	for i := 0; i < len(d.content); {
		r, size := utf8.DecodeRuneInString(d.content[i:])
		i += size
		switch r {
		case '\r':
			if i < len(d.content) && d.content[i] == '\n' {
				i++
			}
			d.lineStarts = append(d.lineStarts, i)
		case '\n', '\u2028', '\u2029':
			d.lineStarts = append(d.lineStarts, i)
		}
	}
	return d
}

func (d *document) position(p parser.Position) protocol.Position {
	line := 0
	if p.Line > 0 {
		line = p.Line - 1
	}
	char := p.Column
	if line < len(d.lineStarts) {
		start := d.lineStarts[line]
		end := min(start+p.Column, len(d.content))
		char = utf16Len(d.content[start:end])
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func (d *document) rangeOf(start, end parser.Position) protocol.Range {
	return protocol.Range{Start: d.position(start), End: d.position(end)}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
