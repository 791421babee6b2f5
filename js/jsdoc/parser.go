package jsdoc

import (
	"strings"
	"unicode"
)

// Parser is a recursive-descent parser for JSDoc comments.
type Parser struct {
	input []rune
	pos   int
	len   int
	start int // first rune after the comment opener
}

// Parse parses a doc comment. The comment may be given with its /** and */
// delimiters or, as the JavaScript parser records it, starting at the
// second '*'.
func Parse(comment string) *DocComment {
	p := &Parser{
		input: []rune(comment),
	}
	p.len = len(p.input)
	return p.parseDocComment()
}

func (p *Parser) parseDocComment() *DocComment {
	p.skipCommentStart()

	doc := &DocComment{}
	doc.Body = p.parseContent()
	doc.Tags = p.parseBlockTags()

	return doc
}

func (p *Parser) skipCommentStart() {
	p.skipWhitespace()
	if p.match("/**") {
		p.advance(3)
	} else if p.peek() == '*' && p.peekAt(1) != '/' {
		p.advance(1)
	}
	p.skipHorizontalWhitespace()
	p.start = p.pos
}

// skipLinePrefix skips indentation and a single leading '*'.
func (p *Parser) skipLinePrefix() {
	p.skipHorizontalWhitespace()
	if p.peek() == '*' && p.peekAt(1) != '/' {
		p.advance(1)
		if p.peek() == ' ' {
			p.advance(1)
		}
	}
}

// parseContent reads description text and inline tags up to the next
// block tag or the end of the comment.
func (p *Parser) parseContent() []Node {
	var nodes []Node
	var textBuf strings.Builder

	flushText := func() {
		if textBuf.Len() > 0 {
			nodes = append(nodes, Text{Content: textBuf.String()})
			textBuf.Reset()
		}
	}

	for p.pos < p.len {
		ch := p.peek()

		if ch == '*' && p.peekAt(1) == '/' {
			break
		}
		if p.isAtBlockTag() {
			break
		}

		switch ch {
		case '\n', '\r':
			textBuf.WriteRune('\n')
			p.advance(1)
			if ch == '\r' && p.peek() == '\n' {
				p.advance(1)
			}
			p.skipLinePrefix()

		case '{':
			if p.peekAt(1) == '@' {
				flushText()
				nodes = append(nodes, p.parseInlineTag())
			} else {
				textBuf.WriteRune(ch)
				p.advance(1)
			}

		default:
			textBuf.WriteRune(ch)
			p.advance(1)
		}
	}

	flushText()
	return nodes
}

// isAtBlockTag reports whether an '@' at the current position is the
// first thing on its line, ignoring the line prefix.
func (p *Parser) isAtBlockTag() bool {
	if p.peek() != '@' {
		return false
	}
	for i := p.pos - 1; i >= p.start; i-- {
		switch p.input[i] {
		case '\n', '\r':
			return true
		case ' ', '\t':
			continue
		case '*':
			j := i - 1
			for j >= p.start && (p.input[j] == ' ' || p.input[j] == '\t') {
				j--
			}
			return j < p.start || p.input[j] == '\n' || p.input[j] == '\r'
		default:
			return false
		}
	}
	return true
}

func (p *Parser) parseInlineTag() Node {
	p.advance(2)
	tagName := p.readTagName()
	p.skipHorizontalWhitespace()

	var node Node
	switch tagName {
	case "code":
		node = Code{Content: p.readBalancedContent()}
	case "link", "linkcode":
		node = p.parseLinkTag(false)
	case "linkplain":
		node = p.parseLinkTag(true)
	default:
		node = UnknownInlineTag{Name: tagName, Content: p.readBalancedContent()}
	}

	if p.peek() == '}' {
		p.advance(1)
	}
	return node
}

func (p *Parser) parseLinkTag(plain bool) Node {
	content := p.readBalancedContent()
	link := Link{Reference: content, Plain: plain}
	if i := strings.IndexAny(content, "| \t\n"); i >= 0 {
		link.Reference = content[:i]
		link.Label = strings.TrimSpace(content[i+1:])
	}
	return link
}

func (p *Parser) parseBlockTags() []Node {
	var tags []Node

	for p.pos < p.len {
		p.skipWhitespace()
		p.skipLinePrefix()

		if p.pos >= p.len || p.match("*/") {
			break
		}
		if p.peek() != '@' {
			p.advance(1)
			continue
		}

		p.advance(1)
		tagName := p.readTagName()
		if tagName == "" {
			continue
		}
		p.skipHorizontalWhitespace()

		var tag Node
		switch tagName {
		case "param", "arg", "argument":
			tag = p.parseParamTag()
		case "returns", "return":
			tag = Returns{Type: p.readType(), Description: p.parseBlockContent()}
		case "throws", "exception":
			tag = Throws{Type: p.readType(), Description: p.parseBlockContent()}
		case "type":
			tag = TypeTag{Type: p.readType()}
		case "example":
			tag = Example{Code: p.readRawBlock()}
		case "see":
			tag = See{Reference: strings.TrimSpace(p.readRawBlock())}
		case "since":
			tag = Since{Version: p.readWord()}
		case "deprecated":
			tag = Deprecated{Description: p.parseBlockContent()}
		default:
			tag = UnknownBlockTag{Name: tagName, Content: p.parseBlockContent()}
		}
		tags = append(tags, tag)
	}

	return tags
}

// parseParamTag reads "{Type} name description", "{Type} [name=default]
// description" or either form with a '-' before the description.
func (p *Parser) parseParamTag() Node {
	param := Param{Type: p.readType()}
	p.skipHorizontalWhitespace()

	if p.peek() == '[' {
		p.advance(1)
		inner := p.readUntil(']')
		if p.peek() == ']' {
			p.advance(1)
		}
		param.Optional = true
		param.Name, param.Default, _ = strings.Cut(inner, "=")
		param.Name = strings.TrimSpace(param.Name)
		param.Default = strings.TrimSpace(param.Default)
	} else {
		param.Name = p.readWord()
	}

	p.skipHorizontalWhitespace()
	if p.peek() == '-' && (p.peekAt(1) == ' ' || p.peekAt(1) == '\t') {
		p.advance(1)
		p.skipHorizontalWhitespace()
	}
	param.Description = p.parseBlockContent()
	return param
}

// parseBlockContent reads a tag description, trimming the whitespace
// around it.
func (p *Parser) parseBlockContent() []Node {
	nodes := p.parseContent()
	if len(nodes) > 0 {
		if t, ok := nodes[0].(Text); ok {
			nodes[0] = Text{Content: strings.TrimLeft(t.Content, " \t\n")}
		}
		last := len(nodes) - 1
		if t, ok := nodes[last].(Text); ok {
			nodes[last] = Text{Content: strings.TrimRight(t.Content, " \t\n")}
		}
	}
	out := nodes[:0]
	for _, n := range nodes {
		if t, ok := n.(Text); ok && t.Content == "" {
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// readType reads a brace-delimited type expression, or nothing when the
// tag has no type.
func (p *Parser) readType() string {
	if p.peek() != '{' {
		return ""
	}
	p.advance(1)
	typ := p.readBalancedContent()
	if p.peek() == '}' {
		p.advance(1)
	}
	p.skipHorizontalWhitespace()
	return typ
}

// readRawBlock reads the rest of a block tag without interpreting inline
// tags, keeping line breaks but dropping line prefixes.
func (p *Parser) readRawBlock() string {
	var sb strings.Builder
	for p.pos < p.len {
		ch := p.peek()
		if ch == '*' && p.peekAt(1) == '/' {
			break
		}
		if p.isAtBlockTag() {
			break
		}
		if ch == '\n' || ch == '\r' {
			sb.WriteRune('\n')
			p.advance(1)
			if ch == '\r' && p.peek() == '\n' {
				p.advance(1)
			}
			p.skipLinePrefix()
			continue
		}
		sb.WriteRune(ch)
		p.advance(1)
	}
	return strings.TrimRight(strings.Trim(sb.String(), "\n"), " \t\n")
}

func (p *Parser) peek() rune {
	if p.pos >= p.len {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) peekAt(offset int) rune {
	pos := p.pos + offset
	if pos >= p.len || pos < 0 {
		return 0
	}
	return p.input[pos]
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.len {
		p.pos = p.len
	}
}

func (p *Parser) match(s string) bool {
	if p.pos+len(s) > p.len {
		return false
	}
	for i, ch := range []rune(s) {
		if p.input[p.pos+i] != ch {
			return false
		}
	}
	return true
}

func (p *Parser) skipWhitespace() {
	for p.pos < p.len && unicode.IsSpace(p.peek()) {
		p.advance(1)
	}
}

func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < p.len && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance(1)
	}
}

func (p *Parser) readTagName() string {
	start := p.pos
	for p.pos < p.len && isIdentifierPart(p.peek()) {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readWord reads up to whitespace or the end of the comment.
func (p *Parser) readWord() string {
	start := p.pos
	for p.pos < p.len && !unicode.IsSpace(p.peek()) && !p.match("*/") {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readUntil(end rune) string {
	start := p.pos
	for p.pos < p.len && p.peek() != end && !p.match("*/") {
		p.advance(1)
	}
	return string(p.input[start:p.pos])
}

// readBalancedContent reads up to the '}' that closes the current tag,
// skipping over nested brace pairs. The closing brace is not consumed.
func (p *Parser) readBalancedContent() string {
	start := p.pos
	depth := 0
	for p.pos < p.len {
		switch p.peek() {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return strings.TrimSpace(string(p.input[start:p.pos]))
			}
			depth--
		}
		p.advance(1)
	}
	return strings.TrimSpace(string(p.input[start:p.pos]))
}

func isIdentifierPart(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
