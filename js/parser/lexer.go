package parser

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// lexer turns source text into tokens on demand. It owns the scan cursor
// and a one-token lookahead buffer. The token sink and comment policy are
// fixed when the lexer is created and decide whether tokens and comments
// are recorded as a side effect of scanning.
type lexer struct {
	cfg      config
	source   string
	length   int
	cur      cursor
	buffer   *Token
	last     *Token
	prevEnd  cursor
	tokens   tokenSink
	comments commentPolicy
}

func newLexer(source string, cfg config) *lexer {
	l := &lexer{
		cfg:    cfg,
		source: source,
		length: len(source),
		cur:    cursor{index: 0, line: 1, lineStart: 0},
	}
	l.prevEnd = l.cur
	if cfg.collectTokens {
		l.tokens = &recordingSink{}
	} else {
		l.tokens = discardSink{}
	}
	if cfg.collectComments {
		l.comments = &captureComments{}
	} else {
		l.comments = discardComments{}
	}
	return l
}

// charAt decodes the character at offset i. It returns 0 past the end of
// input.
func (l *lexer) charAt(i int) (rune, int) {
	if i >= l.length {
		return 0, 0
	}
	if b := l.source[i]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(l.source[i:])
}

func (l *lexer) peekChar() rune {
	ch, _ := l.charAt(l.cur.index)
	return ch
}

func (l *lexer) peekCharN(n int) rune {
	i := l.cur.index
	for ; n > 0; n-- {
		_, size := l.charAt(i)
		if size == 0 {
			return 0
		}
		i += size
	}
	ch, _ := l.charAt(i)
	return ch
}

func (l *lexer) advanceChar() rune {
	ch, size := l.charAt(l.cur.index)
	l.cur.index += size
	return ch
}

// newline consumes the line terminator at the cursor. CRLF counts as a
// single line break.
func (l *lexer) newline() {
	ch := l.advanceChar()
	if ch == '\r' && l.peekChar() == '\n' {
		l.cur.index++
	}
	l.cur.line++
	l.cur.lineStart = l.cur.index
}

// skipComment moves the cursor past whitespace, line terminators and
// comments. Comments are handed to the comment policy.
func (l *lexer) skipComment() {
	for l.cur.index < l.length {
		ch := l.peekChar()
		switch {
		case isWhiteSpace(ch):
			l.advanceChar()
		case isLineTerminator(ch):
			l.newline()
		case ch == '/' && l.peekCharN(1) == '/':
			l.skipLineComment()
		case ch == '/' && l.peekCharN(1) == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *lexer) skipLineComment() {
	start := l.cur
	l.cur.index += 2
	for l.cur.index < l.length && !isLineTerminator(l.peekChar()) {
		l.advanceChar()
	}
	l.comments.record(l, CommentLine, start, l.source[start.index+2:l.cur.index])
}

// An unterminated block comment runs to the end of input.
func (l *lexer) skipBlockComment() {
	start := l.cur
	l.cur.index += 2
	textStart := l.cur.index
	textEnd := l.length
	for l.cur.index < l.length {
		ch := l.peekChar()
		if ch == '*' && l.peekCharN(1) == '/' {
			textEnd = l.cur.index
			l.cur.index += 2
			break
		}
		if isLineTerminator(ch) {
			l.newline()
			continue
		}
		l.advanceChar()
	}
	if textEnd > l.cur.index {
		textEnd = l.cur.index
	}
	l.comments.record(l, CommentBlock, start, l.source[textStart:textEnd])
}

// peekLineTerminator reports whether a line terminator separates the
// cursor from the next token.
func (l *lexer) peekLineTerminator() bool {
	saved := l.cur
	l.skipComment()
	found := l.cur.line != saved.line
	l.cur = saved
	return found
}

// next consumes and returns the next token.
func (l *lexer) next() *Token {
	if l.buffer != nil {
		tok := l.buffer
		l.buffer = nil
		l.cur = tok.after
		l.prevEnd = tok.after
		return tok
	}

	l.skipComment()
	start := l.cur
	tok := l.scan()
	tok.Start = start.index
	tok.End = l.cur.index
	tok.LineNumber = start.line
	tok.LineStart = start.lineStart
	tok.Raw = l.source[start.index:l.cur.index]
	tok.after = l.cur
	l.stamp(tok, start)

	l.last = tok
	l.prevEnd = l.cur
	l.tokens.emit(tok)
	return tok
}

// peek returns the next token without consuming it. The cursor is restored
// after scanning and the token is kept in the lookahead buffer.
func (l *lexer) peek() *Token {
	if l.buffer != nil {
		return l.buffer
	}
	saved, savedEnd := l.cur, l.prevEnd
	tok := l.next()
	l.cur, l.prevEnd = saved, savedEnd
	l.buffer = tok
	return tok
}

func (l *lexer) stamp(tok *Token, start cursor) {
	if !l.cfg.tracking() {
		return
	}
	var b Base
	l.cfg.annotate(&b, start, l.cur)
	tok.Range, tok.Loc = b.Range, b.Loc
}

func (l *lexer) scan() *Token {
	if l.cur.index >= l.length {
		return &Token{Kind: TokenEOF}
	}

	if tok := l.scanPunctuator(); tok != nil {
		return tok
	}

	ch := l.peekChar()
	if ch == '\'' || ch == '"' {
		return l.scanStringLiteral()
	}
	if ch == '.' || isDecimalDigit(ch) {
		return l.scanNumericLiteral()
	}
	if isIdentifierStart(ch) {
		return l.scanIdentifier()
	}

	l.throwError(msgUnexpectedToken, "ILLEGAL")
	return nil
}

func (l *lexer) scanIdentifier() *Token {
	start := l.cur.index
	l.advanceChar()
	for l.cur.index < l.length && isIdentifierPart(l.peekChar()) {
		l.advanceChar()
	}
	id := l.source[start:l.cur.index]
	return &Token{Kind: lookupIdentifier(id), Value: id}
}

var threeCharPunctuators = []string{"===", "!==", ">>>", "<<=", ">>="}

// scanPunctuator matches the longest punctuator at the cursor, or returns
// nil. A dot followed by a digit starts a number, not a punctuator.
func (l *lexer) scanPunctuator() *Token {
	rest := l.source[l.cur.index:]
	ch1 := rest[0]

	punct := func(n int) *Token {
		l.cur.index += n
		return &Token{Kind: TokenPunctuator, Value: rest[:n]}
	}

	switch ch1 {
	case ';', '{', '}', ',', '(', ')':
		return punct(1)
	case '.':
		if len(rest) > 1 && isDecimalDigit(rune(rest[1])) {
			return nil
		}
		return punct(1)
	}

	if strings.HasPrefix(rest, ">>>=") {
		return punct(4)
	}
	for _, p := range threeCharPunctuators {
		if strings.HasPrefix(rest, p) {
			return punct(3)
		}
	}
	if len(rest) > 1 {
		ch2 := rest[1]
		if ch2 == '=' && strings.IndexByte("<>=!+-*%&|^/", ch1) >= 0 {
			return punct(2)
		}
		if ch1 == ch2 && strings.IndexByte("+-<>&|", ch1) >= 0 {
			return punct(2)
		}
	}
	if strings.IndexByte("[]<>+-*%&|^!~?:=/", ch1) >= 0 {
		return punct(1)
	}
	return nil
}

func (l *lexer) scanNumericLiteral() *Token {
	start := l.cur.index

	if l.peekChar() == '0' && (l.peekCharN(1) == 'x' || l.peekCharN(1) == 'X') {
		l.cur.index += 2
		var value float64
		digits := 0
		for l.cur.index < l.length && isHexDigit(l.peekChar()) {
			value = value*16 + float64(hexValue(l.advanceChar()))
			digits++
		}
		if digits == 0 {
			l.throwError(msgUnexpectedToken, "ILLEGAL")
		}
		return &Token{Kind: TokenNumeric, Value: l.source[start:l.cur.index], Number: value}
	}

	for l.cur.index < l.length && isDecimalDigit(l.peekChar()) {
		l.advanceChar()
	}
	if l.peekChar() == '.' {
		l.advanceChar()
		for l.cur.index < l.length && isDecimalDigit(l.peekChar()) {
			l.advanceChar()
		}
	}
	if ch := l.peekChar(); ch == 'e' || ch == 'E' {
		l.advanceChar()
		if ch := l.peekChar(); ch == '+' || ch == '-' {
			l.advanceChar()
		}
		if !isDecimalDigit(l.peekChar()) {
			l.throwError(msgUnexpectedToken, "ILLEGAL")
		}
		for l.cur.index < l.length && isDecimalDigit(l.peekChar()) {
			l.advanceChar()
		}
	}

	text := l.source[start:l.cur.index]
	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		l.throwError(msgUnexpectedToken, "ILLEGAL")
	}
	return &Token{Kind: TokenNumeric, Value: text, Number: value}
}

// scanStringLiteral keeps escape sequences verbatim: a backslash and the
// character after it are both copied into the value. A backslash before a
// line terminator is a line continuation and contributes nothing.
func (l *lexer) scanStringLiteral() *Token {
	quote := l.advanceChar()
	var str strings.Builder

	for {
		if l.cur.index >= l.length {
			l.throwError(msgUnexpectedToken, "ILLEGAL")
		}
		ch, size := l.charAt(l.cur.index)
		switch {
		case ch == quote:
			l.cur.index += size
			return &Token{Kind: TokenString, Value: str.String()}
		case ch == '\\':
			l.cur.index += size
			if l.cur.index >= l.length {
				l.throwError(msgUnexpectedToken, "ILLEGAL")
			}
			escaped, esize := l.charAt(l.cur.index)
			if isLineTerminator(escaped) {
				l.newline()
				continue
			}
			str.WriteByte('\\')
			str.WriteString(l.source[l.cur.index : l.cur.index+esize])
			l.cur.index += esize
		case isLineTerminator(ch):
			from := l.cur.index
			l.newline()
			str.WriteString(l.source[from:l.cur.index])
		default:
			str.WriteString(l.source[l.cur.index : l.cur.index+size])
			l.cur.index += size
		}
	}
}

// rescanRegExp discards the lookahead buffer and scans a regular
// expression literal at the cursor. This is the one place where
// tokenization depends on grammatical context: the parser calls it when
// it finds '/' or '/=' where an expression must start.
func (l *lexer) rescanRegExp() *Token {
	l.buffer = nil
	l.skipComment()
	start := l.cur

	if l.peekChar() != '/' {
		l.throwUnexpected(l.peek())
	}
	l.advanceChar()

	classMarker := false
	terminated := false
	for l.cur.index < l.length {
		ch := l.advanceChar()
		if isLineTerminator(ch) {
			l.throwError(msgUnterminatedRegExp)
		}
		if ch == '\\' {
			if l.cur.index >= l.length || isLineTerminator(l.peekChar()) {
				l.throwError(msgUnterminatedRegExp)
			}
			l.advanceChar()
			continue
		}
		if classMarker {
			if ch == ']' {
				classMarker = false
			}
			continue
		}
		if ch == '/' {
			terminated = true
			break
		}
		if ch == '[' {
			classMarker = true
		}
	}
	if !terminated {
		l.throwError(msgUnterminatedRegExp)
	}
	pattern := l.source[start.index+1 : l.cur.index-1]

	flagsStart := l.cur.index
	for l.cur.index < l.length && isIdentifierPart(l.peekChar()) {
		l.advanceChar()
	}
	flags := l.source[flagsStart:l.cur.index]

	re, err := compileRegExp(pattern, flags)
	if err != nil {
		l.throwError(msgInvalidRegExp)
	}

	literal := l.source[start.index:l.cur.index]
	tok := &Token{
		Kind:       TokenRegularExpression,
		Value:      literal,
		Raw:        literal,
		Regex:      re,
		Start:      start.index,
		End:        l.cur.index,
		LineNumber: start.line,
		LineStart:  start.lineStart,
		after:      l.cur,
	}
	l.stamp(tok, start)

	if l.last != nil && l.last.Start == tok.Start && l.last.Kind == TokenPunctuator &&
		(l.last.Value == "/" || l.last.Value == "/=") {
		l.tokens.dropLast()
	}
	l.tokens.emit(tok)
	l.last = tok
	l.prevEnd = l.cur
	return tok
}
