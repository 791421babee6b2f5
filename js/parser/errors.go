package parser

import (
	"fmt"
	"strings"
)

const (
	msgUnexpectedToken        = "Unexpected token %0"
	msgUnexpectedNumber       = "Unexpected number"
	msgUnexpectedString       = "Unexpected string"
	msgUnexpectedIdentifier   = "Unexpected identifier"
	msgUnexpectedReserved     = "Unexpected reserved word: %0"
	msgUnexpectedEOS          = "Unexpected end of input"
	msgNewlineAfterThrow      = "Illegal newline after throw"
	msgInvalidRegExp          = "Invalid regular expression"
	msgUnterminatedRegExp     = "Invalid regular expression: missing /"
	msgInvalidLHSInAssignment = "Invalid left-hand side in assignment"
	msgInvalidLHSInForIn      = "Invalid left-hand side in for-in"
	msgInvalidLHSInPostfixOp  = "Invalid left-hand side expression in postfix operation"
	msgInvalidLHSInPrefixOp   = "Invalid left-hand side expression in prefix operation"
	msgNoCatchOrFinally       = "Missing catch or finally after try"
)

// Error is a parse failure. Line and Column (0-based) describe where the
// scanner was when the failure was detected.
type Error struct {
	Index       int
	Line        int
	Column      int
	Description string
}

func (e *Error) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Description)
}

// formatMessage substitutes %0..%9 with args; missing arguments become "".
func formatMessage(format string, args ...string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch == '%' && i+1 < len(format) && format[i+1] >= '0' && format[i+1] <= '9' {
			n := int(format[i+1] - '0')
			if n < len(args) {
				b.WriteString(args[n])
			}
			i++
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func (l *lexer) throwError(format string, args ...string) {
	panic(&Error{
		Index:       l.cur.index,
		Line:        l.cur.line,
		Column:      l.cur.index - l.cur.lineStart,
		Description: formatMessage(format, args...),
	})
}

func (l *lexer) throwUnexpected(tok *Token) {
	switch tok.Kind {
	case TokenEOF:
		l.throwError(msgUnexpectedEOS)
	case TokenNumeric:
		l.throwError(msgUnexpectedNumber)
	case TokenString:
		l.throwError(msgUnexpectedString)
	case TokenIdentifier:
		l.throwError(msgUnexpectedIdentifier)
	case TokenKeyword:
		l.throwError(msgUnexpectedReserved, tok.Value)
	}
	value := tok.Value
	if len(value) > 10 {
		value = value[:10] + "..."
	}
	l.throwError(msgUnexpectedToken, value)
}
