package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"illegal character", "#", "Line 1: Unexpected token ILLEGAL"},
		{"illegal on later line", "a\n@", "Line 2: Unexpected token ILLEGAL"},
		{"hex without digits", "0x", "Line 1: Unexpected token ILLEGAL"},
		{"exponent without digits", "1e", "Line 1: Unexpected token ILLEGAL"},
		{"signed exponent without digits", "1e+", "Line 1: Unexpected token ILLEGAL"},
		{"unterminated string", "'abc", "Line 1: Unexpected token ILLEGAL"},
		{"trailing backslash in string", `"abc\`, "Line 1: Unexpected token ILLEGAL"},
		{"end of input", "var", "Line 1: Unexpected end of input"},
		{"unclosed block", "{", "Line 1: Unexpected end of input"},
		{"unexpected identifier", "x y", "Line 1: Unexpected identifier"},
		{"unexpected number", "a 1", "Line 1: Unexpected number"},
		{"unexpected string", "a 'b'", "Line 1: Unexpected string"},
		{"unexpected reserved word", "a if", "Line 1: Unexpected reserved word: if"},
		{"unexpected punctuator", "a = )", "Line 1: Unexpected token )"},
		{"keyword as variable", "var if = 1", "Line 1: Unexpected reserved word: if"},
		{"assignment to literal", "1 = 2", "Line 1: Invalid left-hand side in assignment"},
		{"compound assignment to call result", "a + b += 1", "Line 1: Invalid left-hand side in assignment"},
		{"postfix on literal", "1++", "Line 1: Invalid left-hand side expression in postfix operation"},
		{"prefix on literal", "++1", "Line 1: Invalid left-hand side expression in prefix operation"},
		{"for-in over literal", "for (1 in x);", "Line 1: Invalid left-hand side in for-in"},
		{"for-in over two declarations", "for (var a, b in x);", "Line 1: Invalid left-hand side in for-in"},
		{"newline after throw", "throw\nx", "Line 1: Illegal newline after throw"},
		{"try without handler", "try {}", "Line 1: Missing catch or finally after try"},
		{"unterminated regexp", "/abc", "Line 1: Invalid regular expression: missing /"},
		{"newline in regexp", "/a\nb/", "Line 1: Invalid regular expression: missing /"},
		{"malformed regexp", "/(/", "Line 1: Invalid regular expression"},
		{"duplicate regexp flag", "/a/gg", "Line 1: Invalid regular expression"},
		{"unknown regexp flag", "/a/x", "Line 1: Invalid regular expression"},
		{"non-identifier parameter", "function f(1) {}", "Line 1: Unexpected number"},
		{"member after dot", "a.1", "Line 1: Unexpected number"},
		{"getter with string name", "x = { get 'a'() {} }", "Line 1: Unexpected string"},
		{"error on third line", "a;\nb;\nc d", "Line 3: Unexpected identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error %q", tt.input, tt.want)
			}
			if prog != nil {
				t.Errorf("Parse(%q) returned a program along with the error", tt.input)
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Errorf("error is %T, want *Error", err)
			}
		})
	}
}

func TestErrorsWithInstrumentation(t *testing.T) {
	_, err := Parse("var x = ;", WithRange(), WithLoc(), WithComments(), WithTokens())
	if err == nil || err.Error() != "Line 1: Unexpected token ;" {
		t.Errorf("error = %v, want Line 1: Unexpected token ;", err)
	}
}

func TestUnexpectedTokenTruncation(t *testing.T) {
	l := newLexer("", config{})
	err := func() (err *Error) {
		defer func() {
			err = recover().(*Error)
		}()
		l.throwUnexpected(&Token{Kind: TokenRegularExpression, Value: "/abcdefghijklmnop/"})
		return nil
	}()

	want := "Unexpected token /abcdefghi..."
	if err.Description != want {
		t.Errorf("Description = %q, want %q", err.Description, want)
	}
	if !strings.HasPrefix(err.Error(), "Line 1: ") {
		t.Errorf("Error() = %q, want a Line 1 prefix", err.Error())
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		format string
		args   []string
		want   string
	}{
		{"Unexpected token %0", []string{"x"}, "Unexpected token x"},
		{"Unexpected token %0", nil, "Unexpected token "},
		{"%1 before %0", []string{"a", "b"}, "b before a"},
		{"100%", nil, "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := formatMessage(tt.format, tt.args...); got != tt.want {
				t.Errorf("formatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
