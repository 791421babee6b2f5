package parser

import (
	"testing"
)

type lexed struct {
	kind  TokenKind
	value string
}

func lexAll(t *testing.T, src string) []*Token {
	t.Helper()
	l := newLexer(src, config{})
	var toks []*Token
	for {
		tok := l.next()
		if tok.Kind == TokenEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []lexed
	}{
		{"var x = 1;", []lexed{
			{TokenKeyword, "var"}, {TokenIdentifier, "x"}, {TokenPunctuator, "="},
			{TokenNumeric, "1"}, {TokenPunctuator, ";"},
		}},
		{"a >>>= b", []lexed{
			{TokenIdentifier, "a"}, {TokenPunctuator, ">>>="}, {TokenIdentifier, "b"},
		}},
		{"a===b!==c", []lexed{
			{TokenIdentifier, "a"}, {TokenPunctuator, "==="}, {TokenIdentifier, "b"},
			{TokenPunctuator, "!=="}, {TokenIdentifier, "c"},
		}},
		{"i++ + --j", []lexed{
			{TokenIdentifier, "i"}, {TokenPunctuator, "++"}, {TokenPunctuator, "+"},
			{TokenPunctuator, "--"}, {TokenIdentifier, "j"},
		}},
		{"a<<=b>>c", []lexed{
			{TokenIdentifier, "a"}, {TokenPunctuator, "<<="}, {TokenIdentifier, "b"},
			{TokenPunctuator, ">>"}, {TokenIdentifier, "c"},
		}},
		{".5 + x.y", []lexed{
			{TokenNumeric, ".5"}, {TokenPunctuator, "+"}, {TokenIdentifier, "x"},
			{TokenPunctuator, "."}, {TokenIdentifier, "y"},
		}},
		{"null true false", []lexed{
			{TokenNull, "null"}, {TokenBoolean, "true"}, {TokenBoolean, "false"},
		}},
		{"if instanceof yield $x _y z9", []lexed{
			{TokenKeyword, "if"}, {TokenKeyword, "instanceof"}, {TokenKeyword, "yield"},
			{TokenIdentifier, "$x"}, {TokenIdentifier, "_y"}, {TokenIdentifier, "z9"},
		}},
		{"x // line\n y /* block\n */ z", []lexed{
			{TokenIdentifier, "x"}, {TokenIdentifier, "y"}, {TokenIdentifier, "z"},
		}},
		{"a b c", []lexed{
			{TokenIdentifier, "a"}, {TokenIdentifier, "b"}, {TokenIdentifier, "c"},
		}},
		{`'it\'s' "two"`, []lexed{
			{TokenString, `it\'s`}, {TokenString, "two"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := lexAll(t, tt.input)
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d", len(toks), len(tt.want))
			}
			for i, tok := range toks {
				if tok.Kind != tt.want[i].kind {
					t.Errorf("token %d: Kind = %v, want %v", i, tok.Kind, tt.want[i].kind)
				}
				if tok.Value != tt.want[i].value {
					t.Errorf("token %d: Value = %q, want %q", i, tok.Value, tt.want[i].value)
				}
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.25", 3.25},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"1E+2", 100},
		{"1.5e-2", 0.015},
		{"0x1F", 31},
		{"0XfF", 255},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := lexAll(t, tt.input)
			if len(toks) != 1 {
				t.Fatalf("got %d tokens, want 1", len(toks))
			}
			if toks[0].Kind != TokenNumeric {
				t.Fatalf("Kind = %v, want Numeric", toks[0].Kind)
			}
			if toks[0].Number != tt.want {
				t.Errorf("Number = %v, want %v", toks[0].Number, tt.want)
			}
			if toks[0].Raw != tt.input {
				t.Errorf("Raw = %q, want %q", toks[0].Raw, tt.input)
			}
		})
	}
}

func TestLexerLineContinuation(t *testing.T) {
	toks := lexAll(t, "'a\\\nb' c")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Value != "ab" {
		t.Errorf("Value = %q, want %q", toks[0].Value, "ab")
	}
	if toks[1].LineNumber != 2 {
		t.Errorf("LineNumber = %d, want 2", toks[1].LineNumber)
	}
}

func TestLexerLineNumbers(t *testing.T) {
	toks := lexAll(t, "a\r\nb\nc\rd")
	want := []struct{ line, lineStart int }{{1, 0}, {2, 3}, {3, 5}, {4, 7}}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.LineNumber != want[i].line || tok.LineStart != want[i].lineStart {
			t.Errorf("token %q: line %d start %d, want line %d start %d",
				tok.Value, tok.LineNumber, tok.LineStart, want[i].line, want[i].lineStart)
		}
	}
}

func TestLexerPeek(t *testing.T) {
	l := newLexer("foo bar", config{})

	first := l.peek()
	if again := l.peek(); again != first {
		t.Fatal("peek returned a different token on the second call")
	}
	if l.cur.index != 0 {
		t.Errorf("cursor moved to %d after peek", l.cur.index)
	}
	if got := l.next(); got != first {
		t.Fatal("next did not return the buffered token")
	}
	if l.cur.index != 3 {
		t.Errorf("cursor = %d after next, want 3", l.cur.index)
	}
	if got := l.next(); got.Value != "bar" {
		t.Errorf("second token = %q, want bar", got.Value)
	}
}

func TestLexerPeekLineTerminator(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"a b", false},
		{"a\nb", true},
		{"a /* x */ b", false},
		{"a /* \n */ b", true},
		{"a // x\nb", true},
		{"a", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := newLexer(tt.input, config{})
			l.next()
			before := l.cur
			if got := l.peekLineTerminator(); got != tt.want {
				t.Errorf("peekLineTerminator() = %v, want %v", got, tt.want)
			}
			if l.cur != before {
				t.Errorf("cursor moved from %+v to %+v", before, l.cur)
			}
		})
	}
}

func TestLookupIdentifier(t *testing.T) {
	tests := []struct {
		id   string
		want TokenKind
	}{
		{"x", TokenIdentifier},
		{"foo", TokenIdentifier},
		{"function", TokenKeyword},
		{"let", TokenKeyword},
		{"implements", TokenKeyword},
		{"null", TokenNull},
		{"true", TokenBoolean},
		{"false", TokenBoolean},
		{"undefined", TokenIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := lookupIdentifier(tt.id); got != tt.want {
				t.Errorf("lookupIdentifier(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
