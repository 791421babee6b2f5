package parser

type TokenKind int

const (
	TokenBoolean TokenKind = iota + 1
	TokenEOF
	TokenIdentifier
	TokenKeyword
	TokenNull
	TokenNumeric
	TokenPunctuator
	TokenString
	TokenRegularExpression
)

var tokenKindNames = map[TokenKind]string{
	TokenBoolean:           "Boolean",
	TokenEOF:               "<end>",
	TokenIdentifier:        "Identifier",
	TokenKeyword:           "Keyword",
	TokenNull:              "Null",
	TokenNumeric:           "Numeric",
	TokenPunctuator:        "Punctuator",
	TokenString:            "String",
	TokenRegularExpression: "RegularExpression",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// cursor is a scan position: byte offset, 1-based line number and the
// offset at which that line starts.
type cursor struct {
	index     int
	line      int
	lineStart int
}

// Token is a single lexical token.
//
// Value holds the lexical value: the identifier or keyword name, the
// punctuator, the string contents between the quotes (escapes kept
// verbatim), "true"/"false", "null", or the numeric source text. Raw is
// the exact source slice the token was scanned from.
type Token struct {
	Kind   TokenKind
	Value  string
	Number float64
	Raw    string
	Regex  *RegExp

	Start      int
	End        int
	LineNumber int
	LineStart  int

	// Set only when range or location tracking is enabled.
	Range *Range
	Loc   *SourceLocation

	after cursor
}

func (t *Token) isPunctuator(value string) bool {
	return t.Kind == TokenPunctuator && t.Value == value
}

func (t *Token) isKeyword(value string) bool {
	return t.Kind == TokenKeyword && t.Value == value
}

var keywords = map[string]bool{
	"break":      true,
	"case":       true,
	"catch":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"in":         true,
	"instanceof": true,
	"new":        true,
	"return":     true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"try":        true,
	"typeof":     true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,

	// Future reserved words.
	"class":   true,
	"const":   true,
	"enum":    true,
	"export":  true,
	"extends": true,
	"import":  true,
	"super":   true,

	// Reserved in strict mode.
	"implements": true,
	"interface":  true,
	"let":        true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"static":     true,
	"yield":      true,
}

// IsKeyword reports whether id is a reserved word, including the future
// reserved words.
func IsKeyword(id string) bool {
	return keywords[id]
}

func lookupIdentifier(id string) TokenKind {
	switch {
	case len(id) == 1:
		return TokenIdentifier
	case keywords[id]:
		return TokenKeyword
	case id == "null":
		return TokenNull
	case id == "true" || id == "false":
		return TokenBoolean
	}
	return TokenIdentifier
}
