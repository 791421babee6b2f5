package parser

import "fmt"

// Version of the parser.
const Version = "0.9.4"

type Option func(*Parser)

// WithRange records a [start, end] offset pair on every node, token and
// comment.
func WithRange() Option {
	return func(p *Parser) {
		p.cfg.trackRange = true
	}
}

// WithLoc records line/column start and end positions.
func WithLoc() Option {
	return func(p *Parser) {
		p.cfg.trackLoc = true
	}
}

// WithSource sets the source name stored in every location. It has no
// effect without WithLoc.
func WithSource(name string) Option {
	return func(p *Parser) {
		p.cfg.source = name
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.cfg.collectComments = true
	}
}

func WithTokens() Option {
	return func(p *Parser) {
		p.cfg.collectTokens = true
	}
}

// WithCommentPrefix records the text preceding each comment on its line.
// It requires WithRange and WithComments.
func WithCommentPrefix() Option {
	return func(p *Parser) {
		p.cfg.commentPrefix = true
	}
}

// Options is the data form of the functional options, for callers that
// receive the option set as JSON.
type Options struct {
	Range         bool   `json:"range"`
	Loc           bool   `json:"loc"`
	Source        string `json:"source,omitempty"`
	Comment       bool   `json:"comment"`
	Tokens        bool   `json:"tokens"`
	CommentPrefix bool   `json:"commentPrefix"`
}

func (o Options) Apply() []Option {
	var opts []Option
	if o.Range {
		opts = append(opts, WithRange())
	}
	if o.Loc {
		opts = append(opts, WithLoc())
	}
	if o.Source != "" {
		opts = append(opts, WithSource(o.Source))
	}
	if o.Comment {
		opts = append(opts, WithComments())
	}
	if o.Tokens {
		opts = append(opts, WithTokens())
	}
	if o.CommentPrefix {
		opts = append(opts, WithCommentPrefix())
	}
	return opts
}

type config struct {
	trackRange      bool
	trackLoc        bool
	source          string
	collectComments bool
	collectTokens   bool
	commentPrefix   bool
}

func (c config) tracking() bool {
	return c.trackRange || c.trackLoc
}

// Parser holds a source text and the options to parse it with. Each call to
// Parse runs in a fresh session, so a Parser can be reused and shared.
type Parser struct {
	source string
	cfg    config
}

func New(source string, opts ...Option) *Parser {
	p := &Parser{source: source}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses source as a Program.
func Parse(source string, opts ...Option) (*Program, error) {
	return New(source, opts...).Parse()
}

func (p *Parser) Parse() (prog *Program, err error) {
	s := &session{cfg: p.cfg, lex: newLexer(p.source, p.cfg)}
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			prog, err = nil, perr
		}
	}()

	prog = s.parseProgram()
	if p.cfg.collectComments {
		prog.Comments = s.lex.comments.collected()
		if p.cfg.commentPrefix && p.cfg.trackRange {
			attachCommentPrefixes(p.source, prog.Comments)
		}
	}
	if p.cfg.collectTokens {
		prog.Tokens = s.lex.tokens.collected()
	}
	return prog, nil
}

// Tokenize scans source without building a tree and returns every token
// in order. Regular expressions are recognized where a full parse would
// recognize them, so Tokenize runs the parser with token collection on.
func Tokenize(source string, opts ...Option) ([]*Token, error) {
	prog, err := Parse(source, append(opts, WithTokens())...)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return prog.Tokens, nil
}

// session is the state of a single parse.
type session struct {
	cfg config
	lex *lexer
}

func (s *session) next() *Token { return s.lex.next() }
func (s *session) peek() *Token { return s.lex.peek() }

func (s *session) match(value string) bool {
	return s.peek().isPunctuator(value)
}

func (s *session) matchKeyword(value string) bool {
	return s.peek().isKeyword(value)
}

// expect consumes the punctuator value or fails on whatever is there.
func (s *session) expect(value string) *Token {
	tok := s.next()
	if !tok.isPunctuator(value) {
		s.lex.throwUnexpected(tok)
	}
	return tok
}

func (s *session) expectKeyword(value string) *Token {
	tok := s.next()
	if !tok.isKeyword(value) {
		s.lex.throwUnexpected(tok)
	}
	return tok
}

func (s *session) matchAssign() bool {
	tok := s.peek()
	if tok.Kind != TokenPunctuator {
		return false
	}
	switch tok.Value {
	case "=", "*=", "/=", "%=", "+=", "-=", "<<=", ">>=", ">>>=", "&=", "^=", "|=":
		return true
	}
	return false
}

// consumeSemicolon applies automatic semicolon insertion. An explicit ';'
// is consumed. Otherwise a line break, '}' or the end of input terminates
// the statement.
func (s *session) consumeSemicolon() {
	l := s.lex
	if l.peekChar() == ';' {
		s.next()
		return
	}

	line := l.cur.line
	saved := l.cur
	l.skipComment()
	if l.cur.line != line {
		l.cur = saved
		return
	}
	l.cur = saved

	if s.match(";") {
		s.next()
		return
	}
	tok := s.peek()
	if tok.Kind != TokenEOF && !tok.isPunctuator("}") {
		l.throwUnexpected(tok)
	}
}

func (s *session) parseProgram() *Program {
	t := s.start()
	prog := &Program{Body: s.parseSourceElements()}
	return finish(s, t, prog)
}

func (s *session) parseSourceElements() []Statement {
	body := []Statement{}
	for s.peek().Kind != TokenEOF {
		body = append(body, s.parseSourceElement())
	}
	return body
}

func (s *session) parseSourceElement() Statement {
	if s.matchKeyword("function") {
		return s.parseFunctionDeclaration()
	}
	return s.parseStatement()
}
