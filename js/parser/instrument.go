package parser

// tokenSink receives every token the lexer scans. Lookahead means the
// same token can be scanned more than once; sinks ignore repeats.
type tokenSink interface {
	emit(tok *Token)
	dropLast()
	collected() []*Token
}

type discardSink struct{}

func (discardSink) emit(*Token)         {}
func (discardSink) dropLast()           {}
func (discardSink) collected() []*Token { return nil }

type recordingSink struct {
	tokens []*Token
}

func (r *recordingSink) emit(tok *Token) {
	if tok.Kind == TokenEOF {
		return
	}
	if n := len(r.tokens); n > 0 && r.tokens[n-1].Start >= tok.Start {
		return
	}
	r.tokens = append(r.tokens, tok)
}

func (r *recordingSink) dropLast() {
	if n := len(r.tokens); n > 0 {
		r.tokens = r.tokens[:n-1]
	}
}

func (r *recordingSink) collected() []*Token {
	if r.tokens == nil {
		return []*Token{}
	}
	return r.tokens
}

// commentPolicy decides what happens to comments found by skipComment.
type commentPolicy interface {
	record(l *lexer, kind CommentKind, start cursor, text string)
	collected() []*Comment
}

type discardComments struct{}

func (discardComments) record(*lexer, CommentKind, cursor, string) {}
func (discardComments) collected() []*Comment                      { return nil }

// captureComments keeps each comment once, in source order. Comments are
// rescanned whenever the lexer backtracks, so anything ending at or before
// the last recorded comment is a repeat.
type captureComments struct {
	comments []*Comment
	seen     int
}

func (c *captureComments) record(l *lexer, kind CommentKind, start cursor, text string) {
	if len(c.comments) > 0 && start.index < c.seen {
		return
	}
	c.seen = l.cur.index
	comment := &Comment{Kind: kind, Text: text}
	var b Base
	if l.cfg.tracking() {
		l.cfg.annotate(&b, start, l.cur)
	}
	comment.Range, comment.Loc = b.Range, b.Loc
	if l.cfg.trackRange {
		comment.PrefixLength = start.index - start.lineStart
	}
	c.comments = append(c.comments, comment)
}

func (c *captureComments) collected() []*Comment {
	if c.comments == nil {
		return []*Comment{}
	}
	return c.comments
}

// attachCommentPrefixes fills in the text between the start of each
// comment's line and the comment, whose length was recorded at scan time.
func attachCommentPrefixes(source string, comments []*Comment) {
	for _, c := range comments {
		if c.Range == nil {
			continue
		}
		c.Prefix = source[c.Range[0]-c.PrefixLength : c.Range[0]]
	}
}
