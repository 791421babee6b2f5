package parser

// Position is a 1-based line and 0-based column.
type Position struct {
	Line   int
	Column int
}

// Range is a pair of source offsets; the end offset is inclusive.
type Range [2]int

type SourceLocation struct {
	Source string
	Start  Position
	End    Position
}

// tracker records where a node started so its Range and SourceLocation can
// be stamped once the node is complete. The zero tracker is inert.
type tracker struct {
	active bool
	start  cursor
}

func (s *session) start() tracker {
	if !s.cfg.tracking() {
		return tracker{}
	}
	tok := s.peek()
	return tracker{
		active: true,
		start:  cursor{index: tok.Start, line: tok.LineNumber, lineStart: tok.LineStart},
	}
}

func (s *session) trackerAt(tok *Token) tracker {
	if !s.cfg.tracking() {
		return tracker{}
	}
	return tracker{
		active: true,
		start:  cursor{index: tok.Start, line: tok.LineNumber, lineStart: tok.LineStart},
	}
}

func (c config) annotate(b *Base, start, end cursor) {
	if c.trackRange {
		b.Range = &Range{start.index, end.index - 1}
	}
	if c.trackLoc {
		b.Loc = &SourceLocation{
			Source: c.source,
			Start:  Position{Line: start.line, Column: start.index - start.lineStart},
			End:    Position{Line: end.line, Column: end.index - end.lineStart},
		}
	}
}

// finish stamps n with the span from the tracker's start to the end of the
// last consumed token and returns n.
func finish[N Node](s *session, t tracker, n N) N {
	if t.active {
		s.cfg.annotate(n.Meta(), t.start, s.lex.prevEnd)
	}
	return n
}

// finishToken gives n the same span as tok.
func finishToken[N Node](s *session, tok *Token, n N) N {
	if s.cfg.tracking() {
		s.cfg.annotate(n.Meta(), cursor{index: tok.Start, line: tok.LineNumber, lineStart: tok.LineStart}, tok.after)
	}
	return n
}
