package parser

func (s *session) parseStatement() Statement {
	tok := s.peek()

	switch tok.Kind {
	case TokenEOF:
		s.lex.throwUnexpected(tok)
	case TokenPunctuator:
		switch tok.Value {
		case ";":
			return s.parseEmptyStatement()
		case "{":
			return s.parseBlock()
		case "(":
			return s.parseExpressionStatement()
		}
	case TokenKeyword:
		switch tok.Value {
		case "break":
			return s.parseBreakStatement()
		case "continue":
			return s.parseContinueStatement()
		case "debugger":
			return s.parseDebuggerStatement()
		case "do":
			return s.parseDoWhileStatement()
		case "for":
			return s.parseForStatement()
		case "if":
			return s.parseIfStatement()
		case "let":
			return s.parseVariableStatement("let")
		case "return":
			return s.parseReturnStatement()
		case "switch":
			return s.parseSwitchStatement()
		case "throw":
			return s.parseThrowStatement()
		case "try":
			return s.parseTryStatement()
		case "var":
			return s.parseVariableStatement("var")
		case "while":
			return s.parseWhileStatement()
		case "with":
			return s.parseWithStatement()
		}
	}

	t := s.start()
	expr := s.parseExpression()

	if fn, ok := expr.(*FunctionExpression); ok && fn.ID != nil {
		decl := &FunctionDeclaration{ID: fn.ID, Params: fn.Params, Body: fn.Body}
		decl.Base = fn.Base
		return decl
	}

	if label, ok := expr.(*Identifier); ok && s.match(":") {
		s.next()
		body := s.parseStatement()
		return finish(s, t, &LabeledStatement{Label: label, Body: body})
	}

	stmt := finish(s, t, &ExpressionStatement{Expression: expr})
	s.consumeSemicolon()
	return stmt
}

func (s *session) parseExpressionStatement() Statement {
	t := s.start()
	expr := s.parseExpression()
	stmt := finish(s, t, &ExpressionStatement{Expression: expr})
	s.consumeSemicolon()
	return stmt
}

func (s *session) parseEmptyStatement() Statement {
	t := s.start()
	s.expect(";")
	return finish(s, t, &EmptyStatement{})
}

func (s *session) parseStatementList() []Statement {
	list := []Statement{}
	for !s.match("}") && s.peek().Kind != TokenEOF {
		list = append(list, s.parseStatement())
	}
	return list
}

func (s *session) parseBlock() *BlockStatement {
	t := s.start()
	s.expect("{")
	body := s.parseStatementList()
	s.expect("}")
	return finish(s, t, &BlockStatement{Body: body})
}

func (s *session) parseVariableDeclarator() *VariableDeclarator {
	t := s.start()
	id := s.identifierFrom(s.next())
	decl := &VariableDeclarator{ID: id}
	if s.match("=") {
		s.next()
		decl.Init = s.parseAssignmentExpression()
	}
	return finish(s, t, decl)
}

func (s *session) parseVariableDeclarationList() []*VariableDeclarator {
	list := []*VariableDeclarator{s.parseVariableDeclarator()}
	for s.match(",") {
		s.next()
		list = append(list, s.parseVariableDeclarator())
	}
	return list
}

func (s *session) parseVariableStatement(kind string) Statement {
	t := s.start()
	s.expectKeyword(kind)
	decl := finish(s, t, &VariableDeclaration{Declarations: s.parseVariableDeclarationList(), Kind: kind})
	s.consumeSemicolon()
	return decl
}

func (s *session) parseIfStatement() Statement {
	t := s.start()
	s.expectKeyword("if")
	s.expect("(")
	stmt := &IfStatement{Test: s.parseExpression()}
	s.expect(")")
	stmt.Consequent = s.parseStatement()
	if s.matchKeyword("else") {
		s.next()
		stmt.Alternate = s.parseStatement()
	}
	return finish(s, t, stmt)
}

func (s *session) parseDoWhileStatement() Statement {
	t := s.start()
	s.expectKeyword("do")
	stmt := &DoWhileStatement{Body: s.parseStatement()}
	s.expectKeyword("while")
	s.expect("(")
	stmt.Test = s.parseExpression()
	s.expect(")")
	finish(s, t, stmt)
	s.consumeSemicolon()
	return stmt
}

func (s *session) parseWhileStatement() Statement {
	t := s.start()
	s.expectKeyword("while")
	s.expect("(")
	stmt := &WhileStatement{Test: s.parseExpression()}
	s.expect(")")
	stmt.Body = s.parseStatement()
	return finish(s, t, stmt)
}

// parseForStatement distinguishes for(;;) from for-in. With a declaration
// head, a following 'in' makes it a for-in. With an expression head, the
// relational level has already folded 'x in y' into a BinaryExpression,
// which is split back into its operands.
func (s *session) parseForStatement() Statement {
	t := s.start()
	s.expectKeyword("for")
	s.expect("(")

	var (
		init        Node
		left, right Node
		forIn       bool
	)

	if s.match(";") {
		s.next()
	} else {
		if s.matchKeyword("var") || s.matchKeyword("let") {
			dt := s.start()
			kind := s.next().Value
			decl := finish(s, dt, &VariableDeclaration{Declarations: s.parseVariableDeclarationList(), Kind: kind})
			if s.matchKeyword("in") {
				if len(decl.Declarations) != 1 {
					s.lex.throwError(msgInvalidLHSInForIn)
				}
				s.next()
				left, right, forIn = decl, s.parseExpression(), true
			} else {
				init = decl
			}
		} else {
			init = s.parseExpression()
			if bin, ok := init.(*BinaryExpression); ok && bin.Operator == "in" {
				if !isLeftHandSide(bin.Left) {
					s.lex.throwError(msgInvalidLHSInForIn)
				}
				left, right, forIn, init = bin.Left, bin.Right, true, nil
			}
		}
		if !forIn {
			s.expect(";")
		}
	}

	if forIn {
		s.expect(")")
		body := s.parseStatement()
		return finish(s, t, &ForInStatement{Left: left, Right: right, Body: body})
	}

	stmt := &ForStatement{Init: init}
	if !s.match(";") {
		stmt.Test = s.parseExpression()
	}
	s.expect(";")
	if !s.match(")") {
		stmt.Update = s.parseExpression()
	}
	s.expect(")")
	stmt.Body = s.parseStatement()
	return finish(s, t, stmt)
}

// parseJumpLabel reads the optional label of break or continue. A ';'
// directly after the keyword or a line break ends the statement without a
// label.
func (s *session) parseJumpLabel() (label *Identifier, done bool) {
	if s.lex.peekChar() == ';' {
		s.next()
		return nil, true
	}
	if s.lex.peekLineTerminator() {
		return nil, true
	}
	if s.peek().Kind == TokenIdentifier {
		label = s.identifierFrom(s.next())
	}
	return label, false
}

func (s *session) parseBreakStatement() Statement {
	t := s.start()
	s.expectKeyword("break")
	label, done := s.parseJumpLabel()
	stmt := finish(s, t, &BreakStatement{Label: label})
	if !done {
		s.consumeSemicolon()
	}
	return stmt
}

func (s *session) parseContinueStatement() Statement {
	t := s.start()
	s.expectKeyword("continue")
	label, done := s.parseJumpLabel()
	stmt := finish(s, t, &ContinueStatement{Label: label})
	if !done {
		s.consumeSemicolon()
	}
	return stmt
}

func (s *session) parseReturnStatement() Statement {
	t := s.start()
	s.expectKeyword("return")

	if s.lex.peekLineTerminator() {
		return finish(s, t, &ReturnStatement{})
	}

	stmt := &ReturnStatement{}
	if tok := s.peek(); !tok.isPunctuator(";") && !tok.isPunctuator("}") && tok.Kind != TokenEOF {
		stmt.Argument = s.parseExpression()
	}
	finish(s, t, stmt)
	s.consumeSemicolon()
	return stmt
}

func (s *session) parseWithStatement() Statement {
	t := s.start()
	s.expectKeyword("with")
	s.expect("(")
	stmt := &WithStatement{Object: s.parseExpression()}
	s.expect(")")
	stmt.Body = s.parseStatement()
	return finish(s, t, stmt)
}

func (s *session) parseSwitchStatement() Statement {
	t := s.start()
	s.expectKeyword("switch")
	s.expect("(")
	stmt := &SwitchStatement{Discriminant: s.parseExpression(), Cases: []*SwitchCase{}}
	s.expect(")")
	s.expect("{")
	for !s.match("}") {
		stmt.Cases = append(stmt.Cases, s.parseSwitchCase())
	}
	s.expect("}")
	return finish(s, t, stmt)
}

func (s *session) parseSwitchCase() *SwitchCase {
	t := s.start()
	sc := &SwitchCase{}
	if s.matchKeyword("default") {
		s.next()
	} else {
		s.expectKeyword("case")
		sc.Test = s.parseExpression()
	}
	s.expect(":")

	sc.Consequent = []Statement{}
	for {
		tok := s.peek()
		if tok.isPunctuator("}") || tok.isKeyword("case") || tok.isKeyword("default") || tok.Kind == TokenEOF {
			break
		}
		sc.Consequent = append(sc.Consequent, s.parseStatement())
	}
	return finish(s, t, sc)
}

func (s *session) parseThrowStatement() Statement {
	t := s.start()
	s.expectKeyword("throw")
	if s.lex.peekLineTerminator() {
		s.lex.throwError(msgNewlineAfterThrow)
	}
	stmt := finish(s, t, &ThrowStatement{Argument: s.parseExpression()})
	s.consumeSemicolon()
	return stmt
}

func (s *session) parseTryStatement() Statement {
	t := s.start()
	s.expectKeyword("try")
	stmt := &TryStatement{Block: s.parseBlock(), Handlers: []*CatchClause{}}

	if s.matchKeyword("catch") {
		ct := s.start()
		s.next()
		s.expect("(")
		param := s.identifierFrom(s.next())
		s.expect(")")
		body := s.parseBlock()
		stmt.Handlers = append(stmt.Handlers, finish(s, ct, &CatchClause{Param: param, Body: body}))
	}
	if s.matchKeyword("finally") {
		s.next()
		stmt.Finalizer = s.parseBlock()
	}
	if len(stmt.Handlers) == 0 && stmt.Finalizer == nil {
		s.lex.throwError(msgNoCatchOrFinally)
	}
	return finish(s, t, stmt)
}

func (s *session) parseDebuggerStatement() Statement {
	t := s.start()
	s.expectKeyword("debugger")
	stmt := finish(s, t, &DebuggerStatement{})
	s.consumeSemicolon()
	return stmt
}

func (s *session) parseFunctionDeclaration() Statement {
	t := s.start()
	s.expectKeyword("function")
	fn := &FunctionDeclaration{ID: s.identifierFrom(s.next())}
	fn.Params, fn.Body = s.parseFunctionRest()
	return finish(s, t, fn)
}
