package parser

func isLeftHandSide(expr Node) bool {
	switch expr.(type) {
	case *Identifier, *MemberExpression, *CallExpression, *NewExpression:
		return true
	}
	return false
}

func (s *session) identifierFrom(tok *Token) *Identifier {
	if tok.Kind != TokenIdentifier {
		s.lex.throwUnexpected(tok)
	}
	return finishToken(s, tok, &Identifier{Name: tok.Value})
}

// parseExpression parses a comma-separated sequence. A single expression
// is returned unwrapped.
func (s *session) parseExpression() Expression {
	t := s.start()
	expr := s.parseAssignmentExpression()
	if !s.match(",") {
		return expr
	}
	seq := &SequenceExpression{Expressions: []Expression{expr}}
	for s.match(",") {
		s.next()
		seq.Expressions = append(seq.Expressions, s.parseAssignmentExpression())
	}
	return finish(s, t, seq)
}

func (s *session) parseAssignmentExpression() Expression {
	t := s.start()
	expr := s.parseConditionalExpression()
	if !s.matchAssign() {
		return expr
	}
	if !isLeftHandSide(expr) {
		s.lex.throwError(msgInvalidLHSInAssignment)
	}
	op := s.next().Value
	right := s.parseAssignmentExpression()
	return finish(s, t, &AssignmentExpression{Operator: op, Left: expr, Right: right})
}

func (s *session) parseConditionalExpression() Expression {
	t := s.start()
	expr := s.parseLogicalORExpression()
	if !s.match("?") {
		return expr
	}
	s.next()
	cond := &ConditionalExpression{Test: expr}
	cond.Consequent = s.parseAssignmentExpression()
	s.expect(":")
	cond.Alternate = s.parseAssignmentExpression()
	return finish(s, t, cond)
}

// binaryLevel parses a left-associative chain of operators. Every node in
// the chain starts where the chain starts.
func (s *session) binaryLevel(operand func() Expression, logical bool, ops ...string) Expression {
	t := s.start()
	expr := operand()
	for {
		op, ok := s.matchAny(ops)
		if !ok {
			return expr
		}
		s.next()
		right := operand()
		if logical {
			expr = finish(s, t, Expression(&LogicalExpression{Operator: op, Left: expr, Right: right}))
		} else {
			expr = finish(s, t, Expression(&BinaryExpression{Operator: op, Left: expr, Right: right}))
		}
	}
}

func (s *session) matchAny(ops []string) (string, bool) {
	tok := s.peek()
	if tok.Kind != TokenPunctuator {
		return "", false
	}
	for _, op := range ops {
		if tok.Value == op {
			return op, true
		}
	}
	return "", false
}

func (s *session) parseLogicalORExpression() Expression {
	return s.binaryLevel(s.parseLogicalANDExpression, true, "||")
}

func (s *session) parseLogicalANDExpression() Expression {
	return s.binaryLevel(s.parseBitwiseORExpression, true, "&&")
}

func (s *session) parseBitwiseORExpression() Expression {
	return s.binaryLevel(s.parseBitwiseXORExpression, false, "|")
}

func (s *session) parseBitwiseXORExpression() Expression {
	return s.binaryLevel(s.parseBitwiseANDExpression, false, "^")
}

func (s *session) parseBitwiseANDExpression() Expression {
	return s.binaryLevel(s.parseEqualityExpression, false, "&")
}

func (s *session) parseEqualityExpression() Expression {
	return s.binaryLevel(s.parseRelationalExpression, false, "==", "!=", "===", "!==")
}

// parseRelationalExpression chains to the right: a < b < c parses as
// a < (b < c).
func (s *session) parseRelationalExpression() Expression {
	t := s.start()
	expr := s.parseShiftExpression()

	var op string
	switch tok := s.peek(); {
	case tok.isPunctuator("<"), tok.isPunctuator(">"), tok.isPunctuator("<="), tok.isPunctuator(">="):
		op = tok.Value
	case tok.isKeyword("in"), tok.isKeyword("instanceof"):
		op = tok.Value
	default:
		return expr
	}
	s.next()
	right := s.parseRelationalExpression()
	return finish(s, t, &BinaryExpression{Operator: op, Left: expr, Right: right})
}

func (s *session) parseShiftExpression() Expression {
	return s.binaryLevel(s.parseAdditiveExpression, false, "<<", ">>", ">>>")
}

func (s *session) parseAdditiveExpression() Expression {
	return s.binaryLevel(s.parseMultiplicativeExpression, false, "+", "-")
}

func (s *session) parseMultiplicativeExpression() Expression {
	return s.binaryLevel(s.parseUnaryExpression, false, "*", "/", "%")
}

func (s *session) parseUnaryExpression() Expression {
	t := s.start()
	tok := s.peek()

	switch {
	case tok.isPunctuator("++"), tok.isPunctuator("--"):
		s.next()
		arg := s.parseUnaryExpression()
		if !isLeftHandSide(arg) {
			s.lex.throwError(msgInvalidLHSInPrefixOp)
		}
		return finish(s, t, &UpdateExpression{Operator: tok.Value, Argument: arg, Prefix: true})

	case tok.isPunctuator("+"), tok.isPunctuator("-"), tok.isPunctuator("~"), tok.isPunctuator("!"),
		tok.isKeyword("delete"), tok.isKeyword("void"), tok.isKeyword("typeof"):
		s.next()
		arg := s.parseUnaryExpression()
		return finish(s, t, &UnaryExpression{Operator: tok.Value, Argument: arg})
	}

	return s.parsePostfixExpression()
}

func (s *session) parsePostfixExpression() Expression {
	t := s.start()
	expr := s.parseLeftHandSideExpression()

	if (s.match("++") || s.match("--")) && !s.lex.peekLineTerminator() {
		if !isLeftHandSide(expr) {
			s.lex.throwError(msgInvalidLHSInPostfixOp)
		}
		op := s.next().Value
		return finish(s, t, &UpdateExpression{Operator: op, Argument: expr})
	}
	return expr
}

// parseLeftHandSideExpression handles new by parsing its target
// recursively. When the target is itself a call, the call's arguments
// belong to the new expression: new X() and new X.y() fold that way, and a
// bare new X gets an empty argument list.
func (s *session) parseLeftHandSideExpression() Expression {
	t := s.start()

	var expr Expression
	useNew := s.matchKeyword("new")
	if useNew {
		s.next()
		expr = s.parseLeftHandSideExpression()
	} else {
		expr = s.parseMemberExpression()
	}

	var args []Expression
	hasArgs := s.match("(")
	if hasArgs {
		args = s.parseArguments()
	}

	if useNew {
		if call, ok := expr.(*CallExpression); ok {
			expr, args = call.Callee, call.Arguments
		}
		if args == nil {
			args = []Expression{}
		}
		return finish(s, t, &NewExpression{Callee: expr, Arguments: args})
	}
	if hasArgs {
		return finish(s, t, &CallExpression{Callee: expr, Arguments: args})
	}
	return expr
}

func (s *session) parseMemberExpression() Expression {
	t := s.start()
	expr := s.parsePrimaryExpression()

	for {
		switch {
		case s.match("."):
			s.next()
			prop := s.identifierFrom(s.next())
			expr = finish(s, t, Expression(&MemberExpression{Object: expr, Property: prop}))
		case s.match("["):
			s.next()
			prop := s.parseExpression()
			s.expect("]")
			expr = finish(s, t, Expression(&MemberExpression{Object: expr, Property: prop, Computed: true}))
		case s.match("("):
			args := s.parseArguments()
			expr = finish(s, t, Expression(&CallExpression{Callee: expr, Arguments: args}))
		default:
			return expr
		}
	}
}

func (s *session) parseArguments() []Expression {
	args := []Expression{}
	s.expect("(")
	if !s.match(")") {
		for {
			args = append(args, s.parseAssignmentExpression())
			if s.match(")") {
				break
			}
			s.expect(",")
		}
	}
	s.expect(")")
	return args
}

func (s *session) parsePrimaryExpression() Expression {
	switch {
	case s.match("["):
		return s.parseArrayInitialiser()
	case s.match("{"):
		return s.parseObjectInitialiser()
	case s.match("("):
		s.next()
		expr := s.parseExpression()
		s.expect(")")
		return expr
	case s.matchKeyword("function"):
		return s.parseFunctionExpression()
	case s.matchKeyword("this"):
		return finishToken(s, s.next(), &ThisExpression{})
	case s.match("/"), s.match("/="):
		tok := s.lex.rescanRegExp()
		return finishToken(s, tok, &Literal{Value: tok.Regex, Raw: tok.Raw})
	}

	tok := s.next()
	switch tok.Kind {
	case TokenIdentifier:
		return s.identifierFrom(tok)
	case TokenBoolean:
		return finishToken(s, tok, &Literal{Value: tok.Value == "true", Raw: tok.Raw})
	case TokenNull:
		return finishToken(s, tok, &Literal{Value: nil, Raw: tok.Raw})
	case TokenNumeric:
		return finishToken(s, tok, &Literal{Value: tok.Number, Raw: tok.Raw})
	case TokenString:
		return finishToken(s, tok, &Literal{Value: tok.Value, Raw: tok.Raw})
	}
	s.lex.throwUnexpected(tok)
	return nil
}

func (s *session) parseArrayInitialiser() Expression {
	t := s.start()
	elements := []Expression{}
	s.expect("[")
	for !s.match("]") {
		if s.match(",") {
			s.next()
			elements = append(elements, nil)
			continue
		}
		elements = append(elements, s.parseAssignmentExpression())
		if s.match("]") {
			break
		}
		s.expect(",")
	}
	s.expect("]")
	return finish(s, t, &ArrayExpression{Elements: elements})
}

func (s *session) parseObjectInitialiser() Expression {
	t := s.start()
	properties := []*Property{}
	s.expect("{")
	for !s.match("}") {
		properties = append(properties, s.parseObjectProperty())
		if s.match("}") {
			break
		}
		s.expect(",")
	}
	s.expect("}")
	return finish(s, t, &ObjectExpression{Properties: properties})
}

// parseObjectProperty parses key: value, or a get/set accessor when the
// name get or set is not followed by a colon.
func (s *session) parseObjectProperty() *Property {
	t := s.start()
	tok := s.next()

	switch tok.Kind {
	case TokenIdentifier:
		if (tok.Value == "get" || tok.Value == "set") && !s.match(":") {
			return s.parseAccessor(t, tok.Value)
		}
		key := s.identifierFrom(tok)
		s.expect(":")
		value := s.parseAssignmentExpression()
		return finish(s, t, &Property{Key: key, Value: value, Kind: "init"})

	case TokenString, TokenNumeric:
		var value any = tok.Value
		if tok.Kind == TokenNumeric {
			value = tok.Number
		}
		key := finishToken(s, tok, &Literal{Value: value, Raw: tok.Raw})
		s.expect(":")
		return finish(s, t, &Property{Key: key, Value: s.parseAssignmentExpression(), Kind: "init"})
	}

	s.lex.throwUnexpected(tok)
	return nil
}

func (s *session) parseAccessor(t tracker, kind string) *Property {
	key := s.identifierFrom(s.next())
	fnStart := s.start()
	params := []*Identifier{}
	s.expect("(")
	if kind == "set" {
		params = append(params, s.identifierFrom(s.next()))
	}
	s.expect(")")
	body := s.parseBlock()
	fn := finish(s, fnStart, &FunctionExpression{Params: params, Body: body})
	return finish(s, t, &Property{Key: key, Value: fn, Kind: kind})
}

func (s *session) parseFunctionExpression() Expression {
	t := s.start()
	s.expectKeyword("function")
	fn := &FunctionExpression{}
	if !s.match("(") {
		fn.ID = s.identifierFrom(s.next())
	}
	fn.Params, fn.Body = s.parseFunctionRest()
	return finish(s, t, fn)
}

func (s *session) parseFunctionRest() ([]*Identifier, *BlockStatement) {
	params := []*Identifier{}
	s.expect("(")
	if !s.match(")") {
		for {
			params = append(params, s.identifierFrom(s.next()))
			if s.match(")") {
				break
			}
			s.expect(",")
		}
	}
	s.expect(")")
	return params, s.parseBlock()
}
