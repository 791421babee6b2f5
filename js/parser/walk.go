package parser

// Children returns the direct child nodes of n in source order. Absent
// optional children and array holes are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(children ...Node) {
		for _, c := range children {
			if !isNil(c) {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		add(n.Body...)
	case *BlockStatement:
		add(n.Body...)
	case *ExpressionStatement:
		add(n.Expression)
	case *IfStatement:
		add(n.Test, n.Consequent, n.Alternate)
	case *LabeledStatement:
		add(n.Label, n.Body)
	case *BreakStatement:
		add(n.Label)
	case *ContinueStatement:
		add(n.Label)
	case *WithStatement:
		add(n.Object, n.Body)
	case *SwitchStatement:
		add(n.Discriminant)
		for _, c := range n.Cases {
			add(c)
		}
	case *SwitchCase:
		add(n.Test)
		add(n.Consequent...)
	case *ReturnStatement:
		add(n.Argument)
	case *ThrowStatement:
		add(n.Argument)
	case *TryStatement:
		add(n.Block)
		for _, h := range n.Handlers {
			add(h)
		}
		add(n.Finalizer)
	case *CatchClause:
		add(n.Param, n.Guard, n.Body)
	case *WhileStatement:
		add(n.Test, n.Body)
	case *DoWhileStatement:
		add(n.Body, n.Test)
	case *ForStatement:
		add(n.Init, n.Test, n.Update, n.Body)
	case *ForInStatement:
		add(n.Left, n.Right, n.Body)
	case *FunctionDeclaration:
		add(n.ID)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *FunctionExpression:
		add(n.ID)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		add(n.ID, n.Init)
	case *ArrayExpression:
		add(n.Elements...)
	case *ObjectExpression:
		for _, p := range n.Properties {
			add(p)
		}
	case *Property:
		add(n.Key, n.Value)
	case *SequenceExpression:
		add(n.Expressions...)
	case *UnaryExpression:
		add(n.Argument)
	case *BinaryExpression:
		add(n.Left, n.Right)
	case *AssignmentExpression:
		add(n.Left, n.Right)
	case *UpdateExpression:
		add(n.Argument)
	case *LogicalExpression:
		add(n.Left, n.Right)
	case *ConditionalExpression:
		add(n.Test, n.Consequent, n.Alternate)
	case *NewExpression:
		add(n.Callee)
		add(n.Arguments...)
	case *CallExpression:
		add(n.Callee)
		add(n.Arguments...)
	case *MemberExpression:
		add(n.Object, n.Property)
	}
	return out
}

// isNil catches typed nil pointers stored in a Node interface, such as an
// absent *Identifier label.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Identifier:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *SwitchCase:
		return v == nil
	case *CatchClause:
		return v == nil
	case *VariableDeclarator:
		return v == nil
	case *Property:
		return v == nil
	}
	return false
}

// Walk visits n and its descendants in preorder. When visit returns false
// the children of that node are skipped.
func Walk(n Node, visit func(Node) bool) {
	if isNil(n) || !visit(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, visit)
	}
}

// Traverse parses source and walks the resulting tree with visit.
func Traverse(source string, visit func(Node) bool, opts ...Option) (*Program, error) {
	prog, err := Parse(source, opts...)
	if err != nil {
		return nil, err
	}
	Walk(prog, visit)
	return prog, nil
}
