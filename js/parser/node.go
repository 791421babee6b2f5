package parser

// Base carries the optional position information shared by every node.
type Base struct {
	Range *Range
	Loc   *SourceLocation
}

func (b *Base) Meta() *Base { return b }

// Node is implemented by every syntax tree node.
type Node interface {
	Type() NodeType
	Meta() *Base
}

// Expression and Statement are documentation aliases; the grammar is
// enforced by the parser, not by the type system.
type (
	Expression = Node
	Statement  = Node
)

type NodeType int

const (
	NodeProgram NodeType = iota + 1
	NodeArrayExpression
	NodeAssignmentExpression
	NodeBinaryExpression
	NodeBlockStatement
	NodeBreakStatement
	NodeCallExpression
	NodeCatchClause
	NodeConditionalExpression
	NodeContinueStatement
	NodeDebuggerStatement
	NodeDoWhileStatement
	NodeEmptyStatement
	NodeExpressionStatement
	NodeForInStatement
	NodeForStatement
	NodeFunctionDeclaration
	NodeFunctionExpression
	NodeIdentifier
	NodeIfStatement
	NodeLabeledStatement
	NodeLiteral
	NodeLogicalExpression
	NodeMemberExpression
	NodeNewExpression
	NodeObjectExpression
	NodeProperty
	NodeReturnStatement
	NodeSequenceExpression
	NodeSwitchCase
	NodeSwitchStatement
	NodeThisExpression
	NodeThrowStatement
	NodeTryStatement
	NodeUnaryExpression
	NodeUpdateExpression
	NodeVariableDeclaration
	NodeVariableDeclarator
	NodeWhileStatement
	NodeWithStatement
)

var nodeTypeNames = map[NodeType]string{
	NodeProgram:               "Program",
	NodeArrayExpression:       "ArrayExpression",
	NodeAssignmentExpression:  "AssignmentExpression",
	NodeBinaryExpression:      "BinaryExpression",
	NodeBlockStatement:        "BlockStatement",
	NodeBreakStatement:        "BreakStatement",
	NodeCallExpression:        "CallExpression",
	NodeCatchClause:           "CatchClause",
	NodeConditionalExpression: "ConditionalExpression",
	NodeContinueStatement:     "ContinueStatement",
	NodeDebuggerStatement:     "DebuggerStatement",
	NodeDoWhileStatement:      "DoWhileStatement",
	NodeEmptyStatement:        "EmptyStatement",
	NodeExpressionStatement:   "ExpressionStatement",
	NodeForInStatement:        "ForInStatement",
	NodeForStatement:          "ForStatement",
	NodeFunctionDeclaration:   "FunctionDeclaration",
	NodeFunctionExpression:    "FunctionExpression",
	NodeIdentifier:            "Identifier",
	NodeIfStatement:           "IfStatement",
	NodeLabeledStatement:      "LabeledStatement",
	NodeLiteral:               "Literal",
	NodeLogicalExpression:     "LogicalExpression",
	NodeMemberExpression:      "MemberExpression",
	NodeNewExpression:         "NewExpression",
	NodeObjectExpression:      "ObjectExpression",
	NodeProperty:              "Property",
	NodeReturnStatement:       "ReturnStatement",
	NodeSequenceExpression:    "SequenceExpression",
	NodeSwitchCase:            "SwitchCase",
	NodeSwitchStatement:       "SwitchStatement",
	NodeThisExpression:        "ThisExpression",
	NodeThrowStatement:        "ThrowStatement",
	NodeTryStatement:          "TryStatement",
	NodeUnaryExpression:       "UnaryExpression",
	NodeUpdateExpression:      "UpdateExpression",
	NodeVariableDeclaration:   "VariableDeclaration",
	NodeVariableDeclarator:    "VariableDeclarator",
	NodeWhileStatement:        "WhileStatement",
	NodeWithStatement:         "WithStatement",
}

func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Program is the root of every parse. Comments and Tokens are populated
// only when the corresponding options are enabled.
type Program struct {
	Base
	Body     []Statement
	Comments []*Comment
	Tokens   []*Token
}

type CommentKind int

const (
	CommentLine CommentKind = iota + 1
	CommentBlock
)

func (k CommentKind) String() string {
	if k == CommentBlock {
		return "Block"
	}
	return "Line"
}

// Comment is a comment collected during scanning. Text excludes the
// delimiters. PrefixLength and Prefix describe the source between the
// start of the comment's line and the comment itself. PrefixLength is set
// whenever ranges are tracked, Prefix only when comment prefixes are
// requested as well.
type Comment struct {
	Kind         CommentKind
	Text         string
	Range        *Range
	Loc          *SourceLocation
	PrefixLength int
	Prefix       string
}

// Statements

type BlockStatement struct {
	Base
	Body []Statement
}

type EmptyStatement struct{ Base }

type ExpressionStatement struct {
	Base
	Expression Expression
}

type IfStatement struct {
	Base
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

type LabeledStatement struct {
	Base
	Label *Identifier
	Body  Statement
}

type BreakStatement struct {
	Base
	Label *Identifier
}

type ContinueStatement struct {
	Base
	Label *Identifier
}

type WithStatement struct {
	Base
	Object Expression
	Body   Statement
}

type SwitchStatement struct {
	Base
	Discriminant Expression
	Cases        []*SwitchCase
}

// SwitchCase is a case clause; Test is nil for the default clause.
type SwitchCase struct {
	Base
	Test       Expression
	Consequent []Statement
}

type ReturnStatement struct {
	Base
	Argument Expression
}

type ThrowStatement struct {
	Base
	Argument Expression
}

type TryStatement struct {
	Base
	Block     *BlockStatement
	Handlers  []*CatchClause
	Finalizer *BlockStatement
}

// CatchClause.Guard is always nil; it exists for Parser-API compatibility.
type CatchClause struct {
	Base
	Param *Identifier
	Guard Expression
	Body  *BlockStatement
}

type WhileStatement struct {
	Base
	Test Expression
	Body Statement
}

type DoWhileStatement struct {
	Base
	Body Statement
	Test Expression
}

// ForStatement.Init is a *VariableDeclaration, an Expression, or nil.
type ForStatement struct {
	Base
	Init   Node
	Test   Expression
	Update Expression
	Body   Statement
}

// ForInStatement.Left is a *VariableDeclaration or a left-hand-side
// expression. Each is always false.
type ForInStatement struct {
	Base
	Left  Node
	Right Expression
	Body  Statement
	Each  bool
}

type DebuggerStatement struct{ Base }

type FunctionDeclaration struct {
	Base
	ID     *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

type VariableDeclaration struct {
	Base
	Declarations []*VariableDeclarator
	Kind         string
}

type VariableDeclarator struct {
	Base
	ID   *Identifier
	Init Expression
}

// Expressions

type Identifier struct {
	Base
	Name string
}

// Literal.Value is a string, a float64, a bool, nil (for null) or a
// *RegExp.
type Literal struct {
	Base
	Value any
	Raw   string
}

type ThisExpression struct{ Base }

// ArrayExpression.Elements contains nil for holes.
type ArrayExpression struct {
	Base
	Elements []Expression
}

type ObjectExpression struct {
	Base
	Properties []*Property
}

// Property.Key is an *Identifier or a *Literal. Kind is "init", "get" or
// "set".
type Property struct {
	Base
	Key   Node
	Value Expression
	Kind  string
}

// FunctionExpression.ID is nil for anonymous functions.
type FunctionExpression struct {
	Base
	ID     *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

type SequenceExpression struct {
	Base
	Expressions []Expression
}

type UnaryExpression struct {
	Base
	Operator string
	Argument Expression
}

type BinaryExpression struct {
	Base
	Operator string
	Left     Expression
	Right    Expression
}

type AssignmentExpression struct {
	Base
	Operator string
	Left     Expression
	Right    Expression
}

type UpdateExpression struct {
	Base
	Operator string
	Argument Expression
	Prefix   bool
}

type LogicalExpression struct {
	Base
	Operator string
	Left     Expression
	Right    Expression
}

type ConditionalExpression struct {
	Base
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// NewExpression.Arguments is empty, never nil, when no argument list was
// written.
type NewExpression struct {
	Base
	Callee    Expression
	Arguments []Expression
}

type CallExpression struct {
	Base
	Callee    Expression
	Arguments []Expression
}

// MemberExpression.Property is an *Identifier when Computed is false.
type MemberExpression struct {
	Base
	Object   Expression
	Property Expression
	Computed bool
}

func (*Program) Type() NodeType               { return NodeProgram }
func (*BlockStatement) Type() NodeType        { return NodeBlockStatement }
func (*EmptyStatement) Type() NodeType        { return NodeEmptyStatement }
func (*ExpressionStatement) Type() NodeType   { return NodeExpressionStatement }
func (*IfStatement) Type() NodeType           { return NodeIfStatement }
func (*LabeledStatement) Type() NodeType      { return NodeLabeledStatement }
func (*BreakStatement) Type() NodeType        { return NodeBreakStatement }
func (*ContinueStatement) Type() NodeType     { return NodeContinueStatement }
func (*WithStatement) Type() NodeType         { return NodeWithStatement }
func (*SwitchStatement) Type() NodeType       { return NodeSwitchStatement }
func (*SwitchCase) Type() NodeType            { return NodeSwitchCase }
func (*ReturnStatement) Type() NodeType       { return NodeReturnStatement }
func (*ThrowStatement) Type() NodeType        { return NodeThrowStatement }
func (*TryStatement) Type() NodeType          { return NodeTryStatement }
func (*CatchClause) Type() NodeType           { return NodeCatchClause }
func (*WhileStatement) Type() NodeType        { return NodeWhileStatement }
func (*DoWhileStatement) Type() NodeType      { return NodeDoWhileStatement }
func (*ForStatement) Type() NodeType          { return NodeForStatement }
func (*ForInStatement) Type() NodeType        { return NodeForInStatement }
func (*DebuggerStatement) Type() NodeType     { return NodeDebuggerStatement }
func (*FunctionDeclaration) Type() NodeType   { return NodeFunctionDeclaration }
func (*VariableDeclaration) Type() NodeType   { return NodeVariableDeclaration }
func (*VariableDeclarator) Type() NodeType    { return NodeVariableDeclarator }
func (*Identifier) Type() NodeType            { return NodeIdentifier }
func (*Literal) Type() NodeType               { return NodeLiteral }
func (*ThisExpression) Type() NodeType        { return NodeThisExpression }
func (*ArrayExpression) Type() NodeType       { return NodeArrayExpression }
func (*ObjectExpression) Type() NodeType      { return NodeObjectExpression }
func (*Property) Type() NodeType              { return NodeProperty }
func (*FunctionExpression) Type() NodeType    { return NodeFunctionExpression }
func (*SequenceExpression) Type() NodeType    { return NodeSequenceExpression }
func (*UnaryExpression) Type() NodeType       { return NodeUnaryExpression }
func (*BinaryExpression) Type() NodeType      { return NodeBinaryExpression }
func (*AssignmentExpression) Type() NodeType  { return NodeAssignmentExpression }
func (*UpdateExpression) Type() NodeType      { return NodeUpdateExpression }
func (*LogicalExpression) Type() NodeType     { return NodeLogicalExpression }
func (*ConditionalExpression) Type() NodeType { return NodeConditionalExpression }
func (*NewExpression) Type() NodeType         { return NodeNewExpression }
func (*CallExpression) Type() NodeType        { return NodeCallExpression }
func (*MemberExpression) Type() NodeType      { return NodeMemberExpression }
