package format

import (
	"bytes"
	"encoding/json"
	"io"
	"math"

	"github.com/dhamidi/esparse/js/parser"
)

// ASTJSONEncoder writes a Program in the Mozilla Parser API shape. Keys
// appear in Parser API order with "type" first; range and loc are written
// only for nodes that carry them.
type ASTJSONEncoder struct {
	w    io.Writer
	prog *parser.Program
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(prog *parser.Program) error {
	e.prog = prog
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(programToJSON(e.prog), "", "  ")
}

// MarshalProgram returns the compact Parser API JSON of prog.
func MarshalProgram(prog *parser.Program) ([]byte, error) {
	return json.Marshal(programToJSON(prog))
}

// MarshalTokens returns the Parser API JSON of a token list.
func MarshalTokens(tokens []*parser.Token) ([]byte, error) {
	out := make([]any, len(tokens))
	for i, t := range tokens {
		out[i] = tokenToJSON(t)
	}
	return json.Marshal(out)
}

// field and object form an insertion-ordered JSON object.
type field struct {
	key   string
	value any
}

type object []field

func (o object) with(key string, value any) object {
	return append(o, field{key, value})
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// plain converts ordered objects into maps for encoders that do not
// preserve key order.
func plain(v any) any {
	switch v := v.(type) {
	case object:
		m := make(map[string]any, len(v))
		for _, f := range v {
			m[f.key] = plain(f.value)
		}
		return m
	case []any:
		out := make([]any, len(v))
		for i, x := range v {
			out[i] = plain(x)
		}
		return out
	}
	return v
}

func programToJSON(prog *parser.Program) object {
	o := object{{"type", "Program"}, {"body", nodeList(prog.Body)}}
	o = withPosition(o, prog.Range, prog.Loc)
	if prog.Comments != nil {
		comments := make([]any, len(prog.Comments))
		for i, c := range prog.Comments {
			comments[i] = commentToJSON(c)
		}
		o = o.with("comments", comments)
	}
	if prog.Tokens != nil {
		tokens := make([]any, len(prog.Tokens))
		for i, t := range prog.Tokens {
			tokens[i] = tokenToJSON(t)
		}
		o = o.with("tokens", tokens)
	}
	return o
}

func withPosition(o object, r *parser.Range, loc *parser.SourceLocation) object {
	if r != nil {
		o = o.with("range", []any{r[0], r[1]})
	}
	if loc != nil {
		l := object{
			{"start", object{{"line", loc.Start.Line}, {"column", loc.Start.Column}}},
			{"end", object{{"line", loc.End.Line}, {"column", loc.End.Column}}},
		}
		if loc.Source != "" {
			l = l.with("source", loc.Source)
		}
		o = o.with("loc", l)
	}
	return o
}

func commentToJSON(c *parser.Comment) object {
	o := object{{"type", c.Kind.String()}, {"value", c.Text}}
	o = withPosition(o, c.Range, c.Loc)
	if c.PrefixLength > 0 {
		o = o.with("prefixLength", c.PrefixLength)
	}
	if c.Prefix != "" {
		o = o.with("prefix", c.Prefix)
	}
	return o
}

func tokenToJSON(t *parser.Token) object {
	o := object{{"type", t.Kind.String()}, {"value", t.Raw}}
	if t.Regex != nil {
		o = o.with("regex", object{{"pattern", t.Regex.Pattern}, {"flags", t.Regex.Flags}})
	}
	return withPosition(o, t.Range, t.Loc)
}

func nodeList[N parser.Node](nodes []N) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = nodeToJSON(n)
	}
	return out
}

func ident(id *parser.Identifier) any {
	if id == nil {
		return nil
	}
	return nodeToJSON(id)
}

func block(b *parser.BlockStatement) any {
	if b == nil {
		return nil
	}
	return nodeToJSON(b)
}

func literalValue(v any) any {
	switch v := v.(type) {
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil
		}
	case *parser.RegExp:
		return v.String()
	}
	return v
}

// nodeToJSON returns nil for a nil node so that absent children encode as
// null.
func nodeToJSON(n parser.Node) any {
	if n == nil {
		return nil
	}
	o := object{{"type", n.Type().String()}}
	switch n := n.(type) {
	case *parser.Program:
		return programToJSON(n)
	case *parser.BlockStatement:
		o = o.with("body", nodeList(n.Body))
	case *parser.EmptyStatement, *parser.DebuggerStatement, *parser.ThisExpression:
	case *parser.ExpressionStatement:
		o = o.with("expression", nodeToJSON(n.Expression))
	case *parser.IfStatement:
		o = o.with("test", nodeToJSON(n.Test)).
			with("consequent", nodeToJSON(n.Consequent)).
			with("alternate", nodeToJSON(n.Alternate))
	case *parser.LabeledStatement:
		o = o.with("label", ident(n.Label)).with("body", nodeToJSON(n.Body))
	case *parser.BreakStatement:
		o = o.with("label", ident(n.Label))
	case *parser.ContinueStatement:
		o = o.with("label", ident(n.Label))
	case *parser.WithStatement:
		o = o.with("object", nodeToJSON(n.Object)).with("body", nodeToJSON(n.Body))
	case *parser.SwitchStatement:
		o = o.with("discriminant", nodeToJSON(n.Discriminant)).with("cases", nodeList(n.Cases))
	case *parser.SwitchCase:
		o = o.with("test", nodeToJSON(n.Test)).with("consequent", nodeList(n.Consequent))
	case *parser.ReturnStatement:
		o = o.with("argument", nodeToJSON(n.Argument))
	case *parser.ThrowStatement:
		o = o.with("argument", nodeToJSON(n.Argument))
	case *parser.TryStatement:
		o = o.with("block", block(n.Block)).
			with("guardedHandlers", []any{}).
			with("handlers", nodeList(n.Handlers)).
			with("finalizer", block(n.Finalizer))
	case *parser.CatchClause:
		o = o.with("param", ident(n.Param)).
			with("guard", nodeToJSON(n.Guard)).
			with("body", block(n.Body))
	case *parser.WhileStatement:
		o = o.with("test", nodeToJSON(n.Test)).with("body", nodeToJSON(n.Body))
	case *parser.DoWhileStatement:
		o = o.with("body", nodeToJSON(n.Body)).with("test", nodeToJSON(n.Test))
	case *parser.ForStatement:
		o = o.with("init", nodeToJSON(n.Init)).
			with("test", nodeToJSON(n.Test)).
			with("update", nodeToJSON(n.Update)).
			with("body", nodeToJSON(n.Body))
	case *parser.ForInStatement:
		o = o.with("left", nodeToJSON(n.Left)).
			with("right", nodeToJSON(n.Right)).
			with("body", nodeToJSON(n.Body)).
			with("each", n.Each)
	case *parser.FunctionDeclaration:
		o = function(o, n.ID, n.Params, n.Body)
	case *parser.FunctionExpression:
		o = function(o, n.ID, n.Params, n.Body)
	case *parser.VariableDeclaration:
		o = o.with("declarations", nodeList(n.Declarations)).with("kind", n.Kind)
	case *parser.VariableDeclarator:
		o = o.with("id", ident(n.ID)).with("init", nodeToJSON(n.Init))
	case *parser.Identifier:
		o = o.with("name", n.Name)
	case *parser.Literal:
		o = o.with("value", literalValue(n.Value))
		if re, ok := n.Value.(*parser.RegExp); ok {
			o = o.with("regex", object{{"pattern", re.Pattern}, {"flags", re.Flags}})
		}
		o = o.with("raw", n.Raw)
	case *parser.ArrayExpression:
		o = o.with("elements", nodeList(n.Elements))
	case *parser.ObjectExpression:
		o = o.with("properties", nodeList(n.Properties))
	case *parser.Property:
		o = o.with("key", nodeToJSON(n.Key)).
			with("value", nodeToJSON(n.Value)).
			with("kind", n.Kind)
	case *parser.SequenceExpression:
		o = o.with("expressions", nodeList(n.Expressions))
	case *parser.UnaryExpression:
		o = o.with("operator", n.Operator).
			with("argument", nodeToJSON(n.Argument)).
			with("prefix", true)
	case *parser.BinaryExpression:
		o = o.with("operator", n.Operator).
			with("left", nodeToJSON(n.Left)).
			with("right", nodeToJSON(n.Right))
	case *parser.LogicalExpression:
		o = o.with("operator", n.Operator).
			with("left", nodeToJSON(n.Left)).
			with("right", nodeToJSON(n.Right))
	case *parser.AssignmentExpression:
		o = o.with("operator", n.Operator).
			with("left", nodeToJSON(n.Left)).
			with("right", nodeToJSON(n.Right))
	case *parser.UpdateExpression:
		o = o.with("operator", n.Operator).
			with("argument", nodeToJSON(n.Argument)).
			with("prefix", n.Prefix)
	case *parser.ConditionalExpression:
		o = o.with("test", nodeToJSON(n.Test)).
			with("consequent", nodeToJSON(n.Consequent)).
			with("alternate", nodeToJSON(n.Alternate))
	case *parser.NewExpression:
		o = o.with("callee", nodeToJSON(n.Callee)).with("arguments", nodeList(n.Arguments))
	case *parser.CallExpression:
		o = o.with("callee", nodeToJSON(n.Callee)).with("arguments", nodeList(n.Arguments))
	case *parser.MemberExpression:
		o = o.with("computed", n.Computed).
			with("object", nodeToJSON(n.Object)).
			with("property", nodeToJSON(n.Property))
	}
	meta := n.Meta()
	return withPosition(o, meta.Range, meta.Loc)
}

func function(o object, id *parser.Identifier, params []*parser.Identifier, body *parser.BlockStatement) object {
	return o.with("id", ident(id)).
		with("params", nodeList(params)).
		with("defaults", []any{}).
		with("body", block(body)).
		with("rest", nil).
		with("generator", false).
		with("expression", false)
}
