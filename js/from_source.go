package js

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/esparse/js/jsdoc"
	"github.com/dhamidi/esparse/js/parser"
)

// docFinder matches /** */ comments to the declarations that follow them.
type docFinder struct {
	comments []*parser.Comment // doc comments only, by start line ascending
	used     map[int]bool
}

func newDocFinder(comments []*parser.Comment) *docFinder {
	var docs []*parser.Comment
	for _, c := range comments {
		if c.Kind == parser.CommentBlock && strings.HasPrefix(c.Text, "*") && c.Loc != nil {
			docs = append(docs, c)
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Loc.Start.Line < docs[j].Loc.Start.Line
	})
	return &docFinder{comments: docs, used: make(map[int]bool)}
}

// FindForNode returns the parsed doc comment ending on the line above
// node, or on the same line before it. Each comment is used at most once.
func (df *docFinder) FindForNode(node parser.Node) *jsdoc.DocComment {
	loc := node.Meta().Loc
	if df == nil || loc == nil {
		return nil
	}
	for i, c := range df.comments {
		if df.used[i] {
			continue
		}
		end := c.Loc.End
		sameLine := end.Line == loc.Start.Line && end.Column <= loc.Start.Column
		if end.Line == loc.Start.Line-1 || sameLine {
			df.used[i] = true
			return jsdoc.Parse(c.Text)
		}
	}
	return nil
}

// ParseOptions are the parser options the models need: positions and
// comments.
func ParseOptions() []parser.Option {
	return []parser.Option{parser.WithRange(), parser.WithLoc(), parser.WithComments()}
}

func FunctionModelsFromSource(source string, opts ...parser.Option) ([]*FunctionModel, error) {
	prog, err := parser.Parse(source, append(opts, ParseOptions()...)...)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return FunctionModelsFromProgram(prog), nil
}

// FunctionModelsFromProgram collects the named functions of prog in source
// order. prog must have been parsed with ParseOptions.
func FunctionModelsFromProgram(prog *parser.Program) []*FunctionModel {
	c := &functionCollector{
		docs:       newDocFinder(prog.Comments),
		containers: make(map[*parser.ObjectExpression]string),
	}
	parser.Walk(prog, c.visit)
	return c.functions
}

type functionCollector struct {
	docs       *docFinder
	containers map[*parser.ObjectExpression]string
	functions  []*FunctionModel
}

func (c *functionCollector) visit(n parser.Node) bool {
	switch n := n.(type) {
	case *parser.FunctionDeclaration:
		c.add(n.ID.Name, "", FunctionKindDeclaration, n.Params, n, n)

	case *parser.VariableDeclaration:
		for _, d := range n.Declarations {
			docNode := parser.Node(d)
			if len(n.Declarations) == 1 {
				docNode = n
			}
			c.bind(d.ID.Name, d.Init, docNode)
		}

	case *parser.ExpressionStatement:
		if assign, ok := n.Expression.(*parser.AssignmentExpression); ok && assign.Operator == "=" {
			if name := memberName(assign.Left); name != "" {
				c.bind(name, assign.Right, n)
			}
		}

	case *parser.ObjectExpression:
		container := c.containers[n]
		for _, p := range n.Properties {
			fn, ok := p.Value.(*parser.FunctionExpression)
			if !ok {
				continue
			}
			kind := FunctionKindMethod
			switch p.Kind {
			case "get":
				kind = FunctionKindGetter
			case "set":
				kind = FunctionKindSetter
			}
			c.add(propertyName(p.Key), container, kind, fn.Params, fn, p)
		}
	}
	return true
}

// bind records a function expression assigned to name, or remembers name
// as the container of an object literal.
func (c *functionCollector) bind(name string, value parser.Node, docNode parser.Node) {
	switch v := value.(type) {
	case *parser.FunctionExpression:
		container, base := splitName(name)
		c.add(base, container, FunctionKindExpression, v.Params, v, docNode)
	case *parser.ObjectExpression:
		c.containers[v] = name
	}
}

func (c *functionCollector) add(name, container string, kind FunctionKind, params []*parser.Identifier, fn, docNode parser.Node) {
	doc := c.docs.FindForNode(docNode)
	m := &FunctionModel{
		Name:      name,
		Kind:      kind,
		Container: container,
		Doc:       jsdoc.Format(doc),
		JSDoc:     doc,
	}
	for _, p := range params {
		m.Params = append(m.Params, p.Name)
	}
	if loc := fn.Meta().Loc; loc != nil {
		m.Start, m.End = loc.Start, loc.End
	}
	if r := fn.Meta().Range; r != nil {
		m.Range = *r
	}
	c.functions = append(c.functions, m)
}

// memberName renders an identifier or a chain of non-computed member
// accesses such as a.b.c. Anything else yields "".
func memberName(n parser.Node) string {
	switch n := n.(type) {
	case *parser.Identifier:
		return n.Name
	case *parser.ThisExpression:
		return "this"
	case *parser.MemberExpression:
		if n.Computed {
			lit, ok := n.Property.(*parser.Literal)
			if !ok {
				return ""
			}
			s, ok := lit.Value.(string)
			if !ok {
				return ""
			}
			if obj := memberName(n.Object); obj != "" {
				return obj + "." + s
			}
			return ""
		}
		if obj := memberName(n.Object); obj != "" {
			return obj + "." + n.Property.(*parser.Identifier).Name
		}
	}
	return ""
}

func splitName(name string) (container, base string) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func propertyName(key parser.Node) string {
	switch k := key.(type) {
	case *parser.Identifier:
		return k.Name
	case *parser.Literal:
		if s, ok := k.Value.(string); ok {
			return s
		}
		return k.Raw
	}
	return ""
}

func SymbolsFromSource(source string, opts ...parser.Option) ([]Symbol, error) {
	prog, err := parser.Parse(source, append(opts, ParseOptions()...)...)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return SymbolsFromProgram(prog), nil
}

// SymbolsFromProgram lists the functions of prog and its top-level
// variables that are not bound to functions, ordered by position.
func SymbolsFromProgram(prog *parser.Program) []Symbol {
	var symbols []Symbol
	for _, f := range FunctionModelsFromProgram(prog) {
		kind := SymbolKindFunction
		if f.Kind == FunctionKindMethod || f.Kind == FunctionKindGetter || f.Kind == FunctionKindSetter {
			kind = SymbolKindMethod
		}
		symbols = append(symbols, Symbol{
			Name:      f.Name,
			Kind:      kind,
			Container: f.Container,
			Detail:    f.Signature(),
			Doc:       f.Doc,
			Summary:   f.Summary(),
			Start:     f.Start,
			End:       f.End,
		})
	}

	for _, stmt := range prog.Body {
		decl, ok := stmt.(*parser.VariableDeclaration)
		if !ok {
			continue
		}
		for _, d := range decl.Declarations {
			if _, isFunc := d.Init.(*parser.FunctionExpression); isFunc {
				continue
			}
			sym := Symbol{Name: d.ID.Name, Kind: SymbolKindVariable, Detail: decl.Kind + " " + d.ID.Name}
			if loc := d.Loc; loc != nil {
				sym.Start, sym.End = loc.Start, loc.End
			}
			symbols = append(symbols, sym)
		}
	}

	sort.SliceStable(symbols, func(i, j int) bool {
		a, b := symbols[i].Start, symbols[j].Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return symbols
}
