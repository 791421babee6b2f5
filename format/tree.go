package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/esparse/js/parser"
)

// TreeEncoder writes one line per node, indented by depth:
//
//	Program [0,9]
//	  VariableDeclaration [0,8] var
//	    VariableDeclarator [4,8]
//	      Identifier [4,4] x
//	      Literal [8,8] 1
type TreeEncoder struct {
	w    io.Writer
	prog *parser.Program
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(prog *parser.Program) error {
	e.prog = prog
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	writeTree(&sb, e.prog, 0)
	return []byte(sb.String()), nil
}

func writeTree(sb *strings.Builder, n parser.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Type().String())
	if r := n.Meta().Range; r != nil {
		fmt.Fprintf(sb, " [%d,%d]", r[0], r[1])
	}
	if d := detail(n); d != "" {
		sb.WriteString(" ")
		sb.WriteString(d)
	}
	sb.WriteString("\n")
	for _, child := range parser.Children(n) {
		writeTree(sb, child, depth+1)
	}
}

// detail is the non-child payload of a node, if it has one.
func detail(n parser.Node) string {
	switch n := n.(type) {
	case *parser.Identifier:
		return n.Name
	case *parser.Literal:
		return n.Raw
	case *parser.VariableDeclaration:
		return n.Kind
	case *parser.Property:
		if n.Kind != "init" {
			return n.Kind
		}
	case *parser.UnaryExpression:
		return n.Operator
	case *parser.BinaryExpression:
		return n.Operator
	case *parser.LogicalExpression:
		return n.Operator
	case *parser.AssignmentExpression:
		return n.Operator
	case *parser.UpdateExpression:
		if n.Prefix {
			return n.Operator + " prefix"
		}
		return n.Operator
	case *parser.MemberExpression:
		if n.Computed {
			return "computed"
		}
	}
	return ""
}
