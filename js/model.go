package js

import (
	"strings"

	"github.com/dhamidi/esparse/js/jsdoc"
	"github.com/dhamidi/esparse/js/parser"
)

type FunctionKind string

const (
	FunctionKindDeclaration FunctionKind = "declaration"
	FunctionKindExpression  FunctionKind = "expression"
	FunctionKindMethod      FunctionKind = "method"
	FunctionKindGetter      FunctionKind = "getter"
	FunctionKindSetter      FunctionKind = "setter"
)

// FunctionModel describes a named function: a declaration, a function
// expression bound to a variable or member, or a function-valued property
// of an object literal.
type FunctionModel struct {
	Name      string
	Kind      FunctionKind
	Container string
	Params    []string
	Doc       string
	JSDoc     *jsdoc.DocComment // nil without a doc comment
	Start     parser.Position
	End       parser.Position
	Range     parser.Range
}

// QualifiedName joins the container and the name with a dot.
func (f *FunctionModel) QualifiedName() string {
	if f.Container == "" {
		return f.Name
	}
	return f.Container + "." + f.Name
}

// Signature renders the function as it would be declared, without body.
// Parameter and return types documented with @param and @returns are
// appended after a colon.
func (f *FunctionModel) Signature() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p
		if f.JSDoc == nil {
			continue
		}
		if tag, ok := f.JSDoc.Param(p); ok && tag.Type != "" {
			params[i] += ": " + tag.Type
		}
	}
	sig := "(" + strings.Join(params, ", ") + ")"
	if f.JSDoc != nil {
		if ret := f.JSDoc.ReturnType(); ret != "" {
			sig += ": " + ret
		}
	}
	switch f.Kind {
	case FunctionKindGetter:
		return "get " + f.Name + sig
	case FunctionKindSetter:
		return "set " + f.Name + sig
	}
	return "function " + f.QualifiedName() + sig
}

// Summary is the first sentence of the doc comment.
func (f *FunctionModel) Summary() string {
	return jsdoc.Summary(f.JSDoc)
}

type SymbolKind string

const (
	SymbolKindFunction SymbolKind = "function"
	SymbolKindMethod   SymbolKind = "method"
	SymbolKindVariable SymbolKind = "variable"
)

// Symbol is a named, navigable entity in a source file.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Container string
	Detail    string
	Doc       string
	Summary   string
	Start     parser.Position
	End       parser.Position
}

func (s Symbol) QualifiedName() string {
	if s.Container == "" {
		return s.Name
	}
	return s.Container + "." + s.Name
}
