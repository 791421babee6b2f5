// Package parser implements a lexer and recursive-descent parser for
// ECMAScript 5 programs, producing a tree in the shape of the Parser API.
//
// # Usage
//
//	prog, err := parser.Parse(src, parser.WithRange(), parser.WithComments())
//	if err != nil {
//	    // err is a *parser.Error: "Line 3: Unexpected token ILLEGAL"
//	}
//
// A Parser can also be built once and parsed repeatedly:
//
//	p := parser.New(src, parser.WithLoc(), parser.WithSource("app.js"))
//	prog, err := p.Parse()
//
// # Instrumentation
//
// Positions, comments and tokens are optional:
//
//	WithRange()          Range [start, end] on nodes, tokens and comments
//	WithLoc()            SourceLocation with 1-based lines, 0-based columns
//	WithSource(name)     name recorded in every SourceLocation
//	WithComments()       Program.Comments
//	WithTokens()         Program.Tokens
//	WithCommentPrefix()  Comment.Prefix, requires WithRange and WithComments
//
// Enabling any of them never changes the shape of the tree, only the
// optional fields.
//
// # Regular expressions
//
// Whether '/' starts a regular expression depends on grammatical context.
// The lexer always scans it as a punctuator; when the parser finds '/' or
// '/=' where a primary expression must begin, it asks the lexer to rescan
// from that position as a regular expression literal.
//
// # Strings
//
// Escape sequences inside string literals are kept as written. The value
// of 'a\nb' is the four characters a, backslash, n, b.
//
// # Traversal
//
// Walk visits a tree in preorder; Traverse parses and walks in one call:
//
//	parser.Traverse(src, func(n parser.Node) bool {
//	    if fn, ok := n.(*parser.FunctionDeclaration); ok {
//	        fmt.Println(fn.ID.Name)
//	    }
//	    return true
//	})
package parser
