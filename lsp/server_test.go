package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/esparse/js/codebase"
	"github.com/dhamidi/esparse/js/parser"
)

type notification struct {
	method string
	params any
}

func recordingContext(sent *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			*sent = append(*sent, notification{method, params})
		},
	}
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	require.NotEmpty(t, sent)
	last := sent[len(sent)-1]
	require.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, last.method)
	params, ok := last.params.(protocol.PublishDiagnosticsParams)
	require.True(t, ok)
	return params
}

func open(t *testing.T, ls *Server, ctx *glsp.Context, uri, text string) {
	t.Helper()
	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "javascript", Text: text},
	})
	require.NoError(t, err)
}

func TestDiagnosticsOnOpen(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
		wantMsg  string
	}{
		{"valid source", "var x = 1;\n", -1, ""},
		{"unexpected identifier", "var x = 1;\nx y;\n", 1, "Unexpected identifier"},
		{"end of input", "function f() {", 0, "Unexpected end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := NewServer("test")
			var sent []notification
			open(t, ls, recordingContext(&sent), "file:///tmp/a.js", tt.text)

			params := lastDiagnostics(t, sent)
			assert.Equal(t, "file:///tmp/a.js", params.URI)
			if tt.wantLine < 0 {
				assert.NotNil(t, params.Diagnostics)
				assert.Empty(t, params.Diagnostics)
				return
			}
			require.Len(t, params.Diagnostics, 1)
			d := params.Diagnostics[0]
			assert.Equal(t, protocol.UInteger(tt.wantLine), d.Range.Start.Line)
			assert.Equal(t, tt.wantMsg, d.Message)
			require.NotNil(t, d.Severity)
			assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
		})
	}
}

func TestDiagnosticsClearOnChange(t *testing.T) {
	ls := NewServer("test")
	var sent []notification
	ctx := recordingContext(&sent)

	open(t, ls, ctx, "file:///tmp/b.js", "x y")
	require.Len(t, lastDiagnostics(t, sent).Diagnostics, 1)

	err := ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: "file:///tmp/b.js"},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "x, y"}},
	})
	require.NoError(t, err)
	assert.Empty(t, lastDiagnostics(t, sent).Diagnostics)
	assert.Len(t, sent, 2)
}

func TestDiagnosticsOnSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.js")
	require.NoError(t, os.WriteFile(path, []byte("if ("), 0o644))

	ls := NewServer("test")
	ls.codebase = codebase.New(dir)
	var sent []notification

	err := ls.textDocumentDidSave(recordingContext(&sent), &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: pathToURI(path)},
	})
	require.NoError(t, err)
	diags := lastDiagnostics(t, sent).Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, "Unexpected end of input", diags[0].Message)
}

func TestDiagnosticFor(t *testing.T) {
	d := diagnosticFor(&parser.Error{Index: 7, Line: 3, Column: 4, Description: "Unexpected number"}, []byte("a\n\nb = 1 2"))
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 4},
		End:   protocol.Position{Line: 2, Character: 5},
	}, d.Range)
	require.NotNil(t, d.Source)
	assert.Equal(t, "esparse", *d.Source)
}

func TestDiagnosticForCountsUTF16(t *testing.T) {
	content := []byte("s = '\U0001F600\u00e9' x")
	d := diagnosticFor(&parser.Error{Index: 13, Line: 1, Column: 13, Description: "Unexpected identifier"}, content)
	assert.Equal(t, protocol.Position{Line: 0, Character: 10}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 11}, d.Range.End)
}

func TestDocumentPosition(t *testing.T) {
	doc := newDocument([]byte("\u00e9\r\nab\u2028\u00fc x"))

	tests := []struct {
		name string
		pos  parser.Position
		want protocol.Position
	}{
		{"first line", parser.Position{Line: 1, Column: 2}, protocol.Position{Line: 0, Character: 1}},
		{"after crlf", parser.Position{Line: 2, Column: 1}, protocol.Position{Line: 1, Character: 1}},
		{"after line separator", parser.Position{Line: 3, Column: 3}, protocol.Position{Line: 2, Character: 2}},
		{"past end of input", parser.Position{Line: 3, Column: 40}, protocol.Position{Line: 2, Character: 3}},
		{"unknown line", parser.Position{Line: 9, Column: 5}, protocol.Position{Line: 8, Character: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.position(tt.pos))
		})
	}
}

func TestDocumentSymbolsCountUTF16(t *testing.T) {
	ls := NewServer("test")
	var sent []notification
	open(t, ls, recordingContext(&sent), "file:///tmp/u.js", "var s = '\U0001F600'; function f() {}\n")

	result, err := ls.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/u.js"},
	})
	require.NoError(t, err)
	symbols := result.([]protocol.DocumentSymbol)
	require.Len(t, symbols, 1)
	assert.Equal(t, protocol.Position{Line: 0, Character: 14}, symbols[0].Range.Start)
}

const symbolSource = `/** Adds numbers. */
function add(a, b) { return a + b; }
var api = {
  get size() { return 1; },
  reset: function () {}
};
`

func TestDocumentSymbols(t *testing.T) {
	ls := NewServer("test")
	var sent []notification
	open(t, ls, recordingContext(&sent), "file:///tmp/s.js", symbolSource)

	result, err := ls.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/s.js"},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)

	var names []string
	for _, s := range symbols {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"add", "api.size", "api.reset"}, names)
	assert.Equal(t, protocol.SymbolKindFunction, symbols[0].Kind)
	assert.Equal(t, protocol.UInteger(1), symbols[0].Range.Start.Line)
	require.NotNil(t, symbols[0].Detail)
	assert.Equal(t, "function add(a, b)", *symbols[0].Detail)
	assert.Equal(t, protocol.SymbolKindMethod, symbols[1].Kind)
}

func TestDocumentSymbolsDeprecated(t *testing.T) {
	ls := NewServer("test")
	var sent []notification
	open(t, ls, recordingContext(&sent), "file:///tmp/d.js",
		"/**\n * @deprecated use g\n * @param {string} s\n */\nfunction f(s) {}\nfunction g() {}\n")

	result, err := ls.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/d.js"},
	})
	require.NoError(t, err)
	symbols := result.([]protocol.DocumentSymbol)
	require.Len(t, symbols, 2)
	assert.Equal(t, []protocol.SymbolTag{protocol.SymbolTagDeprecated}, symbols[0].Tags)
	assert.Equal(t, "function f(s: string)", *symbols[0].Detail)
	assert.Empty(t, symbols[1].Tags)
}

func TestDocumentSymbolsUnknownFile(t *testing.T) {
	ls := NewServer("test")
	result, err := ls.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///nowhere.js"},
	})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestWorkspaceSymbols(t *testing.T) {
	ls := NewServer("test")
	var sent []notification
	open(t, ls, recordingContext(&sent), "file:///tmp/s.js", symbolSource)

	got, err := ls.workspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "rst"})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "reset", got[0].Name)
	assert.Equal(t, protocol.SymbolKindMethod, got[0].Kind)
	require.NotNil(t, got[0].ContainerName)
	assert.Equal(t, "api", *got[0].ContainerName)
	assert.Equal(t, "file:///tmp/s.js", got[0].Location.URI)
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/tmp/x.js", uriToPath("file:///tmp/x.js"))
	assert.Equal(t, "/tmp/a b.js", uriToPath("file:///tmp/a%20b.js"))
	assert.Equal(t, "untitled:1", uriToPath("untitled:1"))
	assert.Equal(t, "file:///tmp/x.js", pathToURI("/tmp/x.js"))
}
