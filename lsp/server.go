// Package lsp serves parse diagnostics and symbols for JavaScript files
// over the Language Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/esparse/js"
	"github.com/dhamidi/esparse/js/codebase"
	"github.com/dhamidi/esparse/js/parser"
)

const lsName = "esparse"

var log = commonlog.GetLogger("esparse.lsp")

type Server struct {
	codebase *codebase.Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewServer(version string) *Server {
	ls := &Server{
		version:  version,
		codebase: codebase.New("."),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		WorkspaceSymbol:            ls.workspaceSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		rootDir = uriToPath(*params.RootURI)
	}
	ls.codebase = codebase.New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(); err != nil {
		log.Warningf("scan %s: %s", ls.codebase.RootDir(), err)
	}
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	path := uriToPath(params.TextDocument.URI)
	if err := ls.codebase.ScanFile(path); err != nil {
		log.Warningf("rescan %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, ls.codebase.GetFile(path))
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	info := ls.codebase.UpdateFile(uriToPath(uri), []byte(text))
	ls.publish(ctx, uri, info)
}

// publish sends the file's diagnostics: one for a parse error, none for a
// file that parsed.
func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, info *codebase.FileInfo) {
	diagnostics := []protocol.Diagnostic{}
	if info != nil {
		if perr := info.ParseError(); perr != nil {
			diagnostics = append(diagnostics, diagnosticFor(perr, info.Content))
		}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// diagnosticFor places perr on the one character after its index. content
// is the parsed source, needed to count UTF-16 code units.
func diagnosticFor(perr *parser.Error, content []byte) protocol.Diagnostic {
	line := protocol.UInteger(0)
	if perr.Line > 0 {
		line = protocol.UInteger(perr.Line - 1)
	}
	col := protocol.UInteger(perr.Column)
	if start := perr.Index - perr.Column; start >= 0 && perr.Index <= len(content) {
		col = protocol.UInteger(utf16Len(string(content[start:perr.Index])))
	}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: &severity,
		Source:   &source,
		Message:  perr.Description,
	}
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	info := ls.codebase.GetFile(uriToPath(params.TextDocument.URI))
	if info == nil || info.AST == nil {
		return []protocol.DocumentSymbol{}, nil
	}

	doc := newDocument(info.Content)
	symbols := []protocol.DocumentSymbol{}
	for _, fn := range js.FunctionModelsFromProgram(info.AST) {
		detail := fn.Signature()
		r := doc.rangeOf(fn.Start, fn.End)
		sym := protocol.DocumentSymbol{
			Name:           fn.QualifiedName(),
			Detail:         &detail,
			Kind:           functionKind(fn.Kind),
			Range:          r,
			SelectionRange: r,
		}
		if fn.JSDoc != nil && fn.JSDoc.IsDeprecated() {
			sym.Tags = []protocol.SymbolTag{protocol.SymbolTagDeprecated}
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}

func (ls *Server) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	var out []protocol.SymbolInformation
	docs := make(map[string]*document)
	for _, sym := range ls.codebase.SearchSymbols(params.Query) {
		doc, ok := docs[sym.Path]
		if !ok {
			var content []byte
			if f := ls.codebase.GetFile(sym.Path); f != nil {
				content = f.Content
			}
			doc = newDocument(content)
			docs[sym.Path] = doc
		}
		info := protocol.SymbolInformation{
			Name: sym.Name,
			Kind: symbolKind(sym.Kind),
			Location: protocol.Location{
				URI:   pathToURI(sym.Path),
				Range: doc.rangeOf(sym.Start, sym.End),
			},
		}
		if sym.Container != "" {
			container := sym.Container
			info.ContainerName = &container
		}
		out = append(out, info)
	}
	return out, nil
}

func functionKind(kind js.FunctionKind) protocol.SymbolKind {
	switch kind {
	case js.FunctionKindMethod, js.FunctionKindGetter, js.FunctionKindSetter:
		return protocol.SymbolKindMethod
	}
	return protocol.SymbolKindFunction
}

func symbolKind(kind js.SymbolKind) protocol.SymbolKind {
	switch kind {
	case js.SymbolKindMethod:
		return protocol.SymbolKindMethod
	case js.SymbolKindVariable:
		return protocol.SymbolKindVariable
	}
	return protocol.SymbolKindFunction
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if parsed, err := url.Parse(uri); err == nil {
			return filepath.Clean(parsed.Path)
		}
	}
	return uri
}

func pathToURI(path string) protocol.DocumentUri {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
