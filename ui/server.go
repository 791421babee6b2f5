package ui

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"

	lru "github.com/hashicorp/golang-lru"
	"github.com/tliron/commonlog"
	"golang.org/x/crypto/blake2b"

	"github.com/dhamidi/esparse/format"
	"github.com/dhamidi/esparse/js/parser"
)

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("esparse.ui")

const (
	defaultCacheSize = 256
	maxSourceBytes   = 4 << 20
)

type Server struct {
	staticFS   fs.FS
	templateFS fs.FS
	mux        *http.ServeMux
	cache      *lru.Cache
}

func NewServer() (*Server, error) {
	staticFS := overlayFS("ui/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("ui/templates", mustSub(embeddedFS, "templates"))

	if _, err := template.ParseFS(templateFS, "*.html"); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	cache, err := lru.New(defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	s := &Server{
		staticFS:   staticFS,
		templateFS: templateFS,
		mux:        http.NewServeMux(),
		cache:      cache,
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /api/parse", s.handleParse)
	s.mux.HandleFunc("GET /api/tokens", s.handleTokens)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := template.ParseFS(s.templateFS, "*.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("render %s: %s", name, err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Version string
	}{
		Version: parser.Version,
	}
	s.render(w, "index.html", data)
}

// ParseRequest is the body of POST /api/parse.
type ParseRequest struct {
	Source  string         `json:"source"`
	Options parser.Options `json:"options"`
}

// ErrorResponse is returned when the source does not parse.
type ErrorResponse struct {
	Error  string `json:"error"`
	Index  int    `json:"index"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// response is a rendered reply; replies are cached whole.
type response struct {
	status int
	body   []byte
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSourceBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	key := cacheKey("parse", req.Source, req.Options)
	resp := s.cached(key, func() response {
		prog, err := parser.Parse(req.Source, req.Options.Apply()...)
		if err != nil {
			return errorResponse(err)
		}
		body, err := format.MarshalProgram(prog)
		if err != nil {
			return internalError(err)
		}
		return response{status: http.StatusOK, body: body}
	})
	writeJSON(w, resp)
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if len(source) > maxSourceBytes {
		http.Error(w, "source too large", http.StatusRequestEntityTooLarge)
		return
	}

	opts := parser.Options{Range: true}
	key := cacheKey("tokens", source, opts)
	resp := s.cached(key, func() response {
		tokens, err := parser.Tokenize(source, opts.Apply()...)
		if err != nil {
			return errorResponse(err)
		}
		body, err := format.MarshalTokens(tokens)
		if err != nil {
			return internalError(err)
		}
		return response{status: http.StatusOK, body: body}
	})
	writeJSON(w, resp)
}

func (s *Server) cached(key [blake2b.Size256]byte, compute func() response) response {
	if v, ok := s.cache.Get(key); ok {
		return v.(response)
	}
	resp := compute()
	if resp.status != http.StatusInternalServerError {
		s.cache.Add(key, resp)
	}
	return resp
}

// cacheKey hashes the endpoint, the options and the source together.
func cacheKey(endpoint, source string, opts parser.Options) [blake2b.Size256]byte {
	optJSON, _ := json.Marshal(opts)
	h, _ := blake2b.New256(nil)
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write(optJSON)
	h.Write([]byte{0})
	h.Write([]byte(source))
	var key [blake2b.Size256]byte
	copy(key[:], h.Sum(nil))
	return key
}

func errorResponse(err error) response {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		return internalError(err)
	}
	body, _ := json.Marshal(ErrorResponse{
		Error:  perr.Error(),
		Index:  perr.Index,
		Line:   perr.Line,
		Column: perr.Column,
	})
	return response{status: http.StatusUnprocessableEntity, body: body}
}

func internalError(err error) response {
	log.Errorf("api: %s", err)
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return response{status: http.StatusInternalServerError, body: body}
}

func writeJSON(w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	w.Write(resp.body)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFSType serves files from a directory on disk when present and
// falls back to the embedded copy.
type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}

func (o *overlayFSType) ReadDir(name string) ([]fs.DirEntry, error) {
	entries := make(map[string]fs.DirEntry)

	if rd, ok := o.secondary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	if rd, ok := o.primary.(fs.ReadDirFS); ok {
		if list, err := rd.ReadDir(name); err == nil {
			for _, e := range list {
				entries[e.Name()] = e
			}
		}
	}

	result := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e)
	}
	return result, nil
}
