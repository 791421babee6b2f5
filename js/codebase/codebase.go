package codebase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/esparse/js"
	"github.com/dhamidi/esparse/js/parser"
)

var log = commonlog.GetLogger("esparse.codebase")

// Codebase is an in-memory set of parsed JavaScript files.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	symbols []FileSymbol
}

type FileInfo struct {
	Path     string
	Content  []byte
	AST      *parser.Program
	Symbols  []js.Symbol
	ParseErr error
}

// ParseError returns the parse failure as a *parser.Error, or nil.
func (f *FileInfo) ParseError() *parser.Error {
	var perr *parser.Error
	if errors.As(f.ParseErr, &perr) {
		return perr
	}
	return nil
}

// FileSymbol is a symbol together with the file that defines it.
type FileSymbol struct {
	js.Symbol
	Path string
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// IsSource reports whether path names a file the codebase parses.
func IsSource(path string) bool {
	return filepath.Ext(path) == ".js"
}

// ScanAll parses every .js file below the root directory.
func (c *Codebase) ScanAll() error {
	return c.ScanDir(c.rootDir)
}

// ScanDir parses every .js file below dir. Hidden directories and
// node_modules are skipped.
func (c *Codebase) ScanDir(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != dir && skipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			if err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new contents of path and returns the
// updated entry. A parse failure is recorded on the entry, not returned.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	opts := append(js.ParseOptions(), parser.WithSource(path))
	prog, err := parser.Parse(string(content), opts...)

	info := &FileInfo{
		Path:     path,
		Content:  content,
		AST:      prog,
		ParseErr: err,
	}
	if prog != nil {
		info.Symbols = js.SymbolsFromProgram(prog)
	}
	if err != nil {
		log.Debugf("parse %s: %s", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	c.rebuildSymbolsLocked()
	return info
}

func (c *Codebase) rebuildSymbolsLocked() {
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var all []FileSymbol
	for _, path := range paths {
		for _, s := range c.files[path].Symbols {
			all = append(all, FileSymbol{Symbol: s, Path: path})
		}
	}
	c.symbols = all
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.rebuildSymbolsLocked()
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns every known file, sorted by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// Errors returns the files that failed to parse.
func (c *Codebase) Errors() []*FileInfo {
	var failed []*FileInfo
	for _, f := range c.Files() {
		if f.ParseErr != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

func (c *Codebase) AllSymbols() []FileSymbol {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.symbols
}

// SearchSymbols ranks symbols whose qualified name fuzzily matches query,
// best match first. An empty query returns every symbol.
func (c *Codebase) SearchSymbols(query string) []FileSymbol {
	symbols := c.AllSymbols()
	if query == "" {
		return symbols
	}

	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.QualifiedName()
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Stable(ranks)

	result := make([]FileSymbol, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, symbols[r.OriginalIndex])
	}
	return result
}
