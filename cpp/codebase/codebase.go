package codebase

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dagangwood163/cppclean/cpp/parser"
)

var log = commonlog.GetLogger("cppclean.codebase")

// sourceExtensions are the file suffixes scanned by ScanAll.
var sourceExtensions = map[string]bool{
	".h": true, ".hh": true, ".hpp": true, ".hxx": true,
	".cc": true, ".cpp": true, ".cxx": true, ".c": true,
}

// Codebase is an index of parsed C++ files. All methods are safe for
// concurrent use.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

// FileInfo is the parse result for one file. ParseErrs collects the
// per-construct errors; Nodes holds everything parsed around them.
type FileInfo struct {
	Path      string
	Content   []byte
	Nodes     []parser.Node
	ParseErrs []error
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

func (c *Codebase) ScanAll() error {
	return filepath.Walk(c.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if sourceExtensions[filepath.Ext(path)] {
			if err := c.ScanFile(path); err != nil {
				log.Errorf("scan %s: %s", path, err.Error())
			}
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.UpdateFile(path, content)
}

func (c *Codebase) UpdateFile(path string, content []byte) error {
	nodes, parseErrs := parseTolerant(content, filepath.Base(path))
	if len(parseErrs) > 0 {
		log.Infof("%s: %d constructs failed to parse", path, len(parseErrs))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = &FileInfo{
		Path:      path,
		Content:   content,
		Nodes:     nodes,
		ParseErrs: parseErrs,
	}
	return nil
}

// parseTolerant drains the builder, keeping both the nodes and the
// errors: a broken construct must not hide the rest of the file.
func parseTolerant(content []byte, filename string) ([]parser.Node, []error) {
	b := parser.NewAstBuilder(content, filename)
	var nodes []parser.Node
	var errs []error
	for {
		node, err := b.Next()
		if err != nil {
			if _, ok := err.(*parser.ParseError); ok {
				errs = append(errs, err)
				continue
			}
			return nodes, errs
		}
		nodes = append(nodes, node)
	}
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the indexed paths in no particular order.
func (c *Codebase) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	return paths
}

// FindClass returns the first class or struct definition whose
// namespace-qualified name matches, preferring definitions over forward
// declarations.
func (c *Codebase) FindClass(name string) (*parser.Class, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var forward *parser.Class
	var forwardPath string
	for path, f := range c.files {
		for _, cls := range classesIn(f.Nodes) {
			if cls.FullName() != name {
				continue
			}
			if cls.Body != nil {
				return cls, path
			}
			if forward == nil {
				forward = cls
				forwardPath = path
			}
		}
	}
	return forward, forwardPath
}

// Includes returns the include directives of one file, or nil when the
// file is not indexed.
func (c *Codebase) Includes(path string) []*parser.Include {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	var includes []*parser.Include
	for _, n := range f.Nodes {
		if inc, ok := n.(*parser.Include); ok {
			includes = append(includes, inc)
		}
	}
	return includes
}

func classesIn(nodes []parser.Node) []*parser.Class {
	var classes []*parser.Class
	for _, n := range nodes {
		switch v := n.(type) {
		case *parser.Class:
			classes = append(classes, v)
		case *parser.Struct:
			classes = append(classes, &v.Class)
		}
	}
	return classes
}
