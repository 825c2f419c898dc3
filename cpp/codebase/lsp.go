package codebase

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dagangwood163/cppclean/cpp/parser"
)

const lsName = "cppclean"

type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
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
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.codebase.ScanAll()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.codebase.ScanFile(path)
	}
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}

	var symbols []protocol.DocumentSymbol
	for _, node := range file.Nodes {
		if sym := nodeToSymbol(node, file.Content); sym != nil {
			symbols = append(symbols, *sym)
		}
	}
	return symbols, nil
}

func nodeToSymbol(node parser.Node, content []byte) *protocol.DocumentSymbol {
	switch n := node.(type) {
	case *parser.Class:
		return classSymbol(n, content)
	case *parser.Struct:
		sym := classSymbol(&n.Class, content)
		sym.Kind = protocol.SymbolKindStruct
		return sym
	case *parser.Function:
		return functionSymbol(n, protocol.SymbolKindFunction, content)
	case *parser.Method:
		sym := functionSymbol(&n.Function, protocol.SymbolKindMethod, content)
		sym.Name = strings.Join(tokenTextsOf(n.InClass), "") + "::" + n.Name
		return sym
	default:
		return nil
	}
}

func classSymbol(c *parser.Class, content []byte) *protocol.DocumentSymbol {
	name := c.Name
	if name == "" {
		name = "(anonymous)"
	}
	sym := &protocol.DocumentSymbol{
		Name:           name,
		Kind:           protocol.SymbolKindClass,
		Range:          spanToRange(content, c.Start, c.End),
		SelectionRange: spanToRange(content, c.Start, c.End),
	}
	for _, member := range c.Body {
		if child := nodeToSymbol(member, content); child != nil {
			sym.Children = append(sym.Children, *child)
		}
	}
	return sym
}

func functionSymbol(f *parser.Function, kind protocol.SymbolKind, content []byte) *protocol.DocumentSymbol {
	if f.Modifiers.Has(parser.ModifierCtor) {
		kind = protocol.SymbolKindConstructor
	}
	return &protocol.DocumentSymbol{
		Name:           f.Name,
		Kind:           kind,
		Range:          spanToRange(content, f.Start, f.End),
		SelectionRange: spanToRange(content, f.Start, f.End),
	}
}

func spanToRange(content []byte, start, end int) protocol.Range {
	return protocol.Range{
		Start: offsetToPosition(content, start),
		End:   offsetToPosition(content, end),
	}
}

// offsetToPosition converts a byte offset into an LSP line/character
// position. Characters are counted in bytes, which matches how the
// tokenizer assigns offsets.
func offsetToPosition(content []byte, offset int) protocol.Position {
	if offset > len(content) {
		offset = len(content)
	}
	line, lineStart := 0, 0
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(offset - lineStart),
	}
}

func tokenTextsOf(tokens []parser.Token) []string {
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	return texts
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
