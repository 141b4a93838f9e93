package lsp

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"loom/internal/ast"
	"loom/internal/parser"
)

const ServerName = "loom"

var Version = "0.1.0"

var log = commonlog.GetLogger("loom.lsp")

// document is the last text the client sent for a URI, with the program
// parsed from it when parsing succeeded.
type document struct {
	text    string
	program *ast.Program
}

// LoomHandler implements the LSP server handlers for the loom language.
// Document text comes from the client notifications; the file on disk is
// never read.
type LoomHandler struct {
	mu     sync.RWMutex
	docs   map[protocol.DocumentUri]*document
	config parser.Config
}

// NewLoomHandler creates a handler that parses documents with cfg.
func NewLoomHandler(cfg parser.Config) *LoomHandler {
	return &LoomHandler{
		docs:   make(map[protocol.DocumentUri]*document),
		config: cfg,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *LoomHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: true,
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &Version,
		},
	}, nil
}

func (h *LoomHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *LoomHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *LoomHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen parses the opened document and publishes its diagnostics
func (h *LoomHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("opened %s", params.TextDocument.URI)
	h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

// TextDocumentDidChange reparses the document. With full sync the last
// change carries the whole text.
func (h *LoomHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("changed %s", params.TextDocument.URI)

	for i := len(params.ContentChanges) - 1; i >= 0; i-- {
		if whole, ok := params.ContentChanges[i].(protocol.TextDocumentContentChangeEventWhole); ok {
			h.update(ctx, params.TextDocument.URI, whole.Text)
			return nil
		}
	}

	log.Warningf("ignoring incremental change to %s", params.TextDocument.URI)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *LoomHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	publishDiagnostics(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentSemanticTokensFull encodes the tokens of the whole document
func (h *LoomHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	h.mu.RLock()
	doc, ok := h.docs[params.TextDocument.URI]
	h.mu.RUnlock()

	if !ok {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	tokens := collectSemanticTokens(doc.text, doc.program)
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(tokens)}, nil
}

func (h *LoomHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	program, diagnostics := h.analyze(string(uri), text)

	h.mu.Lock()
	h.docs[uri] = &document{text: text, program: program}
	h.mu.Unlock()

	publishDiagnostics(ctx, uri, diagnostics)
}

func (h *LoomHandler) analyze(name, text string) (*ast.Program, []protocol.Diagnostic) {
	cfg := h.config
	cfg.Entry = "program"

	node, err := parser.ParseSourceWith(name, text, cfg)
	if err != nil {
		log.Debugf("%s: %s", name, err)
		return nil, ConvertError(text, err)
	}
	return node.(*ast.Program), []protocol.Diagnostic{}
}

// Document returns the last text received for uri.
func (h *LoomHandler) Document(uri protocol.DocumentUri) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	doc, ok := h.docs[uri]
	if !ok {
		return "", false
	}
	return doc.text, true
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func ptrString(s string) *string {
	return &s
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
