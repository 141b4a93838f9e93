package lsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"loom/internal/lsp"
	"loom/internal/parser"
)

const doubling = `// count
let n = 10;
while (n) {
    let n = n * 2;
}
`

const uri = protocol.DocumentUri("file:///tmp/doubling.lm")

// recorder captures the diagnostics the handler publishes.
type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) []protocol.Diagnostic {
	t.Helper()
	require.NotEmpty(t, r.published, "no diagnostics published")
	return r.published[len(r.published)-1].Diagnostics
}

func open(t *testing.T, handler *lsp.LoomHandler, ctx *glsp.Context, text string) {
	t.Helper()
	err := handler.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "loom", Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func change(t *testing.T, handler *lsp.LoomHandler, ctx *glsp.Context, text string) {
	t.Helper()
	err := handler.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: text}},
	})
	require.NoError(t, err)
}

func semanticTokens(t *testing.T, handler *lsp.LoomHandler) []DecodedToken {
	t.Helper()
	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err, "TextDocumentSemanticTokensFull returned error")
	require.NotNil(t, tokens, "Returned tokens should not be nil")

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err, "Failed to decode semantic tokens")
	return decoded
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})

	result, err := handler.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	init := result.(*protocol.InitializeResult)
	require.NotNil(t, init.ServerInfo)
	assert.Equal(t, lsp.ServerName, init.ServerInfo.Name)

	sync := init.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, *sync.Change)

	sem := init.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	assert.Equal(t, lsp.SemanticTokenTypes, sem.Legend.TokenTypes)
	assert.Equal(t, lsp.SemanticTokenModifiers, sem.Legend.TokenModifiers)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})
	rec := &recorder{}
	open(t, handler, rec.context(), doubling)

	decoded := semanticTokens(t, handler)
	require.Len(t, decoded, 19)

	assertToken(t, &decoded[0], 1, 1, 8, "comment", nil)
	assertToken(t, &decoded[1], 2, 1, 3, "keyword", nil)
	assertToken(t, &decoded[2], 2, 5, 1, "variable", []string{"declaration"})
	assertToken(t, &decoded[3], 2, 7, 1, "operator", nil)
	assertToken(t, &decoded[4], 2, 9, 2, "number", nil)
	assertToken(t, &decoded[5], 2, 11, 1, "operator", nil)
	assertToken(t, &decoded[6], 3, 1, 5, "keyword", nil)
	assertToken(t, &decoded[7], 3, 7, 1, "operator", nil)
	assertToken(t, &decoded[8], 3, 8, 1, "variable", nil)
	assertToken(t, &decoded[9], 3, 9, 1, "operator", nil)
	assertToken(t, &decoded[10], 3, 11, 1, "operator", nil)
	assertToken(t, &decoded[11], 4, 5, 3, "keyword", nil)
	assertToken(t, &decoded[12], 4, 9, 1, "variable", []string{"declaration"})
	assertToken(t, &decoded[13], 4, 11, 1, "operator", nil)
	assertToken(t, &decoded[14], 4, 13, 1, "variable", nil)
	assertToken(t, &decoded[15], 4, 15, 1, "operator", nil)
	assertToken(t, &decoded[16], 4, 17, 1, "number", nil)
	assertToken(t, &decoded[17], 4, 18, 1, "operator", nil)
	assertToken(t, &decoded[18], 5, 1, 1, "operator", nil)

	assert.Empty(t, rec.last(t), "valid document has no diagnostics")
}

func TestSemanticTokensCountUTF16(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})
	open(t, handler, nil, "let 𝑥 = 1;")

	decoded := semanticTokens(t, handler)
	require.Len(t, decoded, 5)

	assertToken(t, &decoded[1], 1, 5, 2, "variable", []string{"declaration"})
	assertToken(t, &decoded[2], 1, 8, 1, "operator", nil)
}

func TestSemanticTokensForUnparsableDocument(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})
	open(t, handler, nil, "let a = ;")

	decoded := semanticTokens(t, handler)
	require.Len(t, decoded, 4)
	assertToken(t, &decoded[1], 1, 5, 1, "variable", nil)
}

func TestSemanticTokensUnknownDocument(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})

	decoded := semanticTokens(t, handler)
	assert.Empty(t, decoded)
}

func TestParseErrorDiagnostic(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})
	rec := &recorder{}
	open(t, handler, rec.context(), "let a = 1;\nlet b = ;")

	diagnostics := rec.last(t)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, "E0102", d.Code.Value)
	assert.Equal(t, "loom-parser", *d.Source)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, protocol.Position{Line: 1, Character: 8}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 1, Character: 9}, d.Range.End)
	assert.Equal(t, uri, rec.published[0].URI)
}

func TestLexErrorDiagnostic(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})
	rec := &recorder{}
	open(t, handler, rec.context(), "let größe = 1 # 2;")

	diagnostics := rec.last(t)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, "E0001", d.Code.Value)
	assert.Equal(t, "loom-lexer", *d.Source)
	assert.Equal(t, protocol.Position{Line: 0, Character: 14}, d.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 15}, d.Range.End)
}

func TestEndOfInputDiagnostic(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})
	rec := &recorder{}
	open(t, handler, rec.context(), "while (x) {\n  let a = 1;\n\n")

	diagnostics := rec.last(t)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "E0100", diagnostics[0].Code.Value)
	assert.Equal(t, protocol.Position{Line: 1, Character: 12}, diagnostics[0].Range.Start)
}

func TestDidChangeReplacesDocument(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})
	rec := &recorder{}
	ctx := rec.context()

	open(t, handler, ctx, "let a = ;")
	require.Len(t, rec.last(t), 1)

	change(t, handler, ctx, "let a = 1;")
	assert.Empty(t, rec.last(t))

	text, ok := handler.Document(uri)
	require.True(t, ok)
	assert.Equal(t, "let a = 1;", text)
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	handler := lsp.NewLoomHandler(parser.Config{})
	rec := &recorder{}
	ctx := rec.context()

	open(t, handler, ctx, "let a = ;")
	err := handler.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	assert.Empty(t, rec.last(t))
	_, ok := handler.Document(uri)
	assert.False(t, ok)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line + 1, // LSP uses 0-based indexing
			Char:      char + 1, // LSP uses 0-based indexing
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, token *DecodedToken, expectedLine, expectedChar, expectedLength uint32, expectedType string, expectedModifiers []string) {
	require.Equal(t, expectedLine, token.Line, "line mismatch (expected line %d)", expectedLine)
	require.Equal(t, expectedChar, token.Char, "char mismatch (expected char %d)", expectedChar)
	require.Equal(t, expectedLength, token.Length, "length mismatch")
	require.Equal(t, expectedType, token.Type, "type mismatch")
	require.ElementsMatch(t, expectedModifiers, token.Modifiers, "modifiers mismatch")
}
