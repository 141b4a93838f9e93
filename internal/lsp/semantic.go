package lsp

import (
	"sort"

	"loom/internal/ast"
	"loom/internal/lexer"
	"loom/token"
)

var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"operator",
	"comment",
}

var SemanticTokenModifiers = []string{
	"declaration",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens classifies every token of text. Identifiers that
// name an initialization in program carry the declaration modifier. A
// document that does not tokenize yields no tokens.
func collectSemanticTokens(text string, program *ast.Program) []SemanticToken {
	tokens, err := lexer.Tokenize("", text)
	if err != nil {
		return nil
	}

	declared := declarations(program)

	result := make([]SemanticToken, 0, len(tokens))
	for _, tok := range tokens {
		tokenType := classify(tok.Kind)
		declModifier := 0
		if tok.Kind == token.IDENTIFIER && declared[tok.Position.Offset] {
			declModifier = 1
		}
		result = append(result, makeToken(text, tok, tokenType, declModifier))
	}
	return result
}

// declarations returns the byte offsets of every initialized name.
func declarations(program *ast.Program) map[int]bool {
	declared := make(map[int]bool)
	if program == nil {
		return declared
	}
	ast.Inspect(program, func(n ast.Node) bool {
		if init, ok := n.(*ast.Initialization); ok {
			declared[init.Name.Pos.Offset] = true
		}
		return true
	})
	return declared
}

func classify(kind token.Kind) string {
	switch {
	case kind.IsKeyword():
		return "keyword"
	case kind == token.IDENTIFIER:
		return "variable"
	case kind == token.INTEGER:
		return "number"
	case kind == token.COMMENT:
		return "comment"
	}
	return "operator"
}

func makeToken(text string, tok token.Token, tokenType string, declModifier int) SemanticToken {
	pos := toProtocolPosition(text, tok.Position)
	return SemanticToken{
		Line:           pos.Line,
		StartChar:      pos.Character,
		Length:         utf16Len(tok.Lexeme),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: declModifier << indexOf("declaration", SemanticTokenModifiers),
	}
}

// encodeSemanticTokens produces the relative encoding of the LSP protocol:
// five integers per token, line and start relative to the previous token.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevChar uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevChar
		}
		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))
		prevLine = tok.Line
		prevChar = tok.StartChar
	}
	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
