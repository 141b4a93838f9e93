package parser

import (
	"fmt"

	"loom/internal/ast"
	"loom/internal/lexer"
	"loom/token"
)

var (
	defaultGrammar    = NewGrammar()
	precedenceGrammar = NewGrammar(WithPrecedence())
)

// Config selects the entry rule and grammar variant for ParseSourceWith.
type Config struct {
	Entry        string // grammar entry name, "program" when empty
	Precedence   bool   // use the precedence-climbing Expression rule
	KeepComments bool   // keep comment tokens as statements
}

// ParseSource parses a whole program with the default grammar.
func ParseSource(filename, source string) (*ast.Program, error) {
	node, err := ParseSourceWith(filename, source, Config{})
	if err != nil {
		return nil, err
	}
	return node.(*ast.Program), nil
}

// ParseSourceWith tokenizes source and runs the configured entry rule over
// the whole token sequence. A *lexer.LexError aborts before parsing starts;
// parse failures are returned as *ParseError.
func ParseSourceWith(filename, source string, cfg Config) (ast.Node, error) {
	tokens, err := lexer.Tokenize(filename, source)
	if err != nil {
		return nil, err
	}
	if !cfg.KeepComments {
		tokens = StripComments(tokens)
	}

	g := GrammarFor(cfg)
	name := cfg.Entry
	if name == "" {
		name = "program"
	}
	entry, ok := g.Entry(name)
	if !ok {
		return nil, fmt.Errorf("unknown entry rule %q", name)
	}

	return ParseTokens(entry, tokens)
}

// GrammarFor returns the shared grammar matching cfg.
func GrammarFor(cfg Config) *Grammar {
	if cfg.Precedence {
		return precedenceGrammar
	}
	return defaultGrammar
}

// ParseTokens runs entry over tokens and requires it to consume all of them
// and to yield exactly one node.
func ParseTokens(entry *Comb, tokens []token.Token) (ast.Node, error) {
	s := token.NewStream(tokens)

	nodes, err := entry.Parse(s)
	if err != nil {
		return nil, err
	}
	if tok, ok := s.Peek(); ok {
		return nil, errTrailing(tok)
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("entry rule %s produced %d nodes, want 1", entry, len(nodes))
	}

	return nodes[0], nil
}

// StripComments drops comment tokens. The lexer keeps them; whether they
// matter is decided here.
func StripComments(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != token.COMMENT {
			out = append(out, tok)
		}
	}
	return out
}
