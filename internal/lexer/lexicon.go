package lexer

import (
	"fmt"
	"regexp"
	"strconv"

	"loom/token"
)

// Payload fills the semantic payload of a freshly matched token. Kind,
// Lexeme and Position are already set when it runs.
type Payload func(tok *token.Token) error

// Pattern is one registered lexical rule.
type Pattern struct {
	Kind    token.Kind
	Expr    *regexp.Regexp
	Payload Payload
}

// Lexicon is an ordered pattern table. Registration order breaks ties
// between matches of equal length, which is how keywords win over the
// identifier rule. A Lexicon must not be modified while it is tokenizing.
type Lexicon struct {
	patterns []Pattern
}

// Register adds a pattern. The expression is anchored at the start of the
// remaining input and matched leftmost-longest.
func (l *Lexicon) Register(kind token.Kind, expr string, payload Payload) error {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return fmt.Errorf("invalid pattern for %s: %w", kind, err)
	}
	re.Longest()
	l.patterns = append(l.patterns, Pattern{Kind: kind, Expr: re, Payload: payload})
	return nil
}

// MustRegister is Register that panics on an invalid expression.
func (l *Lexicon) MustRegister(kind token.Kind, expr string, payload Payload) {
	if err := l.Register(kind, expr, payload); err != nil {
		panic(err)
	}
}

// RegisterLiteral adds a pattern matching exactly text.
func (l *Lexicon) RegisterLiteral(kind token.Kind, text string) {
	l.MustRegister(kind, regexp.QuoteMeta(text), nil)
}

// Patterns returns the table in registration order.
func (l *Lexicon) Patterns() []Pattern {
	return l.patterns
}

// LongestMatch tries every pattern against input and returns the one
// consuming the most bytes. Empty matches never count.
func (l *Lexicon) LongestMatch(input string) (Pattern, string, bool) {
	var (
		best   Pattern
		lexeme string
		found  bool
	)

	for _, p := range l.patterns {
		loc := p.Expr.FindStringIndex(input)
		if loc == nil || loc[1] == 0 {
			continue
		}
		// strictly longer only: equal length keeps the earlier pattern
		if !found || loc[1] > len(lexeme) {
			best, lexeme, found = p, input[:loc[1]], true
		}
	}

	return best, lexeme, found
}

// NewLexicon returns the table for the loom language.
func NewLexicon() *Lexicon {
	l := &Lexicon{}

	// Keywords before identifiers so equal-length matches resolve to them.
	for _, kind := range []token.Kind{token.LET, token.WHILE, token.FN} {
		l.RegisterLiteral(kind, token.Spelling[kind])
	}

	for _, kind := range []token.Kind{
		token.ASSIGN, token.SEMICOLON, token.PLUS, token.STAR,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
	} {
		l.RegisterLiteral(kind, token.Spelling[kind])
	}

	l.MustRegister(token.COMMENT, `//[^\n]*`, commentPayload)
	l.MustRegister(token.IDENTIFIER, `[\p{L}_][\p{L}\p{Nd}_]*`, identifierPayload)
	l.MustRegister(token.INTEGER, `[0-9]+`, integerPayload)

	return l
}

func identifierPayload(tok *token.Token) error {
	tok.Text = tok.Lexeme
	return nil
}

func commentPayload(tok *token.Token) error {
	tok.Text = tok.Lexeme[len("//"):]
	return nil
}

func integerPayload(tok *token.Token) error {
	v, err := strconv.ParseUint(tok.Lexeme, 10, 64)
	if err != nil {
		return fmt.Errorf("integer literal %s does not fit in 64 bits", tok.Lexeme)
	}
	tok.Value = v
	return nil
}
