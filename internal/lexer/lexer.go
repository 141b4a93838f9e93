package lexer

import (
	"fmt"
	"unicode/utf8"

	"loom/token"
)

type ErrorKind int

const (
	// UnrecognizedInput means no pattern matched at the current position.
	UnrecognizedInput ErrorKind = iota + 1
	// InvalidLiteral means a pattern matched but its payload could not be
	// converted, e.g. an integer literal that overflows.
	InvalidLiteral
)

// LexError aborts tokenization; there is no resynchronization.
type LexError struct {
	Kind     ErrorKind
	Message  string
	Position token.Position
	Length   int // bytes covered by the offending input
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

var defaultLexicon = NewLexicon()

// Tokenize splits source into tokens using the loom lexicon.
func Tokenize(filename, source string) ([]token.Token, error) {
	return defaultLexicon.Tokenize(filename, source)
}

// Tokenize skips ASCII whitespace, then emits the longest pattern match at
// each position. Comments are kept as tokens.
func (l *Lexicon) Tokenize(filename, source string) ([]token.Token, error) {
	pos := token.Position{Filename: filename, Line: 1, Column: 1}
	rest := source
	var tokens []token.Token

	for {
		ws := leadingWhitespace(rest)
		pos.Advance(rest[:ws])
		rest = rest[ws:]

		if rest == "" {
			return tokens, nil
		}

		pattern, lexeme, ok := l.LongestMatch(rest)
		if !ok {
			r, size := utf8.DecodeRuneInString(rest)
			return nil, &LexError{
				Kind:     UnrecognizedInput,
				Message:  fmt.Sprintf("unrecognized input %q; remaining %q", r, excerpt(rest)),
				Position: pos,
				Length:   size,
			}
		}

		tok := token.Token{Kind: pattern.Kind, Lexeme: lexeme, Position: pos}
		if pattern.Payload != nil {
			if err := pattern.Payload(&tok); err != nil {
				return nil, &LexError{
					Kind:     InvalidLiteral,
					Message:  err.Error(),
					Position: pos,
					Length:   len(lexeme),
				}
			}
		}

		tokens = append(tokens, tok)
		pos.Advance(lexeme)
		rest = rest[len(lexeme):]
	}
}

func leadingWhitespace(s string) int {
	n := 0
	for n < len(s) && isASCIISpace(s[n]) {
		n++
	}
	return n
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func excerpt(s string) string {
	const limit = 20
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
