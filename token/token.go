// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// Position is where a token starts in the source. Line and Column are
// 1-based, Offset is the 0-based byte offset.
type Position = lexer.Position

type Kind int

const (
	ILLEGAL Kind = iota

	// Keywords
	LET
	WHILE
	FN

	// Punctuation
	ASSIGN
	SEMICOLON
	PLUS
	STAR
	LPAREN
	RPAREN
	LBRACE
	RBRACE

	// Identifiers + literals
	IDENTIFIER
	INTEGER
	COMMENT
)

var kindNames = [...]string{
	ILLEGAL:    "ILLEGAL",
	LET:        "LET",
	WHILE:      "WHILE",
	FN:         "FN",
	ASSIGN:     "ASSIGN",
	SEMICOLON:  "SEMICOLON",
	PLUS:       "PLUS",
	STAR:       "STAR",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	IDENTIFIER: "IDENTIFIER",
	INTEGER:    "INTEGER",
	COMMENT:    "COMMENT",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Spelling is the fixed source text of keywords and punctuation.
var Spelling = map[Kind]string{
	LET:       "let",
	WHILE:     "while",
	FN:        "fn",
	ASSIGN:    "=",
	SEMICOLON: ";",
	PLUS:      "+",
	STAR:      "*",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
}

// Describe renders a kind the way diagnostics mention it: quoted spelling
// for fixed tokens, a category name otherwise.
func (k Kind) Describe() string {
	if s, ok := Spelling[k]; ok {
		return fmt.Sprintf("'%s'", s)
	}
	switch k {
	case IDENTIFIER:
		return "identifier"
	case INTEGER:
		return "integer literal"
	case COMMENT:
		return "comment"
	}
	return k.String()
}

func (k Kind) IsKeyword() bool {
	return k == LET || k == WHILE || k == FN
}

// Token is immutable once produced by the lexer. Text carries the payload
// of identifiers and comments, Value the payload of integer literals.
type Token struct {
	Kind     Kind
	Lexeme   string
	Text     string
	Value    uint64
	Position Position
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER:
		return fmt.Sprintf("Identifier(%q)", t.Text)
	case INTEGER:
		return fmt.Sprintf("IntegerLiteral(%d)", t.Value)
	case COMMENT:
		return fmt.Sprintf("Comment(%q)", t.Text)
	}
	return t.Kind.String()
}

// Is reports whether the token has the given kind. Position and payload do
// not take part in the comparison.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}
