package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// LoomLexer tokenizes loom source for the reference grammar. Keywords are
// lexed as Ident and matched by value in the grammar.
var LoomLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments
	{Name: "Comment", Pattern: `//[^\n]*`},

	// Identifiers and keywords
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{Nd}_]*`},

	// Integer literals
	{Name: "Integer", Pattern: `[0-9]+`},

	// Operators and punctuation
	{Name: "Punct", Pattern: `[=;+*(){}]`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[ \t\r\n\v\f]+`},
})
