package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeInitialization(t *testing.T) {
	tokens, err := Tokenize("test.lm", "let foo = 42;")
	require.NoError(t, err)

	assert.Equal(t, []token.Kind{
		token.LET, token.IDENTIFIER, token.ASSIGN, token.INTEGER, token.SEMICOLON,
	}, kinds(tokens))
	assert.Equal(t, "foo", tokens[1].Text)
	assert.Equal(t, uint64(42), tokens[3].Value)
}

func TestTokenizeComment(t *testing.T) {
	tokens, err := Tokenize("", "// comment")
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	assert.Equal(t, token.COMMENT, tokens[0].Kind)
	assert.Equal(t, " comment", tokens[0].Text)
	assert.Equal(t, "// comment", tokens[0].Lexeme)
}

func TestCommentStopsAtNewline(t *testing.T) {
	tokens, err := Tokenize("", "// first\nlet")
	require.NoError(t, err)

	assert.Equal(t, []token.Kind{token.COMMENT, token.LET}, kinds(tokens))
	assert.Equal(t, " first", tokens[0].Text)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"let", token.LET},
		{"while", token.WHILE},
		{"fn", token.FN},
		{"letter", token.IDENTIFIER},
		{"whilex", token.IDENTIFIER},
		{"fnord", token.IDENTIFIER},
		{"_tmp1", token.IDENTIFIER},
		{"größe", token.IDENTIFIER},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize("", tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.kind, tokens[0].Kind)
			assert.Equal(t, tt.input, tokens[0].Lexeme)
		})
	}
}

func TestPunctuation(t *testing.T) {
	tokens, err := Tokenize("", "fn () {} = ; + *")
	require.NoError(t, err)

	assert.Equal(t, []token.Kind{
		token.FN, token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.ASSIGN, token.SEMICOLON, token.PLUS, token.STAR,
	}, kinds(tokens))
}

func TestAdjacentTokensWithoutWhitespace(t *testing.T) {
	tokens, err := Tokenize("", "while(x){let y=1+2*x;}")
	require.NoError(t, err)

	assert.Equal(t, []token.Kind{
		token.WHILE, token.LPAREN, token.IDENTIFIER, token.RPAREN, token.LBRACE,
		token.LET, token.IDENTIFIER, token.ASSIGN, token.INTEGER, token.PLUS,
		token.INTEGER, token.STAR, token.IDENTIFIER, token.SEMICOLON, token.RBRACE,
	}, kinds(tokens))
}

func TestPositions(t *testing.T) {
	tokens, err := Tokenize("pos.lm", "let x\n  = 1;")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	expected := []struct{ line, column, offset int }{
		{1, 1, 0},
		{1, 5, 4},
		{2, 3, 8},
		{2, 5, 10},
		{2, 6, 11},
	}
	for i, exp := range expected {
		pos := tokens[i].Position
		assert.Equal(t, exp.line, pos.Line, "line of token %d", i)
		assert.Equal(t, exp.column, pos.Column, "column of token %d", i)
		assert.Equal(t, exp.offset, pos.Offset, "offset of token %d", i)
		assert.Equal(t, "pos.lm", pos.Filename)
	}
}

func TestWhitespaceOnly(t *testing.T) {
	tokens, err := Tokenize("", " \t\r\n  ")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = Tokenize("", "")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = Tokenize("", "x   \n")
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestUnrecognizedInput(t *testing.T) {
	tokens, err := Tokenize("", "let # = 1;")
	assert.Nil(t, tokens)
	require.Error(t, err)

	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, UnrecognizedInput, lexErr.Kind)
	assert.Equal(t, 1, lexErr.Position.Line)
	assert.Equal(t, 5, lexErr.Position.Column)
	assert.Equal(t, 1, lexErr.Length)
	assert.Contains(t, lexErr.Message, "'#'")
}

func TestSingleSlashIsUnrecognized(t *testing.T) {
	_, err := Tokenize("", "1 / 2")

	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, UnrecognizedInput, lexErr.Kind)
	assert.Equal(t, 3, lexErr.Position.Column)
}

func TestIntegerOverflow(t *testing.T) {
	_, err := Tokenize("", "let big = 99999999999999999999;")

	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, InvalidLiteral, lexErr.Kind)
	assert.Equal(t, 11, lexErr.Position.Column)
	assert.Equal(t, 20, lexErr.Length)
	assert.Contains(t, lexErr.Message, "does not fit")
}

func TestLargestInteger(t *testing.T) {
	tokens, err := Tokenize("", "18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), tokens[0].Value)
}

func TestLongestMatchTieBreaksByRegistrationOrder(t *testing.T) {
	l := &Lexicon{}
	l.MustRegister(token.IDENTIFIER, `[a-z]+`, nil)
	l.RegisterLiteral(token.LET, "let")

	tokens, err := l.Tokenize("", "let")
	require.NoError(t, err)
	assert.Equal(t, token.IDENTIFIER, tokens[0].Kind, "first registered pattern wins a tie")

	l = &Lexicon{}
	l.RegisterLiteral(token.LET, "let")
	l.MustRegister(token.IDENTIFIER, `[a-z]+`, nil)

	tokens, err = l.Tokenize("", "let lets")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.LET, token.IDENTIFIER}, kinds(tokens))
}

func TestRegisterRejectsBadExpression(t *testing.T) {
	l := &Lexicon{}
	err := l.Register(token.INTEGER, `[0-9`, nil)
	assert.Error(t, err)
	assert.Empty(t, l.Patterns())
}

func TestEmptyMatchesAreIgnored(t *testing.T) {
	l := &Lexicon{}
	l.MustRegister(token.IDENTIFIER, `[a-z]*`, nil)

	_, err := l.Tokenize("", "9")
	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, UnrecognizedInput, lexErr.Kind)
}
