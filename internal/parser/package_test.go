package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/internal/ast"
	"loom/internal/lexer"
	"loom/token"
)

func TestParseSourceProgram(t *testing.T) {
	src := `let n = 10;
// count down
while (n) {
	let n = n + 1;
}
`
	prog, err := ParseSource("count.lm", src)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 2)

	assert.Equal(t, `Initialization{name: "n", value: Num(10)}`, ast.Debug(prog.Statements[0]))
	loop := prog.Statements[1].(*ast.WhileLoop)
	assert.Equal(t, 3, loop.Pos.Line)
	assert.Equal(t, "count.lm", loop.Pos.Filename)
}

func TestParseSourceEmpty(t *testing.T) {
	prog, err := ParseSource("empty.lm", "  \n\t")
	require.NoError(t, err)
	assert.Empty(t, prog.Statements)
}

func TestParseSourceKeepComments(t *testing.T) {
	node, err := ParseSourceWith("c.lm", "// head\nlet a = 1;", Config{KeepComments: true})
	require.NoError(t, err)

	prog := node.(*ast.Program)
	require.Len(t, prog.Statements, 2)
	assert.Equal(t, ast.COMMENT, prog.Statements[0].NodeType())
}

func TestParseSourceLexErrorPassesThrough(t *testing.T) {
	_, err := ParseSource("bad.lm", "let a = 1 # 2;")

	var le *lexer.LexError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, lexer.UnrecognizedInput, le.Kind)
	assert.Equal(t, 11, le.Position.Column)
}

func TestParseSourceWithEntry(t *testing.T) {
	node, err := ParseSourceWith("e.lm", "1 * 2 + 3", Config{Entry: "expression"})
	require.NoError(t, err)
	assert.Equal(t, "Multiplication(Num(1), Addition(Num(2), Num(3)))", ast.Debug(node))

	node, err = ParseSourceWith("e.lm", "1 * 2 + 3", Config{Entry: "expression", Precedence: true})
	require.NoError(t, err)
	assert.Equal(t, "Addition(Multiplication(Num(1), Num(2)), Num(3))", ast.Debug(node))
}

func TestParseSourceUnknownEntry(t *testing.T) {
	_, err := ParseSourceWith("e.lm", "x", Config{Entry: "module"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown entry rule "module"`)
}

func TestParseSourceTrailingInput(t *testing.T) {
	_, err := ParseSourceWith("t.lm", "let a = 1; let", Config{Entry: "initialization"})

	pe := requireParseError(t, err, TrailingInput)
	assert.Equal(t, token.LET, pe.Found.Kind)
	assert.Equal(t, 12, pe.Position.Column)
	assert.Equal(t, "t.lm:1:12: unexpected 'let', expected end of input", pe.Error())
}

func TestParseSourceReportsStatementError(t *testing.T) {
	_, err := ParseSource("s.lm", "let a = 1;\nlet b = ;")

	pe := requireParseError(t, err, WrongTokenKind)
	assert.Equal(t, 2, pe.Position.Line)
	assert.Equal(t, 9, pe.Position.Column)
	assert.Equal(t, 1, pe.Length())
}

func TestParseSourceDeepNesting(t *testing.T) {
	const depth = 32
	open := strings.Repeat("while (x) {\n", depth)

	for _, tc := range []struct {
		name string
		cfg  Config
	}{
		{"default", Config{}},
		{"precedence", Config{Precedence: true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			node, err := ParseSourceWith("n.lm", open+"let a = 1 + 2 * 3;\n"+strings.Repeat("}\n", depth), tc.cfg)
			require.NoError(t, err)
			loops := 0
			ast.Inspect(node, func(n ast.Node) bool {
				if _, ok := n.(*ast.WhileLoop); ok {
					loops++
				}
				return true
			})
			assert.Equal(t, depth, loops)

			_, err = ParseSourceWith("n.lm", open+"let a = 1 + * 3;\n", tc.cfg)
			pe := requireParseError(t, err, WrongTokenKind)
			assert.Equal(t, token.STAR, pe.Found.Kind)
			assert.Equal(t, depth+1, pe.Position.Line)
			assert.Equal(t, 13, pe.Position.Column)

			_, err = ParseSourceWith("n.lm", open+"let a = 1;\n", tc.cfg)
			requireParseError(t, err, UnexpectedEOF)
		})
	}
}

func TestStripComments(t *testing.T) {
	tokens := mustTokens(t, "// a\nx // b\n")
	require.Len(t, tokens, 3)

	stripped := StripComments(tokens)
	require.Len(t, stripped, 1)
	assert.Equal(t, token.IDENTIFIER, stripped[0].Kind)
	assert.Len(t, tokens, 3, "input is not modified")
}

func TestGrammarFor(t *testing.T) {
	assert.Same(t, defaultGrammar, GrammarFor(Config{}))
	assert.Same(t, precedenceGrammar, GrammarFor(Config{Precedence: true}))
}
