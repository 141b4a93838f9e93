package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loom/grammar"
	"loom/internal/ast"
	"loom/internal/parser"
)

const countdown = `// counts up while n is non-zero
let n = 10;
let step = 1;
while (n) {
    let n = n + step * 2;
    while (step) {}
}
`

func TestParseCountdown(t *testing.T) {
	program, err := grammar.Parse("countdown.lm", countdown)
	require.NoError(t, err)

	require.Len(t, program.Statements, 3)
	let := program.Statements[0].Let
	require.NotNil(t, let)
	assert.Equal(t, "n", let.Name.Value)
	assert.Equal(t, "10", *let.Value.Operand.Int)
	assert.Equal(t, 2, let.Pos.Line)
	assert.Equal(t, 5, let.Name.Pos.Column)

	loop := program.Statements[2].While
	require.NotNil(t, loop)
	assert.Equal(t, "n", *loop.Condition.Operand.Ident)
	require.Len(t, loop.Body.Statements, 2)
	inner := loop.Body.Statements[0].Let
	require.NotNil(t, inner.Value.Tail)
	assert.Equal(t, "+", inner.Value.Tail.Op)
}

func TestPrinter(t *testing.T) {
	program, err := grammar.Parse("countdown.lm", countdown)
	require.NoError(t, err)

	expected := `let n = 10;
let step = 1;
while (n) {
    let n = n + step * 2;
    while (step) {}
}
`
	assert.Equal(t, expected, program.String())
}

func TestMatchesCombinatorParser(t *testing.T) {
	sources := []string{
		"",
		"let x = 7;",
		"let a = 1 + 2 + 3;",
		"let b = 1 * 2 + 3;",
		"let c = a + b * c + d;",
		"while (x) {}",
		"while (a * b) { let a = 0; while (b) { let b = b + 1; } }",
		countdown,
		"let größe = 18446744073709551615;",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			reference, err := grammar.Parse("diff.lm", src)
			require.NoError(t, err)
			want, err := reference.ToAST()
			require.NoError(t, err)

			got, err := parser.ParseSource("diff.lm", src)
			require.NoError(t, err)

			assert.Equal(t, ast.Debug(want), ast.Debug(got))
			require.Len(t, got.Statements, len(want.Statements))
			for i := range want.Statements {
				assert.Equal(t, want.Statements[i].NodePos(), got.Statements[i].NodePos())
			}
		})
	}
}

func TestRejectsWhatCombinatorParserRejects(t *testing.T) {
	sources := []string{
		"let = 1;",
		"let let = 1;",
		"let a = while;",
		"let a = 1",
		"let a = 1 2;",
		"while x {}",
		"while (x) { let a = 1;",
		"x;",
		"let a = 1 + ;",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			_, err := parser.ParseSource("bad.lm", src)
			assert.Error(t, err, "combinator parser")

			_, err = grammar.Parse("bad.lm", src)
			assert.Error(t, err, "reference grammar")
		})
	}
}

func TestToASTIntegerOverflow(t *testing.T) {
	program, err := grammar.Parse("big.lm", "let a = 18446744073709551616;")
	require.NoError(t, err)

	_, err = program.ToAST()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not fit in 64 bits")
}

func TestFormatParseError(t *testing.T) {
	src := "let a = 1\nlet b = 2;"
	_, err := grammar.Parse("fmt.lm", src)
	require.Error(t, err)

	out := grammar.FormatParseError(src, err)
	assert.Contains(t, out, "Syntax error in fmt.lm at line 2, column 1")
	assert.Contains(t, out, "let b = 2;")
	assert.Contains(t, out, "^")
}
