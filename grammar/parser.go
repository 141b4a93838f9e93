package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(LoomLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse parses a whole loom program.
func Parse(filename, source string) (*Program, error) {
	if blank(filename, source) {
		return &Program{}, nil
	}
	return parser.ParseString(filename, source)
}

// blank reports whether source holds only whitespace and comments. The
// Program rule cannot match without consuming a token.
func blank(filename, source string) bool {
	lex, err := LoomLexer.LexString(filename, source)
	if err != nil {
		return false
	}
	symbols := LoomLexer.Symbols()
	for {
		tok, err := lex.Next()
		if err != nil {
			return false
		}
		if tok.EOF() {
			return true
		}
		if tok.Type != symbols["Whitespace"] && tok.Type != symbols["Comment"] {
			return false
		}
	}
}

// FormatParseError renders a caret-style message for err against src.
func FormatParseError(src string, err error) string {
	var pe participle.Error
	if !errors.As(err, &pe) {
		return color.RedString("Unexpected error: %s", err) + "\n"
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return color.RedString("Syntax error at unknown location: %s", err) + "\n"
	}

	var b strings.Builder
	b.WriteString(color.RedString("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column))
	b.WriteString("\n")
	b.WriteString(lines[pos.Line-1])
	b.WriteString("\n")
	b.WriteString(color.HiRedString(strings.Repeat(" ", max(0, pos.Column-1)) + "^"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "→ %s\n", pe.Message())
	return b.String()
}
