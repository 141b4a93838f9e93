package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"loom/internal/lexer"
	"loom/internal/parser"
	"loom/token"
)

// Convert turns a lexer or parser error into a CompilerError. Parse errors
// without a position (end of input) are placed after the last non-blank
// character of the reporter's source.
func (er *ErrorReporter) Convert(err error) (CompilerError, bool) {
	var le *lexer.LexError
	if stderrors.As(err, &le) {
		return FromLexError(le), true
	}

	var pe *parser.ParseError
	if stderrors.As(err, &pe) {
		pos := er.endOfInput()
		if pe.Position != nil {
			pos = *pe.Position
		}
		return FromParseError(pe, pos), true
	}

	var ce CompilerError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return CompilerError{}, false
}

// FromLexError builds the diagnostic for a tokenization failure.
func FromLexError(le *lexer.LexError) CompilerError {
	switch le.Kind {
	case lexer.InvalidLiteral:
		return NewDiagnostic(ErrorIntegerOutOfRange, le.Message, le.Position).
			WithLength(le.Length).
			WithNote("the largest integer literal is 18446744073709551615").
			Build()
	default:
		return NewDiagnostic(ErrorUnrecognizedInput, le.Message, le.Position).
			WithHelp("valid input is keywords, identifiers, decimal integers, '//' comments and = ; + * ( ) { }").
			Build()
	}
}

// FromParseError builds the diagnostic for a parse failure at pos.
func FromParseError(pe *parser.ParseError, pos token.Position) CompilerError {
	var found token.Token
	length := 1
	if pe.Found != nil {
		found = *pe.Found
		length = utf8.RuneCountInString(found.Lexeme)
	}

	b := NewDiagnostic(parseErrorCode(pe.Kind), pe.Message, pos).WithLength(length)

	if pe.Found != nil && found.Kind == token.IDENTIFIER {
		if kw, ok := similarKeyword(found.Text); ok {
			b.WithReplacement(fmt.Sprintf("did you mean '%s'?", kw), kw)
		}
	}

	switch pe.Kind {
	case parser.UnexpectedEOF:
		if isSpelled(pe.Expected) {
			b.WithSuggestion(fmt.Sprintf("add %s to complete the construct", pe.Expected))
		}
		b.WithNote("the input ended while expecting " + pe.Expected)

	case parser.UnexpectedToken:
		if isSpelled(pe.Expected) {
			b.WithSuggestion(fmt.Sprintf("insert %s before %s", pe.Expected, found.Kind.Describe()))
		}

	case parser.WrongTokenKind:
		if found.Kind.IsKeyword() && strings.Contains(pe.Expected, "identifier") {
			b.WithHelp(fmt.Sprintf("%s is a keyword and cannot be used as a name", found.Kind.Describe()))
		}

	case parser.UnhandledConstruct:
		if strings.HasSuffix(pe.Message, "statement position") {
			b.WithHelp("a statement starts with 'let' or 'while'")
		} else {
			b.WithHelp("operands are joined with '+' or '*'; an expression ends at ';' or ')'")
		}

	case parser.TrailingInput:
		b.WithHelp("remove the input after the end of the construct")
	}

	return b.Build()
}

func parseErrorCode(kind parser.ErrorKind) string {
	switch kind {
	case parser.UnexpectedEOF:
		return ErrorUnexpectedEOF
	case parser.UnexpectedToken:
		return ErrorUnexpectedToken
	case parser.WrongTokenKind:
		return ErrorWrongTokenKind
	case parser.UnhandledConstruct:
		return ErrorUnhandledConstruct
	case parser.TrailingInput:
		return ErrorTrailingInput
	}
	return ""
}

// isSpelled reports whether an expectation names a fixed token like "';'".
func isSpelled(expected string) bool {
	return len(expected) >= 3 && expected[0] == '\'' && expected[len(expected)-1] == '\''
}
