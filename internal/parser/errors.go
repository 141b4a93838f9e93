package parser

import (
	"fmt"
	"strconv"

	"loom/token"
)

type ErrorKind int

const (
	// UnexpectedEOF: the stream was exhausted where a token was required.
	UnexpectedEOF ErrorKind = iota + 1
	// UnexpectedToken: a terminal saw a token of another kind.
	UnexpectedToken
	// WrongTokenKind: a node rule was handed an incompatible token.
	WrongTokenKind
	// UnhandledConstruct: a valid token where no grammar alternative applies.
	UnhandledConstruct
	// TrailingInput: the entry rule succeeded but tokens remain.
	TrailingInput
)

var errorKindNames = [...]string{
	UnexpectedEOF:      "UnexpectedEof",
	UnexpectedToken:    "UnexpectedToken",
	WrongTokenKind:     "WrongTokenKind",
	UnhandledConstruct: "UnhandledConstruct",
	TrailingInput:      "TrailingInput",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseError aborts the current rule invocation. Found and Position are
// nil when the input ended, since there is no token to point at.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Expected string
	Found    *token.Token
	Position *token.Position
}

func (e *ParseError) Error() string {
	if e.Position == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Position.String(), e.Message)
}

// Length is the number of source bytes the offending token covers.
func (e *ParseError) Length() int {
	if e.Found == nil {
		return 0
	}
	return len(e.Found.Lexeme)
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.IDENTIFIER:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case token.INTEGER:
		return fmt.Sprintf("integer literal %d", tok.Value)
	}
	return tok.Kind.Describe()
}

func errEOF(expected string) *ParseError {
	return &ParseError{
		Kind:     UnexpectedEOF,
		Message:  "unexpected end of input, expected " + expected,
		Expected: expected,
	}
}

func atToken(kind ErrorKind, tok token.Token, expected, message string) *ParseError {
	pos := tok.Position
	return &ParseError{
		Kind:     kind,
		Message:  message,
		Expected: expected,
		Found:    &tok,
		Position: &pos,
	}
}

func errUnexpectedToken(found token.Token, expected token.Kind) *ParseError {
	want := expected.Describe()
	return atToken(UnexpectedToken, found, want,
		fmt.Sprintf("unexpected %s, expected %s", describe(found), want))
}

func errWrongTokenKind(found token.Token, expected string) *ParseError {
	return atToken(WrongTokenKind, found, expected,
		fmt.Sprintf("cannot parse %s from %s", expected, describe(found)))
}

func errUnhandled(found token.Token, context string) *ParseError {
	return atToken(UnhandledConstruct, found, "",
		fmt.Sprintf("unexpected %s in %s", describe(found), context))
}

func errTrailing(found token.Token) *ParseError {
	return atToken(TrailingInput, found, "end of input",
		fmt.Sprintf("unexpected %s, expected end of input", describe(found)))
}
