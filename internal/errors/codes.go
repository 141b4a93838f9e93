package errors

// Error codes for the loom toolchain. They appear in CLI output and as the
// code of LSP diagnostics.
//
// Error code ranges:
// E0001-E0099: Lexer errors
// E0100-E0199: Parser errors

const (
	// E0001: No token pattern matches the input
	ErrorUnrecognizedInput = "E0001"

	// E0002: Integer literal does not fit in 64 bits
	ErrorIntegerOutOfRange = "E0002"

	// E0100: Input ended in the middle of a construct
	ErrorUnexpectedEOF = "E0100"

	// E0101: A fixed token was expected and another one found
	ErrorUnexpectedToken = "E0101"

	// E0102: A rule was handed a token it cannot build a node from
	ErrorWrongTokenKind = "E0102"

	// E0103: A valid token where no grammar alternative applies
	ErrorUnhandledConstruct = "E0103"

	// E0104: Tokens left over after the entry rule finished
	ErrorTrailingInput = "E0104"
)

// Codes lists every error code in ascending order.
var Codes = []string{
	ErrorUnrecognizedInput,
	ErrorIntegerOutOfRange,
	ErrorUnexpectedEOF,
	ErrorUnexpectedToken,
	ErrorWrongTokenKind,
	ErrorUnhandledConstruct,
	ErrorTrailingInput,
}

// GetErrorDescription returns a human-readable description of the error
// code, or false if the code is unknown.
func GetErrorDescription(code string) (string, bool) {
	switch code {
	case ErrorUnrecognizedInput:
		return "Input does not start with any known token", true
	case ErrorIntegerOutOfRange:
		return "Integer literal is larger than an unsigned 64-bit value", true
	case ErrorUnexpectedEOF:
		return "Input ended before the construct was complete", true
	case ErrorUnexpectedToken:
		return "A different token was required at this position", true
	case ErrorWrongTokenKind:
		return "The token cannot start the expected construct", true
	case ErrorUnhandledConstruct:
		return "The token is not valid in this context", true
	case ErrorTrailingInput:
		return "Input continues after a complete construct", true
	default:
		return "", false
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Lexer"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	default:
		return "Unknown"
	}
}
