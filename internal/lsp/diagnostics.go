package lsp

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"loom/internal/errors"
	"loom/token"
)

// ConvertError transforms a lexer or parser error for text into LSP
// diagnostics. Lexer errors are reported with source "loom-lexer", parse
// errors with "loom-parser"; the diagnostic code is the CLI error code.
func ConvertError(text string, err error) []protocol.Diagnostic {
	reporter := errors.NewErrorReporter("", text)
	ce, ok := reporter.Convert(err)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("loom"),
			Message:  err.Error(),
		}}
	}

	source := "loom-parser"
	if errors.GetErrorCategory(ce.Code) == "Lexer" {
		source = "loom-lexer"
	}

	message := ce.Message
	if ce.HelpText != "" {
		message += "\nhelp: " + ce.HelpText
	}

	return []protocol.Diagnostic{{
		Range:    rangeOf(text, ce.Position, ce.Length),
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: ce.Code},
		Source:   ptrString(source),
		Message:  message,
	}}
}

// rangeOf spans length runes from pos, stopping at the end of the line.
func rangeOf(text string, pos token.Position, length int) protocol.Range {
	start := toProtocolPosition(text, pos)

	offset := min(max(pos.Offset, 0), len(text))
	end := offset
	for n := 0; n < length && end < len(text) && text[end] != '\n'; n++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}

	return protocol.Range{
		Start: start,
		End: protocol.Position{
			Line:      start.Line,
			Character: start.Character + utf16Len(text[offset:end]),
		},
	}
}

// toProtocolPosition converts a 1-based rune position into the 0-based
// UTF-16 position LSP clients expect.
func toProtocolPosition(text string, pos token.Position) protocol.Position {
	if pos.Line < 1 {
		return protocol.Position{}
	}
	offset := min(max(pos.Offset, 0), len(text))
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: utf16Len(text[lineStart:offset]),
	}
}

func utf16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		n += uint32(utf16.RuneLen(r))
	}
	return n
}
