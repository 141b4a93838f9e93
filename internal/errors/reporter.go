package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"loom/token"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string         // Error code like E0001
	Message     string         // Primary error message
	Position    token.Position // Location in source
	Length      int            // Length of the problematic region
	Suggestions []Suggestion   // Suggested fixes
	Notes       []string       // Additional context notes
	HelpText    string         // Help text for the error
}

func (e CompilerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", e.Position, e.Level, e.Code, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string // Description of the suggestion
	Replacement string // Suggested replacement text (optional)
}

// ErrorReporter renders diagnostics against the source they refer to
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// Report converts err and renders it. Errors that are not lexer or parser
// errors are rendered as a bare header.
func (er *ErrorReporter) Report(err error) string {
	if ce, ok := er.Convert(err); ok {
		return er.FormatError(ce)
	}
	levelColor := er.getLevelColor(Error)
	return fmt.Sprintf("%s: %s\n", levelColor(string(Error)), err)
}

// FormatError formats a compiler error with Rust-like styling and suggestions
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var out strings.Builder

	width := er.getLineNumberWidth(err.Position.Line)
	gutter := strings.Repeat(" ", width)
	dim := color.New(color.Faint).SprintFunc()
	bar := dim("│")

	er.writeHeader(&out, err)
	fmt.Fprintf(&out, "%s %s %s\n", gutter, dim("-->"), er.location(err.Position))
	fmt.Fprintf(&out, "%s %s\n", gutter, bar)
	er.writeSnippet(&out, err, width)

	if len(err.Suggestions) > 0 {
		fmt.Fprintf(&out, "%s %s\n", gutter, bar)
		cyan := color.New(color.FgCyan).SprintFunc()
		for i, s := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(&out, "%s %s: %s\n", gutter, cyan("help"), s.Message)
			} else {
				fmt.Fprintf(&out, "%s       %s\n", gutter, s.Message)
			}
			if s.Replacement != "" {
				fmt.Fprintf(&out, "%s %s %s\n", gutter, cyan("│"), cyan(s.Replacement))
			}
		}
	}

	blue := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		fmt.Fprintf(&out, "%s %s %s %s\n", gutter, bar, blue("note:"), note)
	}

	if err.HelpText != "" {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", gutter, bar, green("help:"), err.HelpText)
	}

	out.WriteString("\n")
	return out.String()
}

// writeHeader writes "error[E0001]: message"
func (er *ErrorReporter) writeHeader(out *strings.Builder, err CompilerError) {
	level := er.getLevelColor(err.Level)(string(err.Level))
	if err.Code != "" {
		fmt.Fprintf(out, "%s[%s]: %s\n", level, err.Code, err.Message)
		return
	}
	fmt.Fprintf(out, "%s: %s\n", level, err.Message)
}

// writeSnippet writes the offending line with one line of context on each
// side and the caret marker underneath.
func (er *ErrorReporter) writeSnippet(out *strings.Builder, err CompilerError, width int) {
	line := err.Position.Line
	if line < 1 || line > len(er.lines) {
		return
	}

	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	number := func(n int) string { return fmt.Sprintf("%*d", width, n) }

	if line > 1 {
		fmt.Fprintf(out, "%s %s %s\n", dim(number(line-1)), dim("│"), er.lines[line-2])
	}

	content := er.lines[line-1]
	fmt.Fprintf(out, "%s %s %s\n", bold(number(line)), dim("│"), content)
	fmt.Fprintf(out, "%s %s %s\n", strings.Repeat(" ", width), dim("│"),
		er.createMarker(err.Position.Column, err.Length, err.Level))

	if line < len(er.lines) {
		fmt.Fprintf(out, "%s %s %s\n", dim(number(line+1)), dim("│"), er.lines[line])
	}
}

func (er *ErrorReporter) location(pos token.Position) string {
	name := er.filename
	if name == "" {
		name = pos.Filename
	}
	if name == "" {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	return fmt.Sprintf("%s:%d:%d", name, pos.Line, pos.Column)
}

// endOfInput is where diagnostics about a missing token point: just past
// the last non-blank character of the source.
func (er *ErrorReporter) endOfInput() token.Position {
	trimmed := strings.TrimRight(er.source, " \t\r\n\v\f")
	pos := token.Position{Filename: er.filename, Line: 1, Column: 1}
	pos.Advance(trimmed)
	return pos
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for errors
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))

	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	if level == Warning {
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return spaces + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(strconv.Itoa(line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
