// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"loom/internal/ast"
	"loom/internal/errors"
	"loom/internal/lexer"
	"loom/internal/parser"
	"loom/token"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
	sourceName   = "<repl>"
)

// LineReader supplies input lines, printing prompt first. It returns
// io.EOF when input ends and liner.ErrPromptAborted when the pending
// input should be dropped.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *scannerReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// Start runs the loop with the default grammar until in is exhausted.
func Start(in io.Reader, out io.Writer) {
	StartWith(in, out, parser.Config{})
}

// StartWith reads one statement or expression per line from in and prints
// its AST. Input that ends in the middle of a construct is continued on the
// next line; an empty continuation line discards it.
func StartWith(in io.Reader, out io.Writer, cfg parser.Config) {
	run(&scannerReader{scanner: bufio.NewScanner(in), out: out}, out, newSession(cfg))
}

// StartInteractive runs the loop on the terminal with line editing, history
// and completion of keywords and names initialized earlier in the session.
func StartInteractive(out io.Writer, cfg parser.Config) {
	line := liner.NewLiner()
	defer line.Close()

	s := newSession(cfg)
	s.history = line.AppendHistory
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	historyFile := filepath.Join(os.TempDir(), ".loom_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	run(line, out, s)
}

// session is the state one loop carries between inputs.
type session struct {
	grammar      *parser.Grammar
	keepComments bool
	names        map[string]bool
	history      func(string)
}

func newSession(cfg parser.Config) *session {
	g := parser.GrammarFor(cfg)
	return &session{
		grammar:      g,
		keepComments: cfg.KeepComments,
		names:        make(map[string]bool),
	}
}

// run drives the loop until r reports io.EOF.
func run(r LineReader, out io.Writer, s *session) {
	green := color.New(color.FgGreen).SprintFunc()

	var pending []string
	for {
		prompt := PROMPT
		if len(pending) > 0 {
			prompt = CONTINUATION
		}

		line, err := r.Prompt(prompt)
		if err != nil {
			if stderrors.Is(err, liner.ErrPromptAborted) {
				pending = nil
				continue
			}
			if !stderrors.Is(err, io.EOF) {
				fmt.Fprintf(out, "error reading input: %v", err)
			}
			fmt.Fprintln(out)
			return
		}

		if strings.TrimSpace(line) == "" {
			pending = nil
			continue
		}
		pending = append(pending, line)
		source := strings.Join(pending, "\n")

		node, err := s.evaluate(source)
		if err != nil {
			if incomplete(err) {
				continue
			}
			fmt.Fprint(out, errors.NewErrorReporter(sourceName, source).Report(err))
			s.record(source)
			pending = nil
			continue
		}
		s.record(source)
		pending = nil
		if node != nil {
			s.learn(node)
			fmt.Fprintln(out, green(ast.Debug(node)))
		}
	}
}

func (s *session) evaluate(source string) (ast.Node, error) {
	tokens, err := lexer.Tokenize(sourceName, source)
	if err != nil {
		return nil, err
	}
	if !s.keepComments {
		tokens = parser.StripComments(tokens)
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	return parser.ParseTokens(s.rule(tokens[0]), tokens)
}

// rule picks Statement or Expression from the first token of the input.
func (s *session) rule(first token.Token) *parser.Comb {
	if first.Kind.IsKeyword() || first.Kind == token.COMMENT {
		return s.grammar.Statement
	}
	return s.grammar.Expression
}

func (s *session) record(source string) {
	if s.history != nil {
		s.history(source)
	}
}

// learn remembers the names node initializes.
func (s *session) learn(node ast.Node) {
	ast.Inspect(node, func(n ast.Node) bool {
		if init, ok := n.(*ast.Initialization); ok {
			s.names[init.Name.Name] = true
		}
		return true
	})
}

// complete offers keywords and known names for the word under the cursor.
func (s *session) complete(line string) []string {
	start := strings.LastIndexAny(line, " \t(){};=+*") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var candidates []string
	for _, kw := range []token.Kind{token.LET, token.WHILE, token.FN} {
		candidates = append(candidates, token.Spelling[kw])
	}
	for name := range s.names {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) && c != word {
			out = append(out, prefix+c)
		}
	}
	return out
}

func incomplete(err error) bool {
	var pe *parser.ParseError
	return stderrors.As(err, &pe) && pe.Kind == parser.UnexpectedEOF
}
