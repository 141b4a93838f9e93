package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"loom/internal/ast"
	"loom/internal/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Compare the combinator parser with the reference grammar",
	Long: `Parse a file with both the combinator parser and the participle
reference grammar and report whether they produce the same tree.

Both engines use the default grammar; comments and the config's entry and
precedence settings are ignored. --watch checks again every time the file
is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var checkWatch bool

func init() {
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "check again on every change")
	rootCmd.AddCommand(checkCmd)
}

// checkResult is the outcome of one engine.
type checkResult struct {
	tree string
	err  error
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	if checkWatch {
		return watchFile(cmd.Context(), path, cmd.ErrOrStderr(), func() {
			reportWatched(cmd, checkFile(cmd, path))
		})
	}
	return checkFile(cmd, path)
}

func checkFile(cmd *cobra.Command, path string) error {
	started := time.Now()

	source, err := readSource(path)
	if err != nil {
		return err
	}

	combinator := checkResult{}
	if program, err := parser.ParseSource(path, source); err != nil {
		combinator.err = err
	} else {
		combinator.tree = ast.Debug(program)
	}

	reference := checkResult{}
	if program, err := parseWithReference(path, source); err != nil {
		reference.err = err
	} else {
		reference.tree = ast.Debug(program)
	}

	out := cmd.OutOrStdout()
	switch {
	case combinator.err != nil && reference.err != nil:
		fmt.Fprintln(out, "both parsers reject the input")
		return reportFailure(cmd.ErrOrStderr(), path, source, combinator.err, started)

	case combinator.err != nil || reference.err != nil || combinator.tree != reference.tree:
		writeMismatch(out, combinator, reference)
		fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("Parsers disagree on %s", path))
		return errReported
	}

	fmt.Fprintln(out, combinator.tree)
	reportSuccess(cmd.ErrOrStderr(), path, started)
	return nil
}

func writeMismatch(w io.Writer, combinator, reference checkResult) {
	write := func(name string, r checkResult) {
		if r.err != nil {
			fmt.Fprintf(w, "%-10s error: %v\n", name, r.err)
			return
		}
		fmt.Fprintf(w, "%-10s %s\n", name, r.tree)
	}
	write("combinator", combinator)
	write("reference", reference)
}
