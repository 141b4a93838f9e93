package cmd

import (
	"fmt"
	"os"
	"os/user"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"loom/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive read/parse/print loop",
	Long: `Read one statement or expression per line and print its syntax tree.

Unfinished input continues on the next line; an empty line discards it.
On a terminal the loop offers history and Tab completion.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	name := "there"
	if currentUser, err := user.Current(); err == nil {
		name = currentUser.Username
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Welcome to the loom REPL, %s!\n", name)

	if isatty.IsTerminal(os.Stdin.Fd()) && liner.TerminalSupported() {
		repl.StartInteractive(out, settings.ParserConfig())
		return nil
	}
	repl.StartWith(cmd.InOrStdin(), out, settings.ParserConfig())
	return nil
}
