package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"loom/internal/lexer"
	"loom/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Print the tokens of a file",
	Long: `Print one token per line as "line:col KIND lexeme".

Comments are included.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	started := time.Now()
	path := args[0]

	source, err := readSource(path)
	if err != nil {
		return err
	}

	tokens, err := lexer.Tokenize(path, source)
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), path, source, err, started)
	}

	writeTokens(cmd.OutOrStdout(), tokens)
	reportSuccess(cmd.ErrOrStderr(), path, started)
	return nil
}

func writeTokens(w io.Writer, tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d %s %s\n", tok.Position.Line, tok.Position.Column, tok.Kind, tok.Lexeme)
	}
}
