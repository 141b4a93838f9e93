package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"loom/grammar"
	"loom/internal/ast"
	"loom/internal/parser"
)

var (
	parseRule       string
	parsePrecedence bool
	parseReference  bool
	parseDebug      bool
	parseWatch      bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the syntax tree of a file",
	Long: `Parse a file and print its syntax tree as source.

--rule selects the entry rule (program, statement, block, while,
initialization, expression, identifier, integer). --precedence makes '*'
bind tighter than '+'. --reference parses with the participle grammar,
which only knows the program rule and the default operator grouping.
--watch parses again every time the file is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseRule, "rule", "r", "", "entry rule (default from config, else program)")
	parseCmd.Flags().BoolVar(&parsePrecedence, "precedence", false, "use the precedence-climbing expression rule")
	parseCmd.Flags().BoolVar(&parseReference, "reference", false, "parse with the reference grammar")
	parseCmd.Flags().BoolVar(&parseDebug, "debug", false, "print the tree in constructor notation")
	parseCmd.Flags().BoolVarP(&parseWatch, "watch", "w", false, "parse again on every change")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := settings.ParserConfig()
	if cmd.Flags().Changed("rule") {
		cfg.Entry = parseRule
	}
	if cmd.Flags().Changed("precedence") {
		cfg.Precedence = parsePrecedence
	}

	if parseReference && (cfg.Entry != "program" || cfg.Precedence) {
		return fmt.Errorf("--reference supports only the program rule without --precedence")
	}

	if parseWatch {
		return watchFile(cmd.Context(), path, cmd.ErrOrStderr(), func() {
			reportWatched(cmd, parseFile(cmd, path, cfg))
		})
	}
	return parseFile(cmd, path, cfg)
}

func parseFile(cmd *cobra.Command, path string, cfg parser.Config) error {
	started := time.Now()

	source, err := readSource(path)
	if err != nil {
		return err
	}

	var node ast.Node
	if parseReference {
		node, err = parseWithReference(path, source)
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), grammar.FormatParseError(source, err))
			return errReported
		}
	} else {
		node, err = parser.ParseSourceWith(path, source, cfg)
		if err != nil {
			return reportFailure(cmd.ErrOrStderr(), path, source, err, started)
		}
	}

	if parseDebug {
		fmt.Fprintln(cmd.OutOrStdout(), ast.Debug(node))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), node.String())
	}
	reportSuccess(cmd.ErrOrStderr(), path, started)
	return nil
}

func parseWithReference(path, source string) (*ast.Program, error) {
	program, err := grammar.Parse(path, source)
	if err != nil {
		return nil, err
	}
	return program.ToAST()
}
