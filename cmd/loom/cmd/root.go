package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"loom/internal/config"
	"loom/internal/errors"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	settings *config.Config
)

// errReported marks a failure whose diagnostics were already printed.
var errReported = stderrors.New("failed")

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Tokenizer and parser toolkit for the loom language",
	Long: `loom tokenizes and parses loom source files.

Commands:
  lex     - print the token stream of a file
  parse   - print the syntax tree of a file
  check   - cross-check the combinator parser against the reference grammar
  repl    - interactive read/parse/print loop
  explain - describe a diagnostic code`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Errors other than already reported
// diagnostics are printed to stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !stderrors.Is(err, errReported) {
		printError(os.Stderr, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: loom.yaml, loom.yml or loom.toml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if noColor {
		cfg.Color = "never"
	}
	settings = cfg

	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	commonlog.Configure(cfg.Verbosity(), nil)
	if cfg.Path() != "" {
		commonlog.GetLogger("loom").Debugf("loaded config %s", cfg.Path())
	}
	return nil
}

func readSource(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(content), nil
}

// reportFailure renders err against source and returns errReported.
func reportFailure(w io.Writer, path, source string, err error, started time.Time) error {
	fmt.Fprint(w, errors.NewErrorReporter(path, source).Report(err))
	fmt.Fprintln(w, color.RedString("Failed after %s", formatDuration(time.Since(started))))
	return errReported
}

func reportSuccess(w io.Writer, path string, started time.Time) {
	fmt.Fprintln(w, color.GreenString("Successfully processed %s in %s", path, formatDuration(time.Since(started))))
}

// reportWatched prints errors a watched run did not already report.
func reportWatched(cmd *cobra.Command, err error) {
	if err != nil && !stderrors.Is(err, errReported) {
		printError(cmd.ErrOrStderr(), err)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %v\n", color.RedString("error"), err)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
