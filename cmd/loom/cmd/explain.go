package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"loom/internal/errors"
)

var explainCmd = &cobra.Command{
	Use:   "explain [code]",
	Short: "Describe a diagnostic code",
	Long: `Describe the diagnostic code shown as error[CODE] in reports.

Without an argument every code is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, code := range errors.Codes {
			writeExplanation(out, code)
		}
		return nil
	}

	code := strings.ToUpper(args[0])
	if _, ok := errors.GetErrorDescription(code); !ok {
		return fmt.Errorf("unknown error code %q", args[0])
	}
	writeExplanation(out, code)
	return nil
}

func writeExplanation(w io.Writer, code string) {
	desc, _ := errors.GetErrorDescription(code)
	fmt.Fprintf(w, "%s %s: %s\n", color.RedString(code), errors.GetErrorCategory(code), desc)
}
