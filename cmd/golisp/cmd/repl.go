package cmd

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"github.com/nlindqvist/golisp/pkg/interpreter"
	"github.com/nlindqvist/golisp/pkg/repl"
)

var noColor bool
var noCompletion bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-eval-print loop",
	RunE:  runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	replCmd.Flags().BoolVar(&noCompletion, "no-completion", false, "disable readline tab completion and history")
}

func runREPL(_ *cobra.Command, _ []string) error {
	interp, err := interpreter.New()
	if err != nil {
		return err
	}

	if noCompletion {
		repl.REPLWithOptions(interp, bufio.NewScanner(os.Stdin), !noColor)
		return nil
	}
	return repl.REPLWithCompletion(interp, !noColor)
}
