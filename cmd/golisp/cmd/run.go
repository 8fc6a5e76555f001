package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlindqvist/golisp/pkg/executor"
	"github.com/nlindqvist/golisp/pkg/interpreter"
)

var (
	evalExpr string
	watch    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a golisp file or an inline expression",
	Long: `Execute every top-level form in a .lisp file, or evaluate a single
inline expression with -e.

Examples:
  golisp run program.lisp
  golisp run program.lisp --watch
  golisp run -e '(+ 1 2)'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading a file")
	runCmd.Flags().BoolVar(&watch, "watch", false, "re-run the file each time it changes on disk")
}

func runScript(_ *cobra.Command, args []string) error {
	if evalExpr != "" {
		interp, err := interpreter.New()
		if err != nil {
			return err
		}
		result, err := interp.Interpret(evalExpr)
		if err != nil {
			return err
		}
		fmt.Println(result.String())
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}
	filename := args[0]

	if watch {
		return executor.ExecuteFileWatching(interpreter.New, filename)
	}

	interp, err := interpreter.New()
	if err != nil {
		return err
	}
	return executor.ExecuteFile(interp, filename)
}
