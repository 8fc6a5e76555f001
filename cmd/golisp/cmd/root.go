// Package cmd is the cobra command tree for golisp, modeled on
// CWBudde-go-dws's cmd/dwscript/cmd package.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "golisp",
	Short: "A small Scheme-flavored Lisp interpreter",
	Long: `golisp is a lexically scoped, tail-recursive Lisp interpreter.

It supports integers, symbols, cons cells, booleans, lambdas, and the
special forms define, set!, quote, cond, lambda, and begin.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
