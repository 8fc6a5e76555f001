// Package executor loads a source file and evaluates each top-level form
// in it, grounded on the teacher's pkg/executor: tokenize the whole file,
// walk balanced parens to carve out each top-level expression, interpret
// each in turn. ExecuteFileWatching additionally re-runs the file each
// time it changes on disk, via fsnotify.
package executor

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/nlindqvist/golisp/pkg/interpreter"
	"github.com/nlindqvist/golisp/pkg/tokenizer"
)

// ExecuteFile reads filename, evaluates each top-level form in order
// through interp, and prints every result (define and set! print ()).
func ExecuteFile(interp *interpreter.Interpreter, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %v", err)
	}
	return ExecuteSource(interp, filename, string(content))
}

// ExecuteSource runs every top-level form in src through interp.
func ExecuteSource(interp *interpreter.Interpreter, label, src string) error {
	tokens, err := tokenizer.New(src).Tokenize()
	if err != nil {
		return fmt.Errorf("tokenization error in %s: %v", label, err)
	}

	i := 0
	for i < len(tokens) {
		exprTokens, nextIndex := extractExpression(tokens, i)
		if len(exprTokens) == 0 {
			break
		}
		if nextIndex <= i {
			i++
			continue
		}

		exprString := tokensToString(exprTokens)
		result, err := interp.Interpret(exprString)
		if err != nil {
			return fmt.Errorf("evaluation error in %s: %v", label, err)
		}
		fmt.Println(result.String())

		i = nextIndex
	}
	return nil
}

// ExecuteFileWatching runs the file once, then re-runs it in a fresh
// interpreter every time it is written or created on disk. It returns only
// if the watcher's event or error channel closes, so in practice it runs
// until the process is interrupted (Ctrl-C).
func ExecuteFileWatching(newInterpreter func() (*interpreter.Interpreter, error), filename string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch %s: %v", filename, err)
	}

	run := func() {
		interp, err := newInterpreter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if err := ExecuteFile(interp, filename); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}

	run()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fmt.Printf("--- %s changed, re-running ---\n", filename)
				run()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}

// extractExpression carves out one top-level expression starting at
// index start: a single token for an atom, or a balanced-paren run for a
// list.
func extractExpression(tokens []tokenizer.Token, start int) ([]tokenizer.Token, int) {
	if start >= len(tokens) {
		return nil, start
	}
	if tokens[start].Type != tokenizer.LPAREN {
		return tokens[start : start+1], start + 1
	}

	depth := 0
	end := start
	for end < len(tokens) {
		switch tokens[end].Type {
		case tokenizer.LPAREN:
			depth++
		case tokenizer.RPAREN:
			depth--
			if depth == 0 {
				end++
				return tokens[start:end], end
			}
		}
		end++
	}
	return tokens[start:end], end
}

// tokensToString reassembles a token slice into source text.
func tokensToString(tokens []tokenizer.Token) string {
	var result string
	for i, tok := range tokens {
		if i > 0 && tok.Type != tokenizer.RPAREN && tokens[i-1].Type != tokenizer.LPAREN && tokens[i-1].Type != tokenizer.QUOTE {
			result += " "
		}
		result += tok.Value
	}
	return result
}
