// Package repl implements the interactive Read-Eval-Print loop: a plain
// scanner-based loop, and a readline-backed one with history and tab
// completion, both grounded on the teacher's pkg/repl.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/nlindqvist/golisp/pkg/environment"
	"github.com/nlindqvist/golisp/pkg/registry"
	"github.com/nlindqvist/golisp/pkg/types"
)

// Interpreter is what the REPL needs from the interpreter: evaluate input,
// and optionally expose the environment/registry for tab completion.
type Interpreter interface {
	Interpret(input string) (types.Value, error)
}

// EnvironmentProvider is implemented by interpreters that can supply
// completion context. *interpreter.Interpreter satisfies it.
type EnvironmentProvider interface {
	Environment() *environment.Environment
	Registry() registry.FunctionRegistry
}

// REPL starts a colored Read-Eval-Print loop reading from scanner.
func REPL(interp Interpreter, scanner *bufio.Scanner) {
	REPLWithOptions(interp, scanner, true)
}

// REPLWithOptions starts a REPL with colors toggled by enableColors.
func REPLWithOptions(interp Interpreter, scanner *bufio.Scanner, enableColors bool) {
	if scanner == nil {
		scanner = bufio.NewScanner(os.Stdin)
	}

	if !enableColors {
		color.NoColor = true
		printWelcomeMessageNoColor()
	} else {
		printWelcomeMessage()
	}

	errorFormatter := NewErrorFormatter()

	for {
		input := readCompleteExpressionWithColors(scanner, enableColors)
		if input == "" {
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		result, err := interp.Interpret(input)
		if err != nil {
			fmt.Println(errorFormatter.FormatErrorWithSmartSuggestion(err))
			continue
		}
		resultColor := color.New(color.FgGreen)
		fmt.Printf("=> %s\n", resultColor.Sprint(result.String()))
	}

	if enableColors {
		printGoodbyeMessage()
	} else {
		printGoodbyeMessageNoColor()
	}
}

// REPLWithCompletion starts a readline-backed REPL with history and tab
// completion, falling back to REPLWithOptions if readline cannot attach to
// the terminal.
func REPLWithCompletion(interp Interpreter, enableColors bool) error {
	var completer readline.AutoCompleter
	if provider, ok := interp.(EnvironmentProvider); ok {
		cp := NewCompletionProviderWithRegistry(provider.Environment(), provider.Registry())
		completer = &lispCompleter{provider: cp}
	}

	config := &readline.Config{
		Prompt:          "lisp> ",
		HistoryFile:     "/tmp/golisp_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		fmt.Printf("Warning: Tab completion unavailable (%v). Using basic REPL.\n", err)
		REPLWithOptions(interp, nil, enableColors)
		return nil
	}
	defer rl.Close()

	if !enableColors {
		color.NoColor = true
		printWelcomeMessageNoColor()
	} else {
		printWelcomeMessage()
	}

	if enableColors {
		color.New(color.FgYellow).Println("Tab completion is enabled. Press TAB to see available names.")
	} else {
		fmt.Println("Tab completion is enabled. Press TAB to see available names.")
	}
	fmt.Println()

	errorFormatter := NewErrorFormatter()

	for {
		input, err := readCompleteExpressionWithReadline(rl, enableColors)
		if err != nil {
			if err == io.EOF {
				break
			}
			fmt.Printf("Input error: %v\n", err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}

		result, err := interp.Interpret(input)
		if err != nil {
			fmt.Println(errorFormatter.FormatErrorWithSmartSuggestion(err))
			continue
		}
		if enableColors {
			resultColor := color.New(color.FgGreen)
			fmt.Printf("=> %s\n", resultColor.Sprint(result.String()))
		} else {
			fmt.Printf("=> %s\n", result.String())
		}
	}

	if enableColors {
		printGoodbyeMessage()
	} else {
		printGoodbyeMessageNoColor()
	}
	return nil
}

func printWelcomeMessage() {
	titleColor := color.New(color.FgCyan, color.Bold)
	instructionColor := color.New(color.FgYellow)

	titleColor.Println("golisp")
	instructionColor.Println("Type expressions to evaluate them, or 'quit' to exit.")
	instructionColor.Println("Multi-line input is supported; golisp waits for balanced parentheses.")
	fmt.Println()
}

func printGoodbyeMessage() {
	color.New(color.FgMagenta, color.Bold).Println("Goodbye!")
}

func printWelcomeMessageNoColor() {
	fmt.Println("golisp")
	fmt.Println("Type expressions to evaluate them, or 'quit' to exit.")
	fmt.Println("Multi-line input is supported; golisp waits for balanced parentheses.")
	fmt.Println()
}

func printGoodbyeMessageNoColor() {
	fmt.Println("Goodbye!")
}

// readCompleteExpressionWithColors reads lines from scanner until the
// parentheses balance and at least one non-comment, non-blank line has been
// seen, or until scanner is exhausted.
func readCompleteExpressionWithColors(scanner *bufio.Scanner, enableColors bool) string {
	var lines []string
	parenCount := 0
	inString := false
	escaped := false
	isFirstLine := true

	primaryPromptColor := color.New(color.FgBlue, color.Bold)
	continuationPromptColor := color.New(color.FgHiBlack)

	for {
		if isFirstLine {
			if enableColors {
				primaryPromptColor.Print("lisp> ")
			} else {
				fmt.Print("lisp> ")
			}
			isFirstLine = false
		} else {
			if enableColors {
				continuationPromptColor.Print("...   ")
			} else {
				fmt.Print("...   ")
			}
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Printf("Scanner error: %v\n", err)
			}
			return strings.Join(lines, "\n")
		}

		line := scanner.Text()
		lines = append(lines, line)

		trimmed := strings.TrimSpace(line)
		if len(lines) == 1 && (trimmed == "quit" || trimmed == "exit") {
			return trimmed
		}

		parenCount += countParens(line, &inString, &escaped)

		if parenCount == 0 && containsExpression(strings.Join(lines, "\n")) {
			break
		}
		if parenCount < 0 {
			break
		}
	}

	return strings.Join(lines, "\n")
}

// readCompleteExpressionWithReadline is the readline equivalent of
// readCompleteExpressionWithColors.
func readCompleteExpressionWithReadline(rl *readline.Instance, enableColors bool) (string, error) {
	var lines []string
	parenCount := 0
	inString := false
	escaped := false
	isFirstLine := true

	primaryPromptColor := color.New(color.FgBlue, color.Bold)
	continuationPromptColor := color.New(color.FgHiBlack)

	for {
		var prompt string
		if isFirstLine {
			if enableColors {
				prompt = primaryPromptColor.Sprint("lisp> ")
			} else {
				prompt = "lisp> "
			}
			isFirstLine = false
		} else {
			if enableColors {
				prompt = continuationPromptColor.Sprint("...   ")
			} else {
				prompt = "...   "
			}
		}

		rl.SetPrompt(prompt)
		line, err := rl.Readline()
		if err != nil {
			return strings.Join(lines, "\n"), err
		}
		lines = append(lines, line)

		trimmed := strings.TrimSpace(line)
		if len(lines) == 1 && (trimmed == "quit" || trimmed == "exit") {
			return trimmed, nil
		}

		parenCount += countParens(line, &inString, &escaped)

		if parenCount == 0 && containsExpression(strings.Join(lines, "\n")) {
			break
		}
		if parenCount < 0 {
			break
		}
	}

	return strings.Join(lines, "\n"), nil
}

// countParens scans one line for paren balance, tracking string/escape
// state across calls via inString/escaped.
func countParens(line string, inString, escaped *bool) int {
	delta := 0
	for _, ch := range line {
		if *escaped {
			*escaped = false
			continue
		}
		switch ch {
		case '\\':
			if *inString {
				*escaped = true
			}
		case '"':
			*inString = !*inString
		case '(':
			if !*inString {
				delta++
			}
		case ')':
			if !*inString {
				delta--
			}
		case ';':
			if !*inString {
				return delta
			}
		}
	}
	return delta
}

// containsExpression reports whether input has any non-blank,
// non-comment-only content.
func containsExpression(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}
	for _, line := range strings.Split(trimmed, "\n") {
		inString := false
		escaped := false
	scan:
		for i, ch := range line {
			if escaped {
				escaped = false
				continue
			}
			switch ch {
			case '\\':
				if inString {
					escaped = true
				}
			case '"':
				inString = !inString
			case ';':
				if !inString {
					line = line[:i]
					break scan
				}
			}
		}
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}
