package repl

import (
	"sort"
	"strings"

	"github.com/nlindqvist/golisp/pkg/environment"
	"github.com/nlindqvist/golisp/pkg/registry"
)

// specialForms are the keywords the evaluator's special-form table
// dispatches on; they are never bound in the environment, so completion
// lists them separately.
var specialForms = []string{"define", "set!", "quote", "cond", "lambda", "begin"}

// CompletionProvider offers tab completions drawn from the registered
// primitives, the special forms, and whatever symbols the user has defined,
// grounded on the teacher's pkg/repl completion provider but trimmed to
// spec.md's fixed vocabulary (no modules, no string/hashmap functions).
type CompletionProvider struct {
	env *environment.Environment
	reg registry.FunctionRegistry
}

// NewCompletionProvider builds a provider over env alone (no registry, so
// the special forms and every symbol bound in env's chain complete).
func NewCompletionProvider(env *environment.Environment) *CompletionProvider {
	return &CompletionProvider{env: env}
}

// NewCompletionProviderWithRegistry also includes the registered primitive
// names in completions.
func NewCompletionProviderWithRegistry(env *environment.Environment, reg registry.FunctionRegistry) *CompletionProvider {
	return &CompletionProvider{env: env, reg: reg}
}

// GetCompletions returns every known name with the given prefix. Unlike the
// teacher's context-sensitive version, it does not restrict to
// function-call position: spec.md has no data/code-position distinction
// worth tracking for a ten-primitive surface.
func (cp *CompletionProvider) GetCompletions(line string, pos int) []string {
	prefix := cp.extractCurrentWord(line, pos)

	var names []string
	names = append(names, specialForms...)
	if cp.reg != nil {
		names = append(names, cp.reg.List()...)
	}
	if cp.env != nil {
		for _, sym := range cp.env.Names() {
			names = append(names, string(sym))
		}
	}

	seen := make(map[string]bool)
	var completions []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			completions = append(completions, name)
		}
	}
	sort.Strings(completions)
	return completions
}

// extractCurrentWord finds the symbol being typed at pos.
func (cp *CompletionProvider) extractCurrentWord(line string, pos int) string {
	if pos > len(line) {
		pos = len(line)
	}
	start := pos
	for start > 0 && isSymbolChar(rune(line[start-1])) {
		start--
	}
	end := pos
	for end < len(line) && isSymbolChar(rune(line[end])) {
		end++
	}
	return line[start:end]
}

func isSymbolChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' || ch == '?' || ch == '!' ||
		ch == '+' || ch == '*' || ch == '/' || ch == '=' ||
		ch == '<' || ch == '>'
}

// lispCompleter adapts CompletionProvider to readline.AutoCompleter.
type lispCompleter struct {
	provider *CompletionProvider
}

func (lc *lispCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line)
	completions := lc.provider.GetCompletions(lineStr, pos)
	if len(completions) == 0 {
		return nil, 0
	}

	currentWord := lc.provider.extractCurrentWord(lineStr, pos)
	replaceLength := len(currentWord)

	var suggestions [][]rune
	for _, completion := range completions {
		if len(completion) > len(currentWord) {
			suggestions = append(suggestions, []rune(completion[len(currentWord):]))
		} else if completion == currentWord {
			suggestions = append(suggestions, []rune(completion))
		}
	}
	return suggestions, replaceLength
}
