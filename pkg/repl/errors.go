package repl

import (
	"github.com/fatih/color"

	"github.com/nlindqvist/golisp/pkg/evaluator"
)

// ErrorFormatter colors an evaluation error by its evaluator.Kind, replacing
// the teacher's string-pattern categorizeError with a direct dispatch on the
// typed error taxonomy.
type ErrorFormatter struct {
	colors map[evaluator.Kind]*color.Color
	prefix *color.Color
	other  *color.Color
}

// NewErrorFormatter creates a formatter with one color per evaluator.Kind.
func NewErrorFormatter() *ErrorFormatter {
	return &ErrorFormatter{
		colors: map[evaluator.Kind]*color.Color{
			evaluator.KindUndefinedSymbol:  color.New(color.FgYellow, color.Bold),
			evaluator.KindEmptyApplication: color.New(color.FgRed, color.Bold),
			evaluator.KindNotCallable:      color.New(color.FgCyan, color.Bold),
			evaluator.KindArityMismatch:    color.New(color.FgMagenta, color.Bold),
			evaluator.KindInvalidForm:      color.New(color.FgRed, color.Bold),
			evaluator.KindTypeError:        color.New(color.FgCyan, color.Bold),
			evaluator.KindLogicError:       color.New(color.FgMagenta, color.Bold),
		},
		prefix: color.New(color.FgRed, color.Bold),
		other:  color.New(color.FgWhite, color.Bold),
	}
}

// FormatError renders err with the color for its Kind, or a plain color for
// errors that did not come from the evaluator (tokenizer/parser failures).
func (ef *ErrorFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	evalErr, ok := err.(*evaluator.EvalError)
	if !ok {
		prefix := ef.prefix.Sprint("Error:")
		return prefix + " " + ef.other.Sprint(err.Error())
	}

	c, ok := ef.colors[evalErr.Kind]
	if !ok {
		c = ef.other
	}
	prefix := ef.prefix.Sprintf("%s:", evalErr.Kind)
	return prefix + " " + c.Sprint(evalErr.Message)
}

// FormatErrorWithSuggestion appends a hint after the formatted error.
func (ef *ErrorFormatter) FormatErrorWithSuggestion(err error, suggestion string) string {
	if err == nil {
		return ""
	}
	base := ef.FormatError(err)
	if suggestion == "" {
		return base
	}
	suggestionColor := color.New(color.FgHiBlack, color.Italic)
	return base + suggestionColor.Sprintf("\n  Suggestion: %s", suggestion)
}

// FormatErrorWithSmartSuggestion picks a suggestion from the error's Kind.
func (ef *ErrorFormatter) FormatErrorWithSmartSuggestion(err error) string {
	if err == nil {
		return ""
	}
	evalErr, ok := err.(*evaluator.EvalError)
	if !ok {
		return ef.FormatErrorWithSuggestion(err, "Check for balanced parentheses and proper syntax")
	}
	return ef.FormatErrorWithSuggestion(err, suggestionFor(evalErr.Kind))
}

func suggestionFor(kind evaluator.Kind) string {
	switch kind {
	case evaluator.KindUndefinedSymbol:
		return "Check if the symbol is defined before it is used"
	case evaluator.KindArityMismatch:
		return "Check the number of arguments against the function's definition"
	case evaluator.KindNotCallable:
		return "Make sure the head of the form is a lambda or primitive"
	case evaluator.KindEmptyApplication:
		return "() has no meaning on its own; quote it if you meant the empty list"
	case evaluator.KindLogicError:
		return "Check for null or empty-list arguments"
	case evaluator.KindTypeError:
		return "Check the argument's type against what the operator expects"
	case evaluator.KindInvalidForm:
		return "Check the special form's shape: its element count and which elements must be symbols"
	default:
		return ""
	}
}
