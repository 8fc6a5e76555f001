// Package interpreter ties the tokenizer, parser, object compiler, and
// evaluator into the single entry point the REPL and executor call,
// grounded on the teacher's pkg/interpreter façade.
package interpreter

import (
	"github.com/nlindqvist/golisp/pkg/bootstrap"
	"github.com/nlindqvist/golisp/pkg/compiler"
	"github.com/nlindqvist/golisp/pkg/environment"
	"github.com/nlindqvist/golisp/pkg/evaluator"
	"github.com/nlindqvist/golisp/pkg/parser"
	"github.com/nlindqvist/golisp/pkg/registry"
	"github.com/nlindqvist/golisp/pkg/tokenizer"
	"github.com/nlindqvist/golisp/pkg/types"
)

// Interpreter combines tokenizer, parser, compiler, and evaluator over one
// persistent root environment.
type Interpreter struct {
	env       *environment.Environment
	evaluator *evaluator.Evaluator
	registry  registry.FunctionRegistry
}

// New builds an Interpreter with a fresh, primitive-loaded root
// environment.
func New() (*Interpreter, error) {
	root, reg, err := bootstrap.Bootstrap()
	if err != nil {
		return nil, err
	}
	return &Interpreter{env: root, evaluator: evaluator.New(root), registry: reg}, nil
}

// Interpret runs one top-level source fragment through the full pipeline:
// tokenize, parse, compile, evaluate.
func (i *Interpreter) Interpret(input string) (types.Value, error) {
	tokens, err := tokenizer.New(input).Tokenize()
	if err != nil {
		return nil, err
	}
	node, err := parser.New(tokens).Parse()
	if err != nil {
		return nil, err
	}
	return i.evaluator.Eval(compiler.Compile(node))
}

// Environment returns the interpreter's root environment, for REPL
// completion and inspection.
func (i *Interpreter) Environment() *environment.Environment {
	return i.env
}

// Registry returns the primitive registry the interpreter was built with,
// for REPL tab completion.
func (i *Interpreter) Registry() registry.FunctionRegistry {
	return i.registry
}
