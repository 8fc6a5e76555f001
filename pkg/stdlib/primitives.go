// Package stdlib implements the standard primitive table from spec.md §4.6:
// cons, car, cdr, atom?, null?, eq?, not, =, +, -, plus the #t/#f constants.
// Each primitive is registered through pkg/registry, the way the teacher's
// builtin functions register themselves, rather than dispatched from a bare
// switch.
package stdlib

import (
	"fmt"

	"github.com/nlindqvist/golisp/pkg/evaluator"
	"github.com/nlindqvist/golisp/pkg/registry"
	"github.com/nlindqvist/golisp/pkg/types"
)

// builtin adapts a plain Go func into a registry.BuiltinFunction.
type builtin struct {
	name     string
	category string
	arity    int
	help     string
	fn       func(args []types.Value) (types.Value, error)
}

func (b *builtin) Name() string     { return b.name }
func (b *builtin) Category() string { return b.category }
func (b *builtin) Arity() int       { return b.arity }
func (b *builtin) Help() string     { return b.help }
func (b *builtin) Call(args []types.Value) (types.Value, error) {
	return b.fn(args)
}

func typeError(name, expected string, got types.Value) error {
	return evaluator.NewError(evaluator.KindTypeError, fmt.Sprintf("%s: expected %s, got %s", name, expected, got.String()))
}

var builtins = []*builtin{
	{
		name: "cons", category: registry.CategoryList, arity: 2,
		help: "(cons head tail) builds a cell; tail must be a cell or null",
		fn: func(args []types.Value) (types.Value, error) {
			tail := args[1]
			if !types.IsNull(tail) {
				if _, ok := tail.(*types.Cell); !ok {
					return nil, typeError("cons", "a cell or null", tail)
				}
			}
			return types.Cons(args[0], tail), nil
		},
	},
	{
		name: "car", category: registry.CategoryList, arity: 1,
		help: "(car cell) returns the head of a non-null cell",
		fn: func(args []types.Value) (types.Value, error) {
			if types.IsNull(args[0]) {
				return nil, evaluator.NewError(evaluator.KindLogicError, "car: cannot take the head of the empty list")
			}
			cell, ok := args[0].(*types.Cell)
			if !ok {
				return nil, typeError("car", "a cell", args[0])
			}
			return cell.Head, nil
		},
	},
	{
		name: "cdr", category: registry.CategoryList, arity: 1,
		help: "(cdr cell) returns the tail of a non-null cell",
		fn: func(args []types.Value) (types.Value, error) {
			if types.IsNull(args[0]) {
				return nil, evaluator.NewError(evaluator.KindLogicError, "cdr: cannot take the tail of the empty list")
			}
			cell, ok := args[0].(*types.Cell)
			if !ok {
				return nil, typeError("cdr", "a cell", args[0])
			}
			return cell.Tail, nil
		},
	},
	{
		name: "atom?", category: registry.CategoryAtom, arity: 1,
		help: "(atom? v) is true iff v is an integer or symbol",
		fn: func(args []types.Value) (types.Value, error) {
			switch args[0].(type) {
			case types.Integer, types.Symbol:
				return types.Boolean(true), nil
			default:
				return types.Boolean(false), nil
			}
		},
	},
	{
		name: "null?", category: registry.CategoryAtom, arity: 1,
		help: "(null? v) is true iff v is the empty list",
		fn: func(args []types.Value) (types.Value, error) {
			return types.Boolean(types.IsNull(args[0])), nil
		},
	},
	{
		name: "eq?", category: registry.CategoryComparison, arity: 2,
		help: "(eq? a b) is true iff a and b are identical",
		fn: func(args []types.Value) (types.Value, error) {
			return types.Boolean(identical(args[0], args[1])), nil
		},
	},
	{
		name: "not", category: registry.CategoryLogical, arity: 1,
		help: "(not b) negates a boolean",
		fn: func(args []types.Value) (types.Value, error) {
			b, ok := args[0].(types.Boolean)
			if !ok {
				return nil, typeError("not", "a boolean", args[0])
			}
			return types.Boolean(!b), nil
		},
	},
	{
		name: "=", category: registry.CategoryComparison, arity: 2,
		help: "(= a b) is numeric equality",
		fn: func(args []types.Value) (types.Value, error) {
			a, ok := args[0].(types.Integer)
			if !ok {
				return nil, typeError("=", "an integer", args[0])
			}
			b, ok := args[1].(types.Integer)
			if !ok {
				return nil, typeError("=", "an integer", args[1])
			}
			return types.Boolean(a == b), nil
		},
	},
	{
		name: "+", category: registry.CategoryArithmetic, arity: 2,
		help: "(+ a b) integer addition",
		fn: func(args []types.Value) (types.Value, error) {
			a, ok := args[0].(types.Integer)
			if !ok {
				return nil, typeError("+", "an integer", args[0])
			}
			b, ok := args[1].(types.Integer)
			if !ok {
				return nil, typeError("+", "an integer", args[1])
			}
			return a + b, nil
		},
	},
	{
		name: "-", category: registry.CategoryArithmetic, arity: 2,
		help: "(- a b) integer subtraction",
		fn: func(args []types.Value) (types.Value, error) {
			a, ok := args[0].(types.Integer)
			if !ok {
				return nil, typeError("-", "an integer", args[0])
			}
			b, ok := args[1].(types.Integer)
			if !ok {
				return nil, typeError("-", "an integer", args[1])
			}
			return a - b, nil
		},
	},
}

// identical implements spec.md §4.6's eq?: interned-symbol identity,
// same-cell reference identity, or same-value identity for integers and
// booleans.
func identical(a, b types.Value) bool {
	switch av := a.(type) {
	case types.Symbol:
		bv, ok := b.(types.Symbol)
		return ok && av == bv
	case types.Integer:
		bv, ok := b.(types.Integer)
		return ok && av == bv
	case types.Boolean:
		bv, ok := b.(types.Boolean)
		return ok && av == bv
	case types.NullValue:
		return types.IsNull(b)
	case *types.Cell:
		bv, ok := b.(*types.Cell)
		return ok && av == bv
	default:
		return a == b
	}
}

// Register adds every standard primitive to reg.
func Register(reg registry.FunctionRegistry) error {
	for _, b := range builtins {
		if err := reg.Register(b); err != nil {
			return err
		}
	}
	return nil
}

// Bindings returns the root-environment bindings for every registered
// primitive plus the #t/#f constants, from reg.
func Bindings(reg registry.FunctionRegistry) map[types.Symbol]types.Value {
	bindings := make(map[types.Symbol]types.Value, len(reg.List())+2)
	for _, name := range reg.List() {
		fn, _ := reg.Get(name)
		bindings[types.Intern(name)] = &types.Primitive{Name: fn.Name(), Arity: fn.Arity(), Fn: fn.Call}
	}
	bindings[types.SymTrue] = types.Boolean(true)
	bindings[types.SymFalse] = types.Boolean(false)
	return bindings
}
