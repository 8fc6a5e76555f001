// Package evaluator implements the evaluation core: the eval loop,
// special-form dispatch, lambda application, and tail-call reuse described
// in spec.md §4.4–4.5. Grounded on the teacher's pkg/evaluator, generalized
// from its slice-of-Value argument model to the cons-cell object model and
// from its TailCallInfo sentinel to a direct expr/env rewrite inside the
// same loop.
package evaluator

import (
	"fmt"

	"github.com/nlindqvist/golisp/pkg/environment"
	"github.com/nlindqvist/golisp/pkg/types"
)

// Evaluator holds the one mutable field spec.md §4.4 names: a pointer to
// the current environment frame. root is fixed for the evaluator's
// lifetime and is where the root-capture rule sends "no capture" lambdas.
type Evaluator struct {
	env  *environment.Environment
	root *environment.Environment
}

// New returns an Evaluator whose current frame is root.
func New(root *environment.Environment) *Evaluator {
	return &Evaluator{env: root, root: root}
}

// specialFormHandler evaluates one special form invocation. It returns
// either a direct result (tail == nil) or a tail expression for the caller
// to continue evaluating in the same loop iteration, per spec.md §4.4's
// tail-call-reuse sentinel.
type specialFormHandler func(ev *Evaluator, cell *types.Cell) (result types.Value, tail types.Value, err error)

// specialForms is filled in init because the handlers call Eval, which
// reads this table; a static initializer would be an initialization cycle.
var specialForms map[types.Symbol]specialFormHandler

func init() {
	specialForms = map[types.Symbol]specialFormHandler{
		types.SymDefine: evalDefine,
		types.SymSet:    evalSet,
		types.SymQuote:  evalQuote,
		types.SymCond:   evalCond,
		types.SymLambda: evalLambda,
		types.SymBegin:  evalBegin,
	}
}

// Eval reduces expr to a value. Every call saves the environment in effect
// on entry and restores it on return (via defer), so nested non-tail
// evaluations never leak their pushed frames into the caller. Within one
// call, tail positions advance expr and env and loop rather than
// recursing, which is what bounds host-stack growth for tail recursion.
func (ev *Evaluator) Eval(expr types.Value) (types.Value, error) {
	saved := ev.env
	defer func() { ev.env = saved }()

	for {
		switch e := expr.(type) {
		case types.Integer:
			return e, nil
		case types.Boolean:
			return e, nil
		case types.Symbol:
			v, ok := ev.env.Get(e)
			if !ok {
				return nil, NewError(KindUndefinedSymbol, fmt.Sprintf("undefined symbol: %s", e))
			}
			return v, nil
		case types.NullValue:
			return nil, NewError(KindEmptyApplication, "cannot evaluate (): empty application")
		case *types.Cell:
			if sym, ok := e.Head.(types.Symbol); ok {
				if handler, ok := specialForms[sym]; ok {
					result, tail, err := handler(ev, e)
					if err != nil {
						return nil, err
					}
					if tail != nil {
						expr = tail
						continue
					}
					return result, nil
				}
			}

			fnVal, err := ev.Eval(e.Head)
			if err != nil {
				return nil, err
			}
			args, err := ev.evalArgs(e.Tail)
			if err != nil {
				return nil, err
			}

			switch fn := fnVal.(type) {
			case *types.Primitive:
				if len(args) != fn.Arity {
					return nil, NewError(KindArityMismatch, fmt.Sprintf("%s: expected %d argument(s), got %d", fn.Name, fn.Arity, len(args)))
				}
				return fn.Fn(args)
			case *types.Lambda:
				if len(args) != len(fn.Params) {
					return nil, NewError(KindArityMismatch, fmt.Sprintf("lambda: expected %d argument(s), got %d", len(fn.Params), len(args)))
				}
				ev.env = ev.applyFrame(fn, args)
				expr = fn.Body
				continue
			default:
				return nil, NewError(KindNotCallable, fmt.Sprintf("%s is not callable", fnVal.String()))
			}
		default:
			return nil, NewError(KindLogicError, "cannot evaluate unrecognized value kind")
		}
	}
}

// evalArgs evaluates each element of a cons chain left to right.
func (ev *Evaluator) evalArgs(list types.Value) ([]types.Value, error) {
	var args []types.Value
	cur := list
	for {
		cell, ok := cur.(*types.Cell)
		if !ok {
			break
		}
		v, err := ev.Eval(cell.Head)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		cur = cell.Tail
	}
	return args, nil
}

// applyFrame builds the fresh frame for a lambda call (spec.md §4.5 steps
// 2–3): bindings pair each parameter with its argument, and the frame's
// parent is the lambda's captured chain, or the fixed root for a
// root-capture ("no capture") lambda.
func (ev *Evaluator) applyFrame(fn *types.Lambda, args []types.Value) *environment.Environment {
	bindings := make(map[types.Symbol]types.Value, len(fn.Params))
	for i, param := range fn.Params {
		bindings[param] = args[i]
	}
	var parent *environment.Environment
	if fn.Captured != nil {
		parent = fn.Captured.(*environment.Environment)
	} else {
		parent = ev.root
	}
	return environment.New(bindings, parent)
}
