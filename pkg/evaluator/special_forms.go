package evaluator

import (
	"fmt"

	"github.com/nlindqvist/golisp/pkg/types"
)

// elements returns cell's own elements as a slice, including the keyword
// head at index 0, failing if the chain is improper.
func elements(cell *types.Cell) ([]types.Value, bool) {
	var out []types.Value
	var cur types.Value = cell
	for {
		c, ok := cur.(*types.Cell)
		if !ok {
			return out, types.IsNull(cur)
		}
		out = append(out, c.Head)
		cur = c.Tail
	}
}

// evalDefine implements spec.md §4.4's define: (define symbol expr).
func evalDefine(ev *Evaluator, cell *types.Cell) (types.Value, types.Value, error) {
	elems, proper := elements(cell)
	if !proper || len(elems) != 3 {
		return nil, nil, NewError(KindInvalidForm, "define: expected (define symbol expr)")
	}
	sym, ok := elems[1].(types.Symbol)
	if !ok {
		return nil, nil, NewError(KindInvalidForm, "define: second element must be a symbol")
	}
	value, err := ev.Eval(elems[2])
	if err != nil {
		return nil, nil, err
	}
	ev.env.SetLocal(sym, value)
	return types.Null, nil, nil
}

// evalSet implements spec.md §4.4's set!, including mutation of a cell's
// head reached through (car expr). It evaluates the target itself rather
// than calling the general evaluator on it, per the design note in spec.md
// §9: car here names a place, not a call.
func evalSet(ev *Evaluator, cell *types.Cell) (types.Value, types.Value, error) {
	elems, proper := elements(cell)
	if !proper || len(elems) != 3 {
		return nil, nil, NewError(KindInvalidForm, "set!: expected (set! target expr)")
	}
	target := elems[1]
	rhs := elems[2]

	if sym, ok := target.(types.Symbol); ok {
		frame, ok := ev.env.Lookup(sym)
		if !ok {
			return nil, nil, NewError(KindUndefinedSymbol, fmt.Sprintf("set!: undefined symbol: %s", sym))
		}
		value, err := ev.Eval(rhs)
		if err != nil {
			return nil, nil, err
		}
		frame.SetLocal(sym, value)
		return types.Null, nil, nil
	}

	if targetCell, ok := target.(*types.Cell); ok {
		targetElems, proper := elements(targetCell)
		if proper && len(targetElems) == 2 && targetElems[0] == types.SymCar {
			placeVal, err := ev.Eval(targetElems[1])
			if err != nil {
				return nil, nil, err
			}
			place, ok := placeVal.(*types.Cell)
			if !ok {
				if types.IsNull(placeVal) {
					return nil, nil, NewError(KindLogicError, "set!: (car expr) of null has no cell to mutate")
				}
				return nil, nil, NewError(KindTypeError, fmt.Sprintf("set!: (car expr) expected a cell, got %s", placeVal.String()))
			}
			value, err := ev.Eval(rhs)
			if err != nil {
				return nil, nil, err
			}
			place.Head = value
			return types.Null, nil, nil
		}
	}

	return nil, nil, NewError(KindInvalidForm, "set!: target must be a symbol or (car expr)")
}

// evalQuote implements spec.md §4.4's quote: (quote datum), returned
// unevaluated exactly as the compiler produced it.
func evalQuote(_ *Evaluator, cell *types.Cell) (types.Value, types.Value, error) {
	elems, proper := elements(cell)
	if !proper || len(elems) != 2 {
		return nil, nil, NewError(KindInvalidForm, "quote: expected (quote datum)")
	}
	return elems[1], nil, nil
}

// evalCond implements spec.md §4.4's cond: evaluates each arm's test in
// order and hands the first truthy arm's result back as a tail expression.
// Only #f is false (spec.md §9's truthiness note); an arm is malformed if
// it is not a two-element list.
func evalCond(ev *Evaluator, cell *types.Cell) (types.Value, types.Value, error) {
	if types.IsNull(cell.Tail) {
		return nil, nil, NewError(KindInvalidForm, "cond: expected at least one arm")
	}
	cur := cell.Tail
	for {
		armCell, ok := cur.(*types.Cell)
		if !ok {
			return types.Null, nil, nil
		}
		arm, ok := armCell.Head.(*types.Cell)
		if !ok {
			return nil, nil, NewError(KindInvalidForm, "cond: arm must be a (test result) pair")
		}
		armElems, proper := elements(arm)
		if !proper || len(armElems) != 2 {
			return nil, nil, NewError(KindInvalidForm, "cond: arm must be a (test result) pair")
		}
		testVal, err := ev.Eval(armElems[0])
		if err != nil {
			return nil, nil, err
		}
		if types.Truthy(testVal) {
			return nil, armElems[1], nil
		}
		cur = armCell.Tail
	}
}

// evalLambda implements spec.md §4.4's lambda: (lambda params body),
// applying the root-capture rule from spec.md §4.3/§4.5.
func evalLambda(ev *Evaluator, cell *types.Cell) (types.Value, types.Value, error) {
	elems, proper := elements(cell)
	if !proper || len(elems) != 3 {
		return nil, nil, NewError(KindInvalidForm, "lambda: expected (lambda params body)")
	}
	params, ok := parseParamList(elems[1])
	if !ok {
		return nil, nil, NewError(KindInvalidForm, "lambda: parameter list must be a proper list of symbols")
	}
	var captured types.Environment
	if !ev.env.IsRoot() {
		captured = ev.env
	}
	return &types.Lambda{Captured: captured, Params: params, Body: elems[2]}, nil, nil
}

func parseParamList(v types.Value) ([]types.Symbol, bool) {
	if types.IsNull(v) {
		return nil, true
	}
	var params []types.Symbol
	cur := v
	for {
		cell, ok := cur.(*types.Cell)
		if !ok {
			return nil, types.IsNull(cur)
		}
		sym, ok := cell.Head.(types.Symbol)
		if !ok {
			return nil, false
		}
		params = append(params, sym)
		cur = cell.Tail
		if types.IsNull(cur) {
			return params, true
		}
	}
}

// evalBegin implements spec.md §4.4's begin: evaluate all but the last
// expression for effect, hand the last back as a tail expression.
func evalBegin(ev *Evaluator, cell *types.Cell) (types.Value, types.Value, error) {
	elems, proper := elements(cell)
	if !proper || len(elems) < 2 {
		return nil, nil, NewError(KindInvalidForm, "begin: expected at least one expression")
	}
	body := elems[1:]
	for _, expr := range body[:len(body)-1] {
		if _, err := ev.Eval(expr); err != nil {
			return nil, nil, err
		}
	}
	return nil, body[len(body)-1], nil
}
