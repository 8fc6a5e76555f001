// Package compiler implements the object compiler (spec.md §4.2): it turns
// a parser.Node surface tree into the runtime object model from pkg/types
// — integers become types.Integer, symbols are interned, and lists are
// right-folded into cons chains terminated by types.Null.
package compiler

import (
	"github.com/nlindqvist/golisp/pkg/parser"
	"github.com/nlindqvist/golisp/pkg/types"
)

// Compile converts one surface-tree node into a runtime value.
func Compile(node parser.Node) types.Value {
	switch n := node.(type) {
	case *parser.IntegerNode:
		return types.Integer(n.Value)
	case *parser.SymbolNode:
		return types.Intern(n.Name)
	case *parser.ListNode:
		elems := make([]types.Value, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = Compile(e)
		}
		return types.SliceToList(elems)
	default:
		panic("compiler: unknown node type")
	}
}
