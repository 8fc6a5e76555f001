// Package parser consumes a tokenizer.Token stream and produces the
// surface tree spec.md §6 names: integer nodes, symbol nodes, and list
// nodes, with 'expr desugared to (quote expr). The object compiler
// (pkg/compiler) turns this surface tree into the runtime object model.
package parser

import (
	"fmt"
	"strconv"

	"github.com/nlindqvist/golisp/pkg/tokenizer"
	"github.com/nlindqvist/golisp/pkg/types"
)

// Node is one surface-tree node.
type Node interface {
	Position() types.Position
}

// IntegerNode is an integer literal.
type IntegerNode struct {
	Value int64
	Pos   types.Position
}

func (n *IntegerNode) Position() types.Position { return n.Pos }

// SymbolNode is a bare symbol reference.
type SymbolNode struct {
	Name string
	Pos  types.Position
}

func (n *SymbolNode) Position() types.Position { return n.Pos }

// ListNode is a parenthesized sequence of sub-nodes.
type ListNode struct {
	Elements []Node
	Pos      types.Position
}

func (n *ListNode) Position() types.Position { return n.Pos }

// Parser walks a token stream one token of lookahead at a time.
type Parser struct {
	tokens   []tokenizer.Token
	position int
	current  tokenizer.Token
}

// New returns a Parser over tokens.
func New(tokens []tokenizer.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.advance()
	return p
}

func (p *Parser) advance() {
	if p.position >= len(p.tokens) {
		p.current = tokenizer.Token{Type: tokenizer.EOF}
	} else {
		p.current = p.tokens[p.position]
	}
	p.position++
}

// Parse reads exactly one top-level expression and reports an error if
// input is empty or trailing tokens remain.
func (p *Parser) Parse() (Node, error) {
	if len(p.tokens) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current.Type != tokenizer.EOF {
		return nil, fmt.Errorf("line %d, column %d: unexpected token after expression", p.current.Position.Line, p.current.Position.Column)
	}
	return node, nil
}

func (p *Parser) parseExpr() (Node, error) {
	switch p.current.Type {
	case tokenizer.NUMBER:
		return p.parseNumber()
	case tokenizer.SYMBOL:
		return p.parseSymbol()
	case tokenizer.LPAREN:
		return p.parseList()
	case tokenizer.QUOTE:
		return p.parseQuote()
	case tokenizer.RPAREN:
		return nil, fmt.Errorf("line %d, column %d: unexpected closing parenthesis", p.current.Position.Line, p.current.Position.Column)
	default:
		return nil, fmt.Errorf("line %d, column %d: unexpected end of input", p.current.Position.Line, p.current.Position.Column)
	}
}

func (p *Parser) parseNumber() (Node, error) {
	value, err := strconv.ParseInt(p.current.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("line %d, column %d: invalid integer: %s", p.current.Position.Line, p.current.Position.Column, p.current.Value)
	}
	node := &IntegerNode{Value: value, Pos: p.current.Position}
	p.advance()
	return node, nil
}

func (p *Parser) parseSymbol() (Node, error) {
	node := &SymbolNode{Name: p.current.Value, Pos: p.current.Position}
	p.advance()
	return node, nil
}

func (p *Parser) parseList() (Node, error) {
	listPos := p.current.Position
	p.advance() // consume '('

	var elements []Node
	for p.current.Type != tokenizer.RPAREN {
		if p.current.Type == tokenizer.EOF {
			return nil, fmt.Errorf("line %d, column %d: unmatched opening parenthesis", listPos.Line, listPos.Column)
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	p.advance() // consume ')'
	return &ListNode{Elements: elements, Pos: listPos}, nil
}

// parseQuote desugars 'expr into (quote expr).
func (p *Parser) parseQuote() (Node, error) {
	quotePos := p.current.Position
	p.advance() // consume '\''
	inner, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ListNode{
		Elements: []Node{
			&SymbolNode{Name: "quote", Pos: quotePos},
			inner,
		},
		Pos: quotePos,
	}, nil
}
