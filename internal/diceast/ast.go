// Package diceast defines the immutable abstract syntax tree produced by
// parsing a dice expression, and the parser that builds it.
package diceast

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is implemented by every AST node. It mirrors the child-walking
// contract the expression tree (internal/roll) also implements, so renderers
// and validators can share traversal code across both stages.
type Node interface {
	Children() []Node
	String() string
}

// Expression is the root of a parsed roll: a single child plus an optional
// trailing free-text comment, present only when comment mode was enabled.
type Expression struct {
	Root    Node
	Comment string
}

func (e *Expression) Children() []Node { return []Node{e.Root} }

func (e *Expression) String() string {
	if e.Comment == "" {
		return e.Root.String()
	}
	return e.Root.String() + " " + e.Comment
}

// AnnotatedNumber wraps a child with an ordered list of bracketed annotation
// strings, e.g. "1d20[fire]" or "1d20[fire][piercing]".
type AnnotatedNumber struct {
	Value       Node
	Annotations []string
}

func (a *AnnotatedNumber) Children() []Node { return []Node{a.Value} }

func (a *AnnotatedNumber) String() string {
	return a.Value.String() + " " + strings.Join(a.Annotations, "")
}

// Literal is a constant number, integer or decimal.
type Literal struct {
	Value float64
}

func (l *Literal) Children() []Node { return nil }

func (l *Literal) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64)
}

// Parenthetical wraps a single child expression in parentheses: "(E)".
// Unlike NumberSet, a Parenthetical never carries set operators: a
// parenthesized group followed by operators parses as an OperatedSet over a
// NumberSet instead.
type Parenthetical struct {
	Value Node
}

func (p *Parenthetical) Children() []Node { return []Node{p.Value} }

func (p *Parenthetical) String() string {
	return "(" + p.Value.String() + ")"
}

// UnOp is a unary "+" or "-" applied to a single operand.
type UnOp struct {
	Op      string
	Operand Node
}

func (u *UnOp) Children() []Node { return []Node{u.Operand} }

func (u *UnOp) String() string {
	return u.Op + u.Operand.String()
}

// BinOp is a left-associative binary arithmetic or comparison operator.
type BinOp struct {
	Op    string
	Left  Node
	Right Node
}

func (b *BinOp) Children() []Node { return []Node{b.Left, b.Right} }

func (b *BinOp) String() string {
	return fmt.Sprintf("%s %s %s", b.Left.String(), b.Op, b.Right.String())
}

// NumberSet is a literal set of expressions: "(E1, E2, ...)", or the empty
// set "()". A single bare element with no trailing comma parses as a
// Parenthetical instead; see grammar.go's set-building logic.
type NumberSet struct {
	Values []Node
}

func (s *NumberSet) Children() []Node { return s.Values }

func (s *NumberSet) String() string {
	parts := make([]string, len(s.Values))
	for i, v := range s.Values {
		parts[i] = v.String()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Dice is a single dice atom, "NdM". Num is the number of dice rolled
// (defaults to 1 when omitted in source); Size is the number of faces.
type Dice struct {
	Num  int
	Size int
}

func (d *Dice) Children() []Node { return nil }

func (d *Dice) String() string {
	return fmt.Sprintf("%dd%d", d.Num, d.Size)
}

// SetSelector picks a subset of a set's children: by rank ("h"/"l" + count),
// by comparison (">"/"<" + value), or by literal equality (bare value).
type SetSelector struct {
	Category string // "", "h", "l", ">", "<"
	Num      int
}

func (s *SetSelector) String() string {
	return s.Category + strconv.Itoa(s.Num)
}

// SetOperator is one operation code ("k", "p", "rr", "ro", "ra", "e", "mi",
// "ma") plus the selectors it was invoked with. Consecutive same-code
// operators are merged into one SetOperator at construction time (see
// appendOperator below), matching how repeated "k1k2" collapses into
// a single keep of both selectors.
type SetOperator struct {
	Op        string
	Selectors []*SetSelector
}

func (o *SetOperator) String() string {
	var b strings.Builder
	b.WriteString(o.Op)
	for _, s := range o.Selectors {
		b.WriteString(s.String())
	}
	return b.String()
}

// OperatedSet is a NumberSet producer plus the ordered list of set
// operators applied to it.
type OperatedSet struct {
	Producer  Node
	Operators []*SetOperator
}

func (o *OperatedSet) Children() []Node { return []Node{o.Producer} }

func (o *OperatedSet) String() string {
	var b strings.Builder
	b.WriteString(o.Producer.String())
	for _, op := range o.Operators {
		b.WriteString(op.String())
	}
	return b.String()
}

// OperatedDice is a Dice atom plus the ordered list of set operators
// applied to it.
type OperatedDice struct {
	Dice      *Dice
	Operators []*SetOperator
}

func (o *OperatedDice) Children() []Node { return []Node{o.Dice} }

func (o *OperatedDice) String() string {
	var b strings.Builder
	b.WriteString(o.Dice.String())
	for _, op := range o.Operators {
		b.WriteString(op.String())
	}
	return b.String()
}

// appendOperator adds op to operators, merging it into the previous entry
// when both share the same op code, mirroring OperatedSet._simplify_operations
// from the reference implementation this grammar is grounded on.
func appendOperator(operators []*SetOperator, op *SetOperator) []*SetOperator {
	if len(operators) == 0 {
		return append(operators, op)
	}
	last := operators[len(operators)-1]
	if last.Op == op.Op {
		last.Selectors = append(last.Selectors, op.Selectors...)
		return operators
	}
	return append(operators, op)
}
