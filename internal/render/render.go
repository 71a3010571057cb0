// Package render turns an evaluated roll into human-readable text.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suderio/d20go/internal/roll"
)

// Stringifier turns an evaluated roll into text. Implementations are not
// safe for concurrent use: MarkdownStringifier tracks a recursion guard
// across one Stringify call.
type Stringifier interface {
	Stringify(node roll.Number) string
}

// nodeEngine is the full per-node-type dispatch surface, plus the recursive
// entry point (str) every node handler calls for its children. Routing
// recursion through the self field (rather than direct method receivers)
// lets MarkdownStringifier override str/strExpression/strDie while reusing
// SimpleStringifier's other handlers unchanged, the same shape as the
// reference stringifier's single-inheritance override of a handful of
// _str_* methods.
type nodeEngine interface {
	str(node roll.Number) string
	strExpression(node *roll.Expression) string
	strLiteral(node *roll.Literal) string
	strUnOp(node *roll.UnOp) string
	strBinOp(node *roll.BinOp) string
	strParenthetical(node *roll.Parenthetical) string
	strSet(node *roll.Set) string
	strDice(node *roll.Dice) string
	strDie(node *roll.Die) string
}

// render dispatches node to the matching handler on self and appends the
// node's annotation, if any.
func render(node roll.Number, self nodeEngine) string {
	var inside string
	switch n := node.(type) {
	case *roll.Expression:
		inside = self.strExpression(n)
	case *roll.Literal:
		inside = self.strLiteral(n)
	case *roll.UnOp:
		inside = self.strUnOp(n)
	case *roll.BinOp:
		inside = self.strBinOp(n)
	case *roll.Parenthetical:
		inside = self.strParenthetical(n)
	case *roll.Set:
		inside = self.strSet(n)
	case *roll.Dice:
		inside = self.strDice(n)
	case *roll.Die:
		inside = self.strDie(n)
	default:
		inside = formatNumber(node.Total())
	}
	if ann := node.Annotation(); ann != "" {
		return inside + " " + ann
	}
	return inside
}

func strOps(ops []*roll.SetOperator) string {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op.String())
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SimpleStringifier renders every die and operator out in full, e.g.
// "4d6kh3 (6, 5, 4, 1) = 15".
type SimpleStringifier struct {
	self nodeEngine
}

// NewSimpleStringifier builds a ready-to-use SimpleStringifier.
func NewSimpleStringifier() *SimpleStringifier {
	s := &SimpleStringifier{}
	s.self = s
	return s
}

func (s *SimpleStringifier) Stringify(node roll.Number) string { return s.self.str(node) }

func (s *SimpleStringifier) str(node roll.Number) string { return render(node, s.self) }

func (s *SimpleStringifier) strExpression(n *roll.Expression) string {
	return fmt.Sprintf("%s = %d", s.self.str(n.Roll), int(n.Total()))
}

func (s *SimpleStringifier) strLiteral(n *roll.Literal) string {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		parts[i] = formatNumber(v)
	}
	history := strings.Join(parts, " -> ")
	if n.Exploded {
		return history + "!"
	}
	return history
}

func (s *SimpleStringifier) strUnOp(n *roll.UnOp) string {
	return n.Op + s.self.str(n.Value)
}

func (s *SimpleStringifier) strBinOp(n *roll.BinOp) string {
	return fmt.Sprintf("%s %s %s", s.self.str(n.LeftNode), n.Op, s.self.str(n.RightNode))
}

func (s *SimpleStringifier) strParenthetical(n *roll.Parenthetical) string {
	return "(" + s.self.str(n.Value) + ")"
}

func (s *SimpleStringifier) strSet(n *roll.Set) string {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		parts[i] = s.self.str(v)
	}
	inner := strings.Join(parts, ", ")
	if len(n.Values) == 1 {
		return fmt.Sprintf("(%s,)%s", inner, strOps(n.Operators))
	}
	return fmt.Sprintf("(%s)%s", inner, strOps(n.Operators))
}

func (s *SimpleStringifier) strDice(n *roll.Dice) string {
	dice := make([]string, len(n.Values))
	for i, d := range n.Values {
		dice[i] = s.self.str(d)
	}
	return fmt.Sprintf("%dd%d%s (%s)", n.Num, n.Size, strOps(n.Operators), strings.Join(dice, ", "))
}

func (s *SimpleStringifier) strDie(n *roll.Die) string {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		parts[i] = s.self.str(v)
	}
	return strings.Join(parts, ", ")
}

// MarkdownStringifier renders a roll for chat: dropped dice struck through
// with "~~...~~", and any die showing its minimum or maximum face bolded.
type MarkdownStringifier struct {
	SimpleStringifier
	inDropped bool
}

// NewMarkdownStringifier builds a ready-to-use MarkdownStringifier.
func NewMarkdownStringifier() *MarkdownStringifier {
	m := &MarkdownStringifier{}
	m.self = m
	return m
}

func (m *MarkdownStringifier) Stringify(node roll.Number) string {
	m.inDropped = false
	return m.str(node)
}

// str wraps a dropped node's rendering in strikethrough, guarding against
// double-wrapping when a dropped node's own children are also dropped.
func (m *MarkdownStringifier) str(node roll.Number) string {
	if !node.Kept() && !m.inDropped {
		m.inDropped = true
		inside := render(node, m.self)
		m.inDropped = false
		return "~~" + inside + "~~"
	}
	return render(node, m.self)
}

func (m *MarkdownStringifier) strExpression(n *roll.Expression) string {
	return fmt.Sprintf("%s = `%d`", m.self.str(n.Roll), int(n.Total()))
}

func (m *MarkdownStringifier) strDie(n *roll.Die) string {
	parts := make([]string, len(n.Values))
	for i, v := range n.Values {
		inside := m.self.str(v)
		if v.Number() == 1 || v.Number() == float64(n.Size) {
			inside = "**" + inside + "**"
		}
		parts[i] = inside
	}
	return strings.Join(parts, ", ")
}
