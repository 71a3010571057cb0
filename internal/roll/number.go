// Package roll implements the expression tree produced by evaluating a
// parsed dice expression: the mutable Number hierarchy, the set-operation
// engine that runs keep/drop/reroll/explode/min/max against selectors, the
// roll ceilings that bound runaway expressions, and the evaluator that
// drives an internal/diceast AST into this tree.
package roll

// Number is the capability every node of an evaluated expression tree
// implements: arithmetic value, set membership for selector-based
// operations, and the kept/dropped/annotation bookkeeping the set-operation
// engine and renderer both depend on.
type Number interface {
	// Number is this node's raw value, ignoring whether it is kept.
	Number() float64
	// Total is Number() if the node is kept, 0 otherwise. Callers should
	// prefer Total over Number almost everywhere.
	Total() float64
	// Set returns this node's set representation: itself for scalar nodes,
	// or the element list for Set/Dice.
	Set() []Number
	// KeptSet is Set() filtered to elements that are still kept.
	KeptSet() []Number
	// Drop marks this node as not contributing to a parent total.
	Drop()
	// Kept reports whether this node currently counts towards a total.
	Kept() bool
	// Annotation is the free-text tag attached via "[...]" syntax, if any.
	Annotation() string
	SetAnnotation(string)
	// Children returns this node's child Numbers, for tree traversal (crit
	// detection, rendering). A Dice node deliberately reports no children
	// here even though it exposes its Die elements via Set(): the crit walk
	// in internal/d20 needs to stop exactly at a Dice node.
	Children() []Number
	// SetChild replaces the ith child in place, returning an error if index
	// is out of range.
	SetChild(index int, value Number) error
}

// Left returns a node's leftmost child, or nil if it has none.
func Left(n Number) Number {
	c := n.Children()
	if len(c) == 0 {
		return nil
	}
	return c[0]
}

// Right returns a node's rightmost child, or nil if it has none.
func Right(n Number) Number {
	c := n.Children()
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}

// base is embedded by every concrete Number to share the kept/annotation
// bookkeeping every node needs.
type base struct {
	kept       bool
	annotation string
}

func newBase() base { return base{kept: true} }

func (b *base) Kept() bool           { return b.kept }
func (b *base) Drop()                { b.kept = false }
func (b *base) Annotation() string   { return b.annotation }
func (b *base) SetAnnotation(a string) { b.annotation = a }

// keptSetOf is the shared KeptSet implementation for any node whose Set()
// returns its own elements.
func keptSetOf(n Number) []Number {
	var out []Number
	for _, v := range n.Set() {
		if v.Kept() {
			out = append(out, v)
		}
	}
	return out
}

// sumKept sums Number() over a node's kept set, the default "number"
// formula composite nodes (Set, Dice, Parenthetical) share.
func sumKept(n Number) float64 {
	var total float64
	for _, v := range n.KeptSet() {
		total += v.Number()
	}
	return total
}

func totalOf(n Number) float64 {
	if !n.Kept() {
		return 0
	}
	return n.Number()
}
