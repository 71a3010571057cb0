package d20

import "github.com/suderio/d20go/internal/diceast"

// ApplyAdvantage returns a copy of root with the leftmost 1d20 rewritten to
// 2d20kh1 (advantage) or 2d20kl1 (disadvantage), leaving every other node
// untouched. AdvNone returns root unchanged. Grounded on the reference
// implementation's ast_adv_copy: it never mutates the original tree (this
// package's AST is immutable) and never rewrites an expression whose
// leftmost dice atom isn't 1d20 (with or without operators of its own).
func ApplyAdvantage(root diceast.Node, adv AdvType) diceast.Node {
	if adv == AdvNone {
		return root
	}
	return rewriteLeftmostD20(root, adv)
}

// rewriteLeftmostD20 walks the leftmost spine of node, copying every
// ancestor along the way, until it reaches a Dice or OperatedDice leaf. Each
// AST node type names its "leftmost child" differently (Left, Value,
// Operand, Root, Values[0], Producer, Dice), so the walk is a type switch
// rather than a generic child-replacement call.
func rewriteLeftmostD20(node diceast.Node, adv AdvType) diceast.Node {
	switch n := node.(type) {
	case *diceast.Expression:
		cp := *n
		cp.Root = rewriteLeftmostD20(n.Root, adv)
		return &cp
	case *diceast.AnnotatedNumber:
		cp := *n
		cp.Value = rewriteLeftmostD20(n.Value, adv)
		return &cp
	case *diceast.Parenthetical:
		cp := *n
		cp.Value = rewriteLeftmostD20(n.Value, adv)
		return &cp
	case *diceast.UnOp:
		cp := *n
		cp.Operand = rewriteLeftmostD20(n.Operand, adv)
		return &cp
	case *diceast.BinOp:
		cp := *n
		cp.Left = rewriteLeftmostD20(n.Left, adv)
		return &cp
	case *diceast.NumberSet:
		if len(n.Values) == 0 {
			return n
		}
		cp := *n
		values := append([]diceast.Node(nil), n.Values...)
		values[0] = rewriteLeftmostD20(n.Values[0], adv)
		cp.Values = values
		return &cp
	case *diceast.OperatedSet:
		cp := *n
		cp.Producer = rewriteLeftmostD20(n.Producer, adv)
		return &cp
	case *diceast.OperatedDice:
		return rewriteD20Leaf(n.Dice, n.Operators, adv)
	case *diceast.Dice:
		return rewriteD20Leaf(n, nil, adv)
	default:
		return node
	}
}

// rewriteD20Leaf is the base case: dice is the leftmost Dice atom reached,
// operators is its existing operator list (nil for a bare Dice). If dice
// isn't a plain 1d20, it's returned unchanged; otherwise it becomes 2d20
// with a kh1/kl1 selector inserted ahead of any operators it already had.
func rewriteD20Leaf(dice *diceast.Dice, operators []*diceast.SetOperator, adv AdvType) diceast.Node {
	if dice.Num != 1 || dice.Size != 20 {
		if operators == nil {
			return dice
		}
		return &diceast.OperatedDice{Dice: dice, Operators: operators}
	}

	diceCopy := *dice
	diceCopy.Num = 2

	category := "l"
	if adv == AdvAdv {
		category = "h"
	}
	keepHighOrLow := &diceast.SetOperator{
		Op:        "k",
		Selectors: []*diceast.SetSelector{{Category: category, Num: 1}},
	}

	newOps := make([]*diceast.SetOperator, 0, len(operators)+1)
	newOps = append(newOps, keepHighOrLow)
	newOps = append(newOps, operators...)

	return &diceast.OperatedDice{Dice: &diceCopy, Operators: newOps}
}
