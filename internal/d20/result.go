package d20

import (
	"github.com/suderio/d20go/internal/diceast"
	"github.com/suderio/d20go/internal/roll"
)

// RollResult is the outcome of one Roller.Roll call: the parsed AST, the
// evaluated expression tree, its rendered text, and its crit status.
type RollResult struct {
	AST     *diceast.Expression
	Root    *roll.Expression
	Expr    string
	Total   float64
	Result  string
	Comment string
	Crit    CritType
}

func (r *RollResult) String() string { return r.Result }

// determineCrit classifies root against the leftmost node of its tree,
// mirroring RollResult.crit: walk to the leftmost child, stop once it's a
// Dice, and check it kept exactly one die of size 20.
func determineCrit(root *roll.Expression) CritType {
	var left roll.Number = root
	for {
		next := roll.Left(left)
		if next == nil {
			break
		}
		left = next
	}

	dice, ok := left.(*roll.Dice)
	if !ok {
		return CritNormal
	}
	if len(dice.KeptSet()) != 1 || dice.Size != 20 {
		return CritNormal
	}

	switch dice.Total() {
	case 1:
		return CritFail
	case 20:
		return CritHit
	default:
		return CritNormal
	}
}
