package roll

import (
	"sort"
	"strconv"

	"github.com/suderio/d20go/internal/dicerr"
)

// SetSelector picks a subset of a set's kept elements: by rank ("h"/"l" +
// count), by comparison (">"/"<" + value), or by literal equality (no
// category, bare value).
type SetSelector struct {
	Category string // "", "h", "l", ">", "<"
	Num      int
}

func (s *SetSelector) String() string {
	if s.Category != "" {
		return s.Category + strconv.Itoa(s.Num)
	}
	return strconv.Itoa(s.Num)
}

// Select returns the elements of target's kept set this selector picks,
// capped at maxTargets (a negative maxTargets means unlimited).
func (s *SetSelector) Select(target Number, maxTargets int) []Number {
	kept := target.KeptSet()
	var picked []Number
	switch s.Category {
	case "h":
		picked = highestN(kept, s.Num)
	case "l":
		picked = lowestN(kept, s.Num)
	case "<":
		for _, n := range kept {
			if n.Total() < float64(s.Num) {
				picked = append(picked, n)
			}
		}
	case ">":
		for _, n := range kept {
			if n.Total() > float64(s.Num) {
				picked = append(picked, n)
			}
		}
	default:
		for _, n := range kept {
			if n.Total() == float64(s.Num) {
				picked = append(picked, n)
			}
		}
	}
	if maxTargets >= 0 && len(picked) > maxTargets {
		picked = picked[:maxTargets]
	}
	return picked
}

func highestN(kept []Number, n int) []Number {
	sorted := append([]Number(nil), kept...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Total() > sorted[j].Total() })
	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}
	return sorted[:n]
}

func lowestN(kept []Number, n int) []Number {
	sorted := append([]Number(nil), kept...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Total() < sorted[j].Total() })
	if n > len(sorted) {
		n = len(sorted)
	}
	if n < 0 {
		n = 0
	}
	return sorted[:n]
}

// SetOperator is one operation code ("k", "p", "rr", "ro", "ra", "e", "mi",
// "ma") plus the selectors it was invoked with (merged at AST-construction
// time when the same code repeats, see internal/diceast's appendOperator).
type SetOperator struct {
	Op        string
	Selectors []*SetSelector
}

func (o *SetOperator) String() string {
	out := o.Op
	for _, s := range o.Selectors {
		out += s.String()
	}
	return out
}

// Select returns the union of every selector's picks, capped overall at
// maxTargets (negative means unlimited), deduplicated by node identity.
func (o *SetOperator) Select(target Number, maxTargets int) []Number {
	seen := make(map[Number]bool)
	var out []Number
	for _, sel := range o.Selectors {
		batchMax := -1
		if maxTargets >= 0 {
			batchMax = maxTargets - len(out)
			if batchMax <= 0 {
				break
			}
		}
		for _, n := range sel.Select(target, batchMax) {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// Operate applies this operator in place to target, the set-operation
// engine at the heart of the evaluator. "k"/"p" work on any set-shaped
// Number; the rest are dice-only.
func (o *SetOperator) Operate(target Number) error {
	switch o.Op {
	case "k":
		return o.keep(target)
	case "p":
		return o.drop(target)
	case "rr":
		return o.diceOnly(target, o.reroll)
	case "ro":
		return o.diceOnly(target, o.rerollOnce)
	case "ra":
		return o.diceOnly(target, o.rerollAndAdd)
	case "e":
		return o.diceOnly(target, o.explode)
	case "mi":
		return o.diceOnly(target, o.minimum)
	case "ma":
		return o.diceOnly(target, o.maximum)
	default:
		return dicerr.NewValueError("unknown set operator %q", o.Op)
	}
}

func (o *SetOperator) diceOnly(target Number, fn func(*Dice) error) error {
	dice, ok := target.(*Dice)
	if !ok {
		return dicerr.NewValueError("%q is a dice-only operator and cannot apply to a plain set", o.Op)
	}
	return fn(dice)
}

func (o *SetOperator) keep(target Number) error {
	picked := o.Select(target, -1)
	keep := make(map[Number]bool, len(picked))
	for _, n := range picked {
		keep[n] = true
	}
	for _, n := range target.KeptSet() {
		if !keep[n] {
			n.Drop()
		}
	}
	return nil
}

func (o *SetOperator) drop(target Number) error {
	for _, n := range o.Select(target, -1) {
		n.Drop()
	}
	return nil
}

func (o *SetOperator) reroll(dice *Dice) error {
	toReroll := o.selectDice(dice, -1)
	for len(toReroll) > 0 {
		for _, die := range toReroll {
			if err := die.Reroll(); err != nil {
				return err
			}
		}
		toReroll = o.selectDice(dice, -1)
	}
	return nil
}

func (o *SetOperator) rerollOnce(dice *Dice) error {
	for _, die := range o.selectDice(dice, -1) {
		if err := die.Reroll(); err != nil {
			return err
		}
	}
	return nil
}

func (o *SetOperator) explode(dice *Dice) error {
	toExplode := o.selectDice(dice, -1)
	exploded := make(map[*Die]bool)
	for len(toExplode) > 0 {
		for _, die := range toExplode {
			die.ExplodeMarker()
			if err := dice.RollAnother(); err != nil {
				return err
			}
		}
		for _, die := range toExplode {
			exploded[die] = true
		}
		next := o.selectDice(dice, -1)
		toExplode = nil
		for _, die := range next {
			if !exploded[die] {
				toExplode = append(toExplode, die)
			}
		}
	}
	return nil
}

// rerollAndAdd explodes at most one matching die per application: the
// original is kept (never dropped, unlike reroll), and exactly one new die
// is appended. Resolves the "ra" Open Question in favor of the newer
// wording: one matched die per operator application.
func (o *SetOperator) rerollAndAdd(dice *Dice) error {
	for _, die := range o.selectDice(dice, 1) {
		die.ExplodeMarker()
		if err := dice.RollAnother(); err != nil {
			return err
		}
	}
	return nil
}

func (o *SetOperator) minimum(dice *Dice) error {
	sel := o.Selectors[len(o.Selectors)-1]
	if sel.Category != "" {
		return dicerr.NewValueError("%s is not a valid selector for minimums", sel.String())
	}
	for _, die := range dice.KeptSet() {
		d := die.(*Die)
		if d.Number() < float64(sel.Num) {
			d.ForceValue(float64(sel.Num))
		}
	}
	return nil
}

func (o *SetOperator) maximum(dice *Dice) error {
	sel := o.Selectors[len(o.Selectors)-1]
	if sel.Category != "" {
		return dicerr.NewValueError("%s is not a valid selector for maximums", sel.String())
	}
	for _, die := range dice.KeptSet() {
		d := die.(*Die)
		if d.Number() > float64(sel.Num) {
			d.ForceValue(float64(sel.Num))
		}
	}
	return nil
}

// selectDice is Select, narrowed to *Die results (always true for a *Dice
// target, since Dice.Set() only ever returns its Die elements).
func (o *SetOperator) selectDice(dice *Dice, maxTargets int) []*Die {
	picked := o.Select(dice, maxTargets)
	out := make([]*Die, 0, len(picked))
	for _, n := range picked {
		out = append(out, n.(*Die))
	}
	return out
}
