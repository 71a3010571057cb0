package roll

import (
	"strings"

	"github.com/suderio/d20go/internal/dicerr"
	"github.com/suderio/d20go/internal/diceast"
)

// Evaluator walks a diceast.Node tree and produces the corresponding
// expression tree, rolling real dice and running the set-operation engine
// along the way. One Evaluator performs exactly one single-pass recursive
// descent over one AST; create a fresh one (or Reset its Context) per roll.
type Evaluator struct {
	ctx *Context
}

// NewEvaluator builds an Evaluator bound to ctx's roll/AST-operation
// ceilings and RNG source.
func NewEvaluator(ctx *Context) *Evaluator {
	return &Evaluator{ctx: ctx}
}

// Eval dispatches on the concrete AST node type and returns the evaluated
// Number, or the first error encountered (a TooManyRolls ceiling breach or
// a RollValueError from the set-operation engine).
func (e *Evaluator) Eval(node diceast.Node) (Number, error) {
	if err := e.ctx.CountASTOperation(); err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case *diceast.Expression:
		return e.evalExpression(n)
	case *diceast.AnnotatedNumber:
		return e.evalAnnotatedNumber(n)
	case *diceast.Literal:
		return NewLiteral(n.Value), nil
	case *diceast.Parenthetical:
		return e.evalParenthetical(n)
	case *diceast.UnOp:
		return e.evalUnOp(n)
	case *diceast.BinOp:
		return e.evalBinOp(n)
	case *diceast.OperatedSet:
		return e.evalOperatedSet(n)
	case *diceast.NumberSet:
		return e.evalNumberSet(n)
	case *diceast.OperatedDice:
		return e.evalOperatedDice(n)
	case *diceast.Dice:
		return e.evalDice(n)
	default:
		return nil, dicerr.New("unsupported AST node %T", node)
	}
}

func (e *Evaluator) evalExpression(n *diceast.Expression) (Number, error) {
	roll, err := e.Eval(n.Root)
	if err != nil {
		return nil, err
	}
	return NewExpression(roll, n.Comment), nil
}

func (e *Evaluator) evalAnnotatedNumber(n *diceast.AnnotatedNumber) (Number, error) {
	target, err := e.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	target.SetAnnotation(strings.Join(n.Annotations, ""))
	return target, nil
}

func (e *Evaluator) evalParenthetical(n *diceast.Parenthetical) (Number, error) {
	value, err := e.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	return NewParenthetical(value), nil
}

func (e *Evaluator) evalUnOp(n *diceast.UnOp) (Number, error) {
	value, err := e.Eval(n.Operand)
	if err != nil {
		return nil, err
	}
	return NewUnOp(n.Op, value), nil
}

func (e *Evaluator) evalBinOp(n *diceast.BinOp) (Number, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	if DivisionByZero(n.Op, right.Total()) {
		return nil, dicerr.NewValueError("cannot divide by zero")
	}
	return NewBinOp(left, n.Op, right), nil
}

func (e *Evaluator) evalNumberSet(n *diceast.NumberSet) (Number, error) {
	values := make([]Number, len(n.Values))
	for i, v := range n.Values {
		val, err := e.Eval(v)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}
	return NewSet(values), nil
}

func (e *Evaluator) evalOperatedSet(n *diceast.OperatedSet) (Number, error) {
	target, err := e.Eval(n.Producer)
	if err != nil {
		return nil, err
	}
	set, ok := target.(*Set)
	if !ok {
		return nil, dicerr.New("internal error: operated set producer evaluated to %T", target)
	}
	for _, opNode := range n.Operators {
		op := convertOperator(opNode)
		if err := op.Operate(set); err != nil {
			return nil, err
		}
		set.Operators = append(set.Operators, op)
	}
	return set, nil
}

func (e *Evaluator) evalDice(n *diceast.Dice) (Number, error) {
	return NewDice(n.Num, n.Size, e.ctx)
}

func (e *Evaluator) evalOperatedDice(n *diceast.OperatedDice) (Number, error) {
	target, err := e.evalDice(n.Dice)
	if err != nil {
		return nil, err
	}
	dice := target.(*Dice)
	for _, opNode := range n.Operators {
		op := convertOperator(opNode)
		if err := op.Operate(dice); err != nil {
			return nil, err
		}
		dice.Operators = append(dice.Operators, op)
	}
	return dice, nil
}

func convertOperator(n *diceast.SetOperator) *SetOperator {
	sels := make([]*SetSelector, len(n.Selectors))
	for i, s := range n.Selectors {
		sels[i] = &SetSelector{Category: s.Category, Num: s.Num}
	}
	return &SetOperator{Op: n.Op, Selectors: sels}
}
