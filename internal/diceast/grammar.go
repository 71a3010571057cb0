package diceast

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// The raw* types below are the participle parse tree: a flat,
// precedence-climbing shape that mirrors the grammar's productions
// directly (comparison < additive < multiplicative < unary < atom, loosest
// first). buildRoot walks them into the tagged diceast.Node tree (ast.go)
// the rest of the engine consumes — the same split between a grammar and
// its tree transformer the reference implementation this is grounded on
// uses (a Lark grammar feeding a tree Transformer).
//
// A struct's field tags concatenate in declaration order into one grammar
// expression for that struct, so an alternation or optional group may open
// in one field's tag and close in a sibling's.

type rawRoot struct {
	Comparison *rawComparison `parser:"@@"`
}

type rawComparison struct {
	Left  *rawAdditive `parser:"@@"`
	Op    string       `parser:"( @(Eq|Ne|Ge|Le|Gt|Lt)"`
	Right *rawAdditive `parser:"  @@ )?"`
}

type rawAdditive struct {
	Left *rawMultiplicative `parser:"@@"`
	Rest []*rawAdditiveTerm `parser:"@@*"`
}

type rawAdditiveTerm struct {
	Op    string             `parser:"@(Plus|Minus)"`
	Right *rawMultiplicative `parser:"@@"`
}

type rawMultiplicative struct {
	Left *rawUnary                `parser:"@@"`
	Rest []*rawMultiplicativeTerm `parser:"@@*"`
}

type rawMultiplicativeTerm struct {
	Op    string    `parser:"@(Star|FloorDiv|Slash|Percent)"`
	Right *rawUnary `parser:"@@"`
}

type rawUnary struct {
	Op    string    `parser:"( @(Plus|Minus)"`
	Value *rawUnary `parser:"  @@"`
	Atom  *rawAtom  `parser:"| @@ )"`
}

type rawAtom struct {
	Producer    *rawProducer      `parser:"@@"`
	Operators   []*rawSetOperator `parser:"@@*"`
	Annotations []string          `parser:"@Annotation*"`
}

type rawProducer struct {
	Dice    *rawDice    `parser:"( @@"`
	Set     *rawSet     `parser:"| @@"`
	Literal *rawLiteral `parser:"| @@ )"`
}

type rawDice struct {
	Num  *int `parser:"@Int? D"`
	Size int  `parser:"@Int"`
}

type rawSet struct {
	Items []*rawRoot `parser:"LParen ( @@ (Comma @@)* )?"`
	Trail bool       `parser:"@Comma? RParen"`
}

type rawLiteral struct {
	Value string `parser:"@(Decimal|Int)"`
}

type rawSetOperator struct {
	Op       string       `parser:"@(RerollAddOp|RerollOnceOp|RerollOp|MinOp|MaxOp|KeepOp|DropOp|ExplodeOp)"`
	Selector *rawSelector `parser:"@@"`
}

type rawSelector struct {
	Category string `parser:"@(High|Low|Gt|Lt)?"`
	Num      int    `parser:"@Int"`
}

var astParser = participle.MustBuild[rawRoot](
	participle.Lexer(tokenLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(8),
)

// buildRoot walks a raw parse tree into the tagged AST.
func buildRoot(r *rawRoot) Node {
	return buildComparison(r.Comparison)
}

func buildComparison(r *rawComparison) Node {
	left := buildAdditive(r.Left)
	if r.Right == nil {
		return left
	}
	return &BinOp{Op: r.Op, Left: left, Right: buildAdditive(r.Right)}
}

func buildAdditive(r *rawAdditive) Node {
	node := buildMultiplicative(r.Left)
	for _, term := range r.Rest {
		node = &BinOp{Op: term.Op, Left: node, Right: buildMultiplicative(term.Right)}
	}
	return node
}

func buildMultiplicative(r *rawMultiplicative) Node {
	node := buildUnary(r.Left)
	for _, term := range r.Rest {
		node = &BinOp{Op: term.Op, Left: node, Right: buildUnary(term.Right)}
	}
	return node
}

func buildUnary(r *rawUnary) Node {
	if r.Op != "" {
		return &UnOp{Op: r.Op, Operand: buildUnary(r.Value)}
	}
	return buildAtom(r.Atom)
}

func buildAtom(r *rawAtom) Node {
	var node Node
	switch {
	case r.Producer.Dice != nil:
		dice := buildDice(r.Producer.Dice)
		if len(r.Operators) == 0 {
			node = dice
		} else {
			node = &OperatedDice{Dice: dice, Operators: buildOperators(r.Operators)}
		}
	case r.Producer.Set != nil:
		if len(r.Operators) == 0 {
			node = buildSet(r.Producer.Set)
		} else {
			// A set followed by operators is always treated as a NumberSet,
			// even a single bare element with no trailing comma: only a
			// Parenthetical with nothing operating on it collapses to a
			// plain grouping.
			node = &OperatedSet{Producer: buildSetValues(r.Producer.Set), Operators: buildOperators(r.Operators)}
		}
	default:
		node = buildLiteral(r.Producer.Literal)
	}
	if len(r.Annotations) == 0 {
		return node
	}
	anns := make([]string, len(r.Annotations))
	for i, a := range r.Annotations {
		anns[i] = strings.TrimSpace(a)
	}
	return &AnnotatedNumber{Value: node, Annotations: anns}
}

func buildDice(r *rawDice) *Dice {
	num := 1
	if r.Num != nil {
		num = *r.Num
	}
	return &Dice{Num: num, Size: r.Size}
}

// buildSet decides whether a parenthesized group is a Parenthetical (a
// single bare element, no trailing comma) or a NumberSet (everything else,
// including the empty set and single-element sets with a trailing comma).
func buildSet(r *rawSet) Node {
	values := buildSetItems(r)
	if len(values) == 1 && !r.Trail {
		return &Parenthetical{Value: values[0]}
	}
	return &NumberSet{Values: values}
}

// buildSetValues always produces a NumberSet, used when the group is
// immediately followed by set operators.
func buildSetValues(r *rawSet) *NumberSet {
	return &NumberSet{Values: buildSetItems(r)}
}

func buildSetItems(r *rawSet) []Node {
	values := make([]Node, len(r.Items))
	for i, item := range r.Items {
		values[i] = buildRoot(item)
	}
	return values
}

func buildLiteral(r *rawLiteral) *Literal {
	v, _ := strconv.ParseFloat(r.Value, 64)
	return &Literal{Value: v}
}

func buildOperators(raw []*rawSetOperator) []*SetOperator {
	var out []*SetOperator
	for _, ro := range raw {
		op := &SetOperator{
			Op:        strings.ToLower(ro.Op),
			Selectors: []*SetSelector{buildSelector(ro.Selector)},
		}
		out = appendOperator(out, op)
	}
	return out
}

func buildSelector(r *rawSelector) *SetSelector {
	return &SetSelector{Category: strings.ToLower(r.Category), Num: r.Num}
}
