package d20

import (
	"testing"

	"github.com/suderio/d20go/internal/diceast"
)

func TestApplyAdvantageNoneReturnsSameTree(t *testing.T) {
	tree, err := diceast.Parse("1d20+5", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rewritten := ApplyAdvantage(tree.Root, AdvNone)
	if rewritten != tree.Root {
		t.Fatalf("expected AdvNone to return the same node, got a copy")
	}
}

func TestApplyAdvantageRewritesBareD20(t *testing.T) {
	tree, err := diceast.Parse("1d20+5", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rewritten := ApplyAdvantage(tree.Root, AdvAdv)

	binOp, ok := rewritten.(*diceast.BinOp)
	if !ok {
		t.Fatalf("expected a BinOp root, got %T", rewritten)
	}
	opDice, ok := binOp.Left.(*diceast.OperatedDice)
	if !ok {
		t.Fatalf("expected the left side to become an OperatedDice, got %T", binOp.Left)
	}
	if opDice.Dice.Num != 2 || opDice.Dice.Size != 20 {
		t.Fatalf("expected 2d20, got %dd%d", opDice.Dice.Num, opDice.Dice.Size)
	}
	if len(opDice.Operators) != 1 || opDice.Operators[0].Op != "k" {
		t.Fatalf("expected a single k operator, got %v", opDice.Operators)
	}
	sel := opDice.Operators[0].Selectors[0]
	if sel.Category != "h" || sel.Num != 1 {
		t.Fatalf("expected kh1 for advantage, got %s%d", sel.Category, sel.Num)
	}
}

func TestApplyDisadvantageUsesKeepLow(t *testing.T) {
	tree, err := diceast.Parse("1d20", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rewritten := ApplyAdvantage(tree.Root, AdvDis)
	opDice := rewritten.(*diceast.OperatedDice)
	sel := opDice.Operators[0].Selectors[0]
	if sel.Category != "l" {
		t.Fatalf("expected kl1 for disadvantage, got category %q", sel.Category)
	}
}

func TestApplyAdvantageLeavesNonD20Alone(t *testing.T) {
	tree, err := diceast.Parse("2d6+3", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rewritten := ApplyAdvantage(tree.Root, AdvAdv)
	binOp := rewritten.(*diceast.BinOp)
	if _, ok := binOp.Left.(*diceast.Dice); !ok {
		t.Fatalf("expected 2d6 to remain a bare Dice, got %T", binOp.Left)
	}
}

func TestApplyAdvantagePreservesExistingOperators(t *testing.T) {
	tree, err := diceast.Parse("1d20ro1", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rewritten := ApplyAdvantage(tree.Root, AdvAdv)
	opDice := rewritten.(*diceast.OperatedDice)
	if len(opDice.Operators) != 2 {
		t.Fatalf("expected kh1 plus the original ro1, got %v", opDice.Operators)
	}
	if opDice.Operators[0].Op != "k" || opDice.Operators[1].Op != "ro" {
		t.Fatalf("expected kh1 to be inserted ahead of ro1, got %v", opDice.Operators)
	}
}

func TestApplyAdvantageDoesNotMutateOriginalTree(t *testing.T) {
	tree, err := diceast.Parse("1d20+5", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	original := tree.Root.(*diceast.BinOp).Left.(*diceast.Dice)
	ApplyAdvantage(tree.Root, AdvAdv)
	if original.Num != 1 {
		t.Fatalf("expected the original AST to stay untouched, got Num=%d", original.Num)
	}
}
