package diceast

import "testing"

func TestParseSimpleDice(t *testing.T) {
	expr, err := Parse("1d20+5", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := expr.Root.(*BinOp)
	if !ok {
		t.Fatalf("expected *BinOp, got %T", expr.Root)
	}
	if bin.Op != "+" {
		t.Fatalf("expected +, got %q", bin.Op)
	}
	dice, ok := bin.Left.(*Dice)
	if !ok {
		t.Fatalf("expected *Dice, got %T", bin.Left)
	}
	if dice.Num != 1 || dice.Size != 20 {
		t.Fatalf("expected 1d20, got %dd%d", dice.Num, dice.Size)
	}
	lit, ok := bin.Right.(*Literal)
	if !ok || lit.Value != 5 {
		t.Fatalf("expected literal 5, got %#v", bin.Right)
	}
}

func TestParseKeepHighest(t *testing.T) {
	expr, err := Parse("4d6kh3", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	od, ok := expr.Root.(*OperatedDice)
	if !ok {
		t.Fatalf("expected *OperatedDice, got %T", expr.Root)
	}
	if od.Dice.Num != 4 || od.Dice.Size != 6 {
		t.Fatalf("expected 4d6, got %dd%d", od.Dice.Num, od.Dice.Size)
	}
	if len(od.Operators) != 1 || od.Operators[0].Op != "k" {
		t.Fatalf("expected one keep operator, got %#v", od.Operators)
	}
	sel := od.Operators[0].Selectors[0]
	if sel.Category != "h" || sel.Num != 3 {
		t.Fatalf("expected selector h3, got %#v", sel)
	}
}

func TestOperatorSimplification(t *testing.T) {
	expr, err := Parse("4d6k1k2", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	od := expr.Root.(*OperatedDice)
	if len(od.Operators) != 1 {
		t.Fatalf("expected merged operator list of length 1, got %d", len(od.Operators))
	}
	if len(od.Operators[0].Selectors) != 2 {
		t.Fatalf("expected 2 selectors merged, got %d", len(od.Operators[0].Selectors))
	}
}

func TestParseRerollSelector(t *testing.T) {
	expr, err := Parse("2d6ro<3", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	od := expr.Root.(*OperatedDice)
	if od.Operators[0].Op != "ro" {
		t.Fatalf("expected ro, got %q", od.Operators[0].Op)
	}
	sel := od.Operators[0].Selectors[0]
	if sel.Category != "<" || sel.Num != 3 {
		t.Fatalf("expected selector <3, got %#v", sel)
	}
}

func TestParseNestedSet(t *testing.T) {
	expr, err := Parse("(1d4+1, 3, 2d6kl1)kh1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	os, ok := expr.Root.(*OperatedSet)
	if !ok {
		t.Fatalf("expected *OperatedSet, got %T", expr.Root)
	}
	set, ok := os.Producer.(*NumberSet)
	if !ok {
		t.Fatalf("expected *NumberSet producer, got %T", os.Producer)
	}
	if len(set.Values) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(set.Values))
	}
}

func TestParseEmptySet(t *testing.T) {
	expr, err := Parse("()", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set, ok := expr.Root.(*NumberSet)
	if !ok {
		t.Fatalf("expected *NumberSet, got %T", expr.Root)
	}
	if len(set.Values) != 0 {
		t.Fatalf("expected empty set, got %d elements", len(set.Values))
	}
}

func TestParseSingleParenIsParenthetical(t *testing.T) {
	expr, err := Parse("(1d4+1)", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := expr.Root.(*Parenthetical); !ok {
		t.Fatalf("expected *Parenthetical, got %T", expr.Root)
	}
}

func TestParseSingleElementSetWithTrailingComma(t *testing.T) {
	expr, err := Parse("(1d4+1,)", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := expr.Root.(*NumberSet); !ok {
		t.Fatalf("expected *NumberSet, got %T", expr.Root)
	}
}

func TestParseAnnotation(t *testing.T) {
	expr, err := Parse("1d20[fire]", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ann, ok := expr.Root.(*AnnotatedNumber)
	if !ok {
		t.Fatalf("expected *AnnotatedNumber, got %T", expr.Root)
	}
	if len(ann.Annotations) != 1 || ann.Annotations[0] != "[fire]" {
		t.Fatalf("expected annotation [fire], got %#v", ann.Annotations)
	}
}

func TestParseComparison(t *testing.T) {
	expr, err := Parse("8d6mi2>=20", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bin, ok := expr.Root.(*BinOp)
	if !ok || bin.Op != ">=" {
		t.Fatalf("expected top-level >=, got %#v", expr.Root)
	}
}

func TestParseCommentMode(t *testing.T) {
	expr, err := Parse("1d20+5 slashing damage", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr.Comment != "slashing damage" {
		t.Fatalf("expected comment %q, got %q", "slashing damage", expr.Comment)
	}
	if _, ok := expr.Root.(*BinOp); !ok {
		t.Fatalf("expected *BinOp root, got %T", expr.Root)
	}
}

func TestParseCommentModeDisallowedRaisesSyntaxError(t *testing.T) {
	_, err := Parse("1d20+5 slashing damage", false)
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
}

func TestParseInvalidExpressionFails(t *testing.T) {
	if _, err := Parse("1d20 +", false); err == nil {
		t.Fatalf("expected a syntax error for a trailing, unconsumed operator")
	}
}

func TestParseMissingDiceSizeFails(t *testing.T) {
	if _, err := Parse("1d", false); err == nil {
		t.Fatalf("expected a syntax error for a dice atom missing its size")
	}
}
