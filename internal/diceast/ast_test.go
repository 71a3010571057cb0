package diceast

import "testing"

func TestNodeStringRoundTrips(t *testing.T) {
	cases := []string{
		"1d20+5",
		"4d6kh3",
		"2d6ro<3",
		"8d6mi2",
		"4d6e6kh3",
		"(1d4+1,3,2d6kl1)kh1",
	}
	for _, src := range cases {
		expr, err := Parse(src, false)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", src, err)
		}
		// Re-parsing the rendered string should succeed and produce the
		// same shape (testable property: String() output is itself valid
		// dice notation).
		rendered := expr.Root.String()
		if _, err := Parse(rendered, false); err != nil {
			t.Fatalf("re-parsing rendered %q (from %q) failed: %v", rendered, src, err)
		}
	}
}

func TestChildrenTraversal(t *testing.T) {
	expr, err := Parse("(1d4+1, 2d6)kh1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	os, ok := expr.Root.(*OperatedSet)
	if !ok {
		t.Fatalf("expected *OperatedSet, got %T", expr.Root)
	}
	children := os.Children()
	if len(children) != 1 {
		t.Fatalf("expected a single child (the producer), got %d", len(children))
	}
	set, ok := children[0].(*NumberSet)
	if !ok {
		t.Fatalf("expected *NumberSet child, got %T", children[0])
	}
	if len(set.Children()) != 2 {
		t.Fatalf("expected 2 set elements, got %d", len(set.Children()))
	}
}

func TestAppendOperatorMergesSameCode(t *testing.T) {
	var ops []*SetOperator
	ops = appendOperator(ops, &SetOperator{Op: "k", Selectors: []*SetSelector{{Num: 1}}})
	ops = appendOperator(ops, &SetOperator{Op: "k", Selectors: []*SetSelector{{Num: 2}}})
	ops = appendOperator(ops, &SetOperator{Op: "p", Selectors: []*SetSelector{{Category: "l", Num: 1}}})

	if len(ops) != 2 {
		t.Fatalf("expected 2 distinct operators, got %d", len(ops))
	}
	if len(ops[0].Selectors) != 2 {
		t.Fatalf("expected the two 'k' selectors merged, got %d", len(ops[0].Selectors))
	}
	if ops[1].Op != "p" {
		t.Fatalf("expected second operator to be 'p', got %q", ops[1].Op)
	}
}
