package d20

import (
	"strings"
	"testing"

	"github.com/suderio/d20go/internal/render"
	"github.com/suderio/d20go/internal/roll"
)

func TestRollerRollComputesTotal(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(6, 5, 4, 1))
	result, err := r.Roll("4d6kh3")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if result.Total != 15 {
		t.Fatalf("expected total 15, got %v", result.Total)
	}
	if result.Expr != "4d6kh3" {
		t.Fatalf("expected Expr to echo the input, got %q", result.Expr)
	}
}

func TestRollerDefaultsToMarkdownStringifier(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(1, 6))
	result, err := r.Roll("2d6")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if !strings.Contains(result.Result, "**") {
		t.Fatalf("expected markdown bolding in the default render, got %q", result.Result)
	}
}

func TestRollerWithStringifierOverride(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(1, 6))
	result, err := r.Roll("2d6", WithStringifier(render.NewSimpleStringifier()))
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if strings.Contains(result.Result, "**") {
		t.Fatalf("expected no markdown bolding from SimpleStringifier, got %q", result.Result)
	}
}

func TestRollerWithAdvantageRewritesExpression(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(5, 20))
	result, err := r.Roll("1d20+3", WithAdvantage(AdvAdv))
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	// kh1 keeps the second (higher) roll: 20 + 3.
	if result.Total != 23 {
		t.Fatalf("expected advantage to keep the higher face, got total %v", result.Total)
	}
}

func TestRollerCachesParsedASTs(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(3))
	first, err := r.Parse("1d6+1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := r.Parse("1d6+1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if first != second {
		t.Fatalf("expected the second parse to be served from cache")
	}
}

func TestRollerDisablesCacheWhenCommentsAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowComments = true
	r := NewRollerWithSource(cfg, roll.NewQueueSource(3))
	if r.cache.Len() != 0 {
		t.Fatalf("expected a fresh cache to start empty")
	}
	if _, err := r.Parse("1d6+1 fire damage"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.cache.Len() != 0 {
		t.Fatalf("expected caching to stay disabled when AllowComments is set")
	}
}

func TestRollPackageLevelConvenienceFunction(t *testing.T) {
	if _, err := Parse("1d20"); err != nil {
		t.Fatalf("package-level Parse: %v", err)
	}
	result, err := Roll("1d6")
	if err != nil {
		t.Fatalf("package-level Roll: %v", err)
	}
	if result.Total < 1 || result.Total > 6 {
		t.Fatalf("expected a 1d6 total in range, got %v", result.Total)
	}
}
