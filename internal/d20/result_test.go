package d20

import (
	"testing"

	"github.com/suderio/d20go/internal/roll"
)

func TestDetermineCritNatural20(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(20, 3))
	result, err := r.Roll("1d20kh1+5")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if result.Crit != CritHit {
		t.Fatalf("expected CritHit, got %v", result.Crit)
	}
}

func TestDetermineCritNatural1(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(1, 3))
	result, err := r.Roll("1d20kh1+5")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if result.Crit != CritFail {
		t.Fatalf("expected CritFail, got %v", result.Crit)
	}
}

func TestDetermineCritNormalRoll(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(12))
	result, err := r.Roll("1d20")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if result.Crit != CritNormal {
		t.Fatalf("expected CritNormal, got %v", result.Crit)
	}
}

func TestDetermineCritOnlyAppliesToASingleKeptD20(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(20, 1))
	result, err := r.Roll("2d20")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if result.Crit != CritNormal {
		t.Fatalf("expected CritNormal when more than one d20 is kept, got %v", result.Crit)
	}
}

func TestDetermineCritIgnoresNonD20Dice(t *testing.T) {
	r := NewRollerWithSource(DefaultConfig(), roll.NewQueueSource(6))
	result, err := r.Roll("1d6")
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if result.Crit != CritNormal {
		t.Fatalf("expected CritNormal for a non-d20 die, got %v", result.Crit)
	}
}
