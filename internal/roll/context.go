package roll

import "github.com/suderio/d20go/internal/dicerr"

// Default roll ceilings, mirrored from spec.md's external-interface defaults.
const (
	DefaultMaxRolls         = 1000
	DefaultMaxASTOperations = 10000
)

// Context bounds a single evaluation: how many dice it is allowed to roll,
// and how many AST nodes it is allowed to visit, so a maliciously or
// accidentally huge expression (nested explodes, a deeply recursive set)
// fails fast instead of spinning forever. Grounded on the reference
// implementation's RollContext, extended with the AST-operation ceiling
// spec.md names alongside it.
type Context struct {
	Source Source

	MaxRolls int
	RollsPerformed int

	MaxASTOperations int
	ASTOperations    int
}

// NewContext builds a Context with the given ceilings and Source. A nil
// Source defaults to the production crypto-seeded generator.
func NewContext(maxRolls, maxASTOperations int, source Source) *Context {
	if source == nil {
		source = NewSource()
	}
	return &Context{
		Source:           source,
		MaxRolls:         maxRolls,
		MaxASTOperations: maxASTOperations,
	}
}

// Reset zeroes both counters so a Context (and its Roller) can be reused
// across multiple rolls.
func (c *Context) Reset() {
	c.RollsPerformed = 0
	c.ASTOperations = 0
}

// CountRoll records n dice having been rolled, failing once the ceiling is
// exceeded.
func (c *Context) CountRoll(n int) error {
	c.RollsPerformed += n
	if c.RollsPerformed > c.MaxRolls {
		return dicerr.NewTooManyRolls("too many dice rolled (max %d)", c.MaxRolls)
	}
	return nil
}

// CountASTOperation records one AST node having been visited, failing once
// the ceiling is exceeded.
func (c *Context) CountASTOperation() error {
	c.ASTOperations++
	if c.ASTOperations > c.MaxASTOperations {
		return dicerr.NewTooManyRolls("too many operations performed (max %d)", c.MaxASTOperations)
	}
	return nil
}
