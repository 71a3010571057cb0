package d20

import (
	"github.com/suderio/d20go/internal/cache"
	"github.com/suderio/d20go/internal/diceast"
	"github.com/suderio/d20go/internal/render"
	"github.com/suderio/d20go/internal/roll"
)

// RollOption customizes one Roll call away from its Roller's defaults,
// mirroring the reference roll(expr, stringifier=None, ...)'s keyword args.
type RollOption func(*rollOptions)

type rollOptions struct {
	stringifier render.Stringifier
	advantage   AdvType
}

// WithStringifier overrides the Stringifier used to render the result.
// Defaults to a MarkdownStringifier.
func WithStringifier(s render.Stringifier) RollOption {
	return func(o *rollOptions) { o.stringifier = s }
}

// WithAdvantage rewrites the leftmost 1d20 in expr for advantage or
// disadvantage before evaluating it.
func WithAdvantage(adv AdvType) RollOption {
	return func(o *rollOptions) { o.advantage = adv }
}

// Roller parses and evaluates dice expressions, reusing one roll.Context
// (reset at the start of every Roll, so its ceilings bound each call on its
// own) and one LFU cache of parsed ASTs. Not safe for concurrent use.
type Roller struct {
	cfg   Config
	ctx   *roll.Context
	cache *cache.LFU
}

// NewRoller builds a Roller bound to cfg, rolling with the default
// crypto-seeded Source. Parsed ASTs are cached up to cfg.CacheSize entries,
// except when cfg.AllowComments is set: a comment suffix makes the same
// literal expr string parse differently depending on where the parser gives
// up, so caching by expr text alone would be unsound.
func NewRoller(cfg Config) *Roller {
	return NewRollerWithSource(cfg, nil)
}

// NewRollerWithSource builds a Roller that rolls dice from source instead of
// the default generator, for deterministic tests.
func NewRollerWithSource(cfg Config, source roll.Source) *Roller {
	cacheSize := cfg.CacheSize
	if cfg.AllowComments {
		cacheSize = 0
	}
	return &Roller{
		cfg:   cfg,
		ctx:   roll.NewContext(cfg.MaxRolls, cfg.MaxASTOperations, source),
		cache: cache.New(cacheSize),
	}
}

// Parse parses expr into an AST, consulting and populating the cache.
func (r *Roller) Parse(expr string) (*diceast.Expression, error) {
	if cached, ok := r.cache.Get(expr); ok {
		return cached.(*diceast.Expression), nil
	}
	tree, err := diceast.Parse(expr, r.cfg.AllowComments)
	if err != nil {
		return nil, err
	}
	r.cache.Put(expr, tree)
	return tree, nil
}

// Roll parses, optionally rewrites for advantage, evaluates, and renders
// expr, resetting this Roller's roll/AST-operation ceilings beforehand.
func (r *Roller) Roll(expr string, opts ...RollOption) (*RollResult, error) {
	o := rollOptions{stringifier: render.NewMarkdownStringifier()}
	for _, opt := range opts {
		opt(&o)
	}

	tree, err := r.Parse(expr)
	if err != nil {
		return nil, err
	}
	if o.advantage != AdvNone {
		tree = &diceast.Expression{
			Root:    ApplyAdvantage(tree.Root, o.advantage),
			Comment: tree.Comment,
		}
	}

	r.ctx.Reset()
	evaluator := roll.NewEvaluator(r.ctx)
	evaluated, err := evaluator.Eval(tree)
	if err != nil {
		return nil, err
	}
	rolled := evaluated.(*roll.Expression)

	return &RollResult{
		AST:     tree,
		Root:    rolled,
		Expr:    expr,
		Total:   rolled.Total(),
		Result:  o.stringifier.Stringify(rolled),
		Comment: rolled.Comment,
		Crit:    determineCrit(rolled),
	}, nil
}

// defaultRoller backs the package-level Roll/Parse convenience functions,
// matching the reference implementation's module-level "_roller = Roller()".
var defaultRoller = NewRoller(DefaultConfig())

// Roll rolls expr using the package-level default Roller.
func Roll(expr string, opts ...RollOption) (*RollResult, error) {
	return defaultRoller.Roll(expr, opts...)
}

// Parse parses expr using the package-level default Roller.
func Parse(expr string) (*diceast.Expression, error) {
	return defaultRoller.Parse(expr)
}
