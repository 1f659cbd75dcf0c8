package mpcgo

// parserKind tags the ~25 combinator variants a Parser node can be. The
// evaluator switches on this; each kind's payload lives in the matching
// fields of Parser below (a "fat node" in the style of mpc's tagged union
// mpc_pdata_t, translated to a flat Go struct since the payloads are
// heterogeneous and none of them need independent identity).
type parserKind int

const (
	kindUndefined parserKind = iota
	kindPass
	kindFail
	kindLift
	kindLiftVal
	kindExpect
	kindAnchor
	kindState
	kindAny
	kindSingle
	kindOneOf
	kindNoneOf
	kindRange
	kindSatisfy
	kindStringLit
	kindApply
	kindApplyTo
	kindPredict
	kindNot
	kindMaybe
	kindMany
	kindMany1
	kindCount
	kindOr
	kindAnd
)

// Dtor releases a value produced by a child parser that is being discarded
// because an enclosing combinator failed or chose a different branch.
type Dtor func(interface{})

// Ctor manufactures the placeholder value used by Maybe/Not when their
// child didn't produce one.
type Ctor func() interface{}

// Fold reduces the values produced by a sequence/repetition's children
// into the single value the combinator itself produces.
type Fold func(values []interface{}) interface{}

// Apply maps a child's value to a new value.
type Apply func(interface{}) interface{}

// ApplyTo maps a child's value to a new value, given an extra context
// value fixed at construction time.
type ApplyTo func(value, ctx interface{}) interface{}

// Parser is one node of a combinator tree: a tagged variant with a
// per-kind payload. Constructed trees form a DAG (recursive grammars
// retain shared nodes via Define/Undefine); Retained nodes are not
// expected to be garbage-collected independently of the grammar that owns
// them, but Go's GC handles that without an explicit disposal pass.
type Parser struct {
	kind     parserKind
	name     string
	retained bool

	// Fail
	message string

	// Lift / LiftVal
	liftFn  func() interface{}
	liftVal interface{}

	// Expect
	label string

	// Anchor
	anchorFn func(last, next byte) bool

	// Single
	single byte
	// Range
	lo, hi byte
	// OneOf / NoneOf / StringLit
	set string
	// Satisfy
	satisfyFn func(byte) bool

	// single-child combinators: Expect, Apply, ApplyTo, Predict, Not,
	// Maybe, Many, Many1, Count
	child *Parser

	applyFn   Apply
	applyToFn ApplyTo
	ctx       interface{}

	ctor Ctor
	dtor Dtor

	// Many / Many1 / Count / And
	fold Fold
	n    int // Count only

	// Or / And
	children []*Parser
	dtors    []Dtor
}

func newParser(kind parserKind) *Parser {
	return &Parser{kind: kind}
}

// Named attaches a diagnostic name to a parser, for introspection; it does
// not change parsing behavior.
func (p *Parser) Named(name string) *Parser {
	p.name = name
	return p
}

// --- Constructors, one per tag ---

// NewUndefined allocates a forward-declared parser to be completed later
// via Define. Running it before Define fails with a Failure error.
func NewUndefined(name string) *Parser {
	p := newParser(kindUndefined)
	p.name = name
	p.retained = true
	return p
}

// Define overwrites forward's fields in place with body's, which is how
// recursive grammars tie their knot without an extra indirection layer:
// any parser that already holds a pointer to forward now runs body.
func Define(forward, body *Parser) *Parser {
	name := forward.name
	retained := forward.retained
	*forward = *body
	forward.name = name
	forward.retained = retained
	return forward
}

// Undefine resets forward back to an undefined state.
func Undefine(forward *Parser) {
	name := forward.name
	*forward = Parser{kind: kindUndefined, name: name, retained: true}
}

// Pass always succeeds with a nil value, consuming no input.
func Pass() *Parser {
	return newParser(kindPass)
}

// Fail always fails with the fatal-style message msg.
func Fail(msg string) *Parser {
	p := newParser(kindFail)
	p.message = msg
	return p
}

// Lift always succeeds with the value produced by calling fn.
func Lift(fn func() interface{}) *Parser {
	p := newParser(kindLift)
	p.liftFn = fn
	return p
}

// LiftVal always succeeds with the fixed value v.
func LiftVal(v interface{}) *Parser {
	p := newParser(kindLiftVal)
	p.liftVal = v
	return p
}

// GetState always succeeds with a copy of the current input State.
func GetState() *Parser {
	return newParser(kindState)
}

// Any consumes any single byte.
func Any() *Parser {
	return newParser(kindAny)
}

// Single consumes exactly the byte b.
func Single(b byte) *Parser {
	p := newParser(kindSingle)
	p.single = b
	return p
}

// CharRange consumes any single byte in [lo, hi] inclusive.
func CharRange(lo, hi byte) *Parser {
	p := newParser(kindRange)
	p.lo, p.hi = lo, hi
	return p
}

// OneOf consumes any single byte present in set.
func OneOf(set string) *Parser {
	p := newParser(kindOneOf)
	p.set = set
	return p
}

// NoneOf consumes any single byte NOT present in blacklist.
func NoneOf(blacklist string) *Parser {
	p := newParser(kindNoneOf)
	p.set = blacklist
	return p
}

// Satisfy consumes any single byte for which pred holds.
func Satisfy(pred func(byte) bool) *Parser {
	p := newParser(kindSatisfy)
	p.satisfyFn = pred
	return p
}

// StringLit consumes the literal s atomically: either all of it matches,
// or none of the input is consumed.
func StringLit(s string) *Parser {
	p := newParser(kindStringLit)
	p.set = s
	return p
}

// Anchor is a zero-width parser that succeeds iff pred holds over
// (last consumed byte, next byte).
func Anchor(pred func(last, next byte) bool) *Parser {
	p := newParser(kindAnchor)
	p.anchorFn = pred
	return p
}

// Expect relabels child's errors with label, discarding the detail of
// whatever actually went wrong inside child.
func Expect(child *Parser, label string) *Parser {
	p := newParser(kindExpect)
	p.child = child
	p.label = label
	return p
}

// ApplyFn maps child's successful value through fn.
func ApplyFn(child *Parser, fn Apply) *Parser {
	p := newParser(kindApply)
	p.child = child
	p.applyFn = fn
	return p
}

// ApplyToFn maps child's successful value through fn, passing the fixed
// context value ctx as fn's second argument.
func ApplyToFn(child *Parser, fn ApplyTo, ctx interface{}) *Parser {
	p := newParser(kindApplyTo)
	p.child = child
	p.applyToFn = fn
	p.ctx = ctx
	return p
}

// Predict disables backtracking around child, committing the grammar to
// whatever child does once it starts running. This is how callers opt
// into linear-time, LL(1)-style parsing.
func Predict(child *Parser) *Parser {
	p := newParser(kindPredict)
	p.child = child
	return p
}

// Not succeeds (consuming no input) iff child fails; if child succeeds,
// its value is released via dtor and Not fails.
func Not(child *Parser, dtor Dtor, ctor Ctor) *Parser {
	p := newParser(kindNot)
	p.child = child
	p.dtor = dtor
	p.ctor = ctor
	return p
}

// Maybe always succeeds: child's value on success, or ctor()'s value
// (consuming no input) if child fails.
func Maybe(child *Parser, ctor Ctor) *Parser {
	p := newParser(kindMaybe)
	p.child = child
	p.ctor = ctor
	return p
}

// Many matches 0 or more repetitions of child, folding the collected
// values with fold. Greedy: stops at the first failing attempt, which is
// not itself an error for Many.
func Many(child *Parser, fold Fold, dtor Dtor) *Parser {
	p := newParser(kindMany)
	p.child = child
	p.fold = fold
	p.dtor = dtor
	return p
}

// Many1 is Many but requires at least one success.
func Many1(child *Parser, fold Fold, dtor Dtor) *Parser {
	p := newParser(kindMany1)
	p.child = child
	p.fold = fold
	p.dtor = dtor
	return p
}

// Count matches exactly n repetitions of child. On a short match it
// rewinds the input and destroys the values already produced.
func Count(n int, child *Parser, fold Fold, dtor Dtor) *Parser {
	p := newParser(kindCount)
	p.child = child
	p.fold = fold
	p.dtor = dtor
	p.n = n
	return p
}

// Or tries each child in order, committing to the first success. If every
// child fails, the errors are merged with the furthest-position rule.
func Or(children ...*Parser) *Parser {
	p := newParser(kindOr)
	p.children = children
	return p
}

// And runs every child in order, folding their values with fold. If any
// child fails, the input is rewound and the values already produced by
// earlier children are released via the matching dtors entry.
func And(fold Fold, dtors []Dtor, children ...*Parser) *Parser {
	mustParser(len(dtors) == 0 || len(dtors) == len(children),
		"And: %d dtors for %d children", len(dtors), len(children))
	p := newParser(kindAnd)
	p.children = children
	p.dtors = dtors
	p.fold = fold
	return p
}
