// types.go: the expression model.
//
// Expr is the single tagged variant used for both code and data:
// numbers, symbols, cons pairs, closures and builtins. The tag
// determines which payload Data holds (see ExprTag). Proper lists are
// right-nested Pair chains terminated by the empty list, which is
// represented as a nil *Expr rather than a dedicated node; the empty
// list is a legal value everywhere but car/cdr refuse it like any
// other non-pair.
//
// Constructors allocate fresh nodes and perform no semantic
// validation (Cons happily builds an improper list). Only the
// list-consuming operations check shape, and they fail with
// NotAPairError rather than crashing.
//
// Sharing is deliberate: multiple pairs may reference one subtree and
// multiple closures one environment. Nothing here copies, so mutation
// through set! is visible to every holder of a reference. Reclamation
// is the Go garbage collector's job, which also keeps self-referential
// structures (buildable via set!) safe.
package scheme

// ExprTag enumerates the variants an Expr may hold.
type ExprTag int

const (
	TagNumber  ExprTag = iota // int
	TagSymbol                 // string
	TagPair                   // *Pair
	TagClosure                // *Closure
	TagBuiltin                // *Builtin
)

func (t ExprTag) String() string {
	switch t {
	case TagNumber:
		return "number"
	case TagSymbol:
		return "symbol"
	case TagPair:
		return "pair"
	case TagClosure:
		return "closure"
	case TagBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Expr is the universal expression node.
//
// Invariants:
//   - Tag==TagNumber  => Data is int
//   - Tag==TagSymbol  => Data is string
//   - Tag==TagPair    => Data is *Pair
//   - Tag==TagClosure => Data is *Closure
//   - Tag==TagBuiltin => Data is *Builtin
//
// A nil *Expr is the empty list.
type Expr struct {
	Tag  ExprTag
	Data any
}

// Pair is a cons cell. Car and Cdr are shared references; either may
// be nil (the empty list).
type Pair struct {
	Car *Expr
	Cdr *Expr
}

// Closure is a user procedure built by lambda: parameter names, a
// single body expression, and the environment in effect at the
// definition site. The closure keeps Env alive for as long as the
// closure itself is reachable.
type Closure struct {
	Params []string
	Body   *Expr
	Env    *Env
}

// BuiltinFn is the signature of a native procedure. It receives the
// already-evaluated arguments and the environment of the call site.
type BuiltinFn func(args []*Expr, env *Env) (*Expr, error)

// Builtin is a host procedure exposed under a symbol in root
// environments. Name is carried for diagnostics only.
type Builtin struct {
	Name string
	Fn   BuiltinFn
}

// NewNumber builds an integer node.
func NewNumber(n int) *Expr { return &Expr{Tag: TagNumber, Data: n} }

// NewSymbol builds an identifier node.
func NewSymbol(name string) *Expr { return &Expr{Tag: TagSymbol, Data: name} }

// Cons builds a pair. No shape checking: cdr need not be list-shaped.
func Cons(car, cdr *Expr) *Expr {
	return &Expr{Tag: TagPair, Data: &Pair{Car: car, Cdr: cdr}}
}

// NewList builds a proper list: a right fold of Cons over items,
// terminated by the empty list. NewList() is the empty list itself.
func NewList(items ...*Expr) *Expr {
	var out *Expr
	for i := len(items) - 1; i >= 0; i-- {
		out = Cons(items[i], out)
	}
	return out
}

// BuiltinExpr wraps a native procedure into an expression node.
func BuiltinExpr(name string, fn BuiltinFn) *Expr {
	return &Expr{Tag: TagBuiltin, Data: &Builtin{Name: name, Fn: fn}}
}

// Car returns the head of a pair, or NotAPairError for any other
// shape (including the empty list).
func Car(e *Expr) (*Expr, error) {
	if e == nil || e.Tag != TagPair {
		return nil, &NotAPairError{Op: "car", Got: shapeOf(e)}
	}
	return e.Data.(*Pair).Car, nil
}

// Cdr returns the tail of a pair, or NotAPairError for any other
// shape (including the empty list).
func Cdr(e *Expr) (*Expr, error) {
	if e == nil || e.Tag != TagPair {
		return nil, &NotAPairError{Op: "cdr", Got: shapeOf(e)}
	}
	return e.Data.(*Pair).Cdr, nil
}

// shapeOf names an expression's variant for error messages.
func shapeOf(e *Expr) string {
	if e == nil {
		return "()"
	}
	return e.Tag.String()
}

// Equal reports structural equality: numbers by value, symbols by
// name, pair chains element-wise. Closures and builtins compare by
// identity, never structurally.
func Equal(a, b *Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagNumber:
		return a.Data.(int) == b.Data.(int)
	case TagSymbol:
		return a.Data.(string) == b.Data.(string)
	case TagPair:
		ap, bp := a.Data.(*Pair), b.Data.(*Pair)
		return Equal(ap.Car, bp.Car) && Equal(ap.Cdr, bp.Cdr)
	default:
		return a.Data == b.Data
	}
}
