// env.go: chained binding frames.
//
// An Env is one scope level: a name-to-value table plus an optional
// parent. Lookups walk parent-ward, which gives lexical scoping and
// shadowing. The three operations are intentionally asymmetric:
//
//	Set    binds in the current frame only (define semantics),
//	Get    searches the whole chain,
//	Mutate overwrites the nearest existing binding (set! semantics)
//	       and never creates one.
//
// Root frames are builtin-aware: NewEnv(nil) installs the builtin
// registry into the fresh frame, so every chain reaches the builtins
// through its root. Child frames never get their own copy; shadowing
// a builtin locally therefore behaves like shadowing any other name.
package scheme

// Env is a lexical environment frame with a parent link.
type Env struct {
	parent *Env
	table  map[string]*Expr
}

// NewEnv creates a frame with the given parent, which may be nil.
// A nil parent marks a root frame and installs the builtin registry.
func NewEnv(parent *Env) *Env {
	e := &Env{parent: parent, table: make(map[string]*Expr)}
	if parent == nil {
		installBuiltins(e)
	}
	return e
}

// Set binds name in this frame, replacing any existing binding here.
// Parent frames are never consulted.
func (e *Env) Set(name string, value *Expr) {
	e.table[name] = value
}

// Get returns the nearest visible binding for name, walking the
// parent chain, or UnboundVarError.
func (e *Env) Get(name string) (*Expr, error) {
	if v, ok := e.table[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, &UnboundVarError{Name: name}
}

// Mutate overwrites the nearest existing binding of name in place.
// If no frame in the chain binds it, Mutate fails with
// UnboundVarError and creates nothing.
func (e *Env) Mutate(name string, value *Expr) error {
	if _, ok := e.table[name]; ok {
		e.table[name] = value
		return nil
	}
	if e.parent != nil {
		return e.parent.Mutate(name, value)
	}
	return &UnboundVarError{Name: name}
}
