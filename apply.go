// apply.go: procedure application.
package scheme

// Apply invokes a procedure on already-evaluated arguments. Builtins
// run directly on the argument slice. A closure call builds a fresh
// frame whose parent is the closure's defining environment, never the
// caller's, which is what keeps scoping lexical. The argument count
// must equal the parameter count exactly.
func Apply(proc *Expr, args []*Expr, env *Env) (*Expr, error) {
	if proc == nil {
		return nil, &NotAProcedureError{Got: shapeOf(proc)}
	}
	switch proc.Tag {
	case TagBuiltin:
		b := proc.Data.(*Builtin)
		return b.Fn(args, env)

	case TagClosure:
		c := proc.Data.(*Closure)
		if len(args) != len(c.Params) {
			return nil, &ArityMismatchError{Proc: "<closure>", Want: len(c.Params), Got: len(args)}
		}
		frame := NewEnv(c.Env)
		for i, p := range c.Params {
			frame.Set(p, args[i])
		}
		return Eval(c.Body, frame)

	default:
		return nil, &NotAProcedureError{Got: shapeOf(proc)}
	}
}
