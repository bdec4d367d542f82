// builtins.go: the native procedure registry.
//
// The registry is a fixed table installed into every root frame by
// NewEnv(nil). Child frames reach the builtins through the chain, so
// shadowing one locally works like shadowing any other binding.
// Arithmetic folds over its operands; list primitives delegate to the
// expression model's accessors and inherit their error behavior.
package scheme

var builtinTable = []struct {
	name string
	fn   BuiltinFn
}{
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"cons", builtinCons},
	{"car", builtinCar},
	{"cdr", builtinCdr},
	{"list", builtinList},
	{"null?", builtinNullP},
	{"eq?", builtinEq},
}

func installBuiltins(env *Env) {
	for _, b := range builtinTable {
		env.Set(b.name, BuiltinExpr(b.name, b.fn))
	}
}

// numOperand unwraps a number operand or fails with TypeMismatchError.
func numOperand(op string, e *Expr) (int, error) {
	if e == nil || e.Tag != TagNumber {
		return 0, &TypeMismatchError{Op: op, Want: "number", Got: shapeOf(e)}
	}
	return e.Data.(int), nil
}

func builtinAdd(args []*Expr, _ *Env) (*Expr, error) {
	sum := 0
	for _, a := range args {
		n, err := numOperand("+", a)
		if err != nil {
			return nil, err
		}
		sum += n
	}
	return NewNumber(sum), nil
}

// builtinSub folds from the first operand: (- 10 3 2) is 5 and the
// degenerate (- 5) is 5, not negation.
func builtinSub(args []*Expr, _ *Env) (*Expr, error) {
	if len(args) == 0 {
		return nil, &ArityMismatchError{Proc: "-", Want: 1, Got: 0}
	}
	acc, err := numOperand("-", args[0])
	if err != nil {
		return nil, err
	}
	for _, a := range args[1:] {
		n, err := numOperand("-", a)
		if err != nil {
			return nil, err
		}
		acc -= n
	}
	return NewNumber(acc), nil
}

func builtinMul(args []*Expr, _ *Env) (*Expr, error) {
	product := 1
	for _, a := range args {
		n, err := numOperand("*", a)
		if err != nil {
			return nil, err
		}
		product *= n
	}
	return NewNumber(product), nil
}

func builtinCons(args []*Expr, _ *Env) (*Expr, error) {
	if len(args) != 2 {
		return nil, &ArityMismatchError{Proc: "cons", Want: 2, Got: len(args)}
	}
	return Cons(args[0], args[1]), nil
}

func builtinCar(args []*Expr, _ *Env) (*Expr, error) {
	if len(args) != 1 {
		return nil, &ArityMismatchError{Proc: "car", Want: 1, Got: len(args)}
	}
	return Car(args[0])
}

func builtinCdr(args []*Expr, _ *Env) (*Expr, error) {
	if len(args) != 1 {
		return nil, &ArityMismatchError{Proc: "cdr", Want: 1, Got: len(args)}
	}
	return Cdr(args[0])
}

func builtinList(args []*Expr, _ *Env) (*Expr, error) {
	return NewList(args...), nil
}

func builtinNullP(args []*Expr, _ *Env) (*Expr, error) {
	if len(args) != 1 {
		return nil, &ArityMismatchError{Proc: "null?", Want: 1, Got: len(args)}
	}
	if args[0] == nil {
		return NewNumber(1), nil
	}
	return NewNumber(0), nil
}

// builtinEq is numeric equality. Non-numbers are a type error.
func builtinEq(args []*Expr, _ *Env) (*Expr, error) {
	if len(args) != 2 {
		return nil, &ArityMismatchError{Proc: "eq?", Want: 2, Got: len(args)}
	}
	a, err := numOperand("eq?", args[0])
	if err != nil {
		return nil, err
	}
	b, err := numOperand("eq?", args[1])
	if err != nil {
		return nil, err
	}
	if a == b {
		return NewNumber(1), nil
	}
	return NewNumber(0), nil
}
