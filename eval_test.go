// eval_test.go
//
// Special form and application semantics. Expressions are built by
// hand through the constructors, mirroring how the evaluator is
// driven by hosts.
package scheme

import (
	"errors"
	"testing"
)

func mustEval(t *testing.T, expr *Expr, env *Env) *Expr {
	t.Helper()
	v, err := Eval(expr, env)
	if err != nil {
		t.Fatalf("Eval(%v) failed: %v", expr, err)
	}
	return v
}

func evalNum(t *testing.T, expr *Expr, env *Env) int {
	t.Helper()
	v := mustEval(t, expr, env)
	if v == nil || v.Tag != TagNumber {
		t.Fatalf("Eval(%v) = %v, want a number", expr, v)
	}
	return v.Data.(int)
}

func Test_Eval_Self_Evaluating(t *testing.T) {
	env := NewEnv(nil)

	n := num(42)
	if got := mustEval(t, n, env); got != n {
		t.Fatalf("numbers are self-evaluating, got %v", got)
	}

	if got := mustEval(t, nil, env); got != nil {
		t.Fatalf("the empty list is self-evaluating, got %v", got)
	}

	closure := mustEval(t, lst(sym("lambda"), lst(sym("x")), sym("x")), env)
	if got := mustEval(t, closure, env); got != closure {
		t.Fatalf("closures are self-evaluating")
	}

	builtin, _ := env.Get("+")
	if got := mustEval(t, builtin, env); got != builtin {
		t.Fatalf("builtins are self-evaluating")
	}
}

func Test_Eval_Symbol_Lookup(t *testing.T) {
	env := NewEnv(nil)
	env.Set("x", num(10))

	if got := evalNum(t, sym("x"), env); got != 10 {
		t.Fatalf("symbol lookup = %d, want 10", got)
	}

	_, err := Eval(sym("missing"), env)
	wantUnbound(t, err, "missing")
}

func Test_Eval_Quote_Returns_Literal_Unevaluated(t *testing.T) {
	env := NewEnv(nil)

	lit := lst(num(1), num(2), num(3))
	got := mustEval(t, lst(sym("quote"), lit), env)
	if !Equal(got, lst(num(1), num(2), num(3))) {
		t.Fatalf("(quote (1 2 3)) = %v", got)
	}

	// By reference, not by copy: the result is the literal itself.
	if got != lit {
		t.Fatalf("quote must return the literal subtree by reference")
	}

	// Not re-evaluated: a quoted unbound symbol is fine.
	got = mustEval(t, lst(sym("quote"), sym("undefined-name")), env)
	if !Equal(got, sym("undefined-name")) {
		t.Fatalf("(quote undefined-name) = %v", got)
	}
}

func Test_Eval_Quote_RoundTrip(t *testing.T) {
	env := NewEnv(nil)
	cases := []*Expr{
		lst(num(1), num(2), num(3)),
		lst(sym("a"), lst(sym("b"), num(2)), num(3)),
		lst(),
		Cons(num(1), num(2)),
	}
	for _, lit := range cases {
		got := mustEval(t, lst(sym("quote"), lit), env)
		if !Equal(got, lit) {
			t.Fatalf("quote round-trip mismatch: %v != %v", got, lit)
		}
	}
}

func Test_Eval_EvalForm_Two_Passes(t *testing.T) {
	env := NewEnv(nil)

	// (eval (quote (+ 1 2))) evaluates the quoted form a second time.
	form := lst(sym("eval"), lst(sym("quote"), lst(sym("+"), num(1), num(2))))
	if got := evalNum(t, form, env); got != 3 {
		t.Fatalf("(eval '(+ 1 2)) = %d, want 3", got)
	}

	// Meta-programs can construct code and run it.
	env.Set("code", lst(sym("+"), num(20), num(22)))
	if got := evalNum(t, lst(sym("eval"), sym("code")), env); got != 42 {
		t.Fatalf("(eval code) = %d, want 42", got)
	}
}

func Test_Eval_If_Truthiness(t *testing.T) {
	env := NewEnv(nil)
	cases := []struct {
		cond *Expr
		want int
	}{
		{num(1), 42},
		{num(-7), 42}, // any nonzero number is truthy
		{num(0), 0},
	}
	for _, tc := range cases {
		form := lst(sym("if"), tc.cond, num(42), num(0))
		if got := evalNum(t, form, env); got != tc.want {
			t.Fatalf("(if %v 42 0) = %d, want %d", tc.cond, got, tc.want)
		}
	}
}

func Test_Eval_If_Lazy_Branches(t *testing.T) {
	env := NewEnv(nil)
	// The untaken branch would fail if evaluated.
	form := lst(sym("if"), num(1), num(42), sym("unbound-else"))
	if got := evalNum(t, form, env); got != 42 {
		t.Fatalf("if evaluated the wrong branch, got %d", got)
	}
}

func Test_Eval_If_NonNumber_Condition(t *testing.T) {
	env := NewEnv(nil)
	form := lst(sym("if"), lst(sym("quote"), sym("yes")), num(1), num(2))
	_, err := Eval(form, env)
	var te *TypeMismatchError
	if !errors.As(err, &te) || te.Op != "if" {
		t.Fatalf("non-number condition should be a type mismatch, got %v", err)
	}
}

func Test_Eval_If_Both_Branches_Mandatory(t *testing.T) {
	env := NewEnv(nil)
	// One-armed if is malformed even when the condition is true.
	form := lst(sym("if"), num(1), num(42))
	if _, err := Eval(form, env); err == nil {
		t.Fatalf("one-armed if should fail")
	}
}

func Test_Eval_Define_Binds_Locally(t *testing.T) {
	env := NewEnv(nil)

	v, err := Eval(lst(sym("define"), sym("x"), num(42)), env)
	if err != nil {
		t.Fatalf("define failed: %v", err)
	}
	if v != nil {
		t.Fatalf("define returns no usable value, got %v", v)
	}

	got, err := env.Get("x")
	if err != nil {
		t.Fatalf("x should be bound after define: %v", err)
	}
	if !Equal(got, num(42)) {
		t.Fatalf("x = %v, want 42", got)
	}

	// The value expression is evaluated at define time.
	mustEval(t, lst(sym("define"), sym("y"), lst(sym("+"), sym("x"), num(1))), env)
	got, _ = env.Get("y")
	if !Equal(got, num(43)) {
		t.Fatalf("y = %v, want 43", got)
	}
}

func Test_Eval_Define_Rebinds_Same_Frame(t *testing.T) {
	env := NewEnv(nil)
	mustEval(t, lst(sym("define"), sym("x"), num(1)), env)
	mustEval(t, lst(sym("define"), sym("x"), num(2)), env)
	got, _ := env.Get("x")
	if !Equal(got, num(2)) {
		t.Fatalf("redefinition should overwrite, x = %v", got)
	}
}

func Test_Eval_SetBang_Mutates_Enclosing(t *testing.T) {
	outer := NewEnv(nil)
	outer.Set("x", num(1))
	inner := NewEnv(outer)

	v, err := Eval(lst(sym("set!"), sym("x"), num(100)), inner)
	if err != nil {
		t.Fatalf("set! failed: %v", err)
	}
	if v != nil {
		t.Fatalf("set! returns no usable value, got %v", v)
	}

	// The enclosing binding changed; no local binding appeared.
	got, _ := outer.Get("x")
	if !Equal(got, num(100)) {
		t.Fatalf("outer x = %v, want 100", got)
	}
}

func Test_Eval_SetBang_Unbound(t *testing.T) {
	env := NewEnv(nil)
	_, err := Eval(lst(sym("set!"), sym("ghost"), num(1)), env)
	wantUnbound(t, err, "ghost")
}

func Test_Eval_Lambda_And_Application(t *testing.T) {
	env := NewEnv(nil)

	// ((lambda (x) (+ x 1)) 5) => 6
	inc := lst(sym("lambda"), lst(sym("x")), lst(sym("+"), sym("x"), num(1)))
	if got := evalNum(t, lst(inc, num(5)), env); got != 6 {
		t.Fatalf("((lambda (x) (+ x 1)) 5) = %d, want 6", got)
	}

	// Named and reused.
	mustEval(t, lst(sym("define"), sym("inc"), inc), env)
	if got := evalNum(t, lst(sym("inc"), num(41)), env); got != 42 {
		t.Fatalf("(inc 41) = %d, want 42", got)
	}
}

func Test_Eval_Lambda_Arity(t *testing.T) {
	env := NewEnv(nil)
	mustEval(t, lst(sym("define"), sym("inc"),
		lst(sym("lambda"), lst(sym("x")), lst(sym("+"), sym("x"), num(1)))), env)

	cases := []struct {
		form *Expr
		got  int
	}{
		{lst(sym("inc")), 0},
		{lst(sym("inc"), num(1), num(2)), 2},
	}
	for _, tc := range cases {
		_, err := Eval(tc.form, env)
		var ae *ArityMismatchError
		if !errors.As(err, &ae) {
			t.Fatalf("Eval(%v) should fail with arity mismatch, got %v", tc.form, err)
		}
		if ae.Want != 1 || ae.Got != tc.got {
			t.Fatalf("arity error fields = want %d got %d", ae.Want, ae.Got)
		}
	}
}

func Test_Eval_Lambda_Params_Must_Be_Symbols(t *testing.T) {
	env := NewEnv(nil)
	form := lst(sym("lambda"), lst(sym("x"), num(2)), sym("x"))
	_, err := Eval(form, env)
	var te *TypeMismatchError
	if !errors.As(err, &te) || te.Op != "lambda" {
		t.Fatalf("non-symbol parameter should be a type mismatch, got %v", err)
	}
}

func Test_Eval_Lambda_Lexical_Capture(t *testing.T) {
	env := NewEnv(nil)

	// (define make-adder (lambda (n) (lambda (x) (+ x n))))
	mustEval(t, lst(sym("define"), sym("make-adder"),
		lst(sym("lambda"), lst(sym("n")),
			lst(sym("lambda"), lst(sym("x")), lst(sym("+"), sym("x"), sym("n"))))), env)
	mustEval(t, lst(sym("define"), sym("add3"), lst(sym("make-adder"), num(3))), env)

	// A clashing caller-side n must not leak in: lexical, not dynamic.
	mustEval(t, lst(sym("define"), sym("n"), num(1000)), env)
	if got := evalNum(t, lst(sym("add3"), num(4)), env); got != 7 {
		t.Fatalf("(add3 4) = %d, want 7 from the captured n", got)
	}
}

func Test_Eval_Closure_Body_Sees_Definition_Env_Changes(t *testing.T) {
	env := NewEnv(nil)
	mustEval(t, lst(sym("define"), sym("base"), num(10)), env)
	mustEval(t, lst(sym("define"), sym("f"),
		lst(sym("lambda"), lst(), sym("base"))), env)

	// The closure references its defining frame, it does not snapshot.
	mustEval(t, lst(sym("set!"), sym("base"), num(20)), env)
	if got := evalNum(t, lst(sym("f")), env); got != 20 {
		t.Fatalf("(f) = %d, want 20 after set!", got)
	}
}

func Test_Eval_Let_Scoping(t *testing.T) {
	env := NewEnv(nil)

	form := lst(sym("let"),
		lst(lst(sym("x"), num(10)), lst(sym("y"), num(20))),
		lst(sym("+"), sym("x"), sym("y")))
	if got := evalNum(t, form, env); got != 30 {
		t.Fatalf("(let ((x 10) (y 20)) (+ x y)) = %d, want 30", got)
	}

	// Bindings are local to the let.
	if _, err := env.Get("x"); err == nil {
		t.Fatalf("x must not leak into the outer env")
	}
	if _, err := env.Get("y"); err == nil {
		t.Fatalf("y must not leak into the outer env")
	}
}

func Test_Eval_Let_Values_Use_Outer_Env(t *testing.T) {
	env := NewEnv(nil)
	env.Set("x", num(1))

	// The second binding's value sees the outer x, not the new one.
	form := lst(sym("let"),
		lst(lst(sym("x"), num(10)), lst(sym("y"), sym("x"))),
		sym("y"))
	if got := evalNum(t, form, env); got != 1 {
		t.Fatalf("let bindings must not see each other, y = %d, want 1", got)
	}
}

func Test_Eval_Let_Multiple_Body_Expressions(t *testing.T) {
	env := NewEnv(nil)
	form := lst(sym("let"), lst(lst(sym("x"), num(1))),
		lst(sym("define"), sym("x"), num(2)),
		lst(sym("+"), sym("x"), num(40)))
	if got := evalNum(t, form, env); got != 42 {
		t.Fatalf("let body sequence = %d, want 42", got)
	}
}

func Test_Eval_Begin_Sequences(t *testing.T) {
	env := NewEnv(nil)

	form := lst(sym("begin"),
		lst(sym("define"), sym("x"), num(1)),
		lst(sym("define"), sym("x"), num(2)),
		lst(sym("+"), sym("x"), num(1)))
	if got := evalNum(t, form, env); got != 3 {
		t.Fatalf("begin = %d, want 3", got)
	}

	// Empty begin yields no value.
	v := mustEval(t, lst(sym("begin")), env)
	if v != nil {
		t.Fatalf("(begin) = %v, want no value", v)
	}
}

func Test_Eval_While_Counts_To_Five(t *testing.T) {
	env := NewEnv(nil)
	env.Set("x", num(0))

	// (while (< x 5) (define x (+ x 1)))
	form := lst(sym("while"),
		lst(sym("<"), sym("x"), num(5)),
		lst(sym("define"), sym("x"), lst(sym("+"), sym("x"), num(1))))
	v, err := Eval(form, env)
	if err != nil {
		t.Fatalf("while failed: %v", err)
	}
	if v != nil {
		t.Fatalf("while returns no usable value, got %v", v)
	}

	got, _ := env.Get("x")
	if !Equal(got, num(5)) {
		t.Fatalf("x = %v after loop, want 5", got)
	}
}

func Test_Eval_While_False_Condition_Skips_Body(t *testing.T) {
	env := NewEnv(nil)
	// Body would fail if it ever ran.
	form := lst(sym("while"), num(0), sym("unbound-body"))
	if _, err := Eval(form, env); err != nil {
		t.Fatalf("while with a false condition should not touch the body: %v", err)
	}
}

func Test_Eval_While_NonNumber_Condition(t *testing.T) {
	env := NewEnv(nil)
	form := lst(sym("while"), lst(sym("quote"), sym("yes")), num(1))
	_, err := Eval(form, env)
	var te *TypeMismatchError
	if !errors.As(err, &te) || te.Op != "while" {
		t.Fatalf("non-number while condition should be a type mismatch, got %v", err)
	}
}

func Test_Eval_Comparisons(t *testing.T) {
	env := NewEnv(nil)
	cases := []struct {
		op   string
		a, b int
		want int
	}{
		{"<", 1, 2, 1},
		{"<", 2, 1, 0},
		{"<", 2, 2, 0},
		{">", 2, 1, 1},
		{">", 1, 2, 0},
		{"=", 3, 3, 1},
		{"=", 3, 4, 0},
	}
	for _, tc := range cases {
		form := lst(sym(tc.op), num(tc.a), num(tc.b))
		if got := evalNum(t, form, env); got != tc.want {
			t.Fatalf("(%s %d %d) = %d, want %d", tc.op, tc.a, tc.b, got, tc.want)
		}
	}
}

func Test_Eval_Comparison_Operands_Are_Evaluated(t *testing.T) {
	env := NewEnv(nil)
	env.Set("x", num(3))
	form := lst(sym("<"), sym("x"), lst(sym("+"), num(2), num(2)))
	if got := evalNum(t, form, env); got != 1 {
		t.Fatalf("(< x (+ 2 2)) = %d, want 1", got)
	}
}

func Test_Eval_Comparison_Type_Mismatch(t *testing.T) {
	env := NewEnv(nil)
	for _, op := range []string{"<", ">", "="} {
		form := lst(sym(op), num(1), lst(sym("quote"), sym("a")))
		_, err := Eval(form, env)
		var te *TypeMismatchError
		if !errors.As(err, &te) || te.Op != op {
			t.Fatalf("(%s 1 'a) should be a type mismatch, got %v", op, err)
		}
	}
}

func Test_Eval_Application_NotAProcedure(t *testing.T) {
	env := NewEnv(nil)
	env.Set("three", num(3))

	form := lst(sym("three"), num(1))
	_, err := Eval(form, env)
	var pe *NotAProcedureError
	if !errors.As(err, &pe) {
		t.Fatalf("calling a number should fail with NotAProcedureError, got %v", err)
	}
}

func Test_Eval_Application_Unknown_Head(t *testing.T) {
	env := NewEnv(nil)
	// Not a special form and unbound: fails before any argument runs.
	form := lst(sym("frobnicate"), num(1))
	_, err := Eval(form, env)
	wantUnbound(t, err, "frobnicate")
}

func Test_Eval_Arguments_Left_To_Right(t *testing.T) {
	env := NewEnv(nil)
	env.Set("x", num(0))

	// Each operand bumps x and yields the value seen; strict
	// left-to-right evaluation gives (1, 2), not any other order.
	bump := lst(sym("begin"),
		lst(sym("set!"), sym("x"), lst(sym("+"), sym("x"), num(1))),
		sym("x"))
	form := lst(sym("cons"), bump, bump)
	v := mustEval(t, form, env)
	if !Equal(v, Cons(num(1), num(2))) {
		t.Fatalf("argument order: got %v, want (1 . 2)", v)
	}
}

func Test_Eval_Errors_Propagate_Through_Forms(t *testing.T) {
	env := NewEnv(nil)
	forms := []*Expr{
		lst(sym("begin"), sym("nope"), num(1)),
		lst(sym("define"), sym("x"), sym("nope")),
		lst(sym("let"), lst(lst(sym("x"), sym("nope"))), num(1)),
		lst(sym("+"), num(1), sym("nope")),
		lst(sym("if"), sym("nope"), num(1), num(2)),
	}
	for _, form := range forms {
		_, err := Eval(form, env)
		wantUnbound(t, err, "nope")
	}
}
