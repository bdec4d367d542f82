// eval.go: the recursive tree-walking evaluator.
//
// Eval dispatches on the expression's variant. Numbers, closures,
// builtins and the empty list are self-evaluating; symbols resolve
// through the environment chain; a pair is a form. When the head of a
// form is a symbol naming a special form, the form is handled here;
// otherwise the head is evaluated to a procedure, the remaining
// elements are evaluated strictly left to right, and the call is
// delegated to Apply.
//
// Special forms are dispatched through a closed tag enum. The symbol
// is resolved to its tag once, via the specialForms table, and the
// switch below is exhaustive over the enum; adding a form means
// adding a tag, a table entry and a case, all in this file.
//
// Evaluation recurses on the host stack with no trampoline, so depth
// is bounded by the nesting of forms and calls in the program, not by
// iteration count: loops are expected to go through the native while
// form.
package scheme

// formTag enumerates the special forms.
type formTag int

const (
	formQuote formTag = iota
	formEval
	formIf
	formDefine
	formSet
	formLambda
	formLet
	formBegin
	formWhile
	formLess
	formGreater
	formNumEq
)

// specialForms resolves a head symbol to its form tag.
var specialForms = map[string]formTag{
	"quote":  formQuote,
	"eval":   formEval,
	"if":     formIf,
	"define": formDefine,
	"set!":   formSet,
	"lambda": formLambda,
	"let":    formLet,
	"begin":  formBegin,
	"while":  formWhile,
	"<":      formLess,
	">":      formGreater,
	"=":      formNumEq,
}

// Eval evaluates expr in env and returns the resulting expression.
// Forms with no usable result (define, set!, while, an empty begin)
// return a nil expression with a nil error; callers that need the
// value of an evaluation must check the error before using it.
func Eval(expr *Expr, env *Env) (*Expr, error) {
	if expr == nil {
		return nil, nil
	}
	switch expr.Tag {
	case TagNumber, TagClosure, TagBuiltin:
		return expr, nil
	case TagSymbol:
		return env.Get(expr.Data.(string))
	default:
		return evalForm(expr, env)
	}
}

// evalForm handles a pair: special form or procedure call.
func evalForm(form *Expr, env *Env) (*Expr, error) {
	head := form.Data.(*Pair).Car
	if head != nil && head.Tag == TagSymbol {
		if tag, ok := specialForms[head.Data.(string)]; ok {
			return evalSpecial(tag, form, env)
		}
	}

	proc, err := Eval(head, env)
	if err != nil {
		return nil, err
	}
	args, err := evalArgs(form.Data.(*Pair).Cdr, env)
	if err != nil {
		return nil, err
	}
	return Apply(proc, args, env)
}

func evalSpecial(tag formTag, form *Expr, env *Env) (*Expr, error) {
	switch tag {
	case formQuote:
		// Returns the literal by reference; later mutation of the
		// result is visible through every other reference to it.
		return formArg(form, 1)

	case formEval:
		arg, err := formArg(form, 1)
		if err != nil {
			return nil, err
		}
		inner, err := Eval(arg, env)
		if err != nil {
			return nil, err
		}
		return Eval(inner, env)

	case formIf:
		return evalIf(form, env)

	case formDefine:
		name, err := formName(form, "define")
		if err != nil {
			return nil, err
		}
		valueExpr, err := formArg(form, 2)
		if err != nil {
			return nil, err
		}
		value, err := Eval(valueExpr, env)
		if err != nil {
			return nil, err
		}
		env.Set(name, value)
		return nil, nil

	case formSet:
		name, err := formName(form, "set!")
		if err != nil {
			return nil, err
		}
		valueExpr, err := formArg(form, 2)
		if err != nil {
			return nil, err
		}
		value, err := Eval(valueExpr, env)
		if err != nil {
			return nil, err
		}
		return nil, env.Mutate(name, value)

	case formLambda:
		return evalLambda(form, env)

	case formLet:
		return evalLet(form, env)

	case formBegin:
		rest, err := Cdr(form)
		if err != nil {
			return nil, err
		}
		return evalSequence(rest, env)

	case formWhile:
		return evalWhile(form, env)

	default:
		return evalCompare(tag, form, env)
	}
}

func evalIf(form *Expr, env *Env) (*Expr, error) {
	condExpr, err := formArg(form, 1)
	if err != nil {
		return nil, err
	}
	// Both branches are mandatory, taken or not.
	thenExpr, err := formArg(form, 2)
	if err != nil {
		return nil, err
	}
	elseExpr, err := formArg(form, 3)
	if err != nil {
		return nil, err
	}

	cond, err := Eval(condExpr, env)
	if err != nil {
		return nil, err
	}
	if cond == nil || cond.Tag != TagNumber {
		return nil, &TypeMismatchError{Op: "if", Want: "number", Got: shapeOf(cond)}
	}
	if cond.Data.(int) != 0 {
		return Eval(thenExpr, env)
	}
	return Eval(elseExpr, env)
}

func evalLambda(form *Expr, env *Env) (*Expr, error) {
	paramList, err := formArg(form, 1)
	if err != nil {
		return nil, err
	}
	body, err := formArg(form, 2)
	if err != nil {
		return nil, err
	}

	var params []string
	for cur := paramList; cur != nil; {
		if cur.Tag != TagPair {
			return nil, &NotAPairError{Op: "lambda", Got: shapeOf(cur)}
		}
		p := cur.Data.(*Pair)
		if p.Car == nil || p.Car.Tag != TagSymbol {
			return nil, &TypeMismatchError{Op: "lambda", Want: "symbol", Got: shapeOf(p.Car)}
		}
		params = append(params, p.Car.Data.(string))
		cur = p.Cdr
	}
	return &Expr{Tag: TagClosure, Data: &Closure{Params: params, Body: body, Env: env}}, nil
}

func evalLet(form *Expr, env *Env) (*Expr, error) {
	bindings, err := formArg(form, 1)
	if err != nil {
		return nil, err
	}
	rest, err := Cdr(form)
	if err != nil {
		return nil, err
	}
	body, err := Cdr(rest)
	if err != nil {
		return nil, err
	}

	// Binding values evaluate in the outer env: bindings are not
	// visible to each other.
	local := NewEnv(env)
	for cur := bindings; cur != nil; {
		if cur.Tag != TagPair {
			return nil, &NotAPairError{Op: "let", Got: shapeOf(cur)}
		}
		p := cur.Data.(*Pair)
		binding := p.Car
		nameExpr, err := Car(binding)
		if err != nil {
			return nil, err
		}
		if nameExpr == nil || nameExpr.Tag != TagSymbol {
			return nil, &TypeMismatchError{Op: "let", Want: "symbol", Got: shapeOf(nameExpr)}
		}
		valueExpr, err := formArg(binding, 1)
		if err != nil {
			return nil, err
		}
		value, err := Eval(valueExpr, env)
		if err != nil {
			return nil, err
		}
		local.Set(nameExpr.Data.(string), value)
		cur = p.Cdr
	}
	return evalSequence(body, local)
}

func evalWhile(form *Expr, env *Env) (*Expr, error) {
	condExpr, err := formArg(form, 1)
	if err != nil {
		return nil, err
	}
	body, err := formArg(form, 2)
	if err != nil {
		return nil, err
	}

	for {
		cond, err := Eval(condExpr, env)
		if err != nil {
			return nil, err
		}
		if cond == nil {
			return nil, nil
		}
		if cond.Tag != TagNumber {
			return nil, &TypeMismatchError{Op: "while", Want: "number", Got: shapeOf(cond)}
		}
		if cond.Data.(int) == 0 {
			return nil, nil
		}
		// Body runs for its side effects, typically define or set!.
		if _, err := Eval(body, env); err != nil {
			return nil, err
		}
	}
}

func evalCompare(tag formTag, form *Expr, env *Env) (*Expr, error) {
	op := "<"
	switch tag {
	case formGreater:
		op = ">"
	case formNumEq:
		op = "="
	}

	lhs, err := evalNumArg(form, 1, op, env)
	if err != nil {
		return nil, err
	}
	rhs, err := evalNumArg(form, 2, op, env)
	if err != nil {
		return nil, err
	}

	var hold bool
	switch tag {
	case formLess:
		hold = lhs < rhs
	case formGreater:
		hold = lhs > rhs
	default:
		hold = lhs == rhs
	}
	if hold {
		return NewNumber(1), nil
	}
	return NewNumber(0), nil
}

// evalNumArg evaluates the nth form element and requires a number.
func evalNumArg(form *Expr, n int, op string, env *Env) (int, error) {
	arg, err := formArg(form, n)
	if err != nil {
		return 0, err
	}
	v, err := Eval(arg, env)
	if err != nil {
		return 0, err
	}
	if v == nil || v.Tag != TagNumber {
		return 0, &TypeMismatchError{Op: op, Want: "number", Got: shapeOf(v)}
	}
	return v.Data.(int), nil
}

// evalSequence evaluates each element of a list in order and returns
// the value of the last one, or nil for an empty sequence.
func evalSequence(body *Expr, env *Env) (*Expr, error) {
	var result *Expr
	for cur := body; cur != nil; {
		if cur.Tag != TagPair {
			return nil, &NotAPairError{Op: "begin", Got: shapeOf(cur)}
		}
		p := cur.Data.(*Pair)
		v, err := Eval(p.Car, env)
		if err != nil {
			return nil, err
		}
		result = v
		cur = p.Cdr
	}
	return result, nil
}

// evalArgs evaluates a list of argument expressions left to right.
func evalArgs(list *Expr, env *Env) ([]*Expr, error) {
	var args []*Expr
	for cur := list; cur != nil; {
		if cur.Tag != TagPair {
			return nil, &NotAPairError{Op: "apply", Got: shapeOf(cur)}
		}
		p := cur.Data.(*Pair)
		v, err := Eval(p.Car, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		cur = p.Cdr
	}
	return args, nil
}

// formArg returns the nth element of a form (0 is the head). Missing
// or malformed positions surface as NotAPairError, which is how
// malformed special forms fail.
func formArg(form *Expr, n int) (*Expr, error) {
	cur := form
	for i := 0; i < n; i++ {
		rest, err := Cdr(cur)
		if err != nil {
			return nil, err
		}
		cur = rest
	}
	return Car(cur)
}

// formName fetches the symbol in position 1 of define and set!.
func formName(form *Expr, op string) (string, error) {
	nameExpr, err := formArg(form, 1)
	if err != nil {
		return "", err
	}
	if nameExpr == nil || nameExpr.Tag != TagSymbol {
		return "", &TypeMismatchError{Op: op, Want: "symbol", Got: shapeOf(nameExpr)}
	}
	return nameExpr.Data.(string), nil
}
