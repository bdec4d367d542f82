// errors.go: the evaluator's error taxonomy.
//
// Every failure the core can produce is one of the small exported
// structs below, so hosts and tests can match with errors.As instead
// of parsing message text. All of them are local, non-fatal conditions:
// they terminate the current Eval call chain as ordinary Go error
// returns and never panic across the public API.
//
// ReadError belongs to the optional text front end (reader.go); the
// core itself never produces it.
package scheme

import "fmt"

// UnboundVarError reports a symbol that resolves through no frame of
// the active environment chain. Raised by Env.Get and Env.Mutate.
type UnboundVarError struct {
	Name string
}

func (e *UnboundVarError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

// NotAPairError reports car/cdr applied to anything that is not a
// pair, including the empty list.
type NotAPairError struct {
	Op  string // "car" or "cdr", or the form that walked the list
	Got string // rendered shape of the offending expression
}

func (e *NotAPairError) Error() string {
	return fmt.Sprintf("%s: not a pair: %s", e.Op, e.Got)
}

// TypeMismatchError reports an operand of the wrong variant, for
// example a quoted symbol given to + or a list in if's condition
// position.
type TypeMismatchError struct {
	Op   string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Want, e.Got)
}

// ArityMismatchError reports a call whose argument count differs from
// the procedure's parameter count. There is no variadic calling
// convention, so the counts must match exactly.
type ArityMismatchError struct {
	Proc string // builtin name, or "<closure>" for user procedures
	Want int
	Got  int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d argument(s), got %d", e.Proc, e.Want, e.Got)
}

// NotAProcedureError reports a value in operator position that is
// neither a closure nor a builtin.
type NotAProcedureError struct {
	Got string
}

func (e *NotAProcedureError) Error() string {
	return fmt.Sprintf("not a procedure: %s", e.Got)
}
