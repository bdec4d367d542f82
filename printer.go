// printer.go: structural rendering for debugging and tests.
//
// Numbers render as decimal, symbols as their name, pair chains in
// conventional parenthesized notation with a dotted tail when the
// chain is improper, the empty list as (), and procedures as opaque
// placeholders. The output is a diagnostic aid, not a stable
// serialization format.
package scheme

import (
	"strconv"
	"strings"
)

// Format renders an expression structurally.
func Format(e *Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

// String makes expressions printable with %v in tests and the REPL.
func (e *Expr) String() string { return Format(e) }

func writeExpr(b *strings.Builder, e *Expr) {
	if e == nil {
		b.WriteString("()")
		return
	}
	switch e.Tag {
	case TagNumber:
		b.WriteString(strconv.Itoa(e.Data.(int)))
	case TagSymbol:
		b.WriteString(e.Data.(string))
	case TagPair:
		b.WriteByte('(')
		writeExpr(b, e.Data.(*Pair).Car)
		tail := e.Data.(*Pair).Cdr
		for tail != nil && tail.Tag == TagPair {
			b.WriteByte(' ')
			writeExpr(b, tail.Data.(*Pair).Car)
			tail = tail.Data.(*Pair).Cdr
		}
		if tail != nil {
			b.WriteString(" . ")
			writeExpr(b, tail)
		}
		b.WriteByte(')')
	case TagClosure:
		b.WriteString("<closure>")
	case TagBuiltin:
		b.WriteString("<builtin>")
	}
}
