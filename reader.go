// reader.go: an optional textual front end.
//
// The evaluator core never calls this file; expression trees are
// built through the constructors in types.go, and the reader is just
// one producer of them (used by cmd/sch and by tests that prefer
// source text over hand-built trees).
//
// Accepted syntax: integers with an optional leading minus, symbols,
// proper lists, dotted pairs, 'X as sugar for (quote X), and ;
// comments running to end of line. A form cut off mid-list reports an
// incomplete-input condition that IsIncomplete recognizes, which is
// what lets a REPL keep prompting for continuation lines instead of
// failing.
package scheme

import (
	"errors"
	"fmt"
)

// ReadError reports a syntax problem with a 1-based source position.
type ReadError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool // input ended inside a form
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err means the input ended inside a
// form and more lines could still complete it.
func IsIncomplete(err error) bool {
	var re *ReadError
	return errors.As(err, &re) && re.Incomplete
}

// Read parses exactly one expression and rejects trailing input.
func Read(src string) (*Expr, error) {
	r := &reader{src: []rune(src), line: 1, col: 1}
	r.skipSpace()
	e, err := r.readExpr()
	if err != nil {
		return nil, err
	}
	r.skipSpace()
	if !r.eof() {
		return nil, r.errf(false, "unexpected trailing input")
	}
	return e, nil
}

// ReadAll parses a whole sequence of expressions.
func ReadAll(src string) ([]*Expr, error) {
	r := &reader{src: []rune(src), line: 1, col: 1}
	var out []*Expr
	for {
		r.skipSpace()
		if r.eof() {
			return out, nil
		}
		e, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

type reader struct {
	src  []rune
	pos  int
	line int
	col  int
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() rune { return r.src[r.pos] }

func (r *reader) next() rune {
	c := r.src[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c
}

func (r *reader) errf(incomplete bool, format string, args ...any) error {
	return &ReadError{Line: r.line, Col: r.col, Msg: fmt.Sprintf(format, args...), Incomplete: incomplete}
}

func (r *reader) skipSpace() {
	for !r.eof() {
		switch c := r.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			r.next()
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.next()
			}
		default:
			return
		}
	}
}

func isDelimiter(c rune) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '(', ')', ';', '\'':
		return true
	}
	return false
}

func (r *reader) readExpr() (*Expr, error) {
	if r.eof() {
		return nil, r.errf(true, "unexpected end of input")
	}
	switch c := r.peek(); c {
	case '(':
		r.next()
		return r.readList()
	case ')':
		return nil, r.errf(false, "unexpected )")
	case '\'':
		r.next()
		r.skipSpace()
		quoted, err := r.readExpr()
		if err != nil {
			return nil, err
		}
		return NewList(NewSymbol("quote"), quoted), nil
	default:
		return r.readAtom()
	}
}

func (r *reader) readList() (*Expr, error) {
	var elems []*Expr
	for {
		r.skipSpace()
		if r.eof() {
			return nil, r.errf(true, "unterminated list")
		}
		switch {
		case r.peek() == ')':
			r.next()
			return NewList(elems...), nil

		case r.peek() == '.' && r.dotIsAlone():
			if len(elems) == 0 {
				return nil, r.errf(false, "dotted tail with no head")
			}
			r.next()
			r.skipSpace()
			tail, err := r.readExpr()
			if err != nil {
				return nil, err
			}
			r.skipSpace()
			if r.eof() {
				return nil, r.errf(true, "unterminated list")
			}
			if r.peek() != ')' {
				return nil, r.errf(false, "expected ) after dotted tail")
			}
			r.next()
			out := tail
			for i := len(elems) - 1; i >= 0; i-- {
				out = Cons(elems[i], out)
			}
			return out, nil

		default:
			e, err := r.readExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
	}
}

// dotIsAlone reports whether the '.' at the cursor stands on its own
// rather than starting a symbol like ".x".
func (r *reader) dotIsAlone() bool {
	return r.pos+1 >= len(r.src) || isDelimiter(r.src[r.pos+1])
}

func (r *reader) readAtom() (*Expr, error) {
	start := r.pos
	for !r.eof() && !isDelimiter(r.peek()) {
		r.next()
	}
	text := string(r.src[start:r.pos])
	if n, ok := parseNumber(text); ok {
		return NewNumber(n), nil
	}
	return NewSymbol(text), nil
}

// parseNumber accepts decimal digits with an optional leading minus.
// A bare "-" is a symbol, not a number.
func parseNumber(text string) (int, bool) {
	digits := text
	neg := false
	if len(digits) > 0 && digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}
