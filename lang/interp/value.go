// Package interp is the tree-walking evaluator: it executes a resolved AST
// directly, without compiling it to bytecode.
package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is any runtime value a Lox program can produce or operate on.
type Value interface {
	// String returns the representation printed by the "print" statement and
	// the REPL.
	String() string

	// Type names the value's kind ("nil", "boolean", "number", ...).
	Type() string

	// Truth reports whether the value is truthy. In Lox only nil and false
	// are falsy; every other value, including 0 and the empty string, is
	// truthy.
	Truth() bool
}

// Callable is a Value that can appear as the callee of a call expression:
// user-defined functions, bound methods, classes (as constructors) and
// native functions.
type Callable interface {
	Value
	Arity() int
	Call(in *Interp, args []Value) (Value, error)
}

// HasFields is a Value that supports "." get/set, i.e. class instances.
type HasFields interface {
	Value
	GetField(name string) (Value, bool)
	SetField(name string, v Value)
}

// nilValue is the single Lox nil value.
type nilValue struct{}

// Nil is the Lox nil value.
var Nil Value = nilValue{}

func (nilValue) String() string { return "nil" }
func (nilValue) Type() string   { return "nil" }
func (nilValue) Truth() bool    { return false }

// Bool is a Lox boolean.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Type() string   { return "boolean" }
func (b Bool) Truth() bool    { return bool(b) }

// Number is a Lox number, always stored as a float64 as in the reference
// implementation.
type Number float64

func (n Number) String() string {
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	// Lox prints whole numbers without a trailing ".0". FormatFloat with
	// precision -1 already omits it; the strip below is a safeguard.
	if strings.HasSuffix(s, ".0") {
		s = strings.TrimSuffix(s, ".0")
	}
	return s
}
func (n Number) Type() string { return "number" }
func (n Number) Truth() bool  { return true }

// Str is a Lox string.
type Str string

func (s Str) String() string { return string(s) }
func (s Str) Type() string   { return "string" }
func (s Str) Truth() bool    { return true }

// valueOf converts a literal parsed by the scanner/parser (nil, bool,
// float64 or string) into its Value representation.
func valueOf(lit any) Value {
	switch v := lit.(type) {
	case nil:
		return Nil
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case string:
		return Str(v)
	default:
		panic(fmt.Sprintf("interp: unsupported literal type %T", lit))
	}
}

// isEqual implements Lox's "==": values of different types are never equal,
// and there is no implicit coercion.
func isEqual(a, b Value) bool {
	switch a := a.(type) {
	case nilValue:
		_, ok := b.(nilValue)
		return ok
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case Number:
		bn, ok := b.(Number)
		return ok && a == bn
	case Str:
		bs, ok := b.(Str)
		return ok && a == bs
	default:
		return a == b
	}
}
