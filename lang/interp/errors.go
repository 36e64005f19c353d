package interp

import (
	"fmt"

	"github.com/loxlang/lox/lang/token"
)

// RuntimeError is a Lox runtime error: an operation failed while the
// interpreter was executing an already-resolved, syntactically valid
// program (e.g. adding a number to a string, calling a non-callable value).
// It carries the token whose evaluation raised it, for line reporting.
type RuntimeError struct {
	Token token.Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Token.Line)
}
