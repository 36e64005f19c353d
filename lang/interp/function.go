package interp

import (
	"fmt"

	"github.com/loxlang/lox/lang/ast"
)

// Function is a user-defined Lox function or method, closing over the
// environment in which it was declared.
type Function struct {
	decl          *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

var _ Callable = (*Function)(nil)

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }
func (f *Function) Type() string   { return "function" }
func (f *Function) Truth() bool    { return true }
func (f *Function) Arity() int     { return len(f.decl.Params) }

// Bind returns a copy of f whose closure additionally binds "this" to
// instance, used when a method is looked up on an instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// Call runs the function body in a fresh environment parented at its
// closure, with parameters bound to args.
func (f *Function) Call(in *Interp, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, p := range f.decl.Params {
		env.Define(p.Lexeme, args[i])
	}

	result, err := in.execBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if result.isReturn {
		return result.value, nil
	}
	return Nil, nil
}
