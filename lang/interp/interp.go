package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/loxlang/lox/lang/ast"
	"github.com/loxlang/lox/lang/token"
)

// Interp walks a resolved AST and executes it. A single Interp instance
// should be reused across a whole REPL session, so that top-level variable
// and function declarations persist across lines, exactly like the
// reference implementation.
type Interp struct {
	globals *Environment
	env     *Environment
	stdout  io.Writer
}

// New returns an interpreter that writes the output of "print" statements
// (and values echoed by the REPL) to stdout.
func New(stdout io.Writer) *Interp {
	globals := NewEnvironment(nil)
	defineGlobals(globals)
	return &Interp{globals: globals, env: globals, stdout: stdout}
}

// Interpret executes a full program. The returned error, if non-nil, is
// always a *RuntimeError.
func (in *Interp) Interpret(program []ast.Stmt) error {
	for _, s := range program {
		if _, err := in.exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Eval evaluates a single expression in the current top-level environment,
// for the REPL's bare-expression shorthand.
func (in *Interp) Eval(e ast.Expr) (Value, error) {
	return in.eval(e)
}

// Stringify renders v the way "print" and the REPL do.
func Stringify(v Value) string { return v.String() }

// execResult threads a pending non-local "return" up through nested block
// and loop execution, without resorting to panic/recover: a *Function.Call
// stops unwinding the first execResult with isReturn set.
type execResult struct {
	isReturn bool
	value    Value
}

func (in *Interp) exec(s ast.Stmt) (execResult, error) {
	switch s := s.(type) {
	case *ast.ExpressionStmt:
		_, err := in.eval(s.Expression)
		return execResult{}, err

	case *ast.PrintStmt:
		v, err := in.eval(s.Expression)
		if err != nil {
			return execResult{}, err
		}
		fmt.Fprintln(in.stdout, Stringify(v))
		return execResult{}, nil

	case *ast.VarStmt:
		v := Value(Nil)
		if s.Initializer != nil {
			var err error
			v, err = in.eval(s.Initializer)
			if err != nil {
				return execResult{}, err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return execResult{}, nil

	case *ast.BlockStmt:
		return in.execBlock(s.Statements, NewEnvironment(in.env))

	case *ast.IfStmt:
		cond, err := in.eval(s.Condition)
		if err != nil {
			return execResult{}, err
		}
		if cond.Truth() {
			return in.exec(s.Then)
		} else if s.Else != nil {
			return in.exec(s.Else)
		}
		return execResult{}, nil

	case *ast.WhileStmt:
		for {
			cond, err := in.eval(s.Condition)
			if err != nil {
				return execResult{}, err
			}
			if !cond.Truth() {
				return execResult{}, nil
			}
			res, err := in.exec(s.Body)
			if err != nil || res.isReturn {
				return res, err
			}
		}

	case *ast.FunctionStmt:
		in.env.Define(s.Name.Lexeme, &Function{decl: s, closure: in.env})
		return execResult{}, nil

	case *ast.ReturnStmt:
		v := Value(Nil)
		if s.Value != nil {
			var err error
			v, err = in.eval(s.Value)
			if err != nil {
				return execResult{}, err
			}
		}
		return execResult{isReturn: true, value: v}, nil

	case *ast.ClassStmt:
		return execResult{}, in.execClass(s)

	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", s))
	}
}

// execBlock runs stmts in env, restoring the interpreter's current
// environment afterward even if an error or return propagates out.
func (in *Interp) execBlock(stmts []ast.Stmt, env *Environment) (execResult, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		res, err := in.exec(s)
		if err != nil || res.isReturn {
			return res, err
		}
	}
	return execResult{}, nil
}

func (in *Interp) execClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.eval(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &RuntimeError{Token: s.Superclass.Name, Msg: "Superclass must be a class."}
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, Nil)

	methodEnv := in.env
	if s.Superclass != nil {
		methodEnv = NewEnvironment(in.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{decl: m, closure: methodEnv, isInitializer: m.Name.Lexeme == "init"}
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)
	in.env.Assign(s.Name.Lexeme, class)
	return nil
}

func (in *Interp) eval(e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.Literal:
		return valueOf(e.Value), nil

	case *ast.Grouping:
		return in.eval(e.Expression)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		left, err := in.eval(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Kind == token.OR {
			if left.Truth() {
				return left, nil
			}
		} else if !left.Truth() {
			return left, nil
		}
		return in.eval(e.Right)

	case *ast.Variable:
		return in.lookUpVariable(e.Name, e.Depth)

	case *ast.Assign:
		v, err := in.eval(e.Value)
		if err != nil {
			return nil, err
		}
		if e.Depth == ast.Unresolved {
			if !in.globals.Assign(e.Name.Lexeme, v) {
				return nil, &RuntimeError{Token: e.Name, Msg: fmt.Sprintf("Undefined variable '%s'.", e.Name.Lexeme)}
			}
		} else {
			in.env.AssignAt(e.Depth, e.Name.Lexeme, v)
		}
		return v, nil

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		obj, err := in.eval(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, &RuntimeError{Token: e.Name, Msg: "Only instances have properties."}
		}
		return inst.get(e.Name)

	case *ast.Set:
		obj, err := in.eval(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, &RuntimeError{Token: e.Name, Msg: "Only instances have fields."}
		}
		v, err := in.eval(e.Value)
		if err != nil {
			return nil, err
		}
		inst.SetField(e.Name.Lexeme, v)
		return v, nil

	case *ast.This:
		return in.lookUpVariable(e.Keyword, e.Depth)

	case *ast.Super:
		return in.evalSuper(e)

	default:
		panic(fmt.Sprintf("interp: unhandled expression type %T", e))
	}
}

func (in *Interp) lookUpVariable(name token.Token, depth int) (Value, error) {
	if depth == ast.Unresolved {
		if v, ok := in.globals.Get(name.Lexeme); ok {
			return v, nil
		}
		return nil, &RuntimeError{Token: name, Msg: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
	}
	return in.env.GetAt(depth, name.Lexeme), nil
}

func (in *Interp) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.MINUS:
		n, ok := right.(Number)
		if !ok {
			return nil, &RuntimeError{Token: e.Operator, Msg: "Operand must be a number."}
		}
		return -n, nil
	case token.BANG:
		return Bool(!right.Truth()), nil
	default:
		panic("interp: unhandled unary operator")
	}
}

func (in *Interp) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.MINUS, token.SLASH, token.STAR,
		token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, lok := left.(Number)
		rn, rok := right.(Number)
		if !lok || !rok {
			return nil, &RuntimeError{Token: e.Operator, Msg: "Operands must be numbers."}
		}
		switch e.Operator.Kind {
		case token.MINUS:
			return ln - rn, nil
		case token.SLASH:
			return ln / rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.GREATER:
			return Bool(ln > rn), nil
		case token.GREATER_EQUAL:
			return Bool(ln >= rn), nil
		case token.LESS:
			return Bool(ln < rn), nil
		case token.LESS_EQUAL:
			return Bool(ln <= rn), nil
		}

	case token.PLUS:
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(Str); ok {
			if rs, ok := right.(Str); ok {
				var b strings.Builder
				b.WriteString(string(ls))
				b.WriteString(string(rs))
				return Str(b.String()), nil
			}
		}
		return nil, &RuntimeError{Token: e.Operator, Msg: "Operands must be two numbers or two strings."}

	case token.BANG_EQUAL:
		return Bool(!isEqual(left, right)), nil
	case token.EQUAL_EQUAL:
		return Bool(isEqual(left, right)), nil
	}
	panic("interp: unhandled binary operator")
}

func (in *Interp) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.Paren, Msg: "Can only call functions and classes."}
	}
	if len(args) != callable.Arity() {
		return nil, &RuntimeError{
			Token: e.Paren,
			Msg:   fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}
	return callable.Call(in, args)
}

func (in *Interp) evalSuper(e *ast.Super) (Value, error) {
	superclass := in.env.GetAt(e.Depth, "super").(*Class)
	instance := in.env.GetAt(e.Depth-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, &RuntimeError{Token: e.Method, Msg: fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme)}
	}
	return method.Bind(instance), nil
}
