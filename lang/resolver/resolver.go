// Package resolver performs a static pass over the AST between parsing and
// evaluation: it resolves every variable reference to the number of
// environment hops between its use and its declaring scope, annotating the
// AST nodes in place, and reports a fixed set of compile-time errors (e.g.
// reading a local in its own initializer, "return" outside a function,
// "this"/"super" outside a method).
package resolver

import (
	"github.com/loxlang/lox/lang/ast"
	"github.com/loxlang/lox/lang/scanner"
	"github.com/loxlang/lox/lang/token"
)

type functionKind int

const (
	fkNone functionKind = iota
	fkFunction
	fkInitializer
	fkMethod
)

type classKind int

const (
	ckNone classKind = iota
	ckClass
	ckSubclass
)

// scope maps a name to whether its declaration has finished initializing:
// false while the initializer expression (if any) is itself being resolved,
// true afterward.
type scope map[string]bool

type resolver struct {
	scopes []scope
	errs   scanner.ErrorList

	currentFunction functionKind
	currentClass    classKind
}

// Resolve walks program, annotating every ast.Variable, ast.Assign, ast.This
// and ast.Super node with its Depth. The returned error, if non-nil, is a
// scanner.ErrorList.
func Resolve(program []ast.Stmt) error {
	r := &resolver{}
	r.resolveStmts(program)
	r.errs.Sort()
	return r.errs.Err()
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.stmt(s)
	}
}

func (r *resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }
func (r *resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.scopes[len(r.scopes)-1]
	if _, ok := sc[name.Lexeme]; ok {
		r.error(name, "Already a variable with this name in this scope.")
	}
	sc[name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal returns the hop count from the innermost scope to the scope
// declaring name, or ast.Unresolved if no enclosing scope declares it (a
// global).
func (r *resolver) resolveLocal(name token.Token) int {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			return len(r.scopes) - 1 - i
		}
	}
	return ast.Unresolved
}

func (r *resolver) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.expr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fkFunction)

	case *ast.ClassStmt:
		r.resolveClass(s)

	case *ast.ExpressionStmt:
		r.expr(s.Expression)

	case *ast.IfStmt:
		r.expr(s.Condition)
		r.stmt(s.Then)
		if s.Else != nil {
			r.stmt(s.Else)
		}

	case *ast.PrintStmt:
		r.expr(s.Expression)

	case *ast.ReturnStmt:
		if r.currentFunction == fkNone {
			r.error(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == fkInitializer {
				r.error(s.Keyword, "Can't return a value from an initializer.")
			}
			r.expr(s.Value)
		}

	case *ast.WhileStmt:
		r.expr(s.Condition)
		r.stmt(s.Body)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosing := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosing }()

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *resolver) resolveClass(c *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = ckClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.error(c.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = ckSubclass
		r.expr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range c.Methods {
		kind := fkMethod
		if m.Name.Lexeme == "init" {
			kind = fkInitializer
		}
		r.resolveFunction(m, kind)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}
}

func (r *resolver) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if ready, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !ready {
				r.error(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		e.Depth = r.resolveLocal(e.Name)

	case *ast.Assign:
		r.expr(e.Value)
		e.Depth = r.resolveLocal(e.Name)

	case *ast.Binary:
		r.expr(e.Left)
		r.expr(e.Right)

	case *ast.Call:
		r.expr(e.Callee)
		for _, a := range e.Args {
			r.expr(a)
		}

	case *ast.Get:
		r.expr(e.Object)

	case *ast.Set:
		r.expr(e.Value)
		r.expr(e.Object)

	case *ast.Grouping:
		r.expr(e.Expression)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Logical:
		r.expr(e.Left)
		r.expr(e.Right)

	case *ast.Super:
		switch r.currentClass {
		case ckNone:
			r.error(e.Keyword, "Can't use 'super' outside of a class.")
		case ckClass:
			r.error(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		e.Depth = r.resolveLocal(e.Keyword)

	case *ast.This:
		if r.currentClass == ckNone {
			r.error(e.Keyword, "Can't use 'this' outside of a class.")
		}
		e.Depth = r.resolveLocal(e.Keyword)

	case *ast.Unary:
		r.expr(e.Right)

	default:
		panic("resolver: unhandled expression type")
	}
}

func (r *resolver) error(tok token.Token, msg string) {
	where := "at '" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = "at end"
	}
	r.errs.Add(tok.Line, where, msg)
}
