package resolver_test

import (
	"testing"

	"github.com/loxlang/lox/lang/ast"
	"github.com/loxlang/lox/lang/parser"
	"github.com/loxlang/lox/lang/resolver"
	"github.com/loxlang/lox/lang/scanner"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, err := scanner.New([]byte(src)).ScanTokens()
	require.NoError(t, err)
	stmts, err := parser.Parse(toks)
	require.NoError(t, err)
	return stmts
}

func TestResolveGlobalIsUnresolved(t *testing.T) {
	stmts := parse(t, `var x = 1; print x;`)
	require.NoError(t, resolver.Resolve(stmts))

	print := stmts[1].(*ast.PrintStmt)
	v := print.Expression.(*ast.Variable)
	require.Equal(t, ast.Unresolved, v.Depth)
}

func TestResolveLocalHopCount(t *testing.T) {
	stmts := parse(t, `{ var x = 1; { print x; } }`)
	require.NoError(t, resolver.Resolve(stmts))

	outer := stmts[0].(*ast.BlockStmt)
	inner := outer.Statements[1].(*ast.BlockStmt)
	print := inner.Statements[0].(*ast.PrintStmt)
	v := print.Expression.(*ast.Variable)
	require.Equal(t, 1, v.Depth)
}

func TestResolveSelfReferenceInInitializerErrors(t *testing.T) {
	stmts := parse(t, `{ var a = a; }`)
	err := resolver.Resolve(stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "own initializer")
}

func TestResolveReturnOutsideFunctionErrors(t *testing.T) {
	stmts := parse(t, `return 1;`)
	err := resolver.Resolve(stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "top-level code")
}

func TestResolveReturnValueFromInitializerErrors(t *testing.T) {
	stmts := parse(t, `class A { init() { return 1; } }`)
	err := resolver.Resolve(stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "initializer")
}

func TestResolveThisOutsideClassErrors(t *testing.T) {
	stmts := parse(t, `print this;`)
	err := resolver.Resolve(stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "'this' outside")
}

func TestResolveSuperWithoutSuperclassErrors(t *testing.T) {
	stmts := parse(t, `class A { f() { super.f(); } }`)
	err := resolver.Resolve(stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no superclass")
}

func TestResolveClassInheritsFromItselfErrors(t *testing.T) {
	stmts := parse(t, `class A < A {}`)
	err := resolver.Resolve(stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "inherit from itself")
}

func TestResolveDuplicateLocalDeclarationErrors(t *testing.T) {
	stmts := parse(t, `{ var a = 1; var a = 2; }`)
	err := resolver.Resolve(stmts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Already a variable")
}

func TestResolveMethodBindsThisAndSuper(t *testing.T) {
	stmts := parse(t, `
	class A { f() { return 1; } }
	class B < A { f() { return super.f(); } g() { return this; } }
	`)
	require.NoError(t, resolver.Resolve(stmts))

	b := stmts[1].(*ast.ClassStmt)
	var fMethod, gMethod *ast.FunctionStmt
	for _, m := range b.Methods {
		switch m.Name.Lexeme {
		case "f":
			fMethod = m
		case "g":
			gMethod = m
		}
	}
	require.NotNil(t, fMethod)
	require.NotNil(t, gMethod)

	superCall := fMethod.Body[0].(*ast.ReturnStmt).Value.(*ast.Call)
	super := superCall.Callee.(*ast.Super)
	require.Equal(t, 2, super.Depth)

	this := gMethod.Body[0].(*ast.ReturnStmt).Value.(*ast.This)
	require.Equal(t, 1, this.Depth)
}
