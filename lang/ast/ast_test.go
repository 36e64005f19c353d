package ast

import (
	"testing"

	"github.com/loxlang/lox/lang/token"
	"github.com/stretchr/testify/require"
)

func name(lexeme string) token.Token {
	return token.Token{Kind: token.IDENTIFIER, Lexeme: lexeme, Line: 1}
}

func TestDumpBinaryExpression(t *testing.T) {
	e := &Binary{
		Left:     &Literal{Value: 1.0},
		Operator: token.Token{Kind: token.PLUS, Lexeme: "+", Line: 1},
		Right:    &Literal{Value: 2.0},
	}
	require.Equal(t, "(+ 1 2)", dumpExpr(e))
}

func TestDumpVariableShowsResolverDepth(t *testing.T) {
	v := &Variable{Name: name("x"), Depth: Unresolved}
	require.Equal(t, "x@-1", dumpExpr(v))

	v.Depth = 2
	require.Equal(t, "x@2", dumpExpr(v))
}

func TestDumpClassWithSuperclassAndMethods(t *testing.T) {
	c := &ClassStmt{
		Name:       name("Dog"),
		Superclass: &Variable{Name: name("Animal"), Depth: Unresolved},
		Methods: []*FunctionStmt{
			{Name: name("speak"), Body: []Stmt{&ReturnStmt{}}},
		},
	}
	require.Equal(t, "(class Dog < Animal (fun speak () (return)))", Dump(c))
}

func TestDumpIfWithoutElse(t *testing.T) {
	s := &IfStmt{
		Condition: &Literal{Value: true},
		Then:      &PrintStmt{Expression: &Literal{Value: "hi"}},
	}
	require.Equal(t, `(if true (print hi))`, Dump(s))
}
