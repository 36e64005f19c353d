package interp_test

import (
	"bytes"
	"testing"

	"github.com/loxlang/lox/lang/interp"
	"github.com/loxlang/lox/lang/parser"
	"github.com/loxlang/lox/lang/resolver"
	"github.com/loxlang/lox/lang/scanner"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) string {
	t.Helper()
	toks, err := scanner.New([]byte(src)).ScanTokens()
	require.NoError(t, err)
	stmts, err := parser.Parse(toks)
	require.NoError(t, err)
	require.NoError(t, resolver.Resolve(stmts))

	var out bytes.Buffer
	in := interp.New(&out)
	require.NoError(t, in.Interpret(stmts))
	return out.String()
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	toks, err := scanner.New([]byte(src)).ScanTokens()
	require.NoError(t, err)
	stmts, err := parser.Parse(toks)
	require.NoError(t, err)
	require.NoError(t, resolver.Resolve(stmts))

	var out bytes.Buffer
	in := interp.New(&out)
	return in.Interpret(stmts)
}

func TestArithmeticAndPrint(t *testing.T) {
	require.Equal(t, "3\n", run(t, `print 1 + 2;`))
	require.Equal(t, "2\n", run(t, `print 4 / 2;`))
	require.Equal(t, "-1\n", run(t, `print 1 - 2;`))
}

func TestStringConcatenation(t *testing.T) {
	require.Equal(t, "helloworld\n", run(t, `print "hello" + "world";`))
}

func TestStringPlusNumberIsRuntimeError(t *testing.T) {
	err := runErr(t, `print "hello" + 1;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Operands must be two numbers or two strings")
}

func TestTruthiness(t *testing.T) {
	require.Equal(t, "true\n", run(t, `print !nil;`))
	require.Equal(t, "false\n", run(t, `print !0;`))
	require.Equal(t, "false\n", run(t, `print !"";`))
}

func TestVariablesAndAssignment(t *testing.T) {
	require.Equal(t, "2\n", run(t, `var x = 1; x = x + 1; print x;`))
}

func TestBlockScoping(t *testing.T) {
	out := run(t, `
	var x = "global";
	{
		var x = "local";
		print x;
	}
	print x;
	`)
	require.Equal(t, "local\nglobal\n", out)
}

func TestWhileLoop(t *testing.T) {
	out := run(t, `
	var i = 0;
	while (i < 3) {
		print i;
		i = i + 1;
	}
	`)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestForLoopDesugaring(t *testing.T) {
	out := run(t, `
	for (var i = 0; i < 3; i = i + 1) {
		print i;
	}
	`)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestClosures(t *testing.T) {
	out := run(t, `
	fun makeCounter() {
		var i = 0;
		fun counter() {
			i = i + 1;
			return i;
		}
		return counter;
	}
	var counter = makeCounter();
	print counter();
	print counter();
	`)
	require.Equal(t, "1\n2\n", out)
}

func TestClassesAndMethods(t *testing.T) {
	out := run(t, `
	class Greeter {
		init(name) {
			this.name = name;
		}
		greet() {
			print "Hello, " + this.name;
		}
	}
	var g = Greeter("world");
	g.greet();
	`)
	require.Equal(t, "Hello, world\n", out)
}

func TestInheritanceAndSuper(t *testing.T) {
	out := run(t, `
	class Animal {
		speak() {
			print "...";
		}
	}
	class Dog < Animal {
		speak() {
			super.speak();
			print "Woof";
		}
	}
	Dog().speak();
	`)
	require.Equal(t, "...\nWoof\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	err := runErr(t, `print x;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable")
}

func TestCallArityMismatchIsRuntimeError(t *testing.T) {
	err := runErr(t, `fun f(a, b) { return a + b; } f(1);`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Expected 2 arguments but got 1")
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	err := runErr(t, `var x = 1; x();`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can only call functions and classes")
}

func TestFieldAccessOnNonInstanceIsRuntimeError(t *testing.T) {
	err := runErr(t, `var x = 1; print x.field;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Only instances have properties")
}
