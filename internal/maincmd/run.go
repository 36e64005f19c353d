package maincmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/loxlang/lox/lang/ast"
	"github.com/loxlang/lox/lang/interp"
	"github.com/loxlang/lox/lang/parser"
	"github.com/loxlang/lox/lang/resolver"
	"github.com/loxlang/lox/lang/scanner"
	"github.com/mna/mainer"
)

// runFile reads path, runs it once, and returns the process exit code per
// the interpreter's exit code contract (0/65/70/74).
func runFile(stdio mainer.Stdio, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return 74
	}

	stmts, ok := scanAndParse(stdio, src)
	if !ok {
		return 65
	}
	if err := resolver.Resolve(stmts); err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return 65
	}

	in := interp.New(stdio.Stdout)
	if err := in.Interpret(stmts); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return 70
	}
	return 0
}

func scanAndParse(stdio mainer.Stdio, src []byte) ([]ast.Stmt, bool) {
	toks, err := scanner.New(src).ScanTokens()
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return nil, false
	}
	stmts, err := parser.Parse(toks)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return nil, false
	}
	return stmts, true
}

// runREPL reads one line at a time from stdio.Stdin, running each as its own
// program fragment against a persistent interpreter and environment. EOF
// (Ctrl-D) ends the loop.
func runREPL(stdio mainer.Stdio) {
	in := interp.New(stdio.Stdout)
	sc := bufio.NewScanner(stdio.Stdin)

	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !sc.Scan() {
			fmt.Fprintln(stdio.Stdout)
			return
		}

		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		toks, err := scanner.New([]byte(line)).ScanTokens()
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			continue
		}

		stmts, expr, err := parser.ParseREPL(toks)
		if err != nil {
			scanner.PrintError(stdio.Stderr, err)
			continue
		}

		if expr != nil {
			if err := resolver.Resolve([]ast.Stmt{&ast.ExpressionStmt{Expression: expr}}); err != nil {
				scanner.PrintError(stdio.Stderr, err)
				continue
			}
			v, err := in.Eval(expr)
			if err != nil {
				fmt.Fprintln(stdio.Stderr, err)
				continue
			}
			fmt.Fprintln(stdio.Stdout, interp.Stringify(v))
			continue
		}

		if err := resolver.Resolve(stmts); err != nil {
			scanner.PrintError(stdio.Stderr, err)
			continue
		}
		if err := in.Interpret(stmts); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			continue
		}
	}
}

func runTokenize(stdio mainer.Stdio, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return 74
	}
	toks, err := scanner.New(src).ScanTokens()
	for _, tok := range toks {
		fmt.Fprintln(stdio.Stdout, tok)
	}
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return 65
	}
	return 0
}

func runParse(stdio mainer.Stdio, path string, resolve bool) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return 74
	}

	stmts, ok := scanAndParse(stdio, src)
	if !ok {
		return 65
	}

	if resolve {
		if err := resolver.Resolve(stmts); err != nil {
			scanner.PrintError(stdio.Stderr, err)
			return 65
		}
	}

	for _, s := range stmts {
		fmt.Fprintf(stdio.Stdout, "%s\n", ast.Dump(s))
	}
	return 0
}
