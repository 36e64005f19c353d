// Package parser implements the recursive-descent parser that turns a token
// stream into an AST, with panic-mode error recovery at statement
// boundaries.
package parser

import (
	"errors"
	"fmt"

	"github.com/loxlang/lox/lang/ast"
	"github.com/loxlang/lox/lang/scanner"
	"github.com/loxlang/lox/lang/token"
)

// maxArgs is the limit on call arguments and function parameters, matching
// the 8-bit operand used by the reference bytecode VM this language is
// traditionally paired with; jlox/clox both enforce it for compatibility.
const maxArgs = 255

// errPanicMode is panicked by consume (and by primary) on a parse error and
// recovered at the nearest enclosing declaration, which then synchronizes to
// the next statement boundary and resumes parsing.
var errPanicMode = errors.New("panic")

type parser struct {
	toks    []token.Token
	current int
	errs    scanner.ErrorList
}

// Parse parses a complete program (a sequence of top-level declarations) from
// toks, which must end with an EOF token as produced by lang/scanner. The
// returned error, if non-nil, is a scanner.ErrorList.
func Parse(toks []token.Token) ([]ast.Stmt, error) {
	p := &parser{toks: toks}
	var stmts []ast.Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.errs.Sort()
	return stmts, p.errs.Err()
}

// ParseREPL parses a single line entered at the interactive prompt. If the
// line is a bare expression with no trailing statement syntax (no ';',
// exactly one expression followed by EOF), it is returned as expr with
// stmts nil, so the REPL can print its value even though the user did not
// write "print". Otherwise the line is parsed as ordinary top-level
// declarations and expr is nil.
func ParseREPL(toks []token.Token) (stmts []ast.Stmt, expr ast.Expr, err error) {
	tryExpr := &parser{toks: toks}
	e := tryExpr.tryExpressionOnly()
	if e != nil && len(tryExpr.errs) == 0 {
		return nil, e, nil
	}

	stmts, err = Parse(toks)
	return stmts, nil, err
}

// tryExpressionOnly attempts to parse the whole token stream as a single
// expression followed by EOF. It returns nil (leaving any partial errors in
// p.errs) if that is not what the input is.
func (p *parser) tryExpressionOnly() (result ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			result = nil
		}
	}()

	e := p.expression()
	if !p.check(token.EOF) {
		return nil
	}
	return e
}

func (p *parser) declaration() (s ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if r != errPanicMode {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var super *ast.Variable
	if p.match(token.LESS) {
		p.consume(token.IDENTIFIER, "Expect superclass name.")
		super = &ast.Variable{Name: p.previous(), Depth: ast.Unresolved}
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: super, Methods: methods}
}

func (p *parser) function(kind string) *ast.FunctionStmt {
	name := p.consume(token.IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	p.consume(token.LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind))

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.error(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}

	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: init}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars "for" into a "while" loop wrapped in a block, per
// spec: there is no dedicated For AST node.
func (p *parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var post ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		post = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if post != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: post}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Condition: cond, Body: body}

	if init != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}
	return &ast.IfStmt{Condition: cond, Then: then, Else: els}
}

func (p *parser) printStatement() ast.Stmt {
	v := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expression: v}
}

func (p *parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Condition: cond, Body: body}
}

func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *parser) expressionStatement() ast.Stmt {
	e := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expression: e}
}

func (p *parser) expression() ast.Expr { return p.assignment() }

func (p *parser) assignment() ast.Expr {
	e := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := e.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value, Depth: ast.Unresolved}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.error(equals, "Invalid assignment target.")
			return e
		}
	}
	return e
}

func (p *parser) or() ast.Expr {
	e := p.and()
	for p.match(token.OR) {
		op := p.previous()
		e = &ast.Logical{Left: e, Operator: op, Right: p.and()}
	}
	return e
}

func (p *parser) and() ast.Expr {
	e := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		e = &ast.Logical{Left: e, Operator: op, Right: p.equality()}
	}
	return e
}

func (p *parser) equality() ast.Expr {
	e := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		e = &ast.Binary{Left: e, Operator: op, Right: p.comparison()}
	}
	return e
}

func (p *parser) comparison() ast.Expr {
	e := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		e = &ast.Binary{Left: e, Operator: op, Right: p.term()}
	}
	return e
}

func (p *parser) term() ast.Expr {
	e := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		e = &ast.Binary{Left: e, Operator: op, Right: p.factor()}
	}
	return e
}

func (p *parser) factor() ast.Expr {
	e := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		e = &ast.Binary{Left: e, Operator: op, Right: p.unary()}
	}
	return e
}

func (p *parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		return &ast.Unary{Operator: op, Right: p.unary()}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	e := p.primary()
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			e = p.finishCall(e)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			e = &ast.Get{Object: e, Name: name}
		default:
			return e
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.error(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Value: nil}
	case p.match(token.NUMBER, token.STRING):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method, Depth: ast.Unresolved}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous(), Depth: ast.Unresolved}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous(), Depth: ast.Unresolved}
	case p.match(token.LEFT_PAREN):
		e := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Expression: e}
	default:
		p.error(p.peek(), "Expect expression.")
		panic(errPanicMode)
	}
}

func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(k token.Kind) bool {
	if p.atEnd() {
		return k == token.EOF
	}
	return p.peek().Kind == k
}

func (p *parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) atEnd() bool            { return p.peek().Kind == token.EOF }
func (p *parser) peek() token.Token      { return p.toks[p.current] }
func (p *parser) previous() token.Token  { return p.toks[p.current-1] }

func (p *parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.error(p.peek(), msg)
	panic(errPanicMode)
}

func (p *parser) error(tok token.Token, msg string) {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = "at end"
	}
	p.errs.Add(tok.Line, where, msg)
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so that subsequent declarations are parsed (and further errors,
// if any, reported) instead of cascading off a single mistake.
func (p *parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
