package ast

import "fmt"

// Dump renders s as an s-expression-like string for the "--parse" and
// "--resolve" debug flags. It is a plain recursive printer, not a
// general Visitor: Lox's AST is small and flat enough that a type switch is
// clearer than a registered-visitor pattern.
func Dump(s Stmt) string {
	return dumpStmt(s)
}

func dumpStmt(s Stmt) string {
	switch s := s.(type) {
	case *ExpressionStmt:
		return fmt.Sprintf("(expr %s)", dumpExpr(s.Expression))
	case *PrintStmt:
		return fmt.Sprintf("(print %s)", dumpExpr(s.Expression))
	case *VarStmt:
		if s.Initializer == nil {
			return fmt.Sprintf("(var %s)", s.Name.Lexeme)
		}
		return fmt.Sprintf("(var %s %s)", s.Name.Lexeme, dumpExpr(s.Initializer))
	case *BlockStmt:
		out := "(block"
		for _, st := range s.Statements {
			out += " " + dumpStmt(st)
		}
		return out + ")"
	case *IfStmt:
		if s.Else == nil {
			return fmt.Sprintf("(if %s %s)", dumpExpr(s.Condition), dumpStmt(s.Then))
		}
		return fmt.Sprintf("(if %s %s %s)", dumpExpr(s.Condition), dumpStmt(s.Then), dumpStmt(s.Else))
	case *WhileStmt:
		return fmt.Sprintf("(while %s %s)", dumpExpr(s.Condition), dumpStmt(s.Body))
	case *FunctionStmt:
		out := fmt.Sprintf("(fun %s (", s.Name.Lexeme)
		for i, p := range s.Params {
			if i > 0 {
				out += " "
			}
			out += p.Lexeme
		}
		out += ")"
		for _, st := range s.Body {
			out += " " + dumpStmt(st)
		}
		return out + ")"
	case *ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return fmt.Sprintf("(return %s)", dumpExpr(s.Value))
	case *ClassStmt:
		out := fmt.Sprintf("(class %s", s.Name.Lexeme)
		if s.Superclass != nil {
			out += " < " + s.Superclass.Name.Lexeme
		}
		for _, m := range s.Methods {
			out += " " + dumpStmt(m)
		}
		return out + ")"
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}

func dumpExpr(e Expr) string {
	switch e := e.(type) {
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		return fmt.Sprintf("%v", e.Value)
	case *Grouping:
		return fmt.Sprintf("(group %s)", dumpExpr(e.Expression))
	case *Unary:
		return fmt.Sprintf("(%s %s)", e.Operator.Lexeme, dumpExpr(e.Right))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, dumpExpr(e.Left), dumpExpr(e.Right))
	case *Logical:
		return fmt.Sprintf("(%s %s %s)", e.Operator.Lexeme, dumpExpr(e.Left), dumpExpr(e.Right))
	case *Variable:
		return fmt.Sprintf("%s@%d", e.Name.Lexeme, e.Depth)
	case *Assign:
		return fmt.Sprintf("(= %s@%d %s)", e.Name.Lexeme, e.Depth, dumpExpr(e.Value))
	case *Call:
		out := fmt.Sprintf("(call %s", dumpExpr(e.Callee))
		for _, a := range e.Args {
			out += " " + dumpExpr(a)
		}
		return out + ")"
	case *Get:
		return fmt.Sprintf("(. %s %s)", dumpExpr(e.Object), e.Name.Lexeme)
	case *Set:
		return fmt.Sprintf("(.= %s %s %s)", dumpExpr(e.Object), e.Name.Lexeme, dumpExpr(e.Value))
	case *This:
		return fmt.Sprintf("this@%d", e.Depth)
	case *Super:
		return fmt.Sprintf("(super@%d %s)", e.Depth, e.Method.Lexeme)
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}
