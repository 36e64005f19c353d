// Package scanner implements the Lox lexer: it turns source text into a
// stream of tokens by greedy longest match. It also hosts the Error/ErrorList
// types shared by the scanner, parser and resolver stages (see Error).
package scanner

import (
	"fmt"
	"strconv"

	"github.com/loxlang/lox/lang/token"
)

// Scanner tokenizes a single source buffer.
type Scanner struct {
	src []byte
	err ErrorList

	start, current int
	line           int
}

// New returns a Scanner ready to tokenize src.
func New(src []byte) *Scanner {
	return &Scanner{src: src, line: 1}
}

// ScanTokens scans the whole source buffer and returns the resulting tokens,
// always terminated by an EOF token. The returned error, if non-nil, is an
// ErrorList; scanning never stops early, it skips the offending run and keeps
// going so that later, unrelated errors are still reported.
func (s *Scanner) ScanTokens() ([]token.Token, error) {
	var toks []token.Token
	for !s.atEnd() {
		s.start = s.current
		if tok, ok := s.scanToken(); ok {
			toks = append(toks, tok)
		}
	}
	toks = append(toks, token.Token{Kind: token.EOF, Lexeme: "", Line: s.line})
	s.err.Sort()
	return toks, s.err.Err()
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.src[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) lexeme() string { return string(s.src[s.start:s.current]) }

func (s *Scanner) make(kind token.Kind) (token.Token, bool) {
	return token.Token{Kind: kind, Lexeme: s.lexeme(), Line: s.line}, true
}

func (s *Scanner) makeLiteral(kind token.Kind, literal any) (token.Token, bool) {
	return token.Token{Kind: kind, Lexeme: s.lexeme(), Literal: literal, Line: s.line}, true
}

func (s *Scanner) errorf(format string, args ...any) {
	s.err.Add(s.line, "", fmt.Sprintf(format, args...))
}

func (s *Scanner) scanToken() (token.Token, bool) {
	c := s.advance()
	switch c {
	case '(':
		return s.make(token.LEFT_PAREN)
	case ')':
		return s.make(token.RIGHT_PAREN)
	case '{':
		return s.make(token.LEFT_BRACE)
	case '}':
		return s.make(token.RIGHT_BRACE)
	case ',':
		return s.make(token.COMMA)
	case '.':
		return s.make(token.DOT)
	case '-':
		return s.make(token.MINUS)
	case '+':
		return s.make(token.PLUS)
	case ';':
		return s.make(token.SEMICOLON)
	case '*':
		return s.make(token.STAR)
	case '!':
		if s.match('=') {
			return s.make(token.BANG_EQUAL)
		}
		return s.make(token.BANG)
	case '=':
		if s.match('=') {
			return s.make(token.EQUAL_EQUAL)
		}
		return s.make(token.EQUAL)
	case '<':
		if s.match('=') {
			return s.make(token.LESS_EQUAL)
		}
		return s.make(token.LESS)
	case '>':
		if s.match('=') {
			return s.make(token.GREATER_EQUAL)
		}
		return s.make(token.GREATER)
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
			return token.Token{}, false
		}
		return s.make(token.SLASH)
	case ' ', '\r', '\t':
		return token.Token{}, false
	case '\n':
		s.line++
		return token.Token{}, false
	case '"':
		return s.scanString()
	default:
		switch {
		case isDigit(c):
			return s.scanNumber()
		case isAlpha(c):
			return s.scanIdentifier()
		default:
			s.errorf("Unexpected character.")
			return token.Token{}, false
		}
	}
}

func (s *Scanner) scanString() (token.Token, bool) {
	startLine := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		s.err.Add(startLine, "", "Unterminated string.")
		return token.Token{}, false
	}

	s.advance() // the closing quote
	value := string(s.src[s.start+1 : s.current-1])
	return token.Token{Kind: token.STRING, Lexeme: s.lexeme(), Literal: value, Line: startLine}, true
}

func (s *Scanner) scanNumber() (token.Token, bool) {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	value, err := strconv.ParseFloat(s.lexeme(), 64)
	if err != nil {
		s.errorf("Invalid number literal.")
		return token.Token{}, false
	}
	return s.makeLiteral(token.NUMBER, value)
}

func (s *Scanner) scanIdentifier() (token.Token, bool) {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	return s.make(token.LookupIdent(s.lexeme()))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
