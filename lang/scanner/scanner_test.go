package scanner_test

import (
	"testing"

	"github.com/loxlang/lox/lang/scanner"
	"github.com/loxlang/lox/lang/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanTokensBasic(t *testing.T) {
	toks, err := scanner.New([]byte("var x = 1 + 2;")).ScanTokens()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.VAR, token.IDENTIFIER, token.EQUAL, token.NUMBER,
		token.PLUS, token.NUMBER, token.SEMICOLON, token.EOF,
	}, kinds(toks))
}

func TestScanTokensStringAndComment(t *testing.T) {
	src := "// a comment\nprint \"hello\";"
	toks, err := scanner.New([]byte(src)).ScanTokens()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.PRINT, token.STRING, token.SEMICOLON, token.EOF}, kinds(toks))
	require.Equal(t, 2, toks[0].Line)
	require.Equal(t, "hello", toks[1].Literal)
}

func TestScanTokensMultiLineString(t *testing.T) {
	src := "\"a\nb\";"
	toks, err := scanner.New([]byte(src)).ScanTokens()
	require.NoError(t, err)
	require.Equal(t, "a\nb", toks[0].Literal)
}

func TestScanTokensNumber(t *testing.T) {
	toks, err := scanner.New([]byte("1234; 12.34;")).ScanTokens()
	require.NoError(t, err)
	require.Equal(t, 1234.0, toks[0].Literal)
	require.Equal(t, 12.34, toks[2].Literal)
}

func TestScanTokensUnterminatedString(t *testing.T) {
	_, err := scanner.New([]byte(`"oops`)).ScanTokens()
	require.Error(t, err)
	var list scanner.ErrorList
	require.ErrorAs(t, err, &list)
	require.Len(t, list, 1)
	require.Contains(t, list[0].Error(), "Unterminated string")
}

func TestScanTokensUnexpectedCharacterContinues(t *testing.T) {
	toks, err := scanner.New([]byte("@ print 1;")).ScanTokens()
	require.Error(t, err)
	require.Equal(t, []token.Kind{token.PRINT, token.NUMBER, token.SEMICOLON, token.EOF}, kinds(toks))
}

func TestScanTokensKeywordsVsIdentifiers(t *testing.T) {
	toks, err := scanner.New([]byte("class classy")).ScanTokens()
	require.NoError(t, err)
	require.Equal(t, token.CLASS, toks[0].Kind)
	require.Equal(t, token.IDENTIFIER, toks[1].Kind)
}
