package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		require.NotEmpty(t, k.String())
	}
}

func TestLookupIdent(t *testing.T) {
	for k := Kind(0); k < maxKind; k++ {
		expect := k >= AND && k <= WHILE
		val := LookupIdent(k.String())
		if expect {
			require.Equal(t, k, val)
		} else {
			require.Equal(t, IDENTIFIER, val)
		}
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: NUMBER, Lexeme: "3.14", Literal: 3.14, Line: 1}
	require.Contains(t, tok.String(), "3.14")

	tok = Token{Kind: IDENTIFIER, Lexeme: "x", Line: 1}
	require.Contains(t, tok.String(), "x")
}
