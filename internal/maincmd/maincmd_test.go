package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loxlang/lox/internal/maincmd"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func stdio(in string) (mainer.Stdio, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return mainer.Stdio{
		Stdin:  strings.NewReader(in),
		Stdout: &out,
		Stderr: &errOut,
	}, &out, &errOut
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunFileSuccess(t *testing.T) {
	path := writeScript(t, `print 1 + 2;`)
	io, out, _ := stdio("")
	c := maincmd.Cmd{}
	code := c.Main([]string{"lox", path}, io)
	require.Equal(t, 0, int(code))
	require.Equal(t, "3\n", out.String())
}

func TestRunFileParseErrorExits65(t *testing.T) {
	path := writeScript(t, `print ;`)
	io, _, errOut := stdio("")
	c := maincmd.Cmd{}
	code := c.Main([]string{"lox", path}, io)
	require.Equal(t, 65, int(code))
	require.Contains(t, errOut.String(), "Error")
}

func TestRunFileRuntimeErrorExits70(t *testing.T) {
	path := writeScript(t, `print 1 + "a";`)
	io, _, errOut := stdio("")
	c := maincmd.Cmd{}
	code := c.Main([]string{"lox", path}, io)
	require.Equal(t, 70, int(code))
	require.Contains(t, errOut.String(), "Operands must be two numbers or two strings")
}

func TestRunFileMissingFileExits74(t *testing.T) {
	io, _, errOut := stdio("")
	c := maincmd.Cmd{}
	code := c.Main([]string{"lox", "/nonexistent/path/to/script.lox"}, io)
	require.Equal(t, 74, int(code))
	require.NotEmpty(t, errOut.String())
}

func TestREPLBareExpressionPrintsValue(t *testing.T) {
	io, out, _ := stdio("1 + 2\n")
	c := maincmd.Cmd{}
	code := c.Main([]string{"lox"}, io)
	require.Equal(t, 0, int(code))
	require.Contains(t, out.String(), "3\n")
}

func TestREPLStatementRunsSilently(t *testing.T) {
	io, out, _ := stdio("var x = 1;\nprint x;\n")
	c := maincmd.Cmd{}
	code := c.Main([]string{"lox"}, io)
	require.Equal(t, 0, int(code))
	require.Contains(t, out.String(), "1\n")
	require.NotContains(t, out.String(), "nil")
}

func TestHelpFlag(t *testing.T) {
	io, out, _ := stdio("")
	c := maincmd.Cmd{}
	code := c.Main([]string{"lox", "-h"}, io)
	require.Equal(t, 0, int(code))
	require.Contains(t, out.String(), "usage:")
}
