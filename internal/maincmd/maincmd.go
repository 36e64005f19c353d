// Package maincmd implements the "lox" command-line tool: a REPL, a
// file-mode interpreter, and a few debug flags that expose the
// scanner/parser/resolver stages individually.
package maincmd

import (
	"fmt"

	"github.com/mna/mainer"
)

const binName = "lox"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [script]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [script]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the Lox programming language.

With no script, starts an interactive REPL: each line is scanned, parsed,
resolved and evaluated as its own program fragment; a line containing only
an expression (no trailing ';') has its value printed.

With a script argument, reads it as UTF-8 source and runs it once.
Exit codes: 0 success, 65 scan/parse/resolve errors, 70 runtime error,
74 I/O error reading the script.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --tokenize                Print the token stream for script instead
                                 of running it.
       --parse                   Print the parsed syntax tree for script
                                 instead of running it.
       --resolve                 Print the parsed syntax tree for script,
                                 annotated with resolver scope depths,
                                 instead of running it.
`, binName)
)

// Cmd is the entry point invoked from cmd/lox/main.go.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Tokenize bool `flag:"tokenize"`
	Parse    bool `flag:"parse"`
	Resolve  bool `flag:"resolve"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) > 1 {
		return fmt.Errorf("too many arguments: %s", shortUsage)
	}
	if (c.Tokenize || c.Parse || c.Resolve) && len(c.args) != 1 {
		return fmt.Errorf("--tokenize/--parse/--resolve require a script argument")
	}
	return nil
}

// Main runs the command and returns the process exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.ExitCode(64)
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.ExitCode(0)
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.ExitCode(0)
	}

	switch {
	case c.Tokenize:
		return mainer.ExitCode(runTokenize(stdio, c.args[0]))
	case c.Parse:
		return mainer.ExitCode(runParse(stdio, c.args[0], false))
	case c.Resolve:
		return mainer.ExitCode(runParse(stdio, c.args[0], true))
	case len(c.args) == 0:
		runREPL(stdio)
		return mainer.ExitCode(0)
	default:
		return mainer.ExitCode(runFile(stdio, c.args[0]))
	}
}
