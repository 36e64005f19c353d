package scanner

import (
	"fmt"
	"io"
	"sort"
)

// Error is a single diagnostic produced by the scanner, parser or resolver.
// Where, if non-empty, is rendered as "at '<lexeme>'" or "at end"; an empty
// Where renders no location qualifier at all (used for scanner errors that
// have no surrounding token context).
type Error struct {
	Line  int
	Where string
	Msg   string
}

func (e *Error) Error() string {
	if e.Where != "" {
		return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Msg)
	}
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Msg)
}

// ErrorList is a list of *Error, in the shape of go/scanner.ErrorList: errors
// accumulate across an entire scan/parse/resolve pass instead of aborting on
// the first one.
type ErrorList []*Error

// Add appends a new diagnostic to the list.
func (p *ErrorList) Add(line int, where, msg string) {
	*p = append(*p, &Error{Line: line, Where: where, Msg: msg})
}

// Reset empties the list.
func (p *ErrorList) Reset() { *p = (*p)[0:0] }

func (p ErrorList) Len() int      { return len(p) }
func (p ErrorList) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
func (p ErrorList) Less(i, j int) bool {
	if p[i].Line != p[j].Line {
		return p[i].Line < p[j].Line
	}
	return p[i].Msg < p[j].Msg
}

// Sort orders the list by line, then by message.
func (p ErrorList) Sort() { sort.Sort(p) }

// Error implements the error interface, summarizing the whole list.
func (p ErrorList) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error equivalent to the list, or nil if the list is empty.
func (p ErrorList) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// PrintError prints each error in err, one per line, to w. If err is not an
// ErrorList it is printed as-is.
func PrintError(w io.Writer, err error) {
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintf(w, "%s\n", e)
		}
		return
	}
	if err != nil {
		fmt.Fprintf(w, "%s\n", err)
	}
}
