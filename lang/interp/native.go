package interp

import "time"

// native wraps a Go function as a Lox-callable native function, such as the
// global "clock".
type native struct {
	name  string
	arity int
	fn    func(args []Value) (Value, error)
}

var _ Callable = (*native)(nil)

func (n *native) String() string { return "<native fn " + n.name + ">" }
func (n *native) Type() string   { return "function" }
func (n *native) Truth() bool    { return true }
func (n *native) Arity() int     { return n.arity }

func (n *native) Call(_ *Interp, args []Value) (Value, error) {
	return n.fn(args)
}

func defineGlobals(env *Environment) {
	env.Define("clock", &native{
		name:  "clock",
		arity: 0,
		fn: func(args []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		},
	})
}
