package interp

import "github.com/dolthub/swiss"

// Environment is one lexical scope's variable table, chained to its
// enclosing scope. It is backed by a swiss.Map rather than a built-in Go
// map, matching how the rest of this codebase stores name-keyed tables.
type Environment struct {
	vars   *swiss.Map[string, Value]
	parent *Environment
}

// NewEnvironment returns an environment nested inside parent, or a top-level
// environment if parent is nil.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: swiss.NewMap[string, Value](uint32(8)), parent: parent}
}

// Define binds name to v in this environment, shadowing any binding of the
// same name in an enclosing scope. Lox allows redefining a name in the same
// scope, so this always succeeds.
func (e *Environment) Define(name string, v Value) {
	e.vars.Put(name, v)
}

// Get looks up name in this environment and its ancestors.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Assign sets an existing binding of name to v, searching this environment
// and its ancestors; it reports whether such a binding was found.
func (e *Environment) Assign(name string, v Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars.Get(name); ok {
			env.vars.Put(name, v)
			return true
		}
	}
	return false
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name exactly distance scopes up, as computed by the resolver.
func (e *Environment) GetAt(distance int, name string) Value {
	v, _ := e.ancestor(distance).vars.Get(name)
	return v
}

// AssignAt writes name exactly distance scopes up, as computed by the
// resolver.
func (e *Environment) AssignAt(distance int, name string, v Value) {
	e.ancestor(distance).vars.Put(name, v)
}
