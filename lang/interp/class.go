package interp

import "github.com/dolthub/swiss"

// Class is a Lox class: its own methods plus, if it extends another class, a
// link to its superclass for method inheritance.
type Class struct {
	name       string
	superclass *Class
	methods    *swiss.Map[string, *Function]
}

var _ Callable = (*Class)(nil)

// NewClass returns a class named name with the given methods, keyed by
// method name, and optional superclass.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	m := swiss.NewMap[string, *Function](uint32(len(methods)))
	for k, v := range methods {
		m.Put(k, v)
	}
	return &Class{name: name, superclass: superclass, methods: m}
}

func (c *Class) String() string { return c.name }
func (c *Class) Type() string   { return "class" }
func (c *Class) Truth() bool    { return true }

// FindMethod looks up name on c, then walks up the superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.methods.Get(name); ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of "init", declared on the class or inherited from a
// superclass, or 0 if there is none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, running its initializer if it has one.
func (c *Class) Call(in *Interp, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
