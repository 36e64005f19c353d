package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/loxlang/lox/lang/token"
)

// Instance is an instance of a Lox class: a bag of fields plus a link to the
// class that supplies its methods.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, Value]
}

var _ HasFields = (*Instance)(nil)

// NewInstance returns a fresh, fieldless instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: swiss.NewMap[string, Value](uint32(4))}
}

func (i *Instance) String() string { return i.class.name + " instance" }
func (i *Instance) Type() string   { return "instance" }
func (i *Instance) Truth() bool    { return true }

func (i *Instance) GetField(name string) (Value, bool) {
	if v, ok := i.fields.Get(name); ok {
		return v, true
	}
	return nil, false
}

func (i *Instance) SetField(name string, v Value) { i.fields.Put(name, v) }

// get implements the "obj.name" expression: a field shadows a method of the
// same name, and a found method is bound to this instance before being
// returned.
func (i *Instance) get(name token.Token) (Value, error) {
	if v, ok := i.GetField(name.Lexeme); ok {
		return v, nil
	}
	if m, ok := i.class.FindMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, &RuntimeError{Token: name, Msg: fmt.Sprintf("Undefined property '%s'.", name.Lexeme)}
}
