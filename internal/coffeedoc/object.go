package coffeedoc

import "fmt"

// Object is a documented record. It is implemented only by *Module, *Class
// and Callable.
type Object interface {
	Kind() Kind
	ObjectName() string
	Doc() string
	String() string
	object()
}

var (
	_ Object = (*Module)(nil)
	_ Object = (*Class)(nil)
	_ Object = Callable{}
)

func (m *Module) Kind() Kind { return KindModule }
func (m *Module) ObjectName() string { return m.Name }
func (m *Module) Doc() string { return m.Docstring }
func (m *Module) String() string { return repr(m) }
func (*Module) object() {}

func (c *Class) Kind() Kind { return KindClass }
func (c *Class) ObjectName() string { return c.Name }
func (c *Class) Doc() string { return c.Docstring }
func (c *Class) String() string { return repr(c) }
func (*Class) object() {}

// Callable is a Function tagged with the kind of list it was found in:
// function, method or staticmethod.
type Callable struct {
	kind Kind
	*Function
}

// NewCallable tags fn with kind. It panics if kind is not a callable kind.
func NewCallable(kind Kind, fn *Function) Callable {
	switch kind {
	case KindFunction, KindMethod, KindStaticMethod:
	default:
		panic(fmt.Sprintf("coffeedoc: %s is not a callable kind", kind))
	}
	return Callable{kind: kind, Function: fn}
}

func (c Callable) Kind() Kind { return c.kind }
func (c Callable) ObjectName() string { return c.Function.Name }
func (c Callable) Doc() string { return c.Docstring }
func (c Callable) String() string { return repr(c) }
func (Callable) object() {}

// Signature formats the parameter list as "(a, b)".
func (c Callable) Signature() string {
	return Signature(c.Params)
}

func repr(o Object) string {
	return fmt.Sprintf("<coffee %s %s>", o.Kind(), o.ObjectName())
}
