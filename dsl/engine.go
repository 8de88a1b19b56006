package dsl

import (
	"fmt"

	"github.com/liamcoop/decisions/binding"
	"github.com/liamcoop/decisions/engine"
)

// StaticMethod declares a binding to a plain function
type StaticMethod struct {
	Name   string
	Method any
}

// InstanceMethod declares a binding to a method expression such as
// (*Rates).Apply. Instance is called each time the engine invokes the
// binding, never while the engine is being configured.
type InstanceMethod struct {
	Name     string
	Method   any
	Instance func() any
}

type methodDecl struct {
	static   *StaticMethod
	instance *InstanceMethod
}

// MethodBindingScope collects method bindings in declaration order
type MethodBindingScope struct {
	methods []methodDecl
}

// StaticMethod declares a binding to a plain function
func (s *MethodBindingScope) StaticMethod(block func(*StaticMethod)) {
	m := &StaticMethod{}
	if block != nil {
		block(m)
	}
	s.methods = append(s.methods, methodDecl{static: m})
}

// InstanceMethod declares a binding to a method resolved on a lazily supplied instance
func (s *MethodBindingScope) InstanceMethod(block func(*InstanceMethod)) {
	m := &InstanceMethod{}
	if block != nil {
		block(m)
	}
	s.methods = append(s.methods, methodDecl{instance: m})
}

// Engine runs block against a new scope and configures an engine with the
// bindings it declares. Bindings sharing a name are all passed on; the engine
// keeps the last one.
func Engine(block func(*MethodBindingScope), opts ...engine.Option) (*engine.Engine, error) {
	scope := &MethodBindingScope{}
	if block != nil {
		block(scope)
	}

	bindings, err := scope.build()
	if err != nil {
		return nil, err
	}

	return engine.NewConfiguration(opts...).
		MethodBindings(bindings).
		Configure()
}

func (s *MethodBindingScope) build() ([]binding.MethodBinding, error) {
	bindings := make([]binding.MethodBinding, 0, len(s.methods))
	for i, m := range s.methods {
		var (
			b   binding.MethodBinding
			err error
		)
		if m.static != nil {
			b, err = binding.NewStatic(m.static.Name, m.static.Method)
		} else {
			b, err = binding.NewInstance(m.instance.Name, m.instance.Method, m.instance.Instance)
		}
		if err != nil {
			return nil, fmt.Errorf("methods[%d]: %w", i, err)
		}
		bindings = append(bindings, b)
	}
	return bindings, nil
}
