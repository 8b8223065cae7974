package mixin

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"github.com/hashicorp/go-multierror"
)

type (
	// Module is a named set of methods sharing private state
	// once applied to a receiver.
	// A Module holds no per-instance state and can be applied
	// to any number of receivers.
	Module struct {
		name    string
		names   []string
		methods map[string]Method
	}

	// ModuleBuilder defines the methods of a Module.
	ModuleBuilder struct {
		module Module
	}
)


// Module

func (m *Module) Name() string {
	return m.name
}

// Names returns the method names in definition order.
func (m *Module) Names() []string {
	return append([]string(nil), m.names...)
}

// Lookup returns the body of the named method.
func (m *Module) Lookup(name string) (Method, bool) {
	method, ok := m.methods[name]
	return method, ok
}

func (m *Module) Len() int {
	return len(m.names)
}

// Validate checks each entry maps a name to a callable.
func (m *Module) Validate() (err error) {
	if m == nil {
		return &InvalidModuleError{Reason: errors.New("module is nil")}
	}
	for _, name := range m.names {
		if name == "" {
			err = multierror.Append(err, errors.New("method name is empty"))
		}
		if m.methods[name] == nil {
			err = multierror.Append(err, fmt.Errorf("method %q has no body", name))
		}
	}
	if err != nil {
		return &InvalidModuleError{Module: m.name, Reason: err}
	}
	return nil
}

func (m *Module) String() string {
	return fmt.Sprintf("%s%v", m.name, m.names)
}


// ModuleBuilder

// Method adds or replaces the named method.
func (b *ModuleBuilder) Method(
	name   string,
	method Method,
) *ModuleBuilder {
	m := &b.module
	if _, ok := m.methods[name]; !ok {
		m.names = append(m.names, name)
	}
	if m.methods == nil {
		m.methods = make(map[string]Method)
	}
	m.methods[name] = method
	return b
}

// Build returns the defined Module.
// The builder can keep defining methods without
// affecting Module's previously built.
func (b *ModuleBuilder) Build() *Module {
	m := b.module
	m.names = append([]string(nil), m.names...)
	m.methods = maps.Clone(m.methods)
	return &m
}


// NewModule starts the definition of a named Module.
func NewModule(name string) *ModuleBuilder {
	return &ModuleBuilder{module: Module{name: name}}
}

// ModuleOf creates a Module from a mapping of method names.
// Methods are ordered by name.
func ModuleOf(name string, methods map[string]Method) *Module {
	names := make([]string, 0, len(methods))
	for n := range methods {
		names = append(names, n)
	}
	sort.Strings(names)
	builder := NewModule(name)
	for _, n := range names {
		builder.Method(n, methods[n])
	}
	return builder.Build()
}
