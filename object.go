package mixin

import (
	"fmt"
	"sync"
	"sync/atomic"
)

type (
	// Method is the uniform metaphor for behavior.
	// this is the calling context the method observes.
	Method func(this *Object, args ...any) (any, error)

	// Attributes control how a property is seen and changed.
	Attributes uint8

	// Object is a dynamic property bag with an optional
	// prototype it delegates lookups to.
	// Objects are safe for concurrent use.
	Object struct {
		proto    *Object
		lock     sync.RWMutex
		names    []string
		props    map[string]*property
		slotLock sync.Mutex
		slots    atomic.Pointer[map[SlotKey]*Object]
		apps     atomic.Pointer[[]Application]
	}

	property struct {
		value any
		attrs Attributes
	}
)

const (
	Enumerable Attributes = 1 << iota
	Writable

	DefaultAttributes = Enumerable | Writable
)


// Attributes

func (a Attributes) Enumerable() bool {
	return a&Enumerable != 0
}

func (a Attributes) Writable() bool {
	return a&Writable != 0
}


// Object

// Prototype returns the object lookups are delegated to.
func (o *Object) Prototype() *Object {
	return o.proto
}

// IsPrototypeOf reports if o appears in the prototype chain of other.
func (o *Object) IsPrototypeOf(other *Object) bool {
	if o == nil || other == nil {
		return false
	}
	for p := other.proto; p != nil; p = p.proto {
		if p == o {
			return true
		}
	}
	return false
}

// GetOwn returns the value of an own property.
func (o *Object) GetOwn(name string) (any, bool) {
	if o == nil {
		return nil, false
	}
	o.lock.RLock()
	defer o.lock.RUnlock()
	if prop, ok := o.props[name]; ok {
		return prop.value, true
	}
	return nil, false
}

// Get returns the value of a property found on o
// or anywhere along its prototype chain.
func (o *Object) Get(name string) (any, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if v, ok := cur.GetOwn(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports if the property is reachable from o.
func (o *Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Attributes returns the attributes of an own property.
func (o *Object) Attributes(name string) (Attributes, bool) {
	if o == nil {
		return 0, false
	}
	o.lock.RLock()
	defer o.lock.RUnlock()
	if prop, ok := o.props[name]; ok {
		return prop.attrs, true
	}
	return 0, false
}

// Set assigns an own enumerable and writable property.
// Assigning an existing read-only own property fails.
func (o *Object) Set(name string, value any) error {
	if o == nil {
		return &InvalidReceiverError{Method: name}
	}
	o.lock.Lock()
	defer o.lock.Unlock()
	if prop, ok := o.props[name]; ok {
		if !prop.attrs.Writable() {
			return &NotWritableError{Name: name}
		}
		prop.value = value
		return nil
	}
	o.put(name, value, DefaultAttributes)
	return nil
}

// DefineProperty creates or replaces an own property with
// explicit attributes.  Read-only properties cannot be redefined.
func (o *Object) DefineProperty(
	name  string,
	value any,
	attrs Attributes,
) error {
	if o == nil {
		return &InvalidReceiverError{Method: name}
	}
	o.lock.Lock()
	defer o.lock.Unlock()
	if prop, ok := o.props[name]; ok {
		if !prop.attrs.Writable() {
			return &NotWritableError{Name: name}
		}
		prop.value = value
		prop.attrs = attrs
		return nil
	}
	o.put(name, value, attrs)
	return nil
}

// DefineMethod installs an enumerable and writable method.
func (o *Object) DefineMethod(name string, method Method) error {
	if method == nil {
		panic("method cannot be nil")
	}
	return o.DefineProperty(name, method, DefaultAttributes)
}

// OwnKeys returns the enumerable own property names in
// the order they were first defined.
func (o *Object) OwnKeys() []string {
	if o == nil {
		return nil
	}
	o.lock.RLock()
	defer o.lock.RUnlock()
	keys := make([]string, 0, len(o.names))
	for _, name := range o.names {
		if o.props[name].attrs.Enumerable() {
			keys = append(keys, name)
		}
	}
	return keys
}

// Keys returns the enumerable property names visible from o.
// Own names come first followed by each prototype in turn.
// A name is reported once and any own property, enumerable
// or not, hides an inherited property of the same name.
func (o *Object) Keys() []string {
	var keys []string
	o.walk(func(name string, _ *property) {
		keys = append(keys, name)
	})
	return keys
}

// Methods returns the enumerable function-valued property
// names visible from o.
func (o *Object) Methods() []string {
	var names []string
	o.walk(func(name string, prop *property) {
		if _, ok := asMethod(prop.value); ok {
			names = append(names, name)
		}
	})
	return names
}

// Call invokes the named method with o as the calling context.
func (o *Object) Call(name string, args ...any) (any, error) {
	if o == nil {
		return nil, &InvalidReceiverError{Method: name}
	}
	v, ok := o.Get(name)
	if !ok {
		return nil, &MethodNotFoundError{Name: name}
	}
	method, ok := asMethod(v)
	if !ok {
		return nil, &MethodNotFoundError{Name: name, Value: v}
	}
	return method(o, args...)
}

// Send invokes the named method expecting an Object in return.
// Send is the fluent form of Call.
func (o *Object) Send(name string, args ...any) (*Object, error) {
	result, err := o.Call(name, args...)
	if err != nil {
		return nil, err
	}
	if obj, ok := result.(*Object); ok && obj != nil {
		return obj, nil
	}
	return nil, fmt.Errorf("mixin: method %q returned %T, not an object", name, result)
}

func (o *Object) put(name string, value any, attrs Attributes) {
	if o.props == nil {
		o.props = make(map[string]*property)
	}
	o.props[name] = &property{value, attrs}
	o.names = append(o.names, name)
}

func (o *Object) walk(visit func(name string, prop *property)) {
	type entry struct {
		name string
		prop property
	}
	seen := make(map[string]struct{})
	for cur := o; cur != nil; cur = cur.proto {
		cur.lock.RLock()
		entries := make([]entry, 0, len(cur.names))
		for _, name := range cur.names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			if prop := cur.props[name]; prop.attrs.Enumerable() {
				entries = append(entries, entry{name, *prop})
			}
		}
		cur.lock.RUnlock()
		for i := range entries {
			visit(entries[i].name, &entries[i].prop)
		}
	}
}

func asMethod(v any) (Method, bool) {
	switch m := v.(type) {
	case Method:
		return m, m != nil
	case func(*Object, ...any) (any, error):
		return m, m != nil
	}
	return nil, false
}

// NewObject creates an Object delegating to proto.
// proto may be nil.
func NewObject(proto *Object) *Object {
	return &Object{proto: proto}
}

// Value returns the named property as a T.
func Value[T any](o *Object, name string) (T, bool) {
	if v, ok := o.Get(name); ok {
		t, ok := v.(T)
		return t, ok
	}
	var zero T
	return zero, false
}
