package mixin

import "fmt"

type (
	// InvalidReceiverError reports a method invoked without
	// an object to act on.
	InvalidReceiverError struct {
		Method string
	}

	// DuplicateApplicationKeyError reports a SlotKey issued more
	// than once.  This is an unrecoverable internal failure.
	DuplicateApplicationKeyError struct {
		Key SlotKey
	}

	// MethodNotFoundError reports a call to a name that does
	// not resolve to a Method.
	MethodNotFoundError struct {
		Name  string
		Value any
	}

	// NotWritableError reports an assignment to a read-only property.
	NotWritableError struct {
		Name string
	}

	// InvalidModuleError reports a Module that cannot be applied.
	InvalidModuleError struct {
		Module string
		Reason error
	}
)


func (e *InvalidReceiverError) Error() string {
	if e.Method == "" {
		return "mixin: invalid receiver"
	}
	return fmt.Sprintf("mixin: invalid receiver for method %q", e.Method)
}

func (e *DuplicateApplicationKeyError) Error() string {
	if e.Key == "" {
		return "mixin: slot key source exhausted"
	}
	return fmt.Sprintf("mixin: slot key %q already issued", string(e.Key))
}

func (e *MethodNotFoundError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("mixin: property %q is not a method: %#v", e.Name, e.Value)
	}
	return fmt.Sprintf("mixin: method %q not found", e.Name)
}

func (e *NotWritableError) Error() string {
	return fmt.Sprintf("mixin: property %q is not writable", e.Name)
}

func (e *InvalidModuleError) Error() string {
	if e.Reason == nil {
		return fmt.Sprintf("mixin: invalid module %q", e.Module)
	}
	return fmt.Sprintf("mixin: invalid module %q: %v", e.Module, e.Reason)
}

func (e *InvalidModuleError) Unwrap() error {
	return e.Reason
}

// ArgumentError reports a missing or mistyped method argument.
type ArgumentError struct {
	Index  int
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("mixin: argument %d %s", e.Index, e.Reason)
}
