package mixin

import "fmt"

// Arg returns the positional argument at index as a T.
func Arg[T any](args []any, index int) (T, error) {
	var zero T
	if index < 0 || index >= len(args) {
		return zero, &ArgumentError{index, "is missing"}
	}
	if t, ok := args[index].(T); ok {
		return t, nil
	}
	return zero, &ArgumentError{index,
		fmt.Sprintf("expected %T, found %T", zero, args[index])}
}
