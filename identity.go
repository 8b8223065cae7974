package mixin

// Identical reports if v refers to the exact Object o.
// Values of uncomparable dynamic types are never identical.
func Identical(v any, o *Object) bool {
	if o == nil {
		return false
	}
	obj, ok := v.(*Object)
	return ok && obj == o
}

// rewriteSelf substitutes the outer object when a result
// refers back to the object a method executed against.
func rewriteSelf(result any, self, outer *Object) any {
	if Identical(result, self) {
		return outer
	}
	return result
}
