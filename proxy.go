package mixin

// NewProxy builds a dispatch surface over the enumerable
// methods visible from base when it is called.
// Each forwarding method invokes the base method with base as
// the calling context and answers the proxy whenever the base
// method answers base.  Methods added to base afterwards are
// not forwarded.
func NewProxy(base *Object) (*Object, error) {
	if base == nil {
		return nil, &InvalidReceiverError{}
	}
	proxy := &Object{}
	for _, name := range base.Methods() {
		proxy.put(name, forward(base, proxy, name), Enumerable)
	}
	return proxy, nil
}

func forward(base, proxy *Object, name string) Method {
	return func(_ *Object, args ...any) (any, error) {
		result, err := base.Call(name, args...)
		return rewriteSelf(result, base, proxy), err
	}
}
