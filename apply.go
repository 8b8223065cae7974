package mixin

import (
	"github.com/go-logr/logr"
)

type (
	// Applier installs Module methods onto receivers.
	// Every application reserves its own SlotKey so the private
	// context of one application is never seen by another.
	Applier struct {
		keys      KeySource
		logger    logr.Logger
		verbosity int
	}

	// Application records a Module applied to a receiver.
	Application struct {
		Module  string
		Key     SlotKey
		Methods []string
	}
)


// Applier

// Apply installs the methods of module onto receiver and
// returns the receiver for chaining.
// Methods already reachable under the same name are replaced.
func (a *Applier) Apply(
	receiver *Object,
	module   *Module,
) (*Object, error) {
	if receiver == nil {
		return nil, &InvalidReceiverError{}
	}
	if err := module.Validate(); err != nil {
		return nil, err
	}
	names := module.Names()
	if err := receiver.checkWritable(names); err != nil {
		return nil, err
	}
	key, err := issueKey(a.keys)
	if err != nil {
		a.logger.Error(err, "unable to reserve slot", "module", module.Name())
		return nil, err
	}
	stubs := make([]Method, len(names))
	for i, name := range names {
		stubs[i] = a.stub(key, module.name, name, module.methods[name])
	}
	if err := receiver.defineMethods(names, stubs); err != nil {
		return nil, err
	}
	receiver.record(Application{module.name, key, names})
	a.logger.V(a.verbosity).Info("module applied",
		"module", module.name, "key", key, "methods", names)
	return receiver, nil
}

// Mixin applies each module to receiver in order.
// The first failure stops the remaining applications.
func (a *Applier) Mixin(
	receiver *Object,
	modules  ...*Module,
) (*Object, error) {
	for _, module := range modules {
		if _, err := a.Apply(receiver, module); err != nil {
			return nil, err
		}
	}
	return receiver, nil
}

// stub binds the body of a module method to the private
// context reserved under key for whichever object it is called on.
func (a *Applier) stub(
	key    SlotKey,
	module string,
	name   string,
	body   Method,
) Method {
	return func(this *Object, args ...any) (any, error) {
		if this == nil {
			return nil, &InvalidReceiverError{Method: name}
		}
		ctx, created, err := safekeep(this, key)
		if err != nil {
			return nil, err
		}
		if created {
			a.logger.V(a.verbosity+1).Info("context materialized",
				"module", module, "key", key, "method", name)
		}
		result, err := body(ctx, args...)
		return rewriteSelf(result, ctx, this), err
	}
}


// Object

// Applied returns the applications made directly to o.
func (o *Object) Applied() []Application {
	if o == nil {
		return nil
	}
	if apps := o.apps.Load(); apps != nil {
		return append([]Application(nil), *apps...)
	}
	return nil
}

func (o *Object) checkWritable(names []string) error {
	o.lock.RLock()
	defer o.lock.RUnlock()
	for _, name := range names {
		if prop, ok := o.props[name]; ok && !prop.attrs.Writable() {
			return &NotWritableError{Name: name}
		}
	}
	return nil
}

// defineMethods installs every method or none of them.
func (o *Object) defineMethods(names []string, methods []Method) error {
	o.lock.Lock()
	defer o.lock.Unlock()
	for _, name := range names {
		if prop, ok := o.props[name]; ok && !prop.attrs.Writable() {
			return &NotWritableError{Name: name}
		}
	}
	for i, name := range names {
		if prop, ok := o.props[name]; ok {
			prop.value = methods[i]
			prop.attrs = DefaultAttributes
		} else {
			o.put(name, methods[i], DefaultAttributes)
		}
	}
	return nil
}

func (o *Object) record(app Application) {
	o.slotLock.Lock()
	defer o.slotLock.Unlock()
	var apps []Application
	if current := o.apps.Load(); current != nil {
		apps = append(apps, *current...)
	}
	apps = append(apps, app)
	o.apps.Store(&apps)
}


// UseKeySource assigns the source of slot keys.
func UseKeySource(keys KeySource) func(*Applier) {
	return func(a *Applier) {
		if keys != nil {
			a.keys = keys
		}
	}
}

// UseLogger assigns the logger application events are sent to.
func UseLogger(logger logr.Logger) func(*Applier) {
	return func(a *Applier) {
		a.logger = logger
	}
}

// UseVerbosity sets the logr level of application events.
func UseVerbosity(verbosity int) func(*Applier) {
	return func(a *Applier) {
		a.verbosity = verbosity
	}
}

// NewApplier creates an Applier issuing counter keys
// and discarding log output unless configured otherwise.
// The zero Applier is usable and logs nothing.
func NewApplier(config ...func(*Applier)) *Applier {
	applier := &Applier{
		keys:      CounterKeys(),
		logger:    logr.Discard(),
		verbosity: DefaultVerbosity,
	}
	for _, configure := range config {
		if configure != nil {
			configure(applier)
		}
	}
	return applier
}

// Apply installs module onto receiver using the default Applier.
func Apply(receiver *Object, module *Module) (*Object, error) {
	return defaultApplier.Apply(receiver, module)
}

// Mixin applies modules onto receiver using the default Applier.
func Mixin(receiver *Object, modules ...*Module) (*Object, error) {
	return defaultApplier.Mixin(receiver, modules...)
}

var defaultApplier = NewApplier()
