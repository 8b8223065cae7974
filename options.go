package mixin

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/imdario/mergo"
)

// Options represent the configurable settings of an Applier.
type Options struct {
	// KeySource names the source of slot keys: counter or uuid.
	KeySource string `path:"keySource" validate:"omitempty,oneof=counter uuid"`

	// Verbosity is the logr level of application events.
	// Context materialization is logged one level higher.
	// Zero selects DefaultVerbosity.
	Verbosity int `path:"verbosity" validate:"gte=0,lte=10"`
}

const (
	CounterKeySource = "counter"
	UUIDKeySource    = "uuid"

	DefaultVerbosity = 1
)

// DefaultOptions returns the settings used when none are given.
func DefaultOptions() Options {
	return Options{KeySource: CounterKeySource, Verbosity: DefaultVerbosity}
}

// MergeOptions fills the unset fields of into from from.
func MergeOptions(from, into *Options) bool {
	return mergo.Merge(into, from) == nil
}

// KeySourceNamed returns the KeySource registered under name.
func KeySourceNamed(name string) (KeySource, error) {
	switch name {
	case "", CounterKeySource:
		return CounterKeys(), nil
	case UUIDKeySource:
		return RandomKeys(), nil
	default:
		return nil, fmt.Errorf("mixin: unknown key source %q", name)
	}
}

// Validate checks the settings are within range.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("mixin: invalid options: %w", err)
	}
	return nil
}

var validate = validator.New()
