package mixin

import (
	"container/list"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"
)

type (
	// Feature encapsulates custom setup.
	Feature interface {
		Install(setup *SetupBuilder) error
	}
	InstallFeature func(setup *SetupBuilder) error

	// SetupBuilder orchestrates the setup of an Applier.
	SetupBuilder struct {
		options  Options
		keys     KeySource
		logger   *logr.Logger
		features []Feature
		tags     map[any]struct{}
	}
)

func (f InstallFeature) Install(
	setup *SetupBuilder,
) error {
	return f(setup)
}

// Options merges settings not already assigned.
func (s *SetupBuilder) Options(
	options Options,
) *SetupBuilder {
	MergeOptions(&options, &s.options)
	return s
}

// KeySource overrides the key source named by the Options.
func (s *SetupBuilder) KeySource(
	keys KeySource,
) *SetupBuilder {
	s.keys = keys
	return s
}

func (s *SetupBuilder) Logger(
	logger logr.Logger,
) *SetupBuilder {
	s.logger = &logger
	return s
}

// CanInstall reports true the first time a tag is seen.
func (s *SetupBuilder) CanInstall(tag any) bool {
	if tags := s.tags; tags == nil {
		s.tags = map[any]struct{}{tag: {}}
		return true
	} else if _, found := tags[tag]; !found {
		tags[tag] = struct{}{}
		return true
	}
	return false
}

func (s *SetupBuilder) Build() (applier *Applier, buildErrors error) {
	buildErrors = s.installGraph(s.features)

	options := s.options
	defaults := DefaultOptions()
	MergeOptions(&defaults, &options)
	if err := options.Validate(); err != nil {
		buildErrors = multierror.Append(buildErrors, err)
	}

	keys := s.keys
	if keys == nil {
		var err error
		if keys, err = KeySourceNamed(options.KeySource); err != nil {
			buildErrors = multierror.Append(buildErrors, err)
			keys = CounterKeys()
		}
	}

	config := []func(*Applier){
		UseKeySource(keys),
		UseVerbosity(options.Verbosity),
	}
	if logger := s.logger; logger != nil {
		config = append(config, UseLogger(*logger))
		if buildErrors != nil {
			logger.Error(buildErrors, "setup failed")
		}
	}
	return NewApplier(config...), buildErrors
}

func (s *SetupBuilder) installGraph(
	features []Feature,
) (err error) {
	// traverse level-order so overrides can be applied in any order
	queue := list.New()
	for _, feature := range features {
		if feature != nil {
			queue.PushBack(feature)
		}
	}
	for queue.Len() > 0 {
		front := queue.Front()
		queue.Remove(front)
		feature := front.Value.(Feature)
		if dependsOn, ok := feature.(interface{
			DependsOn() []Feature
		}); ok {
			for _, dep := range dependsOn.DependsOn() {
				if dep != nil {
					queue.PushBack(dep)
				}
			}
		}
		if ie := feature.Install(s); ie != nil {
			err = multierror.Append(err, ie)
		}
	}
	return err
}


// WithOptions installs explicit settings.
func WithOptions(options Options) InstallFeature {
	return func(setup *SetupBuilder) error {
		if err := options.Validate(); err != nil {
			return err
		}
		setup.Options(options)
		return nil
	}
}

// WithKeySource installs a custom KeySource.
func WithKeySource(keys KeySource) InstallFeature {
	return func(setup *SetupBuilder) error {
		setup.KeySource(keys)
		return nil
	}
}

// Setup builds an Applier from the supplied features.
// The Applier is always usable, even when errors are reported.
func Setup(features ...Feature) (*Applier, error) {
	setup := &SetupBuilder{features: features}
	return setup.Build()
}
