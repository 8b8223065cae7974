package config

import (
	"github.com/miruken-go/mixin"
)

// Installer loads mixin.Options during setup.
type Installer struct {
	loader *Loader
	path   string
	flat   bool
}

func (v *Installer) Install(setup *mixin.SetupBuilder) error {
	if setup.CanInstall(&featureTag) {
		options, err := v.loader.Load(v.path, v.flat)
		if err != nil {
			return err
		}
		setup.Options(options)
	}
	return nil
}

// Path selects where the options are read from.
// Empty reads from the root.
func Path(path string) func(*Installer) {
	return func(installer *Installer) {
		installer.path = path
	}
}

// Flat treats dotted keys below the path as flat names.
func Flat(installer *Installer) {
	installer.flat = true
}

// Feature creates and configures configuration support
// using the supplied configuration Provider.
func Feature(
	provider Provider,
	config   ...func(*Installer),
) mixin.Feature {
	installer := &Installer{loader: NewLoader(provider)}
	for _, configure := range config {
		if configure != nil {
			configure(installer)
		}
	}
	return installer
}

var featureTag byte
