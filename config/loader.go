package config

import (
	"fmt"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/miruken-go/mixin"
)

type (
	// Loader of mixin.Options using the assigned Provider.
	// Loaded options are cached by path.
	Loader struct {
		Provider
		lock  sync.Mutex
		cache atomic.Pointer[map[loadKey]mixin.Options]
	}

	loadKey struct {
		path string
		flat bool
	}
)

// Load returns the options found at path merged over
// the defaults and validated.
func (l *Loader) Load(path string, flat bool) (mixin.Options, error) {
	key := loadKey{path: path, flat: flat}
	if cache := l.cache.Load(); cache != nil {
		if o, ok := (*cache)[key]; ok {
			return o, nil
		}
	}

	// Use copy-on-write idiom since reads should be more frequent than writes.
	l.lock.Lock()
	defer l.lock.Unlock()

	var cc map[loadKey]mixin.Options
	if cache := l.cache.Load(); cache != nil {
		if o, ok := (*cache)[key]; ok {
			return o, nil
		}
		cc = maps.Clone(*cache)
	} else {
		cc = make(map[loadKey]mixin.Options, 1)
	}

	var options mixin.Options
	if err := l.Unmarshal(path, flat, &options); err != nil {
		return mixin.Options{}, fmt.Errorf("config: %w", err)
	}
	defaults := mixin.DefaultOptions()
	mixin.MergeOptions(&defaults, &options)
	if err := options.Validate(); err != nil {
		return mixin.Options{}, fmt.Errorf("config: %w", err)
	}

	cc[key] = options
	l.cache.Store(&cc)
	return options, nil
}

// NewLoader creates a Loader reading from provider.
func NewLoader(provider Provider) *Loader {
	if provider == nil {
		panic("provider cannot be nil")
	}
	return &Loader{Provider: provider}
}
