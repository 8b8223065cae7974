package koanf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/miruken-go/mixin/config"
)

// provider of configurations populated by the koanf library.
// https://github.com/knadh/koanf
type provider struct {
	k *koanf.Koanf
}

func (f *provider) Unmarshal(path string, flat bool, output any) error {
	return f.k.UnmarshalWithConf(path, output,
		koanf.UnmarshalConf{Tag: "path", FlatPaths: flat})
}

// P returns a config.Provider using the Koanf instance.
func P(k *koanf.Koanf) config.Provider {
	if k == nil {
		panic("k cannot be nil")
	}
	return &provider{k}
}

// Load reads each file in order followed by environment
// variables starting with prefix.  Later sources override
// earlier ones.  MIXIN_KEYSOURCE with prefix MIXIN_ is
// read as mixin.keysource.
func Load(prefix string, files ...string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	for _, name := range files {
		parser, err := parserFor(name)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(name), parser); err != nil {
			return nil, fmt.Errorf("koanf: load %q: %w", name, err)
		}
	}
	if prefix != "" {
		err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(s), "_", ".")
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("koanf: load environment: %w", err)
		}
	}
	return k, nil
}

func parserFor(name string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return json.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("koanf: unsupported config file %q", name)
	}
}
