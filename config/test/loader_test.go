package test

import (
	"errors"
	"testing"

	"github.com/miruken-go/mixin"
	"github.com/miruken-go/mixin/config"
	"github.com/stretchr/testify/suite"
)

// MapProvider serves configuration from nested maps.
type MapProvider struct {
	values map[string]map[string]any
	loads  int
}

func (p *MapProvider) Unmarshal(path string, _ bool, output any) error {
	p.loads++
	values, ok := p.values[path]
	if !ok {
		return nil
	}
	options := output.(*mixin.Options)
	if keys, ok := values["keySource"].(string); ok {
		options.KeySource = keys
	}
	if verbosity, ok := values["verbosity"].(int); ok {
		options.Verbosity = verbosity
	}
	if err, ok := values["error"].(error); ok {
		return err
	}
	return nil
}

type LoaderTestSuite struct {
	suite.Suite
	provider *MapProvider
}

func (suite *LoaderTestSuite) SetupTest() {
	suite.provider = &MapProvider{values: map[string]map[string]any{
		"mixin":   {"keySource": "uuid", "verbosity": 2},
		"invalid": {"keySource": "dice"},
		"broken":  {"error": errors.New("unreadable")},
	}}
}

func (suite *LoaderTestSuite) TestLoad() {
	suite.Run("Path", func() {
		loader  := config.NewLoader(suite.provider)
		options, err := loader.Load("mixin", false)
		suite.Nil(err)
		suite.Equal(mixin.Options{KeySource: "uuid", Verbosity: 2}, options)
	})

	suite.Run("Defaults", func() {
		loader  := config.NewLoader(suite.provider)
		options, err := loader.Load("missing", false)
		suite.Nil(err)
		suite.Equal(mixin.DefaultOptions(), options)
	})

	suite.Run("Cached", func() {
		loader := config.NewLoader(suite.provider)
		before := suite.provider.loads
		_, _ = loader.Load("mixin", false)
		_, _ = loader.Load("mixin", false)
		_, _ = loader.Load("missing", false)
		suite.Equal(before+2, suite.provider.loads)
	})

	suite.Run("Invalid", func() {
		_, err := config.NewLoader(suite.provider).Load("invalid", false)
		suite.ErrorContains(err, "config:")
		suite.ErrorContains(err, "KeySource")
	})

	suite.Run("Provider Error", func() {
		_, err := config.NewLoader(suite.provider).Load("broken", false)
		suite.ErrorContains(err, "unreadable")
	})
}

func (suite *LoaderTestSuite) TestFeature() {
	suite.Run("Installs Options", func() {
		applier, err := mixin.Setup(
			config.Feature(suite.provider, config.Path("mixin")),
		)
		suite.Nil(err)
		receiver, _ := applier.Apply(mixin.NewObject(nil), mixin.NewModule("M").
			Method("m", func(*mixin.Object, ...any) (any, error) { return nil, nil }).
			Build())
		suite.Len(string(receiver.Applied()[0].Key), len("slot:")+36)
	})

	suite.Run("Reports Errors", func() {
		_, err := mixin.Setup(config.Feature(suite.provider, config.Path("broken")))
		suite.ErrorContains(err, "unreadable")
	})

	suite.Run("Requires Provider", func() {
		suite.Panics(func() {
			config.Feature(nil)
		})
	})
}

func TestLoaderTestSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}
