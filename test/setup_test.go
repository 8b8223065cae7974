package test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/miruken-go/mixin"
	"github.com/miruken-go/mixin/log"
	"github.com/stretchr/testify/suite"
)

type CountingInstaller struct {
	count int
}

func (i *CountingInstaller) Install(
	setup *mixin.SetupBuilder,
) error {
	if setup.CanInstall(i) {
		i.count++
	}
	return nil
}

type DependentInstaller struct {
	deps []mixin.Feature
}

func (i *DependentInstaller) Install(*mixin.SetupBuilder) error {
	return nil
}

func (i *DependentInstaller) DependsOn() []mixin.Feature {
	return i.deps
}

type SetupTestSuite struct {
	suite.Suite
}

func (suite *SetupTestSuite) TestSetup() {
	suite.Run("Defaults", func() {
		applier, err := mixin.Setup()
		suite.Nil(err)
		receiver, err := applier.Apply(mixin.NewObject(nil), Stash)
		suite.Nil(err)
		suite.True(strings.HasPrefix(string(receiver.Applied()[0].Key), "slot:"))
	})

	suite.Run("Options", func() {
		applier, err := mixin.Setup(
			mixin.WithOptions(mixin.Options{KeySource: mixin.UUIDKeySource}),
		)
		suite.Nil(err)
		receiver, _ := applier.Apply(mixin.NewObject(nil), Stash)
		key := strings.TrimPrefix(string(receiver.Applied()[0].Key), "slot:")
		suite.Len(key, 36)
	})

	suite.Run("First Options Win", func() {
		applier, err := mixin.Setup(
			mixin.WithOptions(mixin.Options{KeySource: mixin.UUIDKeySource}),
			mixin.WithOptions(mixin.Options{KeySource: mixin.CounterKeySource, Verbosity: 2}),
		)
		suite.Nil(err)
		receiver, _ := applier.Apply(mixin.NewObject(nil), Stash)
		suite.Len(strings.TrimPrefix(string(receiver.Applied()[0].Key), "slot:"), 36)
	})

	suite.Run("Invalid Options", func() {
		applier, err := mixin.Setup(
			mixin.WithOptions(mixin.Options{KeySource: "dice"}),
			mixin.WithOptions(mixin.Options{Verbosity: -1}),
		)
		suite.NotNil(err)
		suite.Contains(err.Error(), "KeySource")
		suite.Contains(err.Error(), "Verbosity")
		suite.NotNil(applier)
	})

	suite.Run("Key Source Override", func() {
		applier, err := mixin.Setup(
			mixin.WithOptions(mixin.Options{KeySource: mixin.UUIDKeySource}),
			mixin.WithKeySource(mixin.CounterKeys()),
		)
		suite.Nil(err)
		receiver, _ := applier.Apply(mixin.NewObject(nil), Stash)
		suite.Less(len(receiver.Applied()[0].Key), 36)
	})

	suite.Run("Feature Errors", func() {
		failure := errors.New("cannot install")
		_, err := mixin.Setup(
			mixin.InstallFeature(func(*mixin.SetupBuilder) error { return failure }),
			log.Feature(testr.New(suite.T())),
		)
		suite.ErrorIs(err, failure)
	})

	suite.Run("Installs Once", func() {
		installer := &CountingInstaller{}
		_, err := mixin.Setup(installer, installer)
		suite.Nil(err)
		suite.Equal(1, installer.count)
	})

	suite.Run("Installs Dependencies", func() {
		installer := &CountingInstaller{}
		_, err := mixin.Setup(&DependentInstaller{[]mixin.Feature{installer}})
		suite.Nil(err)
		suite.Equal(1, installer.count)
	})
}

func TestSetupTestSuite(t *testing.T) {
	suite.Run(t, new(SetupTestSuite))
}
