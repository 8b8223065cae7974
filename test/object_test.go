package test

import (
	"errors"
	"testing"

	"github.com/miruken-go/mixin"
	"github.com/stretchr/testify/suite"
)

func returnsSelf(this *mixin.Object, _ ...any) (any, error) {
	return this, nil
}

type ObjectTestSuite struct {
	suite.Suite
}

func (suite *ObjectTestSuite) TestProperties() {
	suite.Run("Get", func() {
		proto := mixin.NewObject(nil)
		suite.Nil(proto.Set("color", "red"))
		obj := mixin.NewObject(proto)
		color, ok := obj.Get("color")
		suite.True(ok)
		suite.Equal("red", color)
		_, ok = obj.GetOwn("color")
		suite.False(ok)
		suite.Same(proto, obj.Prototype())
		suite.True(proto.IsPrototypeOf(obj))
		suite.False(obj.IsPrototypeOf(proto))
	})

	suite.Run("Set Shadows Prototype", func() {
		proto := mixin.NewObject(nil)
		suite.Nil(proto.Set("color", "red"))
		obj := mixin.NewObject(proto)
		suite.Nil(obj.Set("color", "blue"))
		color, _ := mixin.Value[string](obj, "color")
		suite.Equal("blue", color)
		color, _ = mixin.Value[string](proto, "color")
		suite.Equal("red", color)
	})

	suite.Run("Read Only", func() {
		obj := mixin.NewObject(nil)
		suite.Nil(obj.DefineProperty("id", 1, mixin.Enumerable))
		err := obj.Set("id", 2)
		var nw *mixin.NotWritableError
		suite.True(errors.As(err, &nw))
		suite.Equal("id", nw.Name)
		err = obj.DefineProperty("id", 3, mixin.DefaultAttributes)
		suite.True(errors.As(err, &nw))
		id, _ := mixin.Value[int](obj, "id")
		suite.Equal(1, id)
	})

	suite.Run("Value Type Mismatch", func() {
		obj := mixin.NewObject(nil)
		suite.Nil(obj.Set("count", 2))
		_, ok := mixin.Value[string](obj, "count")
		suite.False(ok)
	})
}

func (suite *ObjectTestSuite) TestKeys() {
	suite.Run("Own Then Inherited", func() {
		proto := mixin.NewObject(nil)
		suite.Nil(proto.Set("a", 1))
		suite.Nil(proto.Set("b", 2))
		obj := mixin.NewObject(proto)
		suite.Nil(obj.Set("c", 3))
		suite.Nil(obj.Set("a", 4))
		suite.Equal([]string{"c", "a", "b"}, obj.Keys())
		suite.Equal([]string{"c", "a"}, obj.OwnKeys())
	})

	suite.Run("Hidden Own Property Shadows", func() {
		proto := mixin.NewObject(nil)
		suite.Nil(proto.Set("a", 1))
		obj := mixin.NewObject(proto)
		suite.Nil(obj.DefineProperty("a", 2, mixin.Writable))
		suite.Empty(obj.Keys())
		a, _ := mixin.Value[int](obj, "a")
		suite.Equal(2, a)
	})

	suite.Run("Methods", func() {
		obj := mixin.NewObject(nil)
		suite.Nil(obj.Set("name", "x"))
		suite.Nil(obj.DefineMethod("self", returnsSelf))
		suite.Nil(obj.Set("literal", func(this *mixin.Object, _ ...any) (any, error) {
			return nil, nil
		}))
		suite.Equal([]string{"self", "literal"}, obj.Methods())
	})
}

func (suite *ObjectTestSuite) TestCall() {
	suite.Run("Invokes With Object", func() {
		obj := mixin.NewObject(nil)
		suite.Nil(obj.DefineMethod("self", returnsSelf))
		result, err := obj.Call("self")
		suite.Nil(err)
		suite.Same(obj, result)
	})

	suite.Run("Inherited Method Sees Caller", func() {
		proto := mixin.NewObject(nil)
		suite.Nil(proto.DefineMethod("self", returnsSelf))
		obj := mixin.NewObject(proto)
		self, err := obj.Send("self")
		suite.Nil(err)
		suite.Same(obj, self)
	})

	suite.Run("Missing", func() {
		_, err := mixin.NewObject(nil).Call("nope")
		var nf *mixin.MethodNotFoundError
		suite.True(errors.As(err, &nf))
		suite.Equal("nope", nf.Name)
	})

	suite.Run("Not A Method", func() {
		obj := mixin.NewObject(nil)
		suite.Nil(obj.Set("name", "x"))
		_, err := obj.Call("name")
		var nf *mixin.MethodNotFoundError
		suite.True(errors.As(err, &nf))
		suite.Equal("x", nf.Value)
	})

	suite.Run("Nil Object", func() {
		var obj *mixin.Object
		_, err := obj.Call("name")
		var ir *mixin.InvalidReceiverError
		suite.True(errors.As(err, &ir))
	})

	suite.Run("Send Requires Object", func() {
		obj := mixin.NewObject(nil)
		suite.Nil(obj.DefineMethod("count", func(*mixin.Object, ...any) (any, error) {
			return 1, nil
		}))
		_, err := obj.Send("count")
		suite.ErrorContains(err, "not an object")
	})
}

func (suite *ObjectTestSuite) TestArg() {
	args := []any{"a", 2}
	s, err := mixin.Arg[string](args, 0)
	suite.Nil(err)
	suite.Equal("a", s)
	_, err = mixin.Arg[string](args, 1)
	var ae *mixin.ArgumentError
	suite.True(errors.As(err, &ae))
	suite.Equal(1, ae.Index)
	_, err = mixin.Arg[int](args, 2)
	suite.True(errors.As(err, &ae))
	suite.Equal("is missing", ae.Reason)
}

func TestObjectTestSuite(t *testing.T) {
	suite.Run(t, new(ObjectTestSuite))
}
