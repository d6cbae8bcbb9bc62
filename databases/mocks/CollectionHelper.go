package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cordial-cms/cordial-cms/databases"
)

// CollectionHelper is a mock type for the CollectionHelper type
type CollectionHelper struct {
	mock.Mock
}

func variadic(fixed []interface{}, rest ...interface{}) []interface{} {
	return append(fixed, rest...)
}

// Find provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) Find(_a0 context.Context, _a1 interface{}, _a2 ...*options.FindOptions) (databases.CursorHelper, error) {
	_va := make([]interface{}, len(_a2))
	for _i := range _a2 {
		_va[_i] = _a2[_i]
	}
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _va...)...)

	var r0 databases.CursorHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.CursorHelper)
	}
	return r0, ret.Error(1)
}

// FindOne provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) FindOne(_a0 context.Context, _a1 interface{}, _a2 ...*options.FindOneOptions) databases.SingleResultHelper {
	_va := make([]interface{}, len(_a2))
	for _i := range _a2 {
		_va[_i] = _a2[_i]
	}
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _va...)...)

	var r0 databases.SingleResultHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.SingleResultHelper)
	}
	return r0
}

// InsertOne provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) InsertOne(_a0 context.Context, _a1 interface{}, _a2 ...*options.InsertOneOptions) (databases.InsertOneResultHelper, error) {
	_va := make([]interface{}, len(_a2))
	for _i := range _a2 {
		_va[_i] = _a2[_i]
	}
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _va...)...)

	var r0 databases.InsertOneResultHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.InsertOneResultHelper)
	}
	return r0, ret.Error(1)
}

// ReplaceOne provides a mock function with given fields: _a0, _a1, _a2, _a3
func (_m *CollectionHelper) ReplaceOne(_a0 context.Context, _a1 interface{}, _a2 interface{}, _a3 ...*options.ReplaceOptions) (int64, error) {
	_va := make([]interface{}, len(_a3))
	for _i := range _a3 {
		_va[_i] = _a3[_i]
	}
	ret := _m.Called(variadic([]interface{}{_a0, _a1, _a2}, _va...)...)

	return ret.Get(0).(int64), ret.Error(1)
}

// SingleResultHelper is a mock type for the SingleResultHelper type
type SingleResultHelper struct {
	mock.Mock
}

// Decode provides a mock function with given fields: v
func (_m *SingleResultHelper) Decode(v interface{}) error {
	return _m.Called(v).Error(0)
}

// InsertOneResultHelper is a mock type for the InsertOneResultHelper type
type InsertOneResultHelper struct {
	mock.Mock
}

// Decode provides a mock function with given fields:
func (_m *InsertOneResultHelper) Decode() interface{} {
	return _m.Called().Get(0)
}

// CursorHelper is a mock type for the CursorHelper type
type CursorHelper struct {
	mock.Mock
}

// All provides a mock function with given fields: ctx, results
func (_m *CursorHelper) All(ctx context.Context, results interface{}) error {
	return _m.Called(ctx, results).Error(0)
}

// Close provides a mock function with given fields: ctx
func (_m *CursorHelper) Close(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}
