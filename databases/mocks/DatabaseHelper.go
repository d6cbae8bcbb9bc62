package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/cordial-cms/cordial-cms/databases"
)

// DatabaseHelper is a mock type for the DatabaseHelper type
type DatabaseHelper struct {
	mock.Mock
}

// Collection provides a mock function with given fields: name
func (_m *DatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)

	var r0 databases.CollectionHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.CollectionHelper)
	}
	return r0
}
