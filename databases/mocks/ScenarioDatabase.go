package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cordial-cms/cordial-cms/models"
)

// ScenarioDatabase is a mock type for the ScenarioDatabase type
type ScenarioDatabase struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, s
func (_m *ScenarioDatabase) Create(ctx context.Context, s models.Scenario) (*models.Scenario, error) {
	ret := _m.Called(ctx, s)

	var r0 *models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Scenario)
	}
	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, page
func (_m *ScenarioDatabase) List(ctx context.Context, page int) ([]models.Scenario, error) {
	ret := _m.Called(ctx, page)

	var r0 []models.Scenario
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Scenario)
	}
	return r0, ret.Error(1)
}
