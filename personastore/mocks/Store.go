package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cordial-cms/cordial-cms/models"
)

// Store is a mock type for the Store type
type Store struct {
	mock.Mock
}

// ListPersonas provides a mock function with given fields: ctx
func (_m *Store) ListPersonas(ctx context.Context) ([]models.Persona, error) {
	ret := _m.Called(ctx)

	var r0 []models.Persona
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Persona)
	}
	return r0, ret.Error(1)
}

// CurrentPersona provides a mock function with given fields: ctx
func (_m *Store) CurrentPersona(ctx context.Context) (*models.Persona, error) {
	ret := _m.Called(ctx)

	var r0 *models.Persona
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Persona)
	}
	return r0, ret.Error(1)
}

// AddPersona provides a mock function with given fields: ctx, fields
func (_m *Store) AddPersona(ctx context.Context, fields models.PersonaFields) (*models.Persona, error) {
	ret := _m.Called(ctx, fields)

	var r0 *models.Persona
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Persona)
	}
	return r0, ret.Error(1)
}

// EditPersona provides a mock function with given fields: ctx, id, fields
func (_m *Store) EditPersona(ctx context.Context, id string, fields models.PersonaFields) (*models.Persona, error) {
	ret := _m.Called(ctx, id, fields)

	var r0 *models.Persona
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Persona)
	}
	return r0, ret.Error(1)
}

// MakePersonaDefault provides a mock function with given fields: ctx, id
func (_m *Store) MakePersonaDefault(ctx context.Context, id string) error {
	return _m.Called(ctx, id).Error(0)
}
