package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cordial-cms/cordial-cms/models"
)

// PersonaDocumentDatabase is a mock type for the PersonaDocumentDatabase type
type PersonaDocumentDatabase struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx
func (_m *PersonaDocumentDatabase) List(ctx context.Context) ([]models.PersonaDocument, error) {
	ret := _m.Called(ctx)

	var r0 []models.PersonaDocument
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.PersonaDocument)
	}
	return r0, ret.Error(1)
}

// Get provides a mock function with given fields: ctx, id
func (_m *PersonaDocumentDatabase) Get(ctx context.Context, id string) (*models.PersonaDocument, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.PersonaDocument
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PersonaDocument)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, doc
func (_m *PersonaDocumentDatabase) Create(ctx context.Context, doc models.PersonaDocument) (string, error) {
	ret := _m.Called(ctx, doc)
	return ret.String(0), ret.Error(1)
}

// Replace provides a mock function with given fields: ctx, id, doc
func (_m *PersonaDocumentDatabase) Replace(ctx context.Context, id string, doc models.PersonaDocument) error {
	return _m.Called(ctx, id, doc).Error(0)
}
