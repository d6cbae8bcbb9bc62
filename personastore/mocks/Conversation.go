package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cordial-cms/cordial-cms/models"
)

// Conversation is a mock type for the Conversation type
type Conversation struct {
	mock.Mock
}

// Converse provides a mock function with given fields: ctx, prompt
func (_m *Conversation) Converse(ctx context.Context, prompt string) (*models.ConversationResponse, error) {
	ret := _m.Called(ctx, prompt)

	var r0 *models.ConversationResponse
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.ConversationResponse)
	}
	return r0, ret.Error(1)
}
