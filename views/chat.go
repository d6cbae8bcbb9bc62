package views

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/models"
	"github.com/cordial-cms/cordial-cms/personastore"
)

// ChatSession is one transcript with the agent. It lives as long as the chat page or
// websocket connection that created it.
type ChatSession struct {
	conv     personastore.Conversation
	observer func(models.Message)
	now      func() time.Time

	sending atomic.Bool

	mu       sync.Mutex
	messages []models.Message
	message  string
}

// NewChatSession starts an empty transcript. observer, if set, sees every appended turn.
func NewChatSession(conv personastore.Conversation, observer func(models.Message)) *ChatSession {
	return &ChatSession{
		conv:     conv,
		observer: observer,
		now:      time.Now,
	}
}

// Send appends the user turn, asks the agent and appends its reply. The user turn is
// kept when the agent call fails.
func (c *ChatSession) Send(ctx context.Context, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPrompt
	}
	if !c.sending.CompareAndSwap(false, true) {
		return nil, ErrSendInFlight
	}
	defer c.sending.Store(false)

	c.record(models.Message{
		ID:        uuid.NewString(),
		Text:      text,
		IsUser:    true,
		Timestamp: c.now(),
	})

	resp, err := c.conv.Converse(ctx, text)
	if err != nil {
		zap.S().With(err).Error("failed to send chat message")
		c.mu.Lock()
		c.message = MsgSendFailed
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	reply := models.Message{
		ID:           uuid.NewString(),
		Text:         resp.Response,
		Timestamp:    c.now(),
		InvokedAgent: resp.InvokedAgent,
	}
	c.record(reply)
	return &reply, nil
}

func (c *ChatSession) record(m models.Message) {
	c.mu.Lock()
	c.messages = append(c.messages, m)
	c.message = ""
	c.mu.Unlock()

	if c.observer != nil {
		c.observer(m)
	}
}

// Messages returns a copy of the transcript
func (c *ChatSession) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Message(nil), c.messages...)
}

// ErrorMessage returns the last send error, cleared by the next turn
func (c *ChatSession) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Sending reports whether a turn is pending
func (c *ChatSession) Sending() bool {
	return c.sending.Load()
}
