package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cordial-cms/cordial-cms/api"
	"github.com/cordial-cms/cordial-cms/models"
	"github.com/cordial-cms/cordial-cms/personastore"
	"github.com/cordial-cms/cordial-cms/views"
)

// Chat frame types sent to the browser
const (
	FrameMessage = "message"
	FrameError   = "error"
)

// ChatPrompt is the frame sent by the browser
type ChatPrompt struct {
	Prompt string `json:"prompt"`
}

// ChatFrame is the frame sent to the browser
type ChatFrame struct {
	Type    string          `json:"type"`
	Message *models.Message `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Chat serves the chat page and its websocket transcript
type Chat struct {
	pages
	Conversation personastore.Conversation
	Upgrader     websocket.Upgrader
}

// ChatPageHandler renders the chat page
func (h Chat) ChatPageHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "chat", ChatPage{Page: h.page("Chat")})
}

// ChatSocketHandler runs one chat session for the lifetime of the connection
func (h Chat) ChatSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().With(err).Errorw("failed to upgrade chat connection", "requestId", api.RequestIDFromContext(r.Context()))
		return
	}
	defer conn.Close()

	var writeErr error
	session := views.NewChatSession(h.Conversation, func(m models.Message) {
		if writeErr != nil {
			return
		}
		writeErr = conn.WriteJSON(ChatFrame{Type: FrameMessage, Message: &m})
	})

	for writeErr == nil {
		var prompt ChatPrompt
		if err := conn.ReadJSON(&prompt); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.S().With(err).Warnw("chat connection closed unexpectedly", "requestId", api.RequestIDFromContext(r.Context()))
			}
			return
		}

		_, err := session.Send(r.Context(), prompt.Prompt)
		switch {
		case err == nil, errors.Is(err, views.ErrEmptyPrompt):
		case errors.Is(err, views.ErrTransport):
			writeErr = conn.WriteJSON(ChatFrame{Type: FrameError, Error: session.ErrorMessage()})
		default:
			writeErr = conn.WriteJSON(ChatFrame{Type: FrameError, Error: views.MsgSendFailed})
		}
	}
	zap.S().With(writeErr).Warn("failed to write chat frame")
}
