package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cordial-cms/cordial-cms/models"
	"github.com/cordial-cms/cordial-cms/views"
)

func dialChat(t *testing.T, ta *testApp) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(ta.Handler)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/chat/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) ChatFrame {
	t.Helper()
	var frame ChatFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestChatPage(t *testing.T) {
	ta := newTestApp(t)
	req, _ := http.NewRequest("GET", "/chat", nil)
	response := ta.executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "/chat/ws")
}

func TestChatSocketRoundTrip(t *testing.T) {
	ta := newTestApp(t)
	ta.conv.On("Converse", mock.Anything, "when is my next dose?").
		Return(&models.ConversationResponse{Response: "At 8 PM.", InvokedAgent: "medication_agent"}, nil).Once()
	conn := dialChat(t, ta)

	require.NoError(t, conn.WriteJSON(ChatPrompt{Prompt: "   "}))
	require.NoError(t, conn.WriteJSON(ChatPrompt{Prompt: "when is my next dose?"}))

	user := readFrame(t, conn)
	require.Equal(t, FrameMessage, user.Type)
	require.NotNil(t, user.Message)
	assert.True(t, user.Message.IsUser)
	assert.Equal(t, "when is my next dose?", user.Message.Text)

	reply := readFrame(t, conn)
	require.Equal(t, FrameMessage, reply.Type)
	require.NotNil(t, reply.Message)
	assert.False(t, reply.Message.IsUser)
	assert.Equal(t, "At 8 PM.", reply.Message.Text)
	assert.Equal(t, "medication_agent", reply.Message.InvokedAgent)
	assert.NotEqual(t, user.Message.ID, reply.Message.ID)

	ta.conv.AssertExpectations(t)
}

func TestChatSocketBackendFailure(t *testing.T) {
	ta := newTestApp(t)
	ta.conv.On("Converse", mock.Anything, "hello").Return(nil, errors.New("status 503")).Once()
	ta.conv.On("Converse", mock.Anything, "hello again").Return(&models.ConversationResponse{Response: "Hi!"}, nil).Once()
	conn := dialChat(t, ta)

	require.NoError(t, conn.WriteJSON(ChatPrompt{Prompt: "hello"}))

	user := readFrame(t, conn)
	require.Equal(t, FrameMessage, user.Type)
	assert.Equal(t, "hello", user.Message.Text)

	failed := readFrame(t, conn)
	assert.Equal(t, FrameError, failed.Type)
	assert.Equal(t, views.MsgSendFailed, failed.Error)
	assert.Nil(t, failed.Message)

	require.NoError(t, conn.WriteJSON(ChatPrompt{Prompt: "hello again"}))
	assert.Equal(t, "hello again", readFrame(t, conn).Message.Text)
	assert.Equal(t, "Hi!", readFrame(t, conn).Message.Text)
}
