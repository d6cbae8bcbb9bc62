package models

import "time"

// ChatSourceWebChat tags turns sent from the dashboard chat
const ChatSourceWebChat = "WEBCHAT"

// ConversationRequest is the request body for the conversation endpoint
type ConversationRequest struct {
	Prompt     string `json:"prompt"`
	ChatSource string `json:"chat_source"`
}

// ConversationResponse is the agent reply
type ConversationResponse struct {
	Response     string `json:"response"`
	InvokedAgent string `json:"invoked_agent,omitempty"`
}

// Message is one turn of a chat transcript
type Message struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	IsUser       bool      `json:"isUser"`
	Timestamp    time.Time `json:"timestamp"`
	InvokedAgent string    `json:"invokedAgent,omitempty"`
}
