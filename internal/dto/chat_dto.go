package dto

type ChatRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Model     string `json:"model" validate:"required"`
	Message   string `json:"message" validate:"required"`
	UseSearch bool   `json:"use_search,omitempty"`
}

type ChatResponse struct {
	SessionId           string       `json:"session_id"`
	Model               string       `json:"model"`
	Response            string       `json:"response"`
	ConversationHistory []MessageDTO `json:"conversation_history"`
}

type QuickChatRequest struct {
	Model   string `json:"model" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type QuickChatResponse struct {
	Model    string `json:"model"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

// StreamFrame is one websocket frame of a streaming chat turn.
// Type is "fragment" while the reply is being generated, then exactly one
// "done" (with the final history length) or "error" frame.
type StreamFrame struct {
	Type     string `json:"type"`
	Content  string `json:"content,omitempty"`
	Error    string `json:"error,omitempty"`
	Messages int    `json:"messages,omitempty"`
}
