package dto

import "time"

type CreateSessionRequest struct {
	Model        string `json:"model" validate:"required"`
	SessionId    string `json:"session_id,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
	Model     string `json:"model"`
	Message   string `json:"message"`
}

type SessionInfo struct {
	SessionId    string    `json:"session_id"`
	Model        string    `json:"model"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
