package dto

import "docuchat-be/internal/entity"

// ChatRequest accepts both "query" (legacy) and "message" (frontend) fields;
// exactly one is required.
type ChatRequest struct {
	Query        string `json:"query"`
	Message      string `json:"message"`
	SessionId    string `json:"session_id"`
	UserId       *int64 `json:"user_id"`
	Mode         string `json:"mode"` // "global" (default) or "selected_text"
	SelectedText string `json:"selected_text"`
}

// QueryText resolves the effective query, preferring the legacy field.
func (r *ChatRequest) QueryText() string {
	if r.Query != "" {
		return r.Query
	}
	return r.Message
}

type ChatResponse struct {
	Response  string                `json:"response"`
	Context   []entity.ContextEntry `json:"context"`
	SessionId string                `json:"session_id"`
}

type ChatHistoryMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type ChatHistoryResponse struct {
	SessionId string               `json:"session_id"`
	Messages  []ChatHistoryMessage `json:"messages"`
}
