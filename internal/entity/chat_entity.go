package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserId is nil for anonymous sessions.
type ChatSession struct {
	Id        uuid.UUID
	UserId    *int64
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	ContextUsed   []string
	CreatedAt     time.Time
}

// ContextEntry is one retrieved (or user-selected) piece of context handed to
// the prompt builder and echoed back to the client.
type ContextEntry struct {
	Id       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
	Score    float32                `json:"score"`
}
