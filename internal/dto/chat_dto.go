package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatSessionRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
	Title      string    `json:"title"`
}

type CreateChatSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type ChatSessionDTO struct {
	Id         uuid.UUID  `json:"id"`
	DocumentId uuid.UUID  `json:"document_id"`
	Title      string     `json:"title"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type ChatMessageDTO struct {
	Id           uuid.UUID `json:"id"`
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	TokensUsed   int       `json:"tokens_used,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type SendChatMessageRequest struct {
	SessionId uuid.UUID
	Content   string `json:"content" validate:"required"`
}

type SendChatMessageResponse struct {
	UserMessage      ChatMessageDTO `json:"user_message"`
	AssistantMessage ChatMessageDTO `json:"assistant_message"`
}

// RevertToMessageRequest restores the session's document to the
// snapshot captured when the given user message was sent.
type RevertToMessageRequest struct {
	SessionId uuid.UUID
	MessageId uuid.UUID `json:"message_id" validate:"required"`
}

type RevertToMessageResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	Content    string    `json:"content"`
}
