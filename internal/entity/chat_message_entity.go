package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessageStatus string

const (
	ChatMessagePending    ChatMessageStatus = "pending"
	ChatMessageGenerating ChatMessageStatus = "generating"
	ChatMessageComplete   ChatMessageStatus = "complete"
	ChatMessageError      ChatMessageStatus = "error"
)

// ChatMessage is one turn of a document-iteration conversation. User
// messages carry DocumentSnapshot, the full document JSON at send time,
// so the document can be reverted to any earlier turn.
type ChatMessage struct {
	Id               uuid.UUID
	ChatSessionId    uuid.UUID
	Role             string
	Content          string
	Status           ChatMessageStatus
	ErrorMessage     string
	DocumentSnapshot string
	TokensUsed       int
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
