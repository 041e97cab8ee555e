package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is one PRD draft. Content holds the raw block-document JSON
// produced by the editor.
type Document struct {
	Id         uuid.UUID
	Title      string
	Content    string
	TemplateId *uuid.UUID
	UserId     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
