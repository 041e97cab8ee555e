package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title      string     `json:"title" validate:"required"`
	Content    string     `json:"content"`
	TemplateId *uuid.UUID `json:"template_id"`
}

type CreateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowDocumentResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	TemplateId *uuid.UUID `json:"template_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type ListDocumentItem struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type UpdateDocumentRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type UpdateDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type ExportDocumentResponse struct {
	Id       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Markdown string    `json:"markdown"`
}

type ShareDocumentRequest struct {
	Id    uuid.UUID
	Email string `json:"email" validate:"required,email"`
}

// GenerateDraftRequest asks the AI to draft or extend the PRD body.
type GenerateDraftRequest struct {
	Id          uuid.UUID
	Instruction string `json:"instruction" validate:"required"`
}

type GenerateDraftResponse struct {
	Content    string `json:"content"`
	Reasoning  string `json:"reasoning,omitempty"`
	TokensUsed int    `json:"tokens_used"`
}
