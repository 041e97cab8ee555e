package dto

import (
	"time"

	"github.com/google/uuid"

	"prd-studio-be/internal/entity"
)

type CreateTemplateRequest struct {
	Name          string                   `json:"name" validate:"required"`
	Description   string                   `json:"description"`
	Category      string                   `json:"category" validate:"required"`
	ContextPrompt string                   `json:"context_prompt"`
	Sections      []entity.TemplateSection `json:"sections" validate:"required,min=1"`
}

type CreateTemplateResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateTemplateRequest struct {
	Id            uuid.UUID
	Name          string                   `json:"name" validate:"required"`
	Description   string                   `json:"description"`
	Category      string                   `json:"category" validate:"required"`
	ContextPrompt string                   `json:"context_prompt"`
	Sections      []entity.TemplateSection `json:"sections" validate:"required,min=1"`
}

type TemplateDTO struct {
	Id            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Category      string                   `json:"category"`
	ContextPrompt string                   `json:"context_prompt"`
	Sections      []entity.TemplateSection `json:"sections"`
	Version       int                      `json:"version"`
	IsStarter     bool                     `json:"is_starter"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     *time.Time               `json:"updated_at"`
}

type TemplateVersionDTO struct {
	Version       int                      `json:"version"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Category      string                   `json:"category"`
	Sections      []entity.TemplateSection `json:"sections"`
	ContextPrompt string                   `json:"context_prompt"`
	SavedAt       time.Time                `json:"saved_at"`
}

// ExportedTemplate is the portable form: transient fields (ids, owner,
// timestamps) are stripped so a bundle can be imported anywhere.
// Version history travels only when the export asks for it.
type ExportedTemplate struct {
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	Category       string                   `json:"category"`
	ContextPrompt  string                   `json:"context_prompt"`
	Sections       []entity.TemplateSection `json:"sections"`
	VersionHistory []entity.TemplateVersion `json:"version_history,omitempty"`
}

type ExportTemplatesRequest struct {
	Ids            []uuid.UUID `json:"ids"`
	IncludeHistory bool        `json:"include_history"`
}

type ExportTemplatesResponse struct {
	Templates []ExportedTemplate `json:"templates"`
}

type ImportTemplatesRequest struct {
	Templates []ExportedTemplate `json:"templates" validate:"required,min=1"`
}

// ImportTemplatesResponse counts imports; entries whose name collides
// with an existing template are skipped, not overwritten.
type ImportTemplatesResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	SkipList []string `json:"skip_list,omitempty"`
}
