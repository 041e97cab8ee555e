package entity

import (
	"time"

	"github.com/google/uuid"
)

// TemplateSection is one named section a template pre-seeds into a new
// document.
type TemplateSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Prompt      string `json:"prompt,omitempty"`
}

// TemplateVersion is a frozen snapshot of every editable field, taken
// before an edit. History is capped; the oldest snapshot is dropped
// once the cap is reached.
type TemplateVersion struct {
	Version       int               `json:"version"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Category      string            `json:"category"`
	Sections      []TemplateSection `json:"sections"`
	ContextPrompt string            `json:"context_prompt"`
	SavedAt       time.Time         `json:"saved_at"`
}

// MaxTemplateVersions bounds the retained history per template.
const MaxTemplateVersions = 10

type Template struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	Name           string
	Description    string
	Category       string
	ContextPrompt  string
	Sections       []TemplateSection
	Version        int
	VersionHistory []TemplateVersion
	IsStarter      bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
