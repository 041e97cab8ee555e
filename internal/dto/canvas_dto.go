package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCanvasRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Data       string    `json:"data"`
}

type CreateCanvasResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateCanvasRequest struct {
	Id   uuid.UUID
	Name string `json:"name"`
	Data string `json:"data"`
}

type CanvasDTO struct {
	Id         uuid.UUID  `json:"id"`
	DocumentId uuid.UUID  `json:"document_id"`
	Name       string     `json:"name"`
	Data       string     `json:"data"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
