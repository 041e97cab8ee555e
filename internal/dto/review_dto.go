package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateItemsRequest struct {
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
}

type GeneratedFeatureDTO struct {
	Id              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Priority        string    `json:"priority"`
	Phase           string    `json:"phase"`
	EstimatedEffort string    `json:"estimated_effort"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type GeneratedTaskDTO struct {
	Id             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Priority       string    `json:"priority"`
	Role           string    `json:"role"`
	EstimatedHours float64   `json:"estimated_hours"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type GenerateFeaturesResponse struct {
	Features   []GeneratedFeatureDTO `json:"features"`
	TokensUsed int                   `json:"tokens_used"`
}

type GenerateTasksResponse struct {
	Tasks      []GeneratedTaskDTO `json:"tasks"`
	TokensUsed int                `json:"tokens_used"`
}

type BulkItemsRequest struct {
	Ids []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// BulkOutcomeResponse reports a partial-failure aggregate, e.g.
// "4 succeeded, 1 failed" with the ids that failed.
type BulkOutcomeResponse struct {
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	FailedIds []uuid.UUID `json:"failed_ids,omitempty"`
	Summary   string      `json:"summary"`
}

// PromoteToRoadmapRequest targets either an existing roadmap
// (roadmap_id) or a new one (title); exactly one must be given.
type PromoteToRoadmapRequest struct {
	DocumentId uuid.UUID   `json:"document_id" validate:"required"`
	RoadmapId  *uuid.UUID  `json:"roadmap_id"`
	Title      string      `json:"title"`
	FeatureIds []uuid.UUID `json:"feature_ids" validate:"required,min=1"`
}

type PromoteToRoadmapResponse struct {
	RoadmapId uuid.UUID           `json:"roadmap_id"`
	Outcome   BulkOutcomeResponse `json:"outcome"`
}

type RoadmapItemDTO struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Phase       string    `json:"phase"`
	Position    int       `json:"position"`
}

type ShowRoadmapResponse struct {
	Id    uuid.UUID        `json:"id"`
	Title string           `json:"title"`
	Items []RoadmapItemDTO `json:"items"`
}
