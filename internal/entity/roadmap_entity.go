package entity

import (
	"time"

	"github.com/google/uuid"
)

type Roadmap struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	UserId     uuid.UUID
	Title      string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

// RoadmapItem is a feature promoted out of review into a roadmap.
// SourceFeatureId links back to the generated feature it came from.
type RoadmapItem struct {
	Id              uuid.UUID
	RoadmapId       uuid.UUID
	Title           string
	Description     string
	Priority        string
	Phase           string
	Position        int
	SourceFeatureId *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
