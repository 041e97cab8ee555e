package entity

import (
	"time"

	"github.com/google/uuid"
)

type GeneratedItemStatus string

const (
	GeneratedItemPending  GeneratedItemStatus = "pending"
	GeneratedItemAccepted GeneratedItemStatus = "accepted"
	GeneratedItemPromoted GeneratedItemStatus = "promoted"
)

// GeneratedFeature is one AI-proposed feature awaiting review.
type GeneratedFeature struct {
	Id              uuid.UUID
	DocumentId      uuid.UUID
	UserId          uuid.UUID
	Title           string
	Description     string
	Priority        string
	Phase           string
	EstimatedEffort string
	Status          GeneratedItemStatus
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}

// GeneratedTask is one AI-proposed implementation task awaiting review.
type GeneratedTask struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	UserId         uuid.UUID
	Title          string
	Description    string
	Priority       string
	Role           string
	EstimatedHours float64
	Status         GeneratedItemStatus
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
