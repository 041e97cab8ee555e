package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Roadmap struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title      string         `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Roadmap) TableName() string {
	return "roadmaps"
}

type RoadmapItem struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoadmapId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title           string         `gorm:"type:varchar(255);not null"`
	Description     string         `gorm:"type:text"`
	Priority        string         `gorm:"type:varchar(32)"`
	Phase           string         `gorm:"type:varchar(64)"`
	Position        int            `gorm:"not null;default:0"`
	SourceFeatureId *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (RoadmapItem) TableName() string {
	return "roadmap_items"
}
