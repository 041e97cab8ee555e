package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GeneratedTask struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Description    string         `gorm:"type:text"`
	Priority       string         `gorm:"type:varchar(32)"`
	Role           string         `gorm:"type:varchar(64)"`
	EstimatedHours float64        `gorm:"type:numeric"`
	Status         string         `gorm:"type:varchar(32);not null;default:'pending';index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (GeneratedTask) TableName() string {
	return "generated_tasks"
}
