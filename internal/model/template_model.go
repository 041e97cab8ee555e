package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Template struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Description    string         `gorm:"type:text"`
	Category       string         `gorm:"type:varchar(64);index"`
	ContextPrompt  string         `gorm:"type:text"`
	Sections       datatypes.JSON `gorm:"type:jsonb"`
	Version        int            `gorm:"not null;default:1"`
	VersionHistory datatypes.JSON `gorm:"type:jsonb"`
	IsStarter      bool           `gorm:"not null;default:false;index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Template) TableName() string {
	return "templates"
}
