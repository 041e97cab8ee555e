package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatMessage struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role             string         `gorm:"type:varchar(32);not null"`
	Content          string         `gorm:"type:text"`
	Status           string         `gorm:"type:varchar(32);not null;default:'pending'"`
	ErrorMessage     string         `gorm:"type:text"`
	DocumentSnapshot datatypes.JSON `gorm:"type:jsonb"`
	TokensUsed       int            `gorm:"not null;default:0"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
