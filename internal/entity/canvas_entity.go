package entity

import (
	"time"

	"github.com/google/uuid"
)

// Canvas is a drawing embedded in a document. The same canvas may be
// shown by several open editors at once; Data is the serialized scene.
type Canvas struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	UserId     uuid.UUID
	Name       string
	Data       string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
