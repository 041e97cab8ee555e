package mapper

import (
	"time"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CanvasMapper struct{}

func NewCanvasMapper() *CanvasMapper {
	return &CanvasMapper{}
}

func (m *CanvasMapper) ToEntity(c *model.Canvas) *entity.Canvas {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Canvas{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		UserId:     c.UserId,
		Name:       c.Name,
		Data:       string(c.Data),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  c.DeletedAt.Valid,
	}
}

func (m *CanvasMapper) ToModel(c *entity.Canvas) *model.Canvas {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var data datatypes.JSON
	if c.Data != "" {
		data = datatypes.JSON(c.Data)
	}

	return &model.Canvas{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		UserId:     c.UserId,
		Name:       c.Name,
		Data:       data,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *CanvasMapper) ToEntities(canvases []*model.Canvas) []*entity.Canvas {
	entities := make([]*entity.Canvas, len(canvases))
	for i, c := range canvases {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
