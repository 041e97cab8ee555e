package mapper

import (
	"time"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/model"

	"gorm.io/gorm"
)

type RoadmapMapper struct{}

func NewRoadmapMapper() *RoadmapMapper {
	return &RoadmapMapper{}
}

func (m *RoadmapMapper) ToEntity(r *model.Roadmap) *entity.Roadmap {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Roadmap{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		UserId:     r.UserId,
		Title:      r.Title,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  r.DeletedAt.Valid,
	}
}

func (m *RoadmapMapper) ToModel(r *entity.Roadmap) *model.Roadmap {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Roadmap{
		Id:         r.Id,
		DocumentId: r.DocumentId,
		UserId:     r.UserId,
		Title:      r.Title,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *RoadmapMapper) ToEntities(roadmaps []*model.Roadmap) []*entity.Roadmap {
	entities := make([]*entity.Roadmap, len(roadmaps))
	for i, r := range roadmaps {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

type RoadmapItemMapper struct{}

func NewRoadmapItemMapper() *RoadmapItemMapper {
	return &RoadmapItemMapper{}
}

func (m *RoadmapItemMapper) ToEntity(r *model.RoadmapItem) *entity.RoadmapItem {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.RoadmapItem{
		Id:              r.Id,
		RoadmapId:       r.RoadmapId,
		Title:           r.Title,
		Description:     r.Description,
		Priority:        r.Priority,
		Phase:           r.Phase,
		Position:        r.Position,
		SourceFeatureId: r.SourceFeatureId,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       r.DeletedAt.Valid,
	}
}

func (m *RoadmapItemMapper) ToModel(r *entity.RoadmapItem) *model.RoadmapItem {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.RoadmapItem{
		Id:              r.Id,
		RoadmapId:       r.RoadmapId,
		Title:           r.Title,
		Description:     r.Description,
		Priority:        r.Priority,
		Phase:           r.Phase,
		Position:        r.Position,
		SourceFeatureId: r.SourceFeatureId,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *RoadmapItemMapper) ToEntities(items []*model.RoadmapItem) []*entity.RoadmapItem {
	entities := make([]*entity.RoadmapItem, len(items))
	for i, item := range items {
		entities[i] = m.ToEntity(item)
	}
	return entities
}
