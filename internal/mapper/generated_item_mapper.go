package mapper

import (
	"time"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/model"

	"gorm.io/gorm"
)

type GeneratedFeatureMapper struct{}

func NewGeneratedFeatureMapper() *GeneratedFeatureMapper {
	return &GeneratedFeatureMapper{}
}

func (m *GeneratedFeatureMapper) ToEntity(f *model.GeneratedFeature) *entity.GeneratedFeature {
	if f == nil {
		return nil
	}

	var deletedAt *time.Time
	if f.DeletedAt.Valid {
		t := f.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.GeneratedFeature{
		Id:              f.Id,
		DocumentId:      f.DocumentId,
		UserId:          f.UserId,
		Title:           f.Title,
		Description:     f.Description,
		Priority:        f.Priority,
		Phase:           f.Phase,
		EstimatedEffort: f.EstimatedEffort,
		Status:          entity.GeneratedItemStatus(f.Status),
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       f.DeletedAt.Valid,
	}
}

func (m *GeneratedFeatureMapper) ToModel(f *entity.GeneratedFeature) *model.GeneratedFeature {
	if f == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if f.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *f.DeletedAt, Valid: true}
	} else if f.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.GeneratedFeature{
		Id:              f.Id,
		DocumentId:      f.DocumentId,
		UserId:          f.UserId,
		Title:           f.Title,
		Description:     f.Description,
		Priority:        f.Priority,
		Phase:           f.Phase,
		EstimatedEffort: f.EstimatedEffort,
		Status:          string(f.Status),
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *GeneratedFeatureMapper) ToEntities(features []*model.GeneratedFeature) []*entity.GeneratedFeature {
	entities := make([]*entity.GeneratedFeature, len(features))
	for i, f := range features {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

type GeneratedTaskMapper struct{}

func NewGeneratedTaskMapper() *GeneratedTaskMapper {
	return &GeneratedTaskMapper{}
}

func (m *GeneratedTaskMapper) ToEntity(t *model.GeneratedTask) *entity.GeneratedTask {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		dt := t.DeletedAt.Time
		deletedAt = &dt
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ut := t.UpdatedAt
		updatedAt = &ut
	}

	return &entity.GeneratedTask{
		Id:             t.Id,
		DocumentId:     t.DocumentId,
		UserId:         t.UserId,
		Title:          t.Title,
		Description:    t.Description,
		Priority:       t.Priority,
		Role:           t.Role,
		EstimatedHours: t.EstimatedHours,
		Status:         entity.GeneratedItemStatus(t.Status),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      t.DeletedAt.Valid,
	}
}

func (m *GeneratedTaskMapper) ToModel(t *entity.GeneratedTask) *model.GeneratedTask {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.GeneratedTask{
		Id:             t.Id,
		DocumentId:     t.DocumentId,
		UserId:         t.UserId,
		Title:          t.Title,
		Description:    t.Description,
		Priority:       t.Priority,
		Role:           t.Role,
		EstimatedHours: t.EstimatedHours,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *GeneratedTaskMapper) ToEntities(tasks []*model.GeneratedTask) []*entity.GeneratedTask {
	entities := make([]*entity.GeneratedTask, len(tasks))
	for i, t := range tasks {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
