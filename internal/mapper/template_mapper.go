package mapper

import (
	"encoding/json"
	"time"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TemplateMapper struct{}

func NewTemplateMapper() *TemplateMapper {
	return &TemplateMapper{}
}

func (m *TemplateMapper) ToEntity(t *model.Template) *entity.Template {
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

	var sections []entity.TemplateSection
	if len(t.Sections) > 0 {
		_ = json.Unmarshal(t.Sections, &sections)
	}

	var history []entity.TemplateVersion
	if len(t.VersionHistory) > 0 {
		_ = json.Unmarshal(t.VersionHistory, &history)
	}

	return &entity.Template{
		Id:             t.Id,
		UserId:         t.UserId,
		Name:           t.Name,
		Description:    t.Description,
		Category:       t.Category,
		ContextPrompt:  t.ContextPrompt,
		Sections:       sections,
		Version:        t.Version,
		VersionHistory: history,
		IsStarter:      t.IsStarter,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      t.DeletedAt.Valid,
	}
}

func (m *TemplateMapper) ToModel(t *entity.Template) *model.Template {
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

	sections, _ := json.Marshal(t.Sections)
	history, _ := json.Marshal(t.VersionHistory)

	return &model.Template{
		Id:             t.Id,
		UserId:         t.UserId,
		Name:           t.Name,
		Description:    t.Description,
		Category:       t.Category,
		ContextPrompt:  t.ContextPrompt,
		Sections:       datatypes.JSON(sections),
		Version:        t.Version,
		VersionHistory: datatypes.JSON(history),
		IsStarter:      t.IsStarter,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *TemplateMapper) ToEntities(templates []*model.Template) []*entity.Template {
	entities := make([]*entity.Template, len(templates))
	for i, t := range templates {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
