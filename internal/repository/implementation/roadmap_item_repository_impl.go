package implementation

import (
	"context"
	"errors"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/mapper"
	"prd-studio-be/internal/model"
	"prd-studio-be/internal/repository/contract"
	"prd-studio-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoadmapItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoadmapItemMapper
}

func NewRoadmapItemRepository(db *gorm.DB) contract.RoadmapItemRepository {
	return &RoadmapItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoadmapItemMapper(),
	}
}

func (r *RoadmapItemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RoadmapItemRepositoryImpl) Create(ctx context.Context, item *entity.RoadmapItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *RoadmapItemRepositoryImpl) CreateBatch(ctx context.Context, items []*entity.RoadmapItem) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*model.RoadmapItem, len(items))
	for i, item := range items {
		models[i] = r.mapper.ToModel(item)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*items[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *RoadmapItemRepositoryImpl) Update(ctx context.Context, item *entity.RoadmapItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *RoadmapItemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RoadmapItem{}, id).Error
}

func (r *RoadmapItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RoadmapItem, error) {
	var m model.RoadmapItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RoadmapItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RoadmapItem, error) {
	var models []*model.RoadmapItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RoadmapItemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RoadmapItem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
