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

type RoadmapRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoadmapMapper
}

func NewRoadmapRepository(db *gorm.DB) contract.RoadmapRepository {
	return &RoadmapRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoadmapMapper(),
	}
}

func (r *RoadmapRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RoadmapRepositoryImpl) Create(ctx context.Context, roadmap *entity.Roadmap) error {
	m := r.mapper.ToModel(roadmap)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*roadmap = *r.mapper.ToEntity(m)
	return nil
}

func (r *RoadmapRepositoryImpl) Update(ctx context.Context, roadmap *entity.Roadmap) error {
	m := r.mapper.ToModel(roadmap)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*roadmap = *r.mapper.ToEntity(m)
	return nil
}

func (r *RoadmapRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Roadmap{}, id).Error
}

func (r *RoadmapRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Roadmap, error) {
	var m model.Roadmap
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RoadmapRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Roadmap, error) {
	var models []*model.Roadmap
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
