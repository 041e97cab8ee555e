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

type CanvasRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CanvasMapper
}

func NewCanvasRepository(db *gorm.DB) contract.CanvasRepository {
	return &CanvasRepositoryImpl{
		db:     db,
		mapper: mapper.NewCanvasMapper(),
	}
}

func (r *CanvasRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CanvasRepositoryImpl) Create(ctx context.Context, canvas *entity.Canvas) error {
	m := r.mapper.ToModel(canvas)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*canvas = *r.mapper.ToEntity(m)
	return nil
}

func (r *CanvasRepositoryImpl) Update(ctx context.Context, canvas *entity.Canvas) error {
	m := r.mapper.ToModel(canvas)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*canvas = *r.mapper.ToEntity(m)
	return nil
}

func (r *CanvasRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Canvas{}, id).Error
}

func (r *CanvasRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Canvas, error) {
	var m model.Canvas
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CanvasRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Canvas, error) {
	var models []*model.Canvas
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
