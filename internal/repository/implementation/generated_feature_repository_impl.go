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

type GeneratedFeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GeneratedFeatureMapper
}

func NewGeneratedFeatureRepository(db *gorm.DB) contract.GeneratedFeatureRepository {
	return &GeneratedFeatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewGeneratedFeatureMapper(),
	}
}

func (r *GeneratedFeatureRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GeneratedFeatureRepositoryImpl) Create(ctx context.Context, feature *entity.GeneratedFeature) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *GeneratedFeatureRepositoryImpl) CreateBatch(ctx context.Context, features []*entity.GeneratedFeature) error {
	if len(features) == 0 {
		return nil
	}
	models := make([]*model.GeneratedFeature, len(features))
	for i, f := range features {
		models[i] = r.mapper.ToModel(f)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*features[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *GeneratedFeatureRepositoryImpl) Update(ctx context.Context, feature *entity.GeneratedFeature) error {
	m := r.mapper.ToModel(feature)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

func (r *GeneratedFeatureRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GeneratedFeature{}, id).Error
}

func (r *GeneratedFeatureRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedFeature, error) {
	var m model.GeneratedFeature
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GeneratedFeatureRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedFeature, error) {
	var models []*model.GeneratedFeature
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GeneratedFeatureRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GeneratedFeature{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
