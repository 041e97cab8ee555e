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

type GeneratedTaskRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GeneratedTaskMapper
}

func NewGeneratedTaskRepository(db *gorm.DB) contract.GeneratedTaskRepository {
	return &GeneratedTaskRepositoryImpl{
		db:     db,
		mapper: mapper.NewGeneratedTaskMapper(),
	}
}

func (r *GeneratedTaskRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GeneratedTaskRepositoryImpl) Create(ctx context.Context, task *entity.GeneratedTask) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *GeneratedTaskRepositoryImpl) CreateBatch(ctx context.Context, tasks []*entity.GeneratedTask) error {
	if len(tasks) == 0 {
		return nil
	}
	models := make([]*model.GeneratedTask, len(tasks))
	for i, t := range tasks {
		models[i] = r.mapper.ToModel(t)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*tasks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *GeneratedTaskRepositoryImpl) Update(ctx context.Context, task *entity.GeneratedTask) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *GeneratedTaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GeneratedTask{}, id).Error
}

func (r *GeneratedTaskRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedTask, error) {
	var m model.GeneratedTask
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GeneratedTaskRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedTask, error) {
	var models []*model.GeneratedTask
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GeneratedTaskRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GeneratedTask{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
