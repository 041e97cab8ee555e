package contract

import (
	"context"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GeneratedFeatureRepository interface {
	Create(ctx context.Context, feature *entity.GeneratedFeature) error
	CreateBatch(ctx context.Context, features []*entity.GeneratedFeature) error
	Update(ctx context.Context, feature *entity.GeneratedFeature) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedFeature, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedFeature, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type GeneratedTaskRepository interface {
	Create(ctx context.Context, task *entity.GeneratedTask) error
	CreateBatch(ctx context.Context, tasks []*entity.GeneratedTask) error
	Update(ctx context.Context, task *entity.GeneratedTask) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedTask, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedTask, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
