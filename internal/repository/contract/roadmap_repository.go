package contract

import (
	"context"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoadmapRepository interface {
	Create(ctx context.Context, roadmap *entity.Roadmap) error
	Update(ctx context.Context, roadmap *entity.Roadmap) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Roadmap, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Roadmap, error)
}

type RoadmapItemRepository interface {
	Create(ctx context.Context, item *entity.RoadmapItem) error
	CreateBatch(ctx context.Context, items []*entity.RoadmapItem) error
	Update(ctx context.Context, item *entity.RoadmapItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RoadmapItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RoadmapItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
