package contract

import (
	"context"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CanvasRepository interface {
	Create(ctx context.Context, canvas *entity.Canvas) error
	Update(ctx context.Context, canvas *entity.Canvas) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Canvas, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Canvas, error)
}
