package contract

import (
	"context"

	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *entity.Template) error
	Update(ctx context.Context, template *entity.Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Template, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Template, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
