package unitofwork

import (
	"context"

	"prd-studio-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	DocumentRepository() contract.DocumentRepository
	GeneratedFeatureRepository() contract.GeneratedFeatureRepository
	GeneratedTaskRepository() contract.GeneratedTaskRepository
	RoadmapRepository() contract.RoadmapRepository
	RoadmapItemRepository() contract.RoadmapItemRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	TemplateRepository() contract.TemplateRepository
	CanvasRepository() contract.CanvasRepository
}
