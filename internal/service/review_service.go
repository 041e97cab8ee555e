package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prd-studio-be/internal/dto"
	"prd-studio-be/internal/entity"
	"prd-studio-be/internal/pkg/logger"
	"prd-studio-be/internal/repository/specification"
	"prd-studio-be/internal/repository/unitofwork"
	"prd-studio-be/pkg/aigen"
	"prd-studio-be/pkg/blockdoc"
	"prd-studio-be/pkg/events"
	pktNats "prd-studio-be/pkg/nats"
	"prd-studio-be/pkg/review"

	"github.com/google/uuid"
)

type IReviewService interface {
	GenerateFeatures(ctx context.Context, userId uuid.UUID, req *dto.GenerateItemsRequest) (*dto.GenerateFeaturesResponse, error)
	GenerateTasks(ctx context.Context, userId uuid.UUID, req *dto.GenerateItemsRequest) (*dto.GenerateTasksResponse, error)
	ListFeatures(ctx context.Context, userId uuid.UUID, documentId uuid.UUID, status string) ([]dto.GeneratedFeatureDTO, error)
	ListTasks(ctx context.Context, userId uuid.UUID, documentId uuid.UUID, status string) ([]dto.GeneratedTaskDTO, error)
	BulkAcceptFeatures(ctx context.Context, userId uuid.UUID, req *dto.BulkItemsRequest) (*dto.BulkOutcomeResponse, error)
	BulkDeleteFeatures(ctx context.Context, userId uuid.UUID, req *dto.BulkItemsRequest) (*dto.BulkOutcomeResponse, error)
	BulkDeleteTasks(ctx context.Context, userId uuid.UUID, req *dto.BulkItemsRequest) (*dto.BulkOutcomeResponse, error)
	PromoteToRoadmap(ctx context.Context, userId uuid.UUID, req *dto.PromoteToRoadmapRequest) (*dto.PromoteToRoadmapResponse, error)
	ShowRoadmap(ctx context.Context, userId uuid.UUID, roadmapId uuid.UUID) (*dto.ShowRoadmapResponse, error)
}

type reviewService struct {
	uowFactory     unitofwork.RepositoryFactory
	generator      *aigen.Generator
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewReviewService(
	uowFactory unitofwork.RepositoryFactory,
	generator *aigen.Generator,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IReviewService {
	return &reviewService{
		uowFactory:     uowFactory,
		generator:      generator,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *reviewService) documentContext(ctx context.Context, uow unitofwork.UnitOfWork, userId, documentId uuid.UUID) (string, error) {
	document, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: documentId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return "", err
	}
	if document == nil {
		return "", fmt.Errorf("document not found")
	}

	parser := blockdoc.NewParser()
	markdown, err := parser.ToMarkdown(document.Content)
	if err != nil {
		return blockdoc.PlainText(document.Content), nil
	}
	return markdown, nil
}

func (s *reviewService) GenerateFeatures(ctx context.Context, userId uuid.UUID, req *dto.GenerateItemsRequest) (*dto.GenerateFeaturesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docContext, err := s.documentContext(ctx, uow, userId, req.DocumentId)
	if err != nil {
		return nil, err
	}

	result, err := s.generator.Generate(ctx, aigen.Request{
		Kind:        aigen.KindGenerateFeatures,
		DocContext:  docContext,
		Instruction: "Derive the product features from this document.",
	})
	if err != nil {
		return nil, err
	}

	items, err := aigen.ParseFeatureList(result.Content)
	if err != nil {
		return nil, fmt.Errorf("model returned an unparseable feature list: %w", err)
	}

	features := make([]*entity.GeneratedFeature, 0, len(items))
	for _, item := range items {
		features = append(features, &entity.GeneratedFeature{
			Id:              uuid.New(),
			DocumentId:      req.DocumentId,
			UserId:          userId,
			Title:           item.Title,
			Description:     item.Description,
			Priority:        item.Priority,
			Phase:           item.Phase,
			EstimatedEffort: item.EstimatedEffort,
			Status:          entity.GeneratedItemPending,
			CreatedAt:       time.Now(),
		})
	}

	if err := uow.GeneratedFeatureRepository().CreateBatch(ctx, features); err != nil {
		return nil, err
	}

	res := &dto.GenerateFeaturesResponse{TokensUsed: result.TokensUsed}
	for _, f := range features {
		res.Features = append(res.Features, toFeatureDTO(f))
	}
	return res, nil
}

func (s *reviewService) GenerateTasks(ctx context.Context, userId uuid.UUID, req *dto.GenerateItemsRequest) (*dto.GenerateTasksResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docContext, err := s.documentContext(ctx, uow, userId, req.DocumentId)
	if err != nil {
		return nil, err
	}

	result, err := s.generator.Generate(ctx, aigen.Request{
		Kind:        aigen.KindGenerateTasks,
		DocContext:  docContext,
		Instruction: "Break this document down into implementation tasks.",
	})
	if err != nil {
		return nil, err
	}

	items, err := aigen.ParseTaskList(result.Content)
	if err != nil {
		return nil, fmt.Errorf("model returned an unparseable task list: %w", err)
	}

	tasks := make([]*entity.GeneratedTask, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, &entity.GeneratedTask{
			Id:             uuid.New(),
			DocumentId:     req.DocumentId,
			UserId:         userId,
			Title:          item.Title,
			Description:    item.Description,
			Priority:       item.Priority,
			Role:           item.Role,
			EstimatedHours: item.EstimatedHours,
			Status:         entity.GeneratedItemPending,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.GeneratedTaskRepository().CreateBatch(ctx, tasks); err != nil {
		return nil, err
	}

	res := &dto.GenerateTasksResponse{TokensUsed: result.TokensUsed}
	for _, t := range tasks {
		res.Tasks = append(res.Tasks, toTaskDTO(t))
	}
	return res, nil
}

func (s *reviewService) ListFeatures(ctx context.Context, userId uuid.UUID, documentId uuid.UUID, status string) ([]dto.GeneratedFeatureDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByDocumentID{DocumentID: documentId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	}
	if status != "" {
		specs = append(specs, specification.ByItemStatus{Status: status})
	}

	features, err := uow.GeneratedFeatureRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]dto.GeneratedFeatureDTO, 0, len(features))
	for _, f := range features {
		out = append(out, toFeatureDTO(f))
	}
	return out, nil
}

func (s *reviewService) ListTasks(ctx context.Context, userId uuid.UUID, documentId uuid.UUID, status string) ([]dto.GeneratedTaskDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByDocumentID{DocumentID: documentId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	}
	if status != "" {
		specs = append(specs, specification.ByItemStatus{Status: status})
	}

	tasks, err := uow.GeneratedTaskRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]dto.GeneratedTaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	return out, nil
}

func (s *reviewService) BulkAcceptFeatures(ctx context.Context, userId uuid.UUID, req *dto.BulkItemsRequest) (*dto.BulkOutcomeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	outcome := review.Apply(idsToStrings(req.Ids), func(id string) error {
		featureId, err := uuid.Parse(id)
		if err != nil {
			return err
		}
		feature, err := uow.GeneratedFeatureRepository().FindOne(ctx,
			specification.ByID{ID: featureId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if feature == nil {
			return fmt.Errorf("feature not found")
		}
		now := time.Now()
		feature.Status = entity.GeneratedItemAccepted
		feature.UpdatedAt = &now
		return uow.GeneratedFeatureRepository().Update(ctx, feature)
	})

	return toOutcomeResponse(outcome), nil
}

func (s *reviewService) BulkDeleteFeatures(ctx context.Context, userId uuid.UUID, req *dto.BulkItemsRequest) (*dto.BulkOutcomeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	outcome := review.Apply(idsToStrings(req.Ids), func(id string) error {
		featureId, err := uuid.Parse(id)
		if err != nil {
			return err
		}
		feature, err := uow.GeneratedFeatureRepository().FindOne(ctx,
			specification.ByID{ID: featureId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if feature == nil {
			// Deleting something already gone is fine.
			return nil
		}
		return uow.GeneratedFeatureRepository().Delete(ctx, featureId)
	})

	return toOutcomeResponse(outcome), nil
}

func (s *reviewService) BulkDeleteTasks(ctx context.Context, userId uuid.UUID, req *dto.BulkItemsRequest) (*dto.BulkOutcomeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	outcome := review.Apply(idsToStrings(req.Ids), func(id string) error {
		taskId, err := uuid.Parse(id)
		if err != nil {
			return err
		}
		task, err := uow.GeneratedTaskRepository().FindOne(ctx,
			specification.ByID{ID: taskId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		return uow.GeneratedTaskRepository().Delete(ctx, taskId)
	})

	return toOutcomeResponse(outcome), nil
}

func (s *reviewService) PromoteToRoadmap(ctx context.Context, userId uuid.UUID, req *dto.PromoteToRoadmapRequest) (*dto.PromoteToRoadmapResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	var roadmap *entity.Roadmap
	position := 0
	if req.RoadmapId != nil {
		existing, err := uow.RoadmapRepository().FindOne(ctx,
			specification.ByID{ID: *req.RoadmapId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, errors.New("roadmap not found")
		}
		roadmap = existing

		// New items go after whatever the roadmap already holds.
		items, err := uow.RoadmapItemRepository().FindAll(ctx,
			specification.FilterBy{Field: "roadmap_id", Value: existing.Id},
		)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.Position >= position {
				position = item.Position + 1
			}
		}
	} else {
		if req.Title == "" {
			return nil, errors.New("either roadmap_id or title is required")
		}
		roadmap = &entity.Roadmap{
			Id:         uuid.New(),
			DocumentId: req.DocumentId,
			UserId:     userId,
			Title:      req.Title,
			CreatedAt:  time.Now(),
		}
		if err := uow.RoadmapRepository().Create(ctx, roadmap); err != nil {
			return nil, err
		}
	}

	outcome := review.Apply(idsToStrings(req.FeatureIds), func(id string) error {
		featureId, err := uuid.Parse(id)
		if err != nil {
			return err
		}
		feature, err := uow.GeneratedFeatureRepository().FindOne(ctx,
			specification.ByID{ID: featureId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		if feature == nil {
			return fmt.Errorf("feature not found")
		}

		srcId := feature.Id
		item := entity.RoadmapItem{
			Id:              uuid.New(),
			RoadmapId:       roadmap.Id,
			Title:           feature.Title,
			Description:     feature.Description,
			Priority:        feature.Priority,
			Phase:           feature.Phase,
			Position:        position,
			SourceFeatureId: &srcId,
			CreatedAt:       time.Now(),
		}
		if err := uow.RoadmapItemRepository().Create(ctx, &item); err != nil {
			return err
		}
		position++

		now := time.Now()
		feature.Status = entity.GeneratedItemPromoted
		feature.UpdatedAt = &now
		return uow.GeneratedFeatureRepository().Update(ctx, feature)
	})

	if outcome.Succeeded == 0 {
		// Nothing landed; the deferred rollback discards a freshly
		// created roadmap rather than leaving it empty.
		res := &dto.PromoteToRoadmapResponse{Outcome: *toOutcomeResponse(outcome)}
		if req.RoadmapId != nil {
			res.RoadmapId = *req.RoadmapId
		}
		return res, nil
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.NewRoadmapPromoted(roadmap.Id.String(), req.DocumentId.String(), outcome.Succeeded)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("ReviewService", "Failed to publish roadmap event", map[string]interface{}{
				"roadmap_id": roadmap.Id,
				"error":      err.Error(),
			})
		}
	}

	return &dto.PromoteToRoadmapResponse{
		RoadmapId: roadmap.Id,
		Outcome:   *toOutcomeResponse(outcome),
	}, nil
}

func (s *reviewService) ShowRoadmap(ctx context.Context, userId uuid.UUID, roadmapId uuid.UUID) (*dto.ShowRoadmapResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	roadmap, err := uow.RoadmapRepository().FindOne(ctx,
		specification.ByID{ID: roadmapId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, nil
	}

	items, err := uow.RoadmapItemRepository().FindAll(ctx,
		specification.FilterBy{Field: "roadmap_id", Value: roadmapId},
		specification.OrderBy{Field: "position", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowRoadmapResponse{
		Id:    roadmap.Id,
		Title: roadmap.Title,
	}
	for _, item := range items {
		res.Items = append(res.Items, dto.RoadmapItemDTO{
			Id:          item.Id,
			Title:       item.Title,
			Description: item.Description,
			Priority:    item.Priority,
			Phase:       item.Phase,
			Position:    item.Position,
		})
	}
	return res, nil
}

func toFeatureDTO(f *entity.GeneratedFeature) dto.GeneratedFeatureDTO {
	return dto.GeneratedFeatureDTO{
		Id:              f.Id,
		Title:           f.Title,
		Description:     f.Description,
		Priority:        f.Priority,
		Phase:           f.Phase,
		EstimatedEffort: f.EstimatedEffort,
		Status:          string(f.Status),
		CreatedAt:       f.CreatedAt,
	}
}

func toTaskDTO(t *entity.GeneratedTask) dto.GeneratedTaskDTO {
	return dto.GeneratedTaskDTO{
		Id:             t.Id,
		Title:          t.Title,
		Description:    t.Description,
		Priority:       t.Priority,
		Role:           t.Role,
		EstimatedHours: t.EstimatedHours,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
	}
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func toOutcomeResponse(outcome *review.BulkOutcome) *dto.BulkOutcomeResponse {
	res := &dto.BulkOutcomeResponse{
		Succeeded: outcome.Succeeded,
		Failed:    outcome.Failed,
		Summary:   outcome.Summary(),
	}
	for _, id := range outcome.FailedIDs {
		if parsed, err := uuid.Parse(id); err == nil {
			res.FailedIds = append(res.FailedIds, parsed)
		}
	}
	return res
}
